package figure

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgtex"

	"github.com/avitase/nbfigtulz/internal/config"
	"github.com/avitase/nbfigtulz/internal/thumbnail"
)

// SaveOptions controls Save.
type SaveOptions struct {
	Size        Size      // nil means Small
	DPI         int       // 0 uses the configured DPI
	SuppressTeX bool      // skip the pgf file even with BackendTeX
	Quiet       bool      // do not print written paths
	Out         io.Writer // destination of printed paths, os.Stdout if nil
}

// Save writes p as <img_dir>/<base>.png, plus <base>.tex when the active
// backend is BackendTeX, and returns a thumbnail of the PNG. The image
// directory must already exist.
func Save(p *plot.Plot, base string, cfg *config.Config, opts SaveOptions) (*thumbnail.Thumbnail, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	size, err := Resolve(opts.Size, cfg)
	if err != nil {
		return nil, err
	}

	dpi := opts.DPI
	if dpi == 0 {
		dpi = cfg.DPI
	}
	if dpi < 0 {
		return nil, fmt.Errorf("dpi must be positive: %d", dpi)
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	w := vg.Length(size.Width()) * vg.Inch
	h := vg.Length(size.Height()) * vg.Inch

	pngData, err := renderPNG(p, w, h, dpi)
	if err != nil {
		return nil, err
	}

	files := []output{
		{"png", func() ([]byte, error) { return pngData, nil }},
	}
	if ActiveBackend() == BackendTeX && !opts.SuppressTeX {
		files = append(files, output{"tex", func() ([]byte, error) { return renderTeX(p, w, h) }})
	}

	for _, f := range files {
		data, err := f.render()
		if err != nil {
			return nil, err
		}

		path := filepath.Join(cfg.ImageDir, base+"."+f.ext)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}

		if !opts.Quiet {
			fmt.Fprintln(out, path)
		}
	}

	thumbOpts := cfg.ThumbnailOptions()
	thumbOpts.Width = int(size.Width() * 100)
	thumbOpts.Report = out

	return thumbnail.New(pngData, base, thumbOpts)
}

type output struct {
	ext    string
	render func() ([]byte, error)
}

func renderPNG(p *plot.Plot, w, h vg.Length, dpi int) ([]byte, error) {
	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))
	p.Draw(draw.New(c))

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to render png: %w", err)
	}
	return buf.Bytes(), nil
}

func renderTeX(p *plot.Plot, w, h vg.Length) ([]byte, error) {
	c := vgtex.New(w, h)
	p.Draw(draw.New(c))

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to render tex: %w", err)
	}
	return buf.Bytes(), nil
}
