// Package gallery turns a directory of figure renders into an HTML grid of
// thumbnails and keeps it current while the directory changes.
package gallery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/avitase/nbfigtulz/internal/display"
	"github.com/avitase/nbfigtulz/internal/thumbnail"
)

// DefaultOutput is the file name Write uses when none is configured.
const DefaultOutput = "gallery.html"

// Options controls gallery generation.
type Options struct {
	Columns   int
	Width     int
	Output    string // relative to the directory unless absolute
	Thumbnail thumbnail.Options
}

// NameFromPath strips directory and extension from a file path.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Thumbnails builds one thumbnail per file, in the order given. Files are
// processed concurrently; each thumbnail is independent of the others.
func Thumbnails(ctx context.Context, paths []string, opts thumbnail.Options) ([]*thumbnail.Thumbnail, error) {
	thumbs := make([]*thumbnail.Thumbnail, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			th, err := thumbnail.New(data, NameFromPath(path), opts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			thumbs[i] = th
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return thumbs, nil
}

// ListPNGs returns the PNG files directly inside dir, sorted by name.
func ListPNGs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !isPNG(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func isPNG(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".png") && !strings.HasPrefix(name, ".")
}

// Build renders every PNG in dir into a grid table.
func Build(ctx context.Context, dir string, opts Options) (display.HTML, error) {
	paths, err := ListPNGs(dir)
	if err != nil {
		return "", err
	}

	thumbs, err := Thumbnails(ctx, paths, opts.Thumbnail)
	if err != nil {
		return "", err
	}

	return display.Grid(thumbs, opts.Columns, opts.Width)
}

// Write builds the gallery of dir and stores it as an HTML page. It returns
// the path written.
func Write(ctx context.Context, dir string, opts Options) (string, error) {
	table, err := Build(ctx, dir, opts)
	if err != nil {
		return "", err
	}

	out := opts.Output
	if out == "" {
		out = DefaultOutput
	}
	if !filepath.IsAbs(out) {
		out = filepath.Join(dir, out)
	}

	page := fmt.Sprintf("<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>%s</title></head>\n<body>\n%s\n</body>\n</html>\n",
		filepath.Base(dir), table)
	if err := os.WriteFile(out, []byte(page), 0644); err != nil {
		return "", fmt.Errorf("failed to write gallery: %w", err)
	}
	return out, nil
}
