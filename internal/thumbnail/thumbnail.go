// Package thumbnail wraps a full-resolution figure render together with a
// downscaled JPEG preview for inline notebook display.
package thumbnail

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"os"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	// MinQuality and MaxQuality bound the JPEG quality of a thumbnail.
	MinQuality = 1
	MaxQuality = 95

	// MaxDimension bounds the width and height of a thumbnail in pixels.
	MaxDimension = 1 << 15
)

// ErrInvalidDimensions is returned when the scaled thumbnail would have a
// width or height below one pixel or above MaxDimension.
var ErrInvalidDimensions = errors.New("invalid thumbnail dimensions")

// Options controls how a thumbnail is derived from the full image.
type Options struct {
	Scale             float64   // factor applied to both width and height
	Quality           int       // JPEG quality, clamped to [MinQuality, MaxQuality]
	Background        RGB       // flattens transparent pixels
	Width             int       // display width of the <img> tag, 0 to omit
	ReportCompression bool      // print the compression rate after construction
	Report            io.Writer // destination of the report, os.Stdout if nil
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Scale:      0.5,
		Quality:    42,
		Background: White,
	}
}

// Thumbnail holds the base64 encodings of a full image and of its preview.
// It is immutable once constructed.
type Thumbnail struct {
	fullEncoded      string
	thumbnailEncoded string
	name             string
	width            int
}

// New encodes data and derives its JPEG thumbnail. The name labels the
// download link and is used verbatim.
func New(data []byte, name string, opts Options) (*Thumbnail, error) {
	full := base64.StdEncoding.EncodeToString(data)

	preview, err := makePreview(data, opts.Scale, ClampQuality(opts.Quality), opts.Background)
	if err != nil {
		return nil, err
	}

	t := &Thumbnail{
		fullEncoded:      full,
		thumbnailEncoded: base64.StdEncoding.EncodeToString(preview),
		name:             name,
		width:            opts.Width,
	}

	if opts.ReportCompression {
		w := opts.Report
		if w == nil {
			w = os.Stdout
		}
		fmt.Fprintf(w, "Compression rate: %.1f\n", t.CompressionRate())
	}

	return t, nil
}

// ClampQuality limits q to [MinQuality, MaxQuality].
func ClampQuality(q int) int {
	if q < MinQuality {
		return MinQuality
	}
	if q > MaxQuality {
		return MaxQuality
	}
	return q
}

// ScaledSize truncates w*scale and h*scale to whole pixels.
func ScaledSize(w, h int, scale float64) (int, int) {
	return int(float64(w) * scale), int(float64(h) * scale)
}

func makePreview(data []byte, scale float64, quality int, bg RGB) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	b := src.Bounds()
	fw, fh := float64(b.Dx())*scale, float64(b.Dy())*scale
	// Checked in floating point: the int conversion of an out-of-range value is undefined.
	if !(fw >= 1 && fh >= 1 && fw < MaxDimension+1 && fh < MaxDimension+1) {
		return nil, fmt.Errorf("%w: %dx%d scaled by %g gives %gx%g", ErrInvalidDimensions, b.Dx(), b.Dy(), scale, fw, fh)
	}
	w, h := ScaledSize(b.Dx(), b.Dy(), scale)

	rect := image.Rect(0, 0, w, h)
	scaled := image.NewRGBA(rect)
	draw.CatmullRom.Scale(scaled, rect, src, b, draw.Src, nil)

	out := scaled
	if hasAlpha(src) {
		out = image.NewRGBA(rect)
		draw.Draw(out, rect, image.NewUniform(bg), image.Point{}, draw.Src)
		draw.Draw(out, rect, scaled, image.Point{}, draw.Over)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// hasAlpha reports whether img may contain non-opaque pixels.
func hasAlpha(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return true
}

// Name returns the label used for downloads.
func (t *Thumbnail) Name() string {
	return t.name
}

// Width returns the display width, 0 if unset.
func (t *Thumbnail) Width() int {
	return t.width
}

// FullEncoded returns the base64 text of the original bytes.
func (t *Thumbnail) FullEncoded() string {
	return t.fullEncoded
}

// ThumbnailEncoded returns the base64 text of the JPEG preview.
func (t *Thumbnail) ThumbnailEncoded() string {
	return t.thumbnailEncoded
}

// CompressionRate is the size ratio of the full encoding to the preview encoding.
func (t *Thumbnail) CompressionRate() float64 {
	return float64(len(t.fullEncoded)) / float64(len(t.thumbnailEncoded))
}
