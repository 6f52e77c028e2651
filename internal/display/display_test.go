package display

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/avitase/nbfigtulz/internal/thumbnail"
)

func newThumbnail(t *testing.T, name string) *thumbnail.Thumbnail {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 6))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.Set(1, 1, color.NRGBA{255, 0, 0, 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	th, err := thumbnail.New(buf.Bytes(), name, thumbnail.DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return th
}

func TestWriter_DisplayHTML(t *testing.T) {
	var out bytes.Buffer
	th := newThumbnail(t, "fig")

	text := th.Repr(Writer{W: &out})
	if text != "fig.png" {
		t.Errorf("expected 'fig.png', got %q", text)
	}
	if out.String() != th.ToHTML(true)+"\n" {
		t.Errorf("unexpected display output %q", out.String())
	}
}

func TestFunc_DisplayHTML(t *testing.T) {
	var got string
	th := newThumbnail(t, "fig")

	th.Repr(Func(func(html string) { got = html }))
	if got != th.ToHTML(true) {
		t.Error("expected the linked HTML to be passed to the function")
	}
}

func TestGrid(t *testing.T) {
	a := newThumbnail(t, "a")
	b := newThumbnail(t, "b")
	c := newThumbnail(t, "c")

	tests := []struct {
		name     string
		images   []*thumbnail.Thumbnail
		columns  int
		width    int
		expected string
	}{
		{
			name:     "empty",
			images:   nil,
			columns:  2,
			expected: "<table ></table>",
		},
		{
			name:    "partial last row",
			images:  []*thumbnail.Thumbnail{a, b, c},
			columns: 2,
			expected: `<table ><tr style="background-color: white">` +
				`<td style="text-align:center">` + a.ToHTML(true) + `</td>` +
				`<td style="text-align:center">` + b.ToHTML(true) + `</td></tr>` +
				`<tr style="background-color: white">` +
				`<td style="text-align:center">` + c.ToHTML(true) + `</td></tr></table>`,
		},
		{
			name:    "nil entry and width",
			images:  []*thumbnail.Thumbnail{a, nil},
			columns: 3,
			width:   600,
			expected: `<table style="width: 600px"><tr style="background-color: white">` +
				`<td style="text-align:center">` + a.ToHTML(true) + `</td>` +
				`<td style="text-align:center"></td></tr></table>`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Grid(tc.images, tc.columns, tc.width)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tc.expected {
				t.Errorf("Grid() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestGrid_RowCount(t *testing.T) {
	images := make([]*thumbnail.Thumbnail, 7)
	images[0] = newThumbnail(t, "only")

	html, err := Grid(images, 3, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := strings.Count(string(html), "<tr "); n != 3 {
		t.Errorf("expected 3 rows, got %d", n)
	}
	if n := strings.Count(string(html), "<td "); n != 7 {
		t.Errorf("expected 7 cells, got %d", n)
	}
}

func TestGrid_InvalidColumns(t *testing.T) {
	for _, columns := range []int{0, -1} {
		if _, err := Grid(nil, columns, 0); !errors.Is(err, ErrInvalidColumns) {
			t.Errorf("expected ErrInvalidColumns for %d columns, got %v", columns, err)
		}
	}
}
