// Package display connects thumbnails to a notebook display surface and
// lays several of them out as an HTML table.
package display

import (
	"fmt"
	"io"

	"github.com/avitase/nbfigtulz/internal/thumbnail"
)

// HTML is a fragment of markup ready to be shown by a notebook front-end.
type HTML string

// Writer displays HTML by writing each fragment, newline terminated, to W.
type Writer struct {
	W io.Writer
}

var _ thumbnail.Displayer = Writer{}

// DisplayHTML implements thumbnail.Displayer.
func (d Writer) DisplayHTML(html string) {
	fmt.Fprintln(d.W, html)
}

// Func adapts a function to thumbnail.Displayer.
type Func func(html string)

// DisplayHTML implements thumbnail.Displayer.
func (f Func) DisplayHTML(html string) {
	f(html)
}
