// Package figure saves gonum plots to the configured image directory and
// returns thumbnails of them for notebook display.
package figure

import (
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
)

// Backend selects which files Save writes next to the PNG.
type Backend string

const (
	// BackendPNG writes only the PNG render.
	BackendPNG Backend = "png"
	// BackendTeX additionally writes a pgf picture for inclusion in LaTeX documents.
	BackendTeX Backend = "tex"
)

var (
	backendMu sync.Mutex
	backend   = BackendPNG
)

// ActiveBackend returns the process-wide backend.
func ActiveBackend() Backend {
	backendMu.Lock()
	defer backendMu.Unlock()
	return backend
}

// UseBackend sets the process-wide backend and returns the previous one.
func UseBackend(b Backend) Backend {
	backendMu.Lock()
	defer backendMu.Unlock()
	old := backend
	backend = b
	return old
}

// Params are the plot defaults a Context overrides. Only plots created while
// the context is active pick them up.
type Params struct {
	TextHandler text.Handler
	Font        font.Font
}

func currentParams() Params {
	return Params{
		TextHandler: plot.DefaultTextHandler,
		Font:        plot.DefaultFont,
	}
}

func (p Params) apply() {
	plot.DefaultTextHandler = p.TextHandler
	plot.DefaultFont = p.Font
}

// Option customizes a Context.
type Option func(*Context)

// WithTextHandler overrides the text handler.
func WithTextHandler(h text.Handler) Option {
	return func(c *Context) {
		c.Params.TextHandler = h
	}
}

// WithFont overrides the default font.
func WithFont(f font.Font) Option {
	return func(c *Context) {
		c.Params.Font = f
	}
}

// Context temporarily replaces the process-wide backend and plot defaults.
type Context struct {
	Backend Backend
	Params  Params
}

// NewContext returns a context for the given backend, BackendTeX if empty,
// with LaTeX text rendering and a serif font.
func NewContext(b Backend, opts ...Option) *Context {
	if b == "" {
		b = BackendTeX
	}
	c := &Context{
		Backend: b,
		Params: Params{
			TextHandler: text.Latex{Fonts: font.DefaultCache},
			Font:        font.Font{Typeface: "Liberation", Variant: "Serif"},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enter activates the context and returns a function restoring the previous
// settings. The restore function may be called more than once.
func (c *Context) Enter() (restore func()) {
	oldParams := currentParams()
	oldBackend := UseBackend(c.Backend)
	c.Params.apply()

	var once sync.Once
	return func() {
		once.Do(func() {
			UseBackend(oldBackend)
			oldParams.apply()
		})
	}
}

// Run calls fn with the context active. The previous settings are restored
// however fn returns, including by panic.
func (c *Context) Run(fn func() error) error {
	restore := c.Enter()
	defer restore()
	return fn()
}

// With runs fn inside a default context.
func With(fn func() error) error {
	return NewContext("").Run(fn)
}

// Wrap returns fn bound to a default context.
func Wrap(fn func() error) func() error {
	return func() error {
		return With(fn)
	}
}
