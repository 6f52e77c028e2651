package figure

import (
	"fmt"

	"github.com/avitase/nbfigtulz/internal/config"
)

// Size selects the dimensions a figure is saved with. It is either a Preset
// or an Explicit size.
type Size interface {
	inches(cfg *config.Config) (config.Inches, error)
}

// Preset names one of the configured default sizes.
type Preset int

const (
	Small Preset = iota + 1
	Large
)

// String returns the preset name.
func (p Preset) String() string {
	switch p {
	case Small:
		return "small"
	case Large:
		return "large"
	default:
		return fmt.Sprintf("Preset(%d)", int(p))
	}
}

func (p Preset) inches(cfg *config.Config) (config.Inches, error) {
	switch p {
	case Small:
		return cfg.SizeSmall, nil
	case Large:
		return cfg.SizeLarge, nil
	default:
		return config.Inches{}, fmt.Errorf("unknown size preset: %d", int(p))
	}
}

// ParsePreset maps "small" and "large" to their presets.
func ParsePreset(s string) (Preset, error) {
	switch s {
	case "small":
		return Small, nil
	case "large":
		return Large, nil
	default:
		return 0, fmt.Errorf("unknown size preset: %q (supported: small, large)", s)
	}
}

// Explicit is a width and height in inches.
type Explicit struct {
	Width, Height float64
}

func (e Explicit) inches(*config.Config) (config.Inches, error) {
	if e.Width <= 0 || e.Height <= 0 {
		return config.Inches{}, fmt.Errorf("figure size must be positive: %gx%g", e.Width, e.Height)
	}
	return config.Inches{e.Width, e.Height}, nil
}

// Resolve returns the size in inches. A nil size resolves to Small.
func Resolve(s Size, cfg *config.Config) (config.Inches, error) {
	if s == nil {
		s = Small
	}
	return s.inches(cfg)
}
