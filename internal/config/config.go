// Package config manages the process-wide figure configuration.
package config

import (
	"fmt"

	"github.com/avitase/nbfigtulz/internal/thumbnail"
)

// Config holds the settings used when figures are saved.
type Config struct {
	// ImageDir receives saved figures. It is not created and must exist.
	ImageDir  string `yaml:"img_dir"`
	SizeSmall Inches `yaml:"size_small"`
	SizeLarge Inches `yaml:"size_large"`
	DPI       int    `yaml:"dpi"`

	ThumbnailScale      float64  `yaml:"thumbnail_scale"`
	ThumbnailQuality    int      `yaml:"thumbnail_quality"` // 1 (worst) to 95 (best)
	ThumbnailBackground [3]uint8 `yaml:"thumbnail_background"`
	PrintCompression    bool     `yaml:"print_compression"`
}

// Inches is a width and height in inches.
type Inches [2]float64

// Width returns the first component.
func (s Inches) Width() float64 { return s[0] }

// Height returns the second component.
func (s Inches) Height() float64 { return s[1] }

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ImageDir:            "img",
		SizeSmall:           Inches{4.0, 3.0},
		SizeLarge:           Inches{8.0, 6.0},
		DPI:                 300,
		ThumbnailScale:      0.5,
		ThumbnailQuality:    42,
		ThumbnailBackground: [3]uint8{255, 255, 255},
	}
}

// Validate checks the values a figure save depends on.
func (c *Config) Validate() error {
	if c.ImageDir == "" {
		return fmt.Errorf("img_dir must not be empty")
	}
	if c.DPI <= 0 {
		return fmt.Errorf("dpi must be positive: %d", c.DPI)
	}
	for name, s := range map[string]Inches{"size_small": c.SizeSmall, "size_large": c.SizeLarge} {
		if s.Width() <= 0 || s.Height() <= 0 {
			return fmt.Errorf("%s must be positive: %v", name, s)
		}
	}
	return nil
}

// Background returns the thumbnail background as a color.
func (c *Config) Background() thumbnail.RGB {
	bg := c.ThumbnailBackground
	return thumbnail.RGB{R: bg[0], G: bg[1], B: bg[2]}
}

// ThumbnailOptions returns thumbnail options derived from the configuration.
func (c *Config) ThumbnailOptions() thumbnail.Options {
	return thumbnail.Options{
		Scale:             c.ThumbnailScale,
		Quality:           c.ThumbnailQuality,
		Background:        c.Background(),
		ReportCompression: c.PrintCompression,
	}
}
