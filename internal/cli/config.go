package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/avitase/nbfigtulz/internal/config"
	"github.com/avitase/nbfigtulz/internal/logging"
	"github.com/avitase/nbfigtulz/internal/thumbnail"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage settings",
	Long: `Manages the nbfigtulz settings.

Config file: ~/.nbfigtulz/config.yaml (override with NBFIGTULZ_CONFIG or --config)

Subcommands:
  show    print the effective settings
  init    write a default config file
  set     change a setting
  path    print the config file path`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Long: `Prints the settings in effect. Defaults are shown for keys the config
file does not set, or for every key if there is no config file.`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Writes the default settings to the config file.

Fails if the file already exists unless --force is given.`,
	RunE: runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Changes a setting and saves the config file.

Keys:
  img_dir               directory saved figures are written to
  size_small            small figure size in inches, "w,h"
  size_large            large figure size in inches, "w,h"
  dpi                   PNG resolution
  thumbnail_scale       thumbnail scale factor, greater than 0
  thumbnail_quality     JPEG quality, clamped to 1-95
  thumbnail_background  background for transparent pixels, #rrggbb or r,g,b
  print_compression     print the compression rate of each thumbnail

Examples:
  nbfigtulz config set dpi 150
  nbfigtulz config set size_small 5,3.5
  nbfigtulz config set thumbnail_background "#000000"`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := newLoader()
		if err != nil {
			return fmt.Errorf("failed to initialize config loader: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), loader.ConfigPath())
		return nil
	},
}

var configForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("failed to initialize config loader: %w", err)
	}

	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	out := cmd.OutOrStdout()
	if loader.Exists() {
		fmt.Fprintf(out, "Config file: %s\n\n", loader.ConfigPath())
	} else {
		fmt.Fprintf(out, "Config file: (defaults)\n\n")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to format config: %w", err)
	}
	fmt.Fprintln(out, string(data))

	fmt.Fprintln(out, "Environment:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	envVars := []struct {
		key  string
		desc string
	}{
		{config.ConfigPathEnv, "config file"},
		{logging.LevelEnv, "log level"},
	}
	for _, ev := range envVars {
		value := os.Getenv(ev.key)
		if value == "" {
			value = "(unset)"
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", ev.key, ev.desc, value)
	}
	return w.Flush()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("failed to initialize config loader: %w", err)
	}

	if configForce {
		err = loader.Save(config.DefaultConfig())
	} else {
		err = loader.Init()
	}
	if err != nil {
		return fmt.Errorf("failed to write config file: %w (use --force to overwrite)", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config file written: %s\n", loader.ConfigPath())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("failed to initialize config loader: %w", err)
	}

	cfg, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := setConfigValue(cfg, key, value); err != nil {
		return err
	}

	if err := loader.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}

func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "img_dir":
		if value == "" {
			return fmt.Errorf("img_dir must not be empty")
		}
		cfg.ImageDir = value

	case "size_small", "size_large":
		size, err := parseInches(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		if key == "size_small" {
			cfg.SizeSmall = size
		} else {
			cfg.SizeLarge = size
		}

	case "dpi":
		dpi, err := strconv.Atoi(value)
		if err != nil || dpi <= 0 {
			return fmt.Errorf("invalid dpi: %s", value)
		}
		cfg.DPI = dpi

	case "thumbnail_scale":
		scale, err := strconv.ParseFloat(value, 64)
		if err != nil || scale <= 0 {
			return fmt.Errorf("invalid thumbnail_scale: %s", value)
		}
		cfg.ThumbnailScale = scale

	case "thumbnail_quality":
		q, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid thumbnail_quality: %s", value)
		}
		cfg.ThumbnailQuality = thumbnail.ClampQuality(q)

	case "thumbnail_background":
		bg, err := thumbnail.ParseRGB(value)
		if err != nil {
			return err
		}
		cfg.ThumbnailBackground = [3]uint8{bg.R, bg.G, bg.B}

	case "print_compression":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid print_compression: %s", value)
		}
		cfg.PrintCompression = b

	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// parseInches parses "w,h" into a positive size.
func parseInches(s string) (config.Inches, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return config.Inches{}, fmt.Errorf("expected w,h: %q", s)
	}

	var size config.Inches
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return config.Inches{}, fmt.Errorf("expected w,h: %q", s)
		}
		if v <= 0 {
			return config.Inches{}, fmt.Errorf("size must be positive: %q", s)
		}
		size[i] = v
	}
	return size, nil
}
