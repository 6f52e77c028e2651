// Package cli implements the nbfigtulz command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/avitase/nbfigtulz/internal/config"
	"github.com/avitase/nbfigtulz/internal/logging"
)

var version = "dev"

var (
	configPath string
	envFile    string
	logger     = logging.CreateLogger()
)

var rootCmd = &cobra.Command{
	Use:   "nbfigtulz",
	Short: "Figure thumbnails and HTML galleries for notebooks",
	Long: `nbfigtulz renders figures into compact JPEG thumbnails that link to the
full-resolution PNG, and lays them out as HTML for notebook display.

Environment variables:
  NBFIGTULZ_CONFIG     configuration file (default: ~/.nbfigtulz/config.yaml)
  NBFIGTULZ_LOG_LEVEL  debug, info, warn or error

Examples:
  nbfigtulz thumbnail img/loss.png
  nbfigtulz grid img/*.png --columns 3 -o figures.html
  nbfigtulz gallery img --watch`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadEnvFile(envFile)
		if err != nil {
			return err
		}
		logger = logging.New(cmd.ErrOrStderr(), logging.LevelFromEnv())
		if loaded {
			logger.Debug("loaded env file", "path", envFile)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "nbfigtulz %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "configuration file (default: ~/.nbfigtulz/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before running, ignored if missing")

	rootCmd.AddCommand(versionCmd)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Root returns the root command.
func Root() *cobra.Command {
	return rootCmd
}

// loadEnvFile loads variables from path without overriding the environment.
// A missing file is not an error.
func loadEnvFile(path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return true, nil
}

func newLoader() (*config.Loader, error) {
	if configPath != "" {
		return config.NewLoaderWithPath(configPath), nil
	}
	return config.NewLoader()
}

func loadConfig() (*config.Config, error) {
	loader, err := newLoader()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config loader: %w", err)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
