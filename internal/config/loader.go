package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigDirName is the directory under $HOME holding the config file.
	ConfigDirName = ".nbfigtulz"
	// ConfigFileName is the config file name inside ConfigDirName.
	ConfigFileName = "config.yaml"
	// ConfigPathEnv overrides the config file location.
	ConfigPathEnv = "NBFIGTULZ_CONFIG"
)

// envRef matches ${NAME} references in the config file.
var envRef = regexp.MustCompile(`\$\{([^}]+)\}`)

// Loader reads and writes one config file. Keys missing from the file keep
// their DefaultConfig values.
type Loader struct {
	path string
}

// NewLoader returns a loader for $NBFIGTULZ_CONFIG, or for
// ~/.nbfigtulz/config.yaml when it is unset.
func NewLoader() (*Loader, error) {
	if path := os.Getenv(ConfigPathEnv); path != "" {
		return NewLoaderWithPath(path), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewLoaderWithPath(filepath.Join(home, ConfigDirName, ConfigFileName)), nil
}

// NewLoaderWithPath returns a loader for path.
func NewLoaderWithPath(path string) *Loader {
	return &Loader{path: path}
}

// ConfigPath returns the config file path.
func (l *Loader) ConfigPath() string {
	return l.path
}

// Load returns the configuration with ${NAME} references replaced by the
// environment. Unset variables expand to the empty string.
func (l *Loader) Load() (*Config, error) {
	return l.read(true)
}

// LoadRaw returns the configuration with ${NAME} references left as written,
// so that saving it back does not bake in environment values.
func (l *Loader) LoadRaw() (*Config, error) {
	return l.read(false)
}

func (l *Loader) read(expand bool) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if expand {
		data = envRef.ReplaceAllFunc(data, func(ref []byte) []byte {
			return []byte(os.Getenv(string(envRef.FindSubmatch(ref)[1])))
		})
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", l.path, err)
	}
	return cfg, nil
}

// Save writes cfg, creating the parent directory if needed.
func (l *Loader) Save(cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Exists reports whether the config file is present.
func (l *Loader) Exists() bool {
	_, err := os.Stat(l.path)
	return err == nil
}

// Init writes the default configuration. It fails if the file exists.
func (l *Loader) Init() error {
	if l.Exists() {
		return fmt.Errorf("config file already exists: %s", l.path)
	}
	return l.Save(DefaultConfig())
}
