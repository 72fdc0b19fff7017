package server

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config carries everything the composition root needs to wire the
// server. Values come from DefaultConfig, optionally overridden by a
// YAML file and then by command-line flags.
type Config struct {
	DataDir      string
	SaveDelay    time.Duration
	ImportLimit  int
	ImportWindow time.Duration
	LogLevel     zerolog.Level
}

// DefaultConfig returns the built-in configuration: workspace under
// ~/.swarmboard, 250ms save debounce, 5 imports per minute, info logs.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir:      filepath.Join(home, ".swarmboard"),
		SaveDelay:    250 * time.Millisecond,
		ImportLimit:  5,
		ImportWindow: time.Minute,
		LogLevel:     zerolog.InfoLevel,
	}
}

// HistoryFile is where the interactive shell persists its readline
// history.
func (c Config) HistoryFile() string {
	return filepath.Join(c.DataDir, "shell_history")
}

// fileConfig is the YAML shape of the config file. Every field is
// optional; absent fields keep their default. Durations are Go
// duration strings ("250ms", "1m").
type fileConfig struct {
	DataDir      string `yaml:"data_dir"`
	SaveDelay    string `yaml:"save_delay"`
	ImportLimit  *int   `yaml:"import_limit"`
	ImportWindow string `yaml:"import_window"`
	LogLevel     string `yaml:"log_level"`
}

// LoadConfig merges the YAML file at path over the defaults. With an
// empty path the default location is tried, and a missing file there
// is not an error; an explicitly named file must exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(cfg.DataDir, "config.yaml")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if fc.DataDir != "" {
		cfg.DataDir = fc.DataDir
	}
	if fc.SaveDelay != "" {
		d, err := time.ParseDuration(fc.SaveDelay)
		if err != nil || d < 0 {
			return cfg, fmt.Errorf("config: save_delay %q is not a non-negative duration", fc.SaveDelay)
		}
		cfg.SaveDelay = d
	}
	if fc.ImportLimit != nil {
		// Zero disables the import limiter entirely.
		if *fc.ImportLimit < 0 {
			return cfg, fmt.Errorf("config: import_limit cannot be negative")
		}
		cfg.ImportLimit = *fc.ImportLimit
	}
	if fc.ImportWindow != "" {
		d, err := time.ParseDuration(fc.ImportWindow)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("config: import_window %q is not a positive duration", fc.ImportWindow)
		}
		cfg.ImportWindow = d
	}
	if fc.LogLevel != "" {
		lvl, err := zerolog.ParseLevel(fc.LogLevel)
		if err != nil {
			return cfg, fmt.Errorf("config: log_level %q is not a log level", fc.LogLevel)
		}
		cfg.LogLevel = lvl
	}
	return cfg, nil
}
