package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the server settings
type Config struct {
	Listen      string `yaml:"listen"`
	MapFile     string `yaml:"map_file"` // path, or "map10"/"map40" for a built-in map
	MetricsPath string `yaml:"metrics_path"`

	// MaxSnapDistance limits how far a requested point may be from the
	// intersection it is snapped to. Zero disables the limit.
	MaxSnapDistance float64 `yaml:"max_snap_distance"`
}

// DefaultConfig returns the settings used when no config file is given
func DefaultConfig() Config {
	return Config{
		Listen:      ":8080",
		MapFile:     "map40",
		MetricsPath: "/metrics",
	}
}

// LoadConfig reads a YAML config file on top of the defaults.
// An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings for values the server cannot use
func (c Config) Validate() error {
	if c.Listen == "" {
		return errors.New("listen address is empty")
	}
	if c.MetricsPath == "" || c.MetricsPath[0] != '/' {
		return fmt.Errorf("metrics path %q must start with /", c.MetricsPath)
	}
	if c.MaxSnapDistance < 0 {
		return fmt.Errorf("max_snap_distance must be non-negative, got %g", c.MaxSnapDistance)
	}
	return nil
}
