// Package config loads and saves the CLI configuration file.
// Configuration lives in a TOML file under ~/.ice by default.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the on-disk CLI configuration.
type Config struct {
	Registry Registry `toml:"registry"`
}

// Registry holds the connection parameters for one ICE registry.
type Registry struct {
	// URL is the registry base URL.
	URL string `toml:"url"`

	// Email is the login email.
	Email string `toml:"email"`

	// Password is the login password. The config file is written 0600;
	// leave this empty to be prompted instead.
	Password string `toml:"password,omitempty"`

	// PartPrefix is the part-number prefix (e.g. "SBC").
	PartPrefix string `toml:"part_prefix,omitempty"`

	// TimeoutSeconds bounds each HTTP exchange. Zero means no timeout.
	TimeoutSeconds int `toml:"timeout_seconds,omitempty"`
}

// Timeout returns the configured HTTP timeout as a duration.
func (r Registry) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// DefaultPath returns the default config file location, ~/.ice/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".ice", "config.toml"), nil
}

// Load reads a config file. A missing file yields a zero Config so a
// fresh install can run `ice login` without setup.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Save writes the config file, creating its directory if needed.
// The file is written 0600: it may hold credentials.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
