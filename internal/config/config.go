// Package config loads the server configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// photoDirName is the subdirectory of the static root photos are
// written to, matching the /local/ha_inventory public prefix.
const photoDirName = "ha_inventory"

// Config is the server configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`

	// StaticRoot is the host's public static-asset root. Files below it
	// are served under /local/.
	StaticRoot string `yaml:"static_root"`

	// Thumbnails toggles thumbnail generation for ingested photos.
	Thumbnails bool `yaml:"thumbnails"`

	Storage StorageConfig `yaml:"storage"`
	Auth    AuthConfig    `yaml:"auth"`
}

// StorageConfig selects and locates the document store backend.
type StorageConfig struct {
	// Backend is "file" or "sqlite".
	Backend string `yaml:"backend"`

	// Path is the document file path ("file") or the database file
	// path ("sqlite").
	Path string `yaml:"path"`
}

// AuthConfig holds the admin credentials for the HTTP API.
type AuthConfig struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
	JWTSecret    string `yaml:"jwt_secret"`
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config to a file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the configuration for a new installation.
func Default() *Config {
	cfg := &Config{Thumbnails: true}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values.
func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = ":8089"
	}
	if c.StaticRoot == "" {
		c.StaticRoot = "www"
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendFile
	}
	if c.Storage.Path == "" {
		switch c.Storage.Backend {
		case BackendSQLite:
			c.Storage.Path = "polica.sqlite3"
		default:
			c.Storage.Path = "polica.json"
		}
	}
	if c.Auth.Username == "" {
		c.Auth.Username = "admin"
	}
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}

// PhotoDir returns the directory photos are stored in, under the
// public static root.
func (c *Config) PhotoDir() string {
	return filepath.Join(c.StaticRoot, photoDirName)
}
