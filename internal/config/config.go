// Package config loads the lumia.yaml application config: where the
// settings document lives and the timing knobs around persistence and
// remote fetches.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	Store StoreConfig `yaml:"store"`

	// SaveDebounceMS coalesces rapid successive mutations into one write.
	SaveDebounceMS      int `yaml:"save_debounce_ms"`
	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds"`
	DefaultOOCInterval  int `yaml:"default_ooc_interval"`
}

type StoreConfig struct {
	Backend string `yaml:"backend"`
	// Path is the settings file for the file backend.
	Path string `yaml:"path"`
	// DSN is the connection string for the sqlite and postgres backends.
	DSN string `yaml:"dsn"`
}

func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendFile,
			Path:    "lumia.json",
		},
		SaveDebounceMS:      300,
		FetchTimeoutSeconds: 30,
	}
}

// Load reads the config file, falling back to defaults when it does not
// exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.Store.Backend {
	case BackendFile:
		if strings.TrimSpace(cfg.Store.Path) == "" {
			return fmt.Errorf("store path is required for the file backend")
		}
	case BackendSQLite, BackendPostgres:
		if strings.TrimSpace(cfg.Store.DSN) == "" {
			return fmt.Errorf("store dsn is required for the %s backend", cfg.Store.Backend)
		}
	default:
		return fmt.Errorf("unsupported store backend: %q", cfg.Store.Backend)
	}
	if cfg.SaveDebounceMS < 0 {
		return fmt.Errorf("save_debounce_ms must not be negative")
	}
	if cfg.FetchTimeoutSeconds <= 0 {
		return fmt.Errorf("fetch_timeout_seconds must be positive")
	}
	if cfg.DefaultOOCInterval < 0 {
		return fmt.Errorf("default_ooc_interval must not be negative")
	}
	return nil
}

func (c *Config) SaveDebounce() time.Duration {
	return time.Duration(c.SaveDebounceMS) * time.Millisecond
}

func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}
