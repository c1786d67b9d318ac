// Package config loads girder configuration from an optional YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked for when none is given explicitly.
const DefaultPath = ".girder.yaml"

// Config holds the girder configuration options.
type Config struct {
	// Workers is the size of the worker pool used for recursive glob
	// descent.
	Workers int `yaml:"workers"`

	// CaseSensitive selects exact or case-folded pattern matching. It is
	// explicit configuration rather than a platform default so that both
	// modes are testable everywhere.
	CaseSensitive bool `yaml:"case_sensitive"`

	// LogLevel sets console verbosity (trace, debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// DepsDB is the path of the SQLite dependency database. Empty
	// disables local dependency recording.
	DepsDB string `yaml:"deps_db"`
}

// Default returns the configuration used when nothing is specified.
func Default() *Config {
	return &Config{
		Workers:       8,
		CaseSensitive: true,
		LogLevel:      "info",
		DepsDB:        "",
	}
}

// Load reads configuration from path, merging over defaults and applying
// GIRDER_* environment overrides last. A missing file is not an error; a
// malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnv()

	if cfg.Workers < 1 {
		return nil, fmt.Errorf("config %s: workers must be at least 1, got %d", path, cfg.Workers)
	}

	return cfg, nil
}

// applyEnv overrides fields from GIRDER_* environment variables. Unparseable
// values are ignored in favor of the file or default value.
func (c *Config) applyEnv() {
	if v := os.Getenv("GIRDER_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Workers = n
		}
	}
	if v := os.Getenv("GIRDER_CASE_SENSITIVE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.CaseSensitive = b
		}
	}
	if v := os.Getenv("GIRDER_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("GIRDER_DEPS_DB"); v != "" {
		c.DepsDB = v
	}
}
