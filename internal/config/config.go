// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Server
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Behavior
	Actor   string `json:"actor,omitempty"`   // Default actor recorded on mutations
	Verbose bool   `json:"verbose,omitempty"` // Print detailed summaries

	// DemoChecks enables placeholder agent result generation when no
	// real results exist. Never enable this in production.
	DemoChecks bool `json:"demo_checks,omitempty"`

	// Limits
	MaxSeriesDays int `json:"max_series_days,omitempty"` // Cap on snapshot window loaded for momentum
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in [0, 65535]")
	}
	if c.MaxSeriesDays < 0 {
		return fmt.Errorf("config error: 'max_series_days' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Actor == "" {
		result.Actor = defaults.Actor
	}
	if result.MaxSeriesDays == 0 {
		result.MaxSeriesDays = defaults.MaxSeriesDays
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}
	if !result.DemoChecks {
		result.DemoChecks = defaults.DemoChecks
	}

	return result
}
