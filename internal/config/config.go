// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or come from
// CLI flags and environment variables, which always win.
type Config struct {
	APIURL    string `json:"api_url,omitempty"`    // Base URL of the TalentLens API
	TokenFile string `json:"token_file,omitempty"` // Path to the session token file
	TimeoutMS int    `json:"timeout_ms,omitempty"` // HTTP request timeout in milliseconds
	Verbose   bool   `json:"verbose,omitempty"`    // Print detailed request logging
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
	if c.APIURL != "" {
		parsed, err := url.Parse(c.APIURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config error: 'api_url' is not a valid URL: %s", c.APIURL)
		}
	}
	if c.TimeoutMS < 0 {
		return fmt.Errorf("config error: 'timeout_ms' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Flag values are applied on top by the command layer.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIURL == "" {
		result.APIURL = defaults.APIURL
	}
	if result.TokenFile == "" {
		result.TokenFile = defaults.TokenFile
	}
	if result.TimeoutMS == 0 {
		result.TimeoutMS = defaults.TimeoutMS
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
