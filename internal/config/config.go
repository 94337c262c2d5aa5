// Package config loads dashboard configuration from a JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// DefaultComputeBaseURL is the computation service used when no base URL is
// configured. Matches the local development setup of the compute backend.
const DefaultComputeBaseURL = "http://localhost:8000"

// DefaultListenAddr is the dashboard's default HTTP listen address.
const DefaultListenAddr = ":8080"

// DefaultDBPath is the default run-history database file.
const DefaultDBPath = "placement_runs.db"

// Config represents the dashboard configuration. The schema matches the
// JSON config file; fields omitted from the file retain their defaults, so
// partial configs are safe.
type Config struct {
	// ListenAddr is the HTTP listen address for the dashboard itself.
	ListenAddr *string `json:"listen_addr,omitempty"`
	// ComputeBaseURL is the base URL of the remote k-means service.
	ComputeBaseURL *string `json:"compute_base_url,omitempty"`
	// DBPath is the sqlite file for run history.
	DBPath *string `json:"db_path,omitempty"`
}

// Empty returns a Config with all fields unset.
func Empty() *Config {
	return &Config{}
}

// GetListenAddr returns the configured listen address or the default.
func (c *Config) GetListenAddr() string {
	if c != nil && c.ListenAddr != nil && *c.ListenAddr != "" {
		return *c.ListenAddr
	}
	return DefaultListenAddr
}

// GetComputeBaseURL returns the configured compute service base URL or the
// default local development endpoint. The COMPUTE_BASE_URL environment
// variable overrides both.
func (c *Config) GetComputeBaseURL() string {
	if env := os.Getenv("COMPUTE_BASE_URL"); env != "" {
		return env
	}
	if c != nil && c.ComputeBaseURL != nil && *c.ComputeBaseURL != "" {
		return *c.ComputeBaseURL
	}
	return DefaultComputeBaseURL
}

// GetDBPath returns the configured run-history database path or the default.
func (c *Config) GetDBPath() string {
	if c != nil && c.DBPath != nil && *c.DBPath != "" {
		return *c.DBPath
	}
	return DefaultDBPath
}

// Load reads a Config from a JSON file. The file must carry a .json
// extension; fields omitted from the file keep their defaults.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that configured values are usable.
func (c *Config) Validate() error {
	if c.ComputeBaseURL != nil && *c.ComputeBaseURL != "" {
		u, err := url.Parse(*c.ComputeBaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("compute_base_url must be an absolute URL, got %q", *c.ComputeBaseURL)
		}
	}
	return nil
}
