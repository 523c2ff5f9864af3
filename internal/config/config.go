// Package config reads and writes the brewtrack configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the flat brewtrack configuration
type Config struct {
	Version     string `json:"version"`
	BreweryName string `json:"brewery_name,omitempty"` // shown in status output
	DataDir     string `json:"data_dir,omitempty"`     // overrides ~/.brewtrack
}

// Dir returns the brewtrack data directory, honoring DataDir when set.
func (c *Config) Dir() (string, error) {
	if c != nil && c.DataDir != "" {
		return c.DataDir, nil
	}
	return defaultDir()
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".brewtrack"), nil
}

// LoadConfig reads ~/.brewtrack/config.json.
// Returns an error when no config exists - callers decide whether that
// matters.
func LoadConfig() (*Config, error) {
	dir, err := defaultDir()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes config.json to the brewtrack data directory.
func SaveConfig(cfg *Config) error {
	dir, err := defaultDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create .brewtrack dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
