package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configFile is the file name used in the user config directory.
const configFile = "config.yaml"

// defaultTarget selects DefaultPath for -write-config.
const defaultTarget = "default"

// DefaultPath returns the config file in the user's config directory.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), configFile)
}

// Save writes the config to DefaultPath.
func (c *Config) Save() error {
	return c.SaveTo(DefaultPath())
}

// SaveTo writes the config as YAML to path, creating parent directories.
// An invalid config is never written so the file always loads back.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// WriteRequested persists the effective config when -write-config was given.
// It returns the path written, or "" when no write was requested.
func (c *Config) WriteRequested() (string, error) {
	path := *flagWriteConfig
	switch path {
	case "":
		return "", nil
	case defaultTarget:
		path = DefaultPath()
	}
	if err := c.SaveTo(path); err != nil {
		return "", err
	}
	return path, nil
}
