// Package config provides configuration file support for sealog.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sealog-project/sealog/pkg/fsutil"
	"github.com/sealog-project/sealog/pkg/model"
)

// Config represents the sealog configuration.
type Config struct {
	Store   model.StoreType        `yaml:"store"`
	Sources []model.DocumentSource `yaml:"sources"`
	Logging LoggingConfig          `yaml:"logging"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json, text
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Store: model.StoreFile,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from .sealog/config.yaml.
// Returns default config if the file doesn't exist.
func Load(root string) (*Config, error) {
	cfg := Default()
	cfgPath := filepath.Join(root, ".sealog", "config.yaml")

	data, err := os.ReadFile(cfgPath)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes configuration to .sealog/config.yaml atomically.
func Save(root string, cfg *Config) error {
	cfgPath := filepath.Join(root, ".sealog", "config.yaml")

	if err := os.MkdirAll(filepath.Dir(cfgPath), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return fsutil.AtomicWrite(cfgPath, data, 0644)
}

// ResolveSources returns the configured document set with relative paths
// resolved against root. Source order is preserved exactly as configured;
// it is part of the seal contract.
func (c *Config) ResolveSources(root string) []model.DocumentSource {
	resolved := make([]model.DocumentSource, len(c.Sources))
	for i, src := range c.Sources {
		path := src.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		resolved[i] = model.DocumentSource{Path: path, Dir: src.Dir}
	}
	return resolved
}
