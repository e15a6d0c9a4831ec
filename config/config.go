package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config drives the shell: where the catalog is bulk-loaded from and how
// chatty the log is.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Log     LogConfig     `yaml:"log"`
}

// CatalogConfig selects the bulk-load collaborator.
type CatalogConfig struct {
	Source string `yaml:"source"` // "csv" or "sqlite"
	Path   string `yaml:"path"`
}

// LogConfig holds the logrus level name.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads the YAML config at path. A missing file yields the defaults so
// the shell can run on flags alone.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Catalog: CatalogConfig{Source: "csv", Path: "catalog.csv"},
		Log:     LogConfig{Level: "info"},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
