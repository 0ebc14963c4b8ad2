package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level bankfeed.yaml configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Import   ImportConfig   `yaml:"import"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig selects the backing store. An empty URL runs the CLI
// against an in-memory store.
type DatabaseConfig struct {
	URL string `yaml:"url,omitempty"`
}

// ImportConfig tunes the import pipeline.
type ImportConfig struct {
	DefaultCurrency  string `yaml:"default_currency"`
	DescriptionLimit int    `yaml:"description_limit"`
	ProfilesPath     string `yaml:"profiles_path,omitempty"` // extra profile catalog (YAML)
}

// LogConfig controls logging output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Load reads a bankfeed.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Import: ImportConfig{
			DefaultCurrency:  "EUR",
			DescriptionLimit: 255,
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
		},
	}
}
