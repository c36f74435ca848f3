package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration. Every path the pipeline needs
// is threaded in explicitly; no component reads the working directory on its
// own.
type Config struct {
	Schema   SchemaConfig   `yaml:"schema"`
	Features FeaturesConfig `yaml:"features"`
	Report   ReportConfig   `yaml:"report"`
	Server   ServerConfig   `yaml:"server"`
}

// SchemaConfig locates the OpenAPI schema document.
type SchemaConfig struct {
	Path string `yaml:"path"`
}

// FeaturesConfig locates the feature-file tree.
type FeaturesConfig struct {
	Dir  string `yaml:"dir"`
	Base string `yaml:"base"` // Paths in reports are relative to this; empty means dir
}

// ReportConfig holds output locations.
type ReportConfig struct {
	Dir        string `yaml:"dir"`
	ArchiveDir string `yaml:"archiveDir"`
}

// ServerConfig holds report-server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Schema: SchemaConfig{
			Path: "resources/openapi_schema.json",
		},
		Features: FeaturesConfig{
			Dir: "features",
		},
		Report: ReportConfig{
			Dir:        "reports",
			ArchiveDir: "reports/api_archive",
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
	}
}

// Load reads configuration from a YAML file, overlaying the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}
