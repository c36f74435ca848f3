package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Schema.Path == "" {
		t.Error("Expected default schema path")
	}
	if cfg.Features.Dir == "" {
		t.Error("Expected default features dir")
	}
	if cfg.Report.Dir == "" || cfg.Report.ArchiveDir == "" {
		t.Error("Expected default report directories")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Server.Port)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
schema:
  path: custom/schema.json
features:
  dir: test/features
  base: test
server:
  port: 9090
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Schema.Path != "custom/schema.json" {
		t.Errorf("Unexpected schema path: %s", cfg.Schema.Path)
	}
	if cfg.Features.Base != "test" {
		t.Errorf("Unexpected features base: %s", cfg.Features.Base)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Unexpected port: %d", cfg.Server.Port)
	}
	// Values absent from the file keep their defaults.
	if cfg.Report.Dir != Default().Report.Dir {
		t.Errorf("Expected default report dir, got %s", cfg.Report.Dir)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("schema: [unclosed"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}
