package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Server.Addr != ":5001" {
		t.Errorf("Expected addr ':5001', got '%s'", cfg.Server.Addr)
	}

	if cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Errorf("Expected 5s shutdown timeout, got %s", cfg.Server.ShutdownTimeout)
	}

	if cfg.Seed.Enabled {
		t.Error("Expected seeding to be disabled by default")
	}

	if !cfg.Log.Requests {
		t.Error("Expected request logging to be enabled by default")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.MaxBodyBytes != 1<<20 {
		t.Errorf("Expected default body limit, got %d", cfg.Server.MaxBodyBytes)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "config.yaml")
	content := `server:
  addr: "127.0.0.1:9090"
  read_timeout: 3s
cors:
  allowed_origins: ["http://localhost:3000"]
seed:
  enabled: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:9090" {
		t.Errorf("Expected overridden addr, got '%s'", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout != 3*time.Second {
		t.Errorf("Expected 3s read timeout, got %s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 10*time.Second {
		t.Errorf("Expected default write timeout, got %s", cfg.Server.WriteTimeout)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "http://localhost:3000" {
		t.Errorf("Unexpected origins %v", cfg.CORS.AllowedOrigins)
	}
	if !cfg.Seed.Enabled {
		t.Error("Expected seeding enabled")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestLoadInvalidValues(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  max_body_bytes: 0\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "max_body_bytes") {
		t.Errorf("Expected max_body_bytes validation error, got %v", err)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TASKTRACKER_SERVER_ADDR", ":7777")
	t.Setenv("TASKTRACKER_SEED_ENABLED", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":7777" {
		t.Errorf("Expected env addr ':7777', got '%s'", cfg.Server.Addr)
	}
	if !cfg.Seed.Enabled {
		t.Error("Expected env to enable seeding")
	}
}

func TestWriteDefault(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}

	var parsed map[string]interface{}
	if err := yaml.Unmarshal(content, &parsed); err != nil {
		t.Fatalf("Default config is not valid YAML: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load of written default failed: %v", err)
	}
	want := DefaultConfig()
	if cfg.Server != want.Server {
		t.Errorf("Written defaults differ: got %+v, want %+v", cfg.Server, want.Server)
	}
}
