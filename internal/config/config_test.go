package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Theme != "mocha" {
		t.Errorf("Theme = %q, want default %q", cfg.Theme, "mocha")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want default %q", cfg.LogLevel, "info")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `log_level: debug
theme: latte
setup_script: hack/bootstrap.sh
setup_timeout_seconds: 120
base_branch: main
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.Theme != "latte" {
		t.Errorf("Theme = %q, want %q", cfg.Theme, "latte")
	}
	if cfg.SetupScript != "hack/bootstrap.sh" {
		t.Errorf("SetupScript = %q, want %q", cfg.SetupScript, "hack/bootstrap.sh")
	}
	if cfg.SetupTimeout() != 120*time.Second {
		t.Errorf("SetupTimeout() = %v, want 120s", cfg.SetupTimeout())
	}
	// Unset field falls back to the default
	if cfg.TestTimeout() != 900*time.Second {
		t.Errorf("TestTimeout() = %v, want default 900s", cfg.TestTimeout())
	}
	if cfg.BaseBranch != "main" {
		t.Errorf("BaseBranch = %q, want %q", cfg.BaseBranch, "main")
	}
}

func TestLoadFromInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("theme: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
	// Falls back to defaults so the caller can still run
	if cfg.Theme != "mocha" {
		t.Errorf("Theme = %q, want default %q", cfg.Theme, "mocha")
	}
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("theme: frappe\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("LoadFromDir() error = %v", err)
	}
	if cfg.Theme != "frappe" {
		t.Errorf("Theme = %q, want %q", cfg.Theme, "frappe")
	}
}

func TestValidateRejectsAbsoluteSetupScript(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}

	cfg.SetupScript = "/usr/local/bin/setup"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for absolute setup_script")
	}
}
