package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_explicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 7070\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, loaded, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if loaded != path {
		t.Errorf("loaded = %q", loaded)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
}

func TestLoadConfig_explicitPathMissing(t *testing.T) {
	if _, _, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("want error for missing explicit config")
	}
}

func TestLoadConfig_defaultsWhenNothingFound(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, loaded, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if loaded != "" {
		t.Errorf("loaded = %q, want empty for built-in defaults", loaded)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
}

func TestLoadConfig_cwdFallback(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	local := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(local, []byte("debug: true\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, loaded, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if loaded != local {
		t.Errorf("loaded = %q, want %q", loaded, local)
	}
	if !cfg.Debug {
		t.Error("debug not read from local config")
	}
}
