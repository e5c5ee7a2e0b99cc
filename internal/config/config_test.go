package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.DataDir != "data" {
		t.Errorf("expected default data_dir %q, got %q", "data", cfg.DataDir)
	}
	if cfg.BackendURL != DefaultBackendURL {
		t.Errorf("expected default backend_url %q, got %q", DefaultBackendURL, cfg.BackendURL)
	}
	if cfg.AssetBaseURL != "" {
		t.Errorf("expected remote fragments disabled by default, got %q", cfg.AssetBaseURL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.qooa.yml")

	original := DefaultConfig()
	original.Port = 9191
	original.DataDir = "/var/lib/qooa"
	original.BackendURL = "https://backend.qooa.example"
	original.AssetBaseURL = "https://cdn.qooa.example"
	original.AllowAll = true

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.DataDir != original.DataDir {
		t.Errorf("data_dir: got %q, want %q", loaded.DataDir, original.DataDir)
	}
	if loaded.BackendURL != original.BackendURL {
		t.Errorf("backend_url: got %q, want %q", loaded.BackendURL, original.BackendURL)
	}
	if loaded.AssetBaseURL != original.AssetBaseURL {
		t.Errorf("asset_base_url: got %q, want %q", loaded.AssetBaseURL, original.AssetBaseURL)
	}
	if !loaded.AllowAll {
		t.Error("allow_all: got false, want true")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 8080 || cfg.BackendURL != DefaultBackendURL {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	os.Setenv("QOOA_PORT", "7070")
	os.Setenv("QOOA_BACKEND_URL", "https://staging.qooa.example")
	t.Cleanup(func() {
		os.Unsetenv("QOOA_PORT")
		os.Unsetenv("QOOA_BACKEND_URL")
	})

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 7070 {
		t.Errorf("port: got %d, want 7070", cfg.Port)
	}
	if cfg.BackendURL != "https://staging.qooa.example" {
		t.Errorf("backend_url: got %q", cfg.BackendURL)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"zero port", func(c *Config) { c.Port = 0 }, false},
		{"huge port", func(c *Config) { c.Port = 70000 }, false},
		{"empty data dir", func(c *Config) { c.DataDir = "" }, false},
		{"empty backend", func(c *Config) { c.BackendURL = "" }, false},
		{"backend without scheme", func(c *Config) { c.BackendURL = "backend.qooa.example" }, false},
		{"ftp asset base", func(c *Config) { c.AssetBaseURL = "ftp://cdn.qooa.example" }, false},
		{"http asset base", func(c *Config) { c.AssetBaseURL = "http://cdn.qooa.example" }, true},
	}

	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(cfg)
		err := cfg.Validate()
		if tc.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}
