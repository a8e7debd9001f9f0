package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.DurableStore != DurableCookie {
		t.Errorf("expected default durable_store %q, got %q", DurableCookie, cfg.DurableStore)
	}
	if cfg.SanitizeBody {
		t.Error("sanitize_body should default to off")
	}
	if len(cfg.Assets) == 0 {
		t.Error("expected default asset patterns")
	}
	if w, err := cfg.Window(); err != nil || w != time.Hour {
		t.Errorf("expected a one hour window, got %v (%v)", w, err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.folio.yml")

	original := DefaultConfig()
	original.Port = 9000
	original.SiteDir = "public"
	original.DurableStore = DurableSQLite
	original.AuthWindow = "30m"
	original.Assets = []string{"css/**", "images/**"}
	original.SanitizeBody = true

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.SiteDir != original.SiteDir {
		t.Errorf("site_dir: got %q, want %q", loaded.SiteDir, original.SiteDir)
	}
	if loaded.DurableStore != original.DurableStore {
		t.Errorf("durable_store: got %q, want %q", loaded.DurableStore, original.DurableStore)
	}
	if loaded.AuthWindow != original.AuthWindow {
		t.Errorf("auth_window: got %q, want %q", loaded.AuthWindow, original.AuthWindow)
	}
	if !loaded.SanitizeBody {
		t.Error("sanitize_body: expected true")
	}
	if len(loaded.Assets) != len(original.Assets) {
		t.Fatalf("assets length: got %d, want %d", len(loaded.Assets), len(original.Assets))
	}
	for i, v := range loaded.Assets {
		if v != original.Assets[i] {
			t.Errorf("assets[%d]: got %q, want %q", i, v, original.Assets[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yml")
	if err := os.WriteFile(path, []byte("port: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for invalid YAML")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("FOLIO_PORT", "9123")
	t.Setenv("FOLIO_DURABLE_STORE", "sqlite")
	t.Setenv("FOLIO_SECURE_COOKIES", "true")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Port != 9123 {
		t.Errorf("env override failed: got port %d", loaded.Port)
	}
	if loaded.DurableStore != DurableSQLite {
		t.Errorf("env override failed: got %q", loaded.DurableStore)
	}
	if !loaded.SecureCookies {
		t.Error("env override failed for secure_cookies")
	}
}

func TestLoadExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	t.Setenv("FOLIO_SITE_DIR", "~/portfolio")
	t.Setenv("FOLIO_DB_PATH", "~/.folio/state.db")

	loaded, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if want := filepath.Join(home, "portfolio"); loaded.SiteDir != want {
		t.Errorf("site_dir = %q, want %q", loaded.SiteDir, want)
	}
	if want := filepath.Join(home, ".folio", "state.db"); loaded.DBPath != want {
		t.Errorf("db_path = %q, want %q", loaded.DBPath, want)
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Port = 0 }},
		{"port too large", func(c *Config) { c.Port = 70000 }},
		{"empty site dir", func(c *Config) { c.SiteDir = "" }},
		{"relative content url", func(c *Config) { c.ContentURL = "/site" }},
		{"ftp content url", func(c *Config) { c.ContentURL = "ftp://example.com/" }},
		{"unknown durable store", func(c *Config) { c.DurableStore = "redis" }},
		{"sqlite without db path", func(c *Config) { c.DurableStore = DurableSQLite; c.DBPath = "" }},
		{"unparsable window", func(c *Config) { c.AuthWindow = "an hour" }},
		{"negative window", func(c *Config) { c.AuthWindow = "-5m" }},
		{"bad asset pattern", func(c *Config) { c.Assets = []string{"css/[a"} }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestValidateContentURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ContentURL = "https://example.com/portfolio/"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected a valid content_url, got %v", err)
	}
}

func TestDetectSiteDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "public", "data"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "public", "data", "content.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	if got := detectSiteDir(); got != "public" {
		t.Errorf("detectSiteDir() = %q, want public", got)
	}
}
