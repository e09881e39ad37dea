package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
jar_folder = "/opt/jdbc"
base_url = "https://example.com/jars/"
cache_ttl_hours = 12
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.JarFolder != "/opt/jdbc" {
		t.Errorf("JarFolder = %q, want /opt/jdbc", cfg.JarFolder)
	}
	if cfg.BaseURL != "https://example.com/jars/" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.CacheTTLHours != 12 {
		t.Errorf("CacheTTLHours = %d, want 12", cfg.CacheTTLHours)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if cfg != (Config{}) {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("jar_folder = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestDefaultPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join("/custom/config", "driverjars", "config.toml")
	if path != want {
		t.Errorf("DefaultPath = %q, want %q", path, want)
	}
}
