package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ManifestPath != "openpkg.json" {
		t.Errorf("ManifestPath = %q", cfg.ManifestPath)
	}
	if cfg.Examples.Run {
		t.Error("example execution should be opt-in")
	}
	if cfg.Examples.TimeoutMs != 5000 {
		t.Errorf("TimeoutMs = %d", cfg.Examples.TimeoutMs)
	}
	if !cfg.Cache.Enabled || cfg.Cache.TtlSeconds != 3600 {
		t.Errorf("cache defaults = %+v", cfg.Cache)
	}
}

func TestLoadMissingConfigYieldsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ManifestPath != DefaultConfig().ManifestPath {
		t.Errorf("ManifestPath = %q", cfg.ManifestPath)
	}
}

func TestLoadConfigFile(t *testing.T) {
	root := t.TempDir()
	dir := ConfigDir(root)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := `{
		"manifestPath": "dist/openpkg.json",
		"examples": {"run": true, "timeoutMs": 1000},
		"cache": {"enabled": false}
	}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ManifestPath != "dist/openpkg.json" {
		t.Errorf("ManifestPath = %q", cfg.ManifestPath)
	}
	if !cfg.Examples.Run || cfg.Examples.TimeoutMs != 1000 {
		t.Errorf("examples = %+v", cfg.Examples)
	}
	if cfg.Cache.Enabled {
		t.Error("cache should be disabled")
	}
	// Unset keys keep defaults.
	if cfg.Cache.TtlSeconds != 3600 {
		t.Errorf("TtlSeconds = %d", cfg.Cache.TtlSeconds)
	}
}

func TestProjectSettingsOverride(t *testing.T) {
	root := t.TempDir()
	content := `
manifest = "api/openpkg.yaml"

[examples]
run = true
runner = "node"
timeout_ms = 2500
allowlist = "allowlist.toml"
`
	if err := os.WriteFile(filepath.Join(root, "docdrift.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ManifestPath != "api/openpkg.yaml" {
		t.Errorf("ManifestPath = %q", cfg.ManifestPath)
	}
	if !cfg.Examples.Run {
		t.Error("examples.run override lost")
	}
	if cfg.Examples.TimeoutMs != 2500 {
		t.Errorf("TimeoutMs = %d", cfg.Examples.TimeoutMs)
	}
	if cfg.Examples.AllowlistPath != "allowlist.toml" {
		t.Errorf("AllowlistPath = %q", cfg.Examples.AllowlistPath)
	}
}

func TestProjectSettingsInvalidTOML(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "docdrift.toml"), []byte("manifest = ["), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(root); err == nil {
		t.Error("want error for malformed docdrift.toml")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	root := t.TempDir()

	cfg := DefaultConfig()
	cfg.ManifestPath = "custom.json"
	cfg.Examples.TimeoutMs = 1234

	if err := Save(root, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.ManifestPath != "custom.json" {
		t.Errorf("ManifestPath = %q", loaded.ManifestPath)
	}
	if loaded.Examples.TimeoutMs != 1234 {
		t.Errorf("TimeoutMs = %d", loaded.Examples.TimeoutMs)
	}
}
