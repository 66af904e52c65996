package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "polica.yaml")
	if err := os.WriteFile(path, []byte("addr: :9000\n"), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9000" {
		t.Errorf("expected addr :9000, got %q", cfg.Addr)
	}
	if cfg.Storage.Backend != BackendFile {
		t.Errorf("expected file backend default, got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.Path != "polica.json" {
		t.Errorf("expected default document path, got %q", cfg.Storage.Path)
	}
	if cfg.Auth.Username != "admin" {
		t.Errorf("expected default username 'admin', got %q", cfg.Auth.Username)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "polica.yaml")
	if err := os.WriteFile(path, []byte("storage:\n  backend: redis\n"), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "polica.yaml")

	cfg := Default()
	cfg.Storage.Backend = BackendSQLite
	cfg.Storage.Path = "inventory.sqlite3"
	cfg.Auth.JWTSecret = "secret"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Storage.Backend != BackendSQLite || got.Storage.Path != "inventory.sqlite3" {
		t.Errorf("storage config not preserved: %+v", got.Storage)
	}
	if got.Auth.JWTSecret != "secret" {
		t.Errorf("jwt secret not preserved: %q", got.Auth.JWTSecret)
	}
}

func TestPhotoDir(t *testing.T) {
	cfg := Default()
	cfg.StaticRoot = "/srv/www"

	if got := cfg.PhotoDir(); got != filepath.Join("/srv/www", "ha_inventory") {
		t.Errorf("unexpected photo dir %q", got)
	}
}
