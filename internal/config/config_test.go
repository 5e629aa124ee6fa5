package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lumia.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Store.Backend != BackendFile || cfg.Store.Path != "lumia.json" {
			t.Fatalf("unexpected defaults: %#v", cfg.Store)
		}
		if cfg.SaveDebounce() != 300*time.Millisecond {
			t.Fatalf("unexpected debounce: %v", cfg.SaveDebounce())
		}
	})

	t.Run("valid sqlite config", func(t *testing.T) {
		path := writeConfig(t, "store:\n  backend: sqlite\n  dsn: sqlite://lumia.db\nsave_debounce_ms: 50\n")
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Store.Backend != BackendSQLite || cfg.Store.DSN != "sqlite://lumia.db" {
			t.Fatalf("unexpected store config: %#v", cfg.Store)
		}
		if cfg.SaveDebounceMS != 50 {
			t.Fatalf("unexpected debounce: %d", cfg.SaveDebounceMS)
		}
		if cfg.FetchTimeoutSeconds != 30 {
			t.Fatalf("default fetch timeout lost: %d", cfg.FetchTimeoutSeconds)
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		path := writeConfig(t, "store:\n  backend: redis\n  dsn: redis://x\n")
		if _, err := Load(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("sqlite without dsn", func(t *testing.T) {
		path := writeConfig(t, "store:\n  backend: sqlite\n")
		if _, err := Load(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("negative debounce", func(t *testing.T) {
		path := writeConfig(t, "save_debounce_ms: -1\n")
		if _, err := Load(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeConfig(t, "store: [\n")
		if _, err := Load(path); err == nil {
			t.Fatalf("expected error")
		}
	})
}
