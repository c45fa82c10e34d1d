package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_FromFile(t *testing.T) {
	t.Setenv("STORE_BASE_URL", "")
	t.Setenv("LISTEN_ADDR", "")

	path := filepath.Join(t.TempDir(), "config.yml")
	content := []byte(`
listen_addr: ":9090"
store_base_url: "http://store.local"
session_utc_offset_minutes: 120
error_log_retention_days: 30
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if cfg.ListenAddr != ":9090" || cfg.StoreBaseURL != "http://store.local" {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if cfg.SessionUTCOffsetMinutes == nil || *cfg.SessionUTCOffsetMinutes != 120 {
		t.Errorf("Expected pinned offset 120, got %v", cfg.SessionUTCOffsetMinutes)
	}
	if cfg.ErrorLogRetentionDays != 30 {
		t.Errorf("Expected retention 30, got %d", cfg.ErrorLogRetentionDays)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(`store_base_url: "http://file.local"`), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv("STORE_BASE_URL", "http://env.local")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if cfg.StoreBaseURL != "http://env.local" {
		t.Errorf("Expected environment to win, got %s", cfg.StoreBaseURL)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_BASE_URL", "http://store.local")
	t.Setenv("LISTEN_ADDR", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("Expected default listen address, got %s", cfg.ListenAddr)
	}
	if cfg.ErrorLogRetentionDays != 90 {
		t.Errorf("Expected default retention, got %d", cfg.ErrorLogRetentionDays)
	}
	if cfg.SessionUTCOffsetMinutes != nil {
		t.Errorf("Expected no pinned offset, got %v", cfg.SessionUTCOffsetMinutes)
	}
}

func TestLoad_MissingStoreURL(t *testing.T) {
	t.Setenv("STORE_BASE_URL", "")

	if _, err := Load(""); err == nil {
		t.Error("Expected error without a store base URL")
	}
}

func TestLoad_MissingFileIgnored(t *testing.T) {
	t.Setenv("STORE_BASE_URL", "http://store.local")

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err != nil {
		t.Errorf("Expected a missing file tolerated, got: %v", err)
	}
}
