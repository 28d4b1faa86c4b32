package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Crack.Lang != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigParsesValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[crack]
lang = "en"
max-key-length = 12
candidates = 5
preview = 0
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Crack.Lang == nil || *cfg.Crack.Lang != "en" {
		t.Fatalf("unexpected lang: %+v", cfg.Crack.Lang)
	}
	if cfg.Crack.MaxKeyLength == nil || *cfg.Crack.MaxKeyLength != 12 {
		t.Fatalf("unexpected max-key-length: %+v", cfg.Crack.MaxKeyLength)
	}
	if cfg.Crack.Candidates == nil || *cfg.Crack.Candidates != 5 {
		t.Fatalf("unexpected candidates: %+v", cfg.Crack.Candidates)
	}
	if cfg.Crack.Preview == nil || *cfg.Crack.Preview != 0 {
		t.Fatalf("unexpected preview: %+v", cfg.Crack.Preview)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
