package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsZeroConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != nil {
		t.Errorf("Seed = %v, want nil", cfg.Seed)
	}
	if cfg.PromptOrDefault() != DefaultPrompt {
		t.Errorf("PromptOrDefault() = %q, want %q", cfg.PromptOrDefault(), DefaultPrompt)
	}
}

func TestLoadParsesSeedAndPrompt(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".tibrc.yaml")
	if err := os.WriteFile(path, []byte("seed: 42\nprompt: \"> \"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed == nil || *cfg.Seed != 42 {
		t.Errorf("Seed = %v, want 42", cfg.Seed)
	}
	if cfg.PromptOrDefault() != "> " {
		t.Errorf("PromptOrDefault() = %q, want %q", cfg.PromptOrDefault(), "> ")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".tibrc.yaml")
	if err := os.WriteFile(path, []byte("seed: [unterminated\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load of malformed YAML = nil error, want one")
	}
}
