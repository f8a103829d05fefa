package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultMasks(t *testing.T) {
	cfg := Default()
	if cfg.DefaultMask4 != 32 || cfg.DefaultMask6 != 128 {
		t.Errorf("Default() = %+v, want DefaultMask4=32 DefaultMask6=128", cfg)
	}
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("default_mask4: 24\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultMask4 != 24 {
		t.Errorf("DefaultMask4 = %d, want 24", cfg.DefaultMask4)
	}
	if cfg.DefaultMask6 != 128 {
		t.Errorf("DefaultMask6 = %d, want untouched default 128", cfg.DefaultMask6)
	}
}

func TestLoadOperatorAliases(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "operator_aliases:\n  filt: filter\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OperatorAliases["filt"] != "filter" {
		t.Errorf("OperatorAliases[\"filt\"] = %q, want %q", cfg.OperatorAliases["filt"], "filter")
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}
