package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Analysis.Tg != nil || cfg.Spectrum.Modes != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[analysis]
min-points = 12
tg = 55.5
workers = 4

[kinetics]
plateau = 2.5

[spectrum]
modes = 80
alpha = 0.05

[mastercurve]
reference = 120.0

[store]
path = "/tmp/notebook.db"

[log]
level = "debug"
format = "json"
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if *cfg.Analysis.MinPoints != 12 || *cfg.Analysis.Tg != 55.5 || *cfg.Analysis.Workers != 4 {
		t.Errorf("analysis = %+v", cfg.Analysis)
	}
	if cfg.Kinetics.Plateau == nil || *cfg.Kinetics.Plateau != 2.5 {
		t.Errorf("kinetics = %+v", cfg.Kinetics)
	}
	if *cfg.Spectrum.Modes != 80 || *cfg.Spectrum.Alpha != 0.05 {
		t.Errorf("spectrum = %+v", cfg.Spectrum)
	}
	if *cfg.Mastercurve.Reference != 120 {
		t.Errorf("reference = %v", *cfg.Mastercurve.Reference)
	}
	if *cfg.Store.Path != "/tmp/notebook.db" {
		t.Errorf("store path = %q", *cfg.Store.Path)
	}
	if *cfg.Log.Level != "debug" || *cfg.Log.Format != "json" {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatal("expected error for empty path")
	}
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[analysis\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); err == nil || !strings.Contains(err.Error(), "decode") {
		t.Fatalf("err = %v, want decode error", err)
	}
	unknown := filepath.Join(dir, "unknown.toml")
	if err := os.WriteFile(unknown, []byte("[analysis]\nmin_points = 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(unknown); err == nil || !strings.Contains(err.Error(), "min_points") {
		t.Fatalf("err = %v, want unknown key error", err)
	}
}

func TestXDGPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "relax", "config.toml") {
		t.Errorf("DefaultConfigPath = %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "relax", "lab_notebook.db") {
		t.Errorf("DefaultDBPath = %q", got)
	}
}
