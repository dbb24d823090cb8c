package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ViewLimit != 8 {
		t.Fatalf("ViewLimit = %d, want 8", cfg.ViewLimit)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Fatalf("LogLevel = %q, want %q", cfg.LogLevel, defaultLogLevel)
	}
	wantExport, err := expandPath(defaultExportFile)
	if err != nil {
		t.Fatalf("expandPath(defaultExportFile) returned error: %v", err)
	}
	if cfg.ExportFile != wantExport {
		t.Fatalf("ExportFile = %q, want %q", cfg.ExportFile, wantExport)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.SeedFile != "" {
		t.Fatalf("SeedFile = %q, want empty", cfg.SeedFile)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
seed_file = "  ~/notes/seed.json  "
export_file = "~/notes/out.json"
log_file = "-"
log_level = " DEBUG "
view_limit = 4
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SeedFile != filepath.Join(home, "notes/seed.json") {
		t.Fatalf("SeedFile = %q, want it under HOME", cfg.SeedFile)
	}
	if cfg.ExportFile != filepath.Join(home, "notes/out.json") {
		t.Fatalf("ExportFile = %q, want it under HOME", cfg.ExportFile)
	}
	if cfg.LogFile != "-" {
		t.Fatalf("LogFile = %q, want -", cfg.LogFile)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.ViewLimit != 4 {
		t.Fatalf("ViewLimit = %d, want 4", cfg.ViewLimit)
	}
}

func TestLoad_NonPositiveViewLimitFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	for _, body := range []string{"view_limit = -2\n", "view_limit = 0\n"} {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		_, err := Load(path)
		if err == nil {
			t.Fatalf("Load(%q) returned nil error, want rejection", body)
		}
		if !strings.Contains(err.Error(), "view_limit must be a positive integer") {
			t.Fatalf("Load(%q) error = %q, want it to mention view_limit", body, err.Error())
		}
	}
}

func TestLoad_MissingViewLimitUsesDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("log_level = \"debug\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ViewLimit != 8 {
		t.Fatalf("ViewLimit = %d, want 8", cfg.ViewLimit)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`seed_file = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_EnvFileAndEnvironmentOverride(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte("view_limit = 4\nlog_level = \"warn\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("QUILL_VIEW_LIMIT=6\nQUILL_LOG_LEVEL=error\nQUILL_SEED_FILE=~/seed.json\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load(cfgPath, envPath, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ViewLimit != 6 {
		t.Fatalf("ViewLimit = %d, want 6 from .env", cfg.ViewLimit)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug from environment", cfg.LogLevel)
	}
	if cfg.SeedFile != filepath.Join(home, "seed.json") {
		t.Fatalf("SeedFile = %q, want %q", cfg.SeedFile, filepath.Join(home, "seed.json"))
	}
}

func TestLoad_InvalidEnvViewLimitFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvViewLimit, "lots")

	if _, err := Load(filepath.Join(t.TempDir(), "none.toml")); err == nil {
		t.Fatalf("Load returned nil error, want view limit error")
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
