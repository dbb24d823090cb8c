package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/quill/internal/entries"
)

// Config captures quill's runtime settings.
type Config struct {
	SeedFile   string // optional archive loaded at startup
	ExportFile string // archive written by the export command
	LogFile    string // "-" disables logging
	LogLevel   string
	ViewLimit  int // size of the favorites and latest views
}

const (
	defaultConfigPath = "~/.config/quill/config.toml"
	defaultExportFile = "~/.local/share/quill/export.json"
	defaultLogFile    = "~/.local/state/quill/quill.log"
	defaultLogLevel   = "info"
)

// Environment variables that override file values.
const (
	EnvSeedFile   = "QUILL_SEED_FILE"
	EnvExportFile = "QUILL_EXPORT_FILE"
	EnvLogFile    = "QUILL_LOG_FILE"
	EnvLogLevel   = "QUILL_LOG_LEVEL"
	EnvViewLimit  = "QUILL_VIEW_LIMIT"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		ExportFile: mustExpand(defaultExportFile),
		LogFile:    mustExpand(defaultLogFile),
		LogLevel:   defaultLogLevel,
		ViewLimit:  entries.DefaultViewLimit,
	}
}

// Load reads the TOML config at path (or the default location), then applies
// overrides from the given dotenv files and finally from the process
// environment. Missing files are not errors.
func Load(path string, envFiles ...string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := readFile(resolved, &cfg); err != nil {
		return Config{}, err
	}

	env, err := readEnv(envFiles)
	if err != nil {
		return Config{}, err
	}
	if err := applyEnv(&cfg, env); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		SeedFile   string `toml:"seed_file"`
		ExportFile string `toml:"export_file"`
		LogFile    string `toml:"log_file"`
		LogLevel   string `toml:"log_level"`
		ViewLimit  *int   `toml:"view_limit"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if seed := strings.TrimSpace(raw.SeedFile); seed != "" {
		cfg.SeedFile = mustExpand(seed)
	}
	if export := strings.TrimSpace(raw.ExportFile); export != "" {
		cfg.ExportFile = mustExpand(export)
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = expandLogFile(logFile)
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}
	if raw.ViewLimit != nil {
		if *raw.ViewLimit <= 0 {
			return fmt.Errorf("view_limit must be a positive integer, got %d", *raw.ViewLimit)
		}
		cfg.ViewLimit = *raw.ViewLimit
	}
	return nil
}

// readEnv merges dotenv files (later files win) with the process environment,
// which always wins.
func readEnv(files []string) (map[string]string, error) {
	env := map[string]string{}
	for _, f := range files {
		if strings.TrimSpace(f) == "" {
			continue
		}
		values, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read env file %s: %w", f, err)
		}
		for k, v := range values {
			env[k] = v
		}
	}
	for _, key := range []string{EnvSeedFile, EnvExportFile, EnvLogFile, EnvLogLevel, EnvViewLimit} {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	return env, nil
}

func applyEnv(cfg *Config, env map[string]string) error {
	if v := strings.TrimSpace(env[EnvSeedFile]); v != "" {
		cfg.SeedFile = mustExpand(v)
	}
	if v := strings.TrimSpace(env[EnvExportFile]); v != "" {
		cfg.ExportFile = mustExpand(v)
	}
	if v := strings.TrimSpace(env[EnvLogFile]); v != "" {
		cfg.LogFile = expandLogFile(v)
	}
	if v := strings.TrimSpace(env[EnvLogLevel]); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(env[EnvViewLimit]); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer, got %q", EnvViewLimit, v)
		}
		cfg.ViewLimit = n
	}
	return nil
}

func expandLogFile(path string) string {
	if path == "-" {
		return path
	}
	return mustExpand(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
