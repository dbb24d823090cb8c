package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/five82/quill/internal/archive"
	"github.com/five82/quill/internal/config"
	"github.com/five82/quill/internal/entries"
	"github.com/five82/quill/internal/ids"
	"github.com/five82/quill/internal/logging"
	"github.com/five82/quill/internal/prefs"
	"github.com/five82/quill/internal/state"
	"github.com/five82/quill/internal/ui"
)

// DefaultEnvFile is read for QUILL_* overrides when present.
const DefaultEnvFile = ".env"

// Options configure the quill application.
type Options struct {
	ConfigPath string   // empty uses ~/.config/quill/config.toml
	PrefsPath  string   // empty uses ~/.config/quill/prefs.toml
	SeedFile   string   // overrides seed_file from config
	EnvFiles   []string // nil reads DefaultEnvFile
}

// Env is the wired set of collaborators shared by the TUI and the
// non-interactive commands.
type Env struct {
	Config config.Config
	Logger logging.Logger
	Store  *state.Store

	logCloser io.Closer
}

// Open loads configuration, opens the log file, and builds a store seeded
// from the configured archive.
func Open(opts Options) (*Env, error) {
	envFiles := opts.EnvFiles
	if envFiles == nil {
		envFiles = []string{DefaultEnvFile}
	}
	cfg, err := config.Load(opts.ConfigPath, envFiles...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.SeedFile != "" {
		cfg.SeedFile = opts.SeedFile
	}

	logger, closer, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	store := state.New(state.Options{
		Clock:  time.Now,
		Picker: entries.RandomPicker{},
		Logger: logger.With("component", "store"),
	})

	env := &Env{Config: cfg, Logger: logger, Store: store, logCloser: closer}
	if err := env.seed(); err != nil {
		_ = env.Close()
		return nil, err
	}
	return env, nil
}

// seed loads the configured archive. A missing seed file starts empty.
func (e *Env) seed() error {
	if e.Config.SeedFile == "" {
		return nil
	}
	err := archive.Load(e.Config.SeedFile, e.Store)
	switch {
	case err == nil:
		snap := e.Store.Snapshot()
		e.Logger.Info(context.Background(), "seed loaded",
			"path", e.Config.SeedFile, "entries", len(snap.Entries), "images", len(snap.Images))
		return nil
	case errors.Is(err, os.ErrNotExist):
		e.Logger.Warn(context.Background(), "seed file missing, starting empty", "path", e.Config.SeedFile)
		return nil
	default:
		return fmt.Errorf("load seed %s: %w", e.Config.SeedFile, err)
	}
}

// Close releases the log file.
func (e *Env) Close() error {
	if e.logCloser == nil {
		return nil
	}
	return e.logCloser.Close()
}

// Run boots the quill TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Open(opts)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)
	if !prefs.Exists(prefsPath) {
		// First run: write the defaults so there is a file to edit.
		if err := prefs.Save(prefsPath, userPrefs); err != nil {
			env.Logger.Warn(ctx, "write default prefs failed", "path", prefsPath, "error", err)
		}
	}

	env.Logger.Info(ctx, "starting quill", "theme", userPrefs.Theme, "view_limit", env.Config.ViewLimit)
	err = ui.Run(ui.Options{
		Context:     ctx,
		Store:       env.Store,
		Logger:      env.Logger.With("component", "ui"),
		NewID:       ids.New,
		ViewLimit:   env.Config.ViewLimit,
		ThemeName:   userPrefs.Theme,
		ShowPreview: userPrefs.ShowPreview,
		PrefsPath:   prefsPath,
		ExportPath:  env.Config.ExportFile,
	})
	if err != nil {
		env.Logger.Error(ctx, "ui exited with error", "error", err)
		return err
	}
	env.Logger.Info(ctx, "quill stopped", "version", env.Store.Version())
	return nil
}
