// Package app provides the orchestration layer for quill.
//
// # Overview
//
// This package wires configuration, logging, the state store, and the UI
// together. It is the composition root: every collaborator is built here and
// handed to the packages that use it.
//
// # Architecture
//
//  1. Load ~/.config/quill/config.toml, then .env, then QUILL_* variables
//  2. Open the log file (or discard output when log_file is "-")
//  3. Build the state.Store with the wall clock and a random palette picker
//  4. Replace the store's contents with the seed archive, if one is configured
//  5. Load UI preferences and run the TUI until the user quits
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> Open()
//	       │        ├─> config.Load()     TOML + dotenv + environment
//	       │        ├─> logging.OpenFile()
//	       │        ├─> state.New()
//	       │        └─> archive.Load()    optional seed
//	       ├─────> prefs.Load()
//	       └─────> ui.Run()                blocks
//
// # Error Handling
//
// Fatal errors (returned from Run or Open):
//   - Unparseable config file or invalid QUILL_VIEW_LIMIT
//   - Log file that cannot be created
//   - Seed archive that exists but fails to decode or validate
//
// A missing seed file is logged and the store starts empty. A missing or
// unreadable prefs file falls back to defaults.
//
// # Usage Example
//
//	if err := app.Run(ctx, app.Options{SeedFile: "~/notes.json"}); err != nil {
//		log.Fatalf("quill failed: %v", err)
//	}
package app
