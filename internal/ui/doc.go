// Package ui provides the terminal user interface for quill.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea program. Model holds every piece of view
// state and a read-only copy of the store's collections; each key press is
// translated into a state.Store command, after which the model re-reads the
// collections. The store stays the only owner of entry and image data.
//
// # Views
//
//   - Home: latest updated entries and favorites, side by side
//   - All entries: every entry, most recent first, with "/" search
//   - Editor: title input and content textarea, saved on every keystroke
//   - Cover: "none", the eight palette colors, and every stored image
//   - Images: uploaded images with size and upload time
//
// A help overlay (?) lists every binding from the keyMap.
//
// # Event Flow
//
//  1. Run() builds the Model and starts the program on the alternate screen
//  2. A tick re-reads the store so relative timestamps stay current
//  3. Keys either move cursors locally or dispatch a store command
//  4. Context cancellation ends the program cleanly
//
// # External Dependencies
//
//   - state.Store: entry and image commands and snapshots
//   - archive: export of the current state (X)
//   - images: reading cover uploads from disk
//   - prefs: theme and preview toggles survive restarts
//   - atotto/clipboard: copying entry content (y)
//
// # Usage Example
//
//	err := ui.Run(ui.Options{
//		Context:    ctx,
//		Store:      store,
//		Logger:     logger,
//		ViewLimit:  cfg.ViewLimit,
//		ThemeName:  userPrefs.Theme,
//		ExportPath: cfg.ExportFile,
//	})
package ui
