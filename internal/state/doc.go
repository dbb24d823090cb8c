// Package state provides the thread-safe entry store shared by the CLI and the UI.
//
// # Overview
//
// Store owns two independent collections: entries (notes with covers and
// timestamps) and images (uploaded cover payloads). Every command replaces
// the affected collection with a new immutable value produced by package
// entries or package images, so readers never observe a half-applied change.
//
// # Architecture
//
//	UI / CLI                          Store
//	┌────────────────┐   command    ┌────────────────────────┐
//	│ key press      │─────────────→│ mu.Lock()              │
//	│                │              │ next := coll.Op(...)   │
//	│                │              │ coll = next; version++ │
//	│                │   snapshot   │ mu.Unlock()            │
//	│ render         │←─────────────│ mu.RLock() copy        │
//	└────────────────┘              └────────────────────────┘
//
// Writers are serialized by a single sync.RWMutex because every command
// reads and then replaces a whole collection. Readers share the lock and get
// copies, or the immutable collections themselves.
//
// # Command Results
//
// A command addressed to an unknown id is a no-op, but it is not silent:
//
//	ok := store.ToggleFavorite(id)       // false when id is unknown
//	ok, err := store.SetEntryCover(...)  // err for an inconsistent cover
//	err := store.AddEntry(in)            // entries.ErrConflict on a reused id
//
// Rejected commands leave the store exactly as it was.
//
// # Derived Views
//
// SortedByRecency, LatestUpdated and Favorites are recomputed from the
// current entry collection on every call. Nothing is cached.
//
// # Injected Collaborators
//
//   - Clock: source of timestamps (default time.Now)
//   - Picker: cover color for new and cloned entries (default entries.RandomPicker)
//   - Logger: structured logger (default discards)
//
// Tests pass a fixed clock and entries.FixedPicker to get deterministic
// timestamps and covers.
//
// # Testing Considerations
//
// The Store is safe to construct with zero value:
//
//	store := &state.Store{}  // Ready to use immediately
//
// Snapshot() returns an empty Snapshot with Version 0 until the first
// successful command.
package state
