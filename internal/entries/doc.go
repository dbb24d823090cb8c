// Package entries implements the entry collection and its derived views.
//
// # Overview
//
// An Entry is a free-form note with a title, content, a favorite flag, an
// optional cover and two millisecond timestamps. A Collection holds entries in
// insertion order and is immutable: every command returns a new Collection
// and leaves the receiver untouched, so a caller holding an older value keeps
// a consistent snapshot.
//
// # Commands
//
//	Add             append a new entry; duplicate ids fail with ErrConflict
//	Update          full or partial update keyed by id
//	SetTitle        single-field patch
//	SetContent      single-field patch
//	ToggleFavorite  flip IsFavorite
//	SetCover        set cover type and value together
//	Clone           copy an entry under a new id, title suffixed " (Copy)"
//	Delete          remove by id
//
// Commands addressed to an unknown id do nothing and report false. Every
// successful mutation advances UpdatedAt past its previous value, and
// UpdatedAt never falls behind CreatedAt.
//
// # Covers
//
// A cover is either a color token ("#RGB" or "#RRGGBB") or an image data URL
// ("data:image/..."). New entries always receive a color drawn by a
// CoverPicker; RandomPicker samples the eight-color Palette uniformly and
// FixedPicker returns a chosen index for deterministic tests. Inconsistent
// covers are rejected with ErrInvalidCover.
//
// # Views
//
// SortedByRecency, LatestUpdated, Favorites and Search are recomputed from
// the collection on every call. Sorting is stable, so entries sharing an
// UpdatedAt keep their insertion order.
package entries
