package state

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/five82/quill/internal/entries"
	"github.com/five82/quill/internal/images"
	"github.com/five82/quill/internal/logging"
)

// Snapshot is a point-in-time copy of both collections.
type Snapshot struct {
	Entries     []entries.Entry
	Images      []images.Image
	Version     uint64 // incremented on every applied mutation
	LastUpdated time.Time
}

// Options configure a Store. Zero fields fall back to defaults.
type Options struct {
	Clock  func() time.Time
	Picker entries.CoverPicker
	Logger logging.Logger
}

// Store owns the entry and image collections and serializes every mutation
// behind a single writer lock. The zero value is ready to use.
type Store struct {
	mu          sync.RWMutex
	entries     entries.Collection
	images      images.Collection
	version     uint64
	lastUpdated time.Time

	clock  func() time.Time
	picker entries.CoverPicker
	log    logging.Logger
}

// New returns a Store using the given collaborators.
func New(opts Options) *Store {
	return &Store{clock: opts.Clock, picker: opts.Picker, log: opts.Logger}
}

// AddEntry creates a new entry with a palette cover color.
func (s *Store) AddEntry(in entries.Input) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.entries.Add(in, s.nowMillis(), s.pick())
	if err != nil {
		s.logger().Warn(context.Background(), "add entry rejected", "id", in.ID, "error", err)
		return err
	}
	s.commitEntries(next)
	s.logger().Debug(context.Background(), "entry added", "id", in.ID)
	return nil
}

// UpdateEntry applies a full or partial update. It reports false when the
// entry does not exist.
func (s *Store) UpdateEntry(p entries.Patch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok, err := s.entries.Update(p, s.nowMillis())
	return s.finishEntry("update entry", p.ID, next, ok, err)
}

// SetEntryTitle replaces an entry's title.
func (s *Store) SetEntryTitle(id, title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.entries.SetTitle(id, title, s.nowMillis())
	ok, _ = s.finishEntry("set title", id, next, ok, nil)
	return ok
}

// SetEntryContent replaces an entry's content.
func (s *Store) SetEntryContent(id, content string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.entries.SetContent(id, content, s.nowMillis())
	ok, _ = s.finishEntry("set content", id, next, ok, nil)
	return ok
}

// ToggleFavorite flips an entry's favorite flag.
func (s *Store) ToggleFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.entries.ToggleFavorite(id, s.nowMillis())
	ok, _ = s.finishEntry("toggle favorite", id, next, ok, nil)
	return ok
}

// SetEntryCover sets an entry's cover type and value together.
func (s *Store) SetEntryCover(id string, typ entries.CoverType, value string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok, err := s.entries.SetCover(id, typ, value, s.nowMillis())
	return s.finishEntry("set cover", id, next, ok, err)
}

// CloneEntry copies the entry id under newID.
func (s *Store) CloneEntry(id, newID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok, err := s.entries.Clone(id, newID, s.nowMillis(), s.pick())
	return s.finishEntry("clone entry", id, next, ok, err)
}

// DeleteEntry removes an entry. Deleting a missing entry reports false.
func (s *Store) DeleteEntry(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.entries.Delete(id)
	ok, _ = s.finishEntry("delete entry", id, next, ok, nil)
	return ok
}

// AddImage stores an uploaded image.
func (s *Store) AddImage(id, name, dataURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.images.Add(id, name, dataURL, s.nowMillis())
	if err != nil {
		s.logger().Warn(context.Background(), "add image rejected", "id", id, "error", err)
		return err
	}
	s.images = next
	s.bump()
	s.logger().Debug(context.Background(), "image added", "id", id, "name", name)
	return nil
}

// DeleteImage removes an image. Entries that already copied its payload keep it.
func (s *Store) DeleteImage(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.images.Delete(id)
	if !ok {
		s.logger().Debug(context.Background(), "delete image: not found", "id", id)
		return false
	}
	s.images = next
	s.bump()
	return true
}

// Replace swaps both collections for the given records, typically loaded from
// an archive. Nothing changes when validation fails.
func (s *Store) Replace(es []entries.Entry, imgs []images.Image) error {
	ec, err := entries.NewCollection(es)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}
	ic, err := images.NewCollection(imgs)
	if err != nil {
		return fmt.Errorf("load images: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = ec
	s.images = ic
	s.bump()
	s.logger().Info(context.Background(), "store replaced", "entries", ec.Len(), "images", ic.Len())
	return nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Entries:     s.entries.All(),
		Images:      s.images.All(),
		Version:     s.version,
		LastUpdated: s.lastUpdated,
	}
}

// Collections returns the current immutable collections.
func (s *Store) Collections() (entries.Collection, images.Collection) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries, s.images
}

// Version returns the mutation counter.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Entry looks up a single entry.
func (s *Store) Entry(id string) (entries.Entry, bool) {
	c, _ := s.Collections()
	return c.Get(id)
}

// Image looks up a single image.
func (s *Store) Image(id string) (images.Image, bool) {
	_, c := s.Collections()
	return c.Get(id)
}

// SortedByRecency returns every entry, most recently updated first.
func (s *Store) SortedByRecency() []entries.Entry {
	c, _ := s.Collections()
	return c.SortedByRecency()
}

// LatestUpdated returns up to n recently updated entries.
func (s *Store) LatestUpdated(n int) []entries.Entry {
	c, _ := s.Collections()
	return c.LatestUpdated(n)
}

// Favorites returns up to n recently updated favorites.
func (s *Store) Favorites(n int) []entries.Entry {
	c, _ := s.Collections()
	return c.Favorites(n)
}

// finishEntry commits a collection produced by an entry command and logs the
// outcome. Callers hold the write lock.
func (s *Store) finishEntry(op, id string, next entries.Collection, ok bool, err error) (bool, error) {
	ctx := context.Background()
	switch {
	case err != nil:
		level := s.logger().Error
		if errors.Is(err, entries.ErrInvalidCover) || errors.Is(err, entries.ErrConflict) || errors.Is(err, entries.ErrInvalidInput) {
			level = s.logger().Warn
		}
		level(ctx, op+" rejected", "id", id, "error", err)
		return ok, err
	case !ok:
		s.logger().Debug(ctx, op+": not found", "id", id)
		return false, nil
	}
	s.commitEntries(next)
	return true, nil
}

func (s *Store) commitEntries(next entries.Collection) {
	s.entries = next
	s.bump()
}

func (s *Store) bump() {
	s.version++
	s.lastUpdated = s.now()
}

func (s *Store) now() time.Time {
	if s.clock != nil {
		return s.clock()
	}
	return time.Now()
}

func (s *Store) nowMillis() int64 {
	return s.now().UnixMilli()
}

func (s *Store) pick() string {
	if s.picker != nil {
		return s.picker.Pick()
	}
	return entries.RandomPicker{}.Pick()
}

func (s *Store) logger() logging.Logger {
	if s.log != nil {
		return s.log
	}
	return logging.Nop()
}
