package state

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/quill/internal/entries"
	"github.com/five82/quill/internal/images"
)

// stepClock advances one millisecond per call.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Millisecond)
	return c.t
}

func newTestStore() *Store {
	clock := &stepClock{t: time.UnixMilli(1_700_000_000_000)}
	return New(Options{Clock: clock.Now, Picker: entries.FixedPicker(2)})
}

func TestStore_ZeroValueUsable(t *testing.T) {
	var s Store

	snap := s.Snapshot()
	assert.Empty(t, snap.Entries)
	assert.Zero(t, snap.Version)

	require.NoError(t, s.AddEntry(entries.Input{ID: "x"}))
	e, ok := s.Entry("x")
	require.True(t, ok)
	assert.True(t, entries.InPalette(e.CoverValue))
}

func TestStore_CreateFlow(t *testing.T) {
	s := newTestStore()

	require.NoError(t, s.AddEntry(entries.Input{ID: "x", Title: "", Content: "", IsFavorite: false}))

	snap := s.Snapshot()
	require.Len(t, snap.Entries, 1)
	e := snap.Entries[0]
	assert.Equal(t, "x", e.ID)
	assert.Equal(t, entries.CoverColor, e.CoverType)
	assert.Equal(t, "#059669", e.CoverValue)
	assert.Equal(t, e.CreatedAt, e.UpdatedAt)
	assert.Equal(t, uint64(1), snap.Version)
}

func TestStore_AddConflictRejected(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.AddEntry(entries.Input{ID: "x", Title: "first"}))
	before := s.Snapshot()

	err := s.AddEntry(entries.Input{ID: "x", Title: "second"})
	require.ErrorIs(t, err, entries.ErrConflict)

	after := s.Snapshot()
	assert.Equal(t, before, after)
}

func TestStore_PartialUpdateScenario(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.Replace([]entries.Entry{{
		ID: "x", Title: "A", IsFavorite: true,
		CoverType: entries.CoverColor, CoverValue: "#111",
		CreatedAt: 1_700_000_000_000, UpdatedAt: 1_700_000_000_000,
	}}, nil))
	before, _ := s.Entry("x")

	ok, err := s.UpdateEntry(entries.Patch{ID: "x", Title: "B", Content: "c"})
	require.NoError(t, err)
	require.True(t, ok)

	got, _ := s.Entry("x")
	assert.Equal(t, "B", got.Title)
	assert.Equal(t, "c", got.Content)
	assert.True(t, got.IsFavorite)
	assert.Equal(t, entries.CoverColor, got.CoverType)
	assert.Equal(t, "#111", got.CoverValue)
	assert.Greater(t, got.UpdatedAt, before.UpdatedAt)
}

func TestStore_UnknownIDLeavesSnapshotUnchanged(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.AddEntry(entries.Input{ID: "x", Title: "t"}))
	require.NoError(t, s.AddImage("img", "a.png", "data:image/png;base64,AAAA"))
	before := s.Snapshot()

	ok, err := s.UpdateEntry(entries.Patch{ID: "nope", Title: "z"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, s.SetEntryTitle("nope", "z"))
	assert.False(t, s.SetEntryContent("nope", "z"))
	assert.False(t, s.ToggleFavorite("nope"))
	ok, err = s.SetEntryCover("nope", entries.CoverColor, "#000")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = s.CloneEntry("nope", "copy")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, s.DeleteEntry("nope"))
	assert.False(t, s.DeleteImage("nope"))

	assert.Equal(t, before, s.Snapshot())
}

func TestStore_DeleteIdempotent(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.AddEntry(entries.Input{ID: "a"}))
	require.NoError(t, s.AddEntry(entries.Input{ID: "b"}))

	require.True(t, s.DeleteEntry("a"))
	once := s.Snapshot()
	require.False(t, s.DeleteEntry("a"))
	assert.Equal(t, once, s.Snapshot())
	assert.Len(t, once.Entries, 1)
}

func TestStore_TimestampsMonotonic(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.AddEntry(entries.Input{ID: "x"}))

	steps := []func(){
		func() { s.SetEntryTitle("x", "t") },
		func() { s.SetEntryContent("x", "c") },
		func() { s.ToggleFavorite("x") },
		func() { _, _ = s.SetEntryCover("x", entries.CoverColor, "#0F766E") },
		func() { _, _ = s.UpdateEntry(entries.Patch{ID: "x", Title: "u"}) },
	}
	for _, step := range steps {
		prev, _ := s.Entry("x")
		step()
		got, _ := s.Entry("x")
		require.Greater(t, got.UpdatedAt, prev.UpdatedAt)
		require.GreaterOrEqual(t, got.UpdatedAt, got.CreatedAt)
		require.Equal(t, prev.CreatedAt, got.CreatedAt)
	}
}

func TestStore_InvalidCoverRejected(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.AddEntry(entries.Input{ID: "x"}))
	before := s.Snapshot()

	ok, err := s.SetEntryCover("x", entries.CoverImage, "")
	require.ErrorIs(t, err, entries.ErrInvalidCover)
	assert.True(t, ok)
	assert.Equal(t, before, s.Snapshot())
}

func TestStore_Views(t *testing.T) {
	s := newTestStore()
	for _, id := range []string{"1", "2", "3"} {
		require.NoError(t, s.AddEntry(entries.Input{ID: id, IsFavorite: id != "3"}))
	}

	favs := s.Favorites(entries.DefaultViewLimit)
	require.Len(t, favs, 2)
	assert.Equal(t, "2", favs[0].ID)
	assert.Equal(t, "1", favs[1].ID)

	latest := s.LatestUpdated(2)
	require.Len(t, latest, 2)
	assert.Equal(t, "3", latest[0].ID)

	s.SetEntryTitle("1", "bumped")
	assert.Equal(t, "1", s.SortedByRecency()[0].ID)
}

func TestStore_CloneEntry(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.AddEntry(entries.Input{ID: "a", Title: "Plan", Content: "steps", IsFavorite: true}))

	ok, err := s.CloneEntry("a", "b")
	require.NoError(t, err)
	require.True(t, ok)

	got, found := s.Entry("b")
	require.True(t, found)
	assert.Equal(t, "Plan (Copy)", got.Title)
	assert.Equal(t, "steps", got.Content)
	assert.True(t, got.IsFavorite)

	_, err = s.CloneEntry("a", "b")
	require.ErrorIs(t, err, entries.ErrConflict)
}

func TestStore_ImageDeleteDoesNotCascade(t *testing.T) {
	s := newTestStore()
	const payload = "data:image/png;base64,AAAA"
	require.NoError(t, s.AddEntry(entries.Input{ID: "x"}))
	require.NoError(t, s.AddImage("img", "a.png", payload))

	img, ok := s.Image("img")
	require.True(t, ok)
	_, err := s.SetEntryCover("x", entries.CoverImage, img.DataURL)
	require.NoError(t, err)

	require.True(t, s.DeleteImage("img"))
	require.False(t, s.DeleteImage("img"))

	got, _ := s.Entry("x")
	assert.Equal(t, entries.CoverImage, got.CoverType)
	assert.Equal(t, payload, got.CoverValue)

	err = s.AddImage("dup", "b.png", payload)
	require.NoError(t, err)
	err = s.AddImage("dup", "c.png", payload)
	require.ErrorIs(t, err, images.ErrConflict)
}

func TestStore_ReplaceValidates(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.AddEntry(entries.Input{ID: "keep"}))
	before := s.Snapshot()

	err := s.Replace([]entries.Entry{{ID: "a"}, {ID: "a"}}, nil)
	require.ErrorIs(t, err, entries.ErrConflict)
	err = s.Replace(nil, []images.Image{{ID: "i", DataURL: ""}})
	require.ErrorIs(t, err, images.ErrInvalidInput)

	assert.Equal(t, before, s.Snapshot())
}

func TestStore_SnapshotIsCopy(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.AddEntry(entries.Input{ID: "x", Title: "orig"}))

	snap := s.Snapshot()
	snap.Entries[0].Title = "mutated"

	got, _ := s.Entry("x")
	assert.Equal(t, "orig", got.Title)
}

func TestStore_ConcurrentWriters(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.AddEntry(entries.Input{ID: "shared"}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.SetEntryContent("shared", "x")
				_ = s.Snapshot()
				_ = s.LatestUpdated(8)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(1+8*50), s.Version())
}
