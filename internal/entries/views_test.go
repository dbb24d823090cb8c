package entries

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(items []Entry) []string {
	out := make([]string, 0, len(items))
	for _, e := range items {
		out = append(out, e.ID)
	}
	return out
}

func TestSortedByRecency_StableTies(t *testing.T) {
	c, err := NewCollection([]Entry{
		{ID: "A", CreatedAt: 100, UpdatedAt: 100},
		{ID: "B", CreatedAt: 200, UpdatedAt: 200},
		{ID: "C", CreatedAt: 200, UpdatedAt: 200},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"B", "C", "A"}, ids(c.SortedByRecency()))
	assert.Equal(t, []string{"A", "B", "C"}, ids(c.All()), "insertion order is untouched")
}

func TestSortedByRecency_FollowsUpdates(t *testing.T) {
	var c Collection
	c = mustAdd(t, c, Input{ID: "old"}, 1)
	c = mustAdd(t, c, Input{ID: "new"}, 2)
	assert.Equal(t, []string{"new", "old"}, ids(c.SortedByRecency()))

	c, _ = c.SetTitle("old", "edited", 3)
	assert.Equal(t, []string{"old", "new"}, ids(c.SortedByRecency()))
}

func TestFavorites_FiltersNonFavorites(t *testing.T) {
	c, err := NewCollection([]Entry{
		{ID: "1", IsFavorite: true, UpdatedAt: 1678886400000},
		{ID: "2", IsFavorite: true, UpdatedAt: 1678886500000},
		{ID: "3", IsFavorite: false, UpdatedAt: 1678886600000},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"2", "1"}, ids(c.Favorites(0)))
}

func TestViews_Limit(t *testing.T) {
	var c Collection
	for i := 0; i < 12; i++ {
		c = mustAdd(t, c, Input{ID: fmt.Sprintf("e%02d", i), IsFavorite: i%2 == 0}, int64(i))
	}

	latest := c.LatestUpdated(0)
	require.Len(t, latest, DefaultViewLimit)
	assert.Equal(t, "e11", latest[0].ID)

	assert.Len(t, c.LatestUpdated(3), 3)
	assert.Len(t, c.LatestUpdated(100), 12)

	favs := c.Favorites(0)
	require.Len(t, favs, 6)
	for _, e := range favs {
		assert.True(t, e.IsFavorite)
	}
	assert.Equal(t, "e10", favs[0].ID)
	assert.Len(t, c.Favorites(2), 2)
}

func TestViews_EmptyCollection(t *testing.T) {
	var c Collection
	assert.Empty(t, c.SortedByRecency())
	assert.Empty(t, c.LatestUpdated(8))
	assert.Empty(t, c.Favorites(8))
	assert.Empty(t, c.Search("x"))
}

func TestViews_DoNotAliasCollection(t *testing.T) {
	c := mustAdd(t, Collection{}, Input{ID: "x", Title: "orig"}, 1)

	view := c.LatestUpdated(1)
	view[0].Title = "mutated"

	got, _ := c.Get("x")
	assert.Equal(t, "orig", got.Title)
}

func TestSearch(t *testing.T) {
	var c Collection
	c = mustAdd(t, c, Input{ID: "a", Title: "Groceries", Content: "milk, eggs"}, 1)
	c = mustAdd(t, c, Input{ID: "b", Title: "Trip", Content: "Buy MILK on the way"}, 2)
	c = mustAdd(t, c, Input{ID: "c", Title: "Ideas"}, 3)

	assert.Equal(t, []string{"b", "a"}, ids(c.Search("milk")))
	assert.Equal(t, []string{"c"}, ids(c.Search("  IDEAS ")))
	assert.Equal(t, []string{"c", "b", "a"}, ids(c.Search("")))
	assert.Empty(t, c.Search("nothing"))
}

func TestPalette(t *testing.T) {
	p := Palette()
	require.Len(t, p, 8)
	p[0] = "#000000"
	assert.Equal(t, "#6D28D9", Palette()[0], "Palette returns a copy")

	for i := -3; i < 20; i++ {
		assert.True(t, InPalette(FixedPicker(i).Pick()))
	}
	for i := 0; i < 50; i++ {
		assert.True(t, InPalette(RandomPicker{}.Pick()))
	}
	assert.Equal(t, "#1D4ED8", FixedPicker(9).Pick())
	assert.False(t, InPalette("#FFFFFF"))
}
