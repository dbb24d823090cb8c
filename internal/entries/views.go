package entries

import (
	"sort"
	"strings"
)

// DefaultViewLimit caps the latest and favorites views.
const DefaultViewLimit = 8

// SortedByRecency returns all entries ordered by UpdatedAt, newest first.
// Entries with equal timestamps keep their insertion order.
func (c Collection) SortedByRecency() []Entry {
	out := c.All()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt > out[j].UpdatedAt
	})
	return out
}

// LatestUpdated returns the n most recently updated entries. A non-positive n
// uses DefaultViewLimit.
func (c Collection) LatestUpdated(n int) []Entry {
	return head(c.SortedByRecency(), limit(n))
}

// Favorites returns the n most recently updated favorite entries.
func (c Collection) Favorites(n int) []Entry {
	sorted := c.SortedByRecency()
	out := sorted[:0]
	for _, e := range sorted {
		if e.IsFavorite {
			out = append(out, e)
		}
	}
	return head(out, limit(n))
}

// Search returns entries whose title or content contains query, ignoring
// case, in recency order. An empty query matches everything.
func (c Collection) Search(query string) []Entry {
	sorted := c.SortedByRecency()
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return sorted
	}
	out := sorted[:0]
	for _, e := range sorted {
		if strings.Contains(strings.ToLower(e.Title), q) || strings.Contains(strings.ToLower(e.Content), q) {
			out = append(out, e)
		}
	}
	return out
}

func limit(n int) int {
	if n <= 0 {
		return DefaultViewLimit
	}
	return n
}

func head(items []Entry, n int) []Entry {
	if len(items) == 0 {
		return nil
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}
