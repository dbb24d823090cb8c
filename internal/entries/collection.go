package entries

import (
	"fmt"
	"strings"
)

// CloneSuffix is appended to the title of a cloned entry.
const CloneSuffix = " (Copy)"

// Collection is an immutable snapshot of entries in insertion order. Every
// mutating method returns a new Collection; the receiver is never modified.
// The zero value is an empty collection.
type Collection struct {
	items []Entry
}

// NewCollection builds a collection from existing records, rejecting duplicate
// or empty ids and inconsistent covers.
func NewCollection(items []Entry) (Collection, error) {
	seen := make(map[string]struct{}, len(items))
	out := make([]Entry, 0, len(items))
	for _, e := range items {
		if strings.TrimSpace(e.ID) == "" {
			return Collection{}, fmt.Errorf("%w: empty id", ErrInvalidInput)
		}
		if _, ok := seen[e.ID]; ok {
			return Collection{}, fmt.Errorf("%w: %s", ErrConflict, e.ID)
		}
		seen[e.ID] = struct{}{}

		typ, value, err := NormalizeCover(e.CoverType, e.CoverValue)
		if err != nil {
			return Collection{}, fmt.Errorf("entry %s: %w", e.ID, err)
		}
		e.CoverType, e.CoverValue = typ, value
		if e.UpdatedAt < e.CreatedAt {
			e.UpdatedAt = e.CreatedAt
		}
		out = append(out, e)
	}
	return Collection{items: out}, nil
}

// Len returns the number of entries.
func (c Collection) Len() int { return len(c.items) }

// All returns a copy of the entries in insertion order.
func (c Collection) All() []Entry {
	if len(c.items) == 0 {
		return nil
	}
	out := make([]Entry, len(c.items))
	copy(out, c.items)
	return out
}

// Get returns the entry with the given id.
func (c Collection) Get(id string) (Entry, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return Entry{}, false
	}
	return c.items[i], true
}

// Add appends a new entry with the given cover color. Creation and update
// timestamps are both set to now.
func (c Collection) Add(in Input, now int64, cover string) (Collection, error) {
	if strings.TrimSpace(in.ID) == "" {
		return c, fmt.Errorf("%w: empty id", ErrInvalidInput)
	}
	if c.indexOf(in.ID) >= 0 {
		return c, fmt.Errorf("%w: %s", ErrConflict, in.ID)
	}
	if err := ValidateCover(CoverColor, cover); err != nil {
		return c, err
	}

	next := make([]Entry, len(c.items), len(c.items)+1)
	copy(next, c.items)
	next = append(next, Entry{
		ID:         in.ID,
		Title:      in.Title,
		Content:    in.Content,
		IsFavorite: in.IsFavorite,
		CoverType:  CoverColor,
		CoverValue: strings.TrimSpace(cover),
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	return Collection{items: next}, nil
}

// Update applies p to the matching entry. The boolean is false when no entry
// has p.ID, in which case the collection is returned unchanged.
func (c Collection) Update(p Patch, now int64) (Collection, bool, error) {
	return c.modify(p.ID, now, func(e *Entry) error {
		typ, value := e.CoverType, e.CoverValue
		if p.CoverType != nil {
			typ = *p.CoverType
		}
		if p.CoverValue != nil {
			value = *p.CoverValue
		}
		typ, value, err := NormalizeCover(typ, value)
		if err != nil {
			return err
		}

		e.Title = p.Title
		e.Content = p.Content
		if p.IsFavorite != nil {
			e.IsFavorite = *p.IsFavorite
		}
		e.CoverType, e.CoverValue = typ, value
		if p.CreatedAt != nil {
			e.CreatedAt = *p.CreatedAt
		}
		return nil
	})
}

// SetTitle replaces the title of the entry with the given id.
func (c Collection) SetTitle(id, title string, now int64) (Collection, bool) {
	next, ok, _ := c.modify(id, now, func(e *Entry) error {
		e.Title = title
		return nil
	})
	return next, ok
}

// SetContent replaces the content of the entry with the given id.
func (c Collection) SetContent(id, content string, now int64) (Collection, bool) {
	next, ok, _ := c.modify(id, now, func(e *Entry) error {
		e.Content = content
		return nil
	})
	return next, ok
}

// ToggleFavorite flips the favorite flag of the entry with the given id.
func (c Collection) ToggleFavorite(id string, now int64) (Collection, bool) {
	next, ok, _ := c.modify(id, now, func(e *Entry) error {
		e.IsFavorite = !e.IsFavorite
		return nil
	})
	return next, ok
}

// SetCover sets both cover fields of the entry with the given id.
func (c Collection) SetCover(id string, typ CoverType, value string, now int64) (Collection, bool, error) {
	return c.modify(id, now, func(e *Entry) error {
		t, v, err := NormalizeCover(typ, value)
		if err != nil {
			return err
		}
		e.CoverType, e.CoverValue = t, v
		return nil
	})
}

// Clone adds a copy of the entry with the given id under newID. The copy gets
// a fresh cover color and timestamps.
func (c Collection) Clone(id, newID string, now int64, cover string) (Collection, bool, error) {
	src, ok := c.Get(id)
	if !ok {
		return c, false, nil
	}
	next, err := c.Add(Input{
		ID:         newID,
		Title:      src.Title + CloneSuffix,
		Content:    src.Content,
		IsFavorite: src.IsFavorite,
	}, now, cover)
	if err != nil {
		return c, true, err
	}
	return next, true, nil
}

// Delete removes the entry with the given id. Deleting a missing id is a no-op
// that reports false.
func (c Collection) Delete(id string) (Collection, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return c, false
	}
	next := make([]Entry, 0, len(c.items)-1)
	next = append(next, c.items[:i]...)
	next = append(next, c.items[i+1:]...)
	return Collection{items: next}, true
}

// modify copies the collection, applies fn to the target entry and refreshes
// its update timestamp. On error the receiver is returned untouched.
func (c Collection) modify(id string, now int64, fn func(*Entry) error) (Collection, bool, error) {
	i := c.indexOf(id)
	if i < 0 {
		return c, false, nil
	}
	updated := c.items[i]
	if err := fn(&updated); err != nil {
		return c, true, err
	}
	touch(&updated, now)

	next := make([]Entry, len(c.items))
	copy(next, c.items)
	next[i] = updated
	return Collection{items: next}, true, nil
}

func (c Collection) indexOf(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

// touch advances UpdatedAt so that it strictly increases on every mutation and
// never falls behind CreatedAt.
func touch(e *Entry, now int64) {
	ts := now
	if ts <= e.UpdatedAt {
		ts = e.UpdatedAt + 1
	}
	if ts < e.CreatedAt {
		ts = e.CreatedAt
	}
	e.UpdatedAt = ts
}
