// Package images holds uploaded cover images as encoded data URLs.
package images

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConflict is returned when an image with the same id already exists.
	ErrConflict = errors.New("image already exists")
	// ErrInvalidInput is returned for an empty id or payload.
	ErrInvalidInput = errors.New("invalid image input")
)

// Image is an uploaded cover image. UploadedAt is milliseconds since epoch.
type Image struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DataURL    string `json:"dataUrl"`
	UploadedAt int64  `json:"uploadedAt"`
}

// Collection is an immutable, insertion-ordered set of images.
type Collection struct {
	items []Image
}

// NewCollection builds a collection from existing records.
func NewCollection(items []Image) (Collection, error) {
	seen := make(map[string]struct{}, len(items))
	out := make([]Image, 0, len(items))
	for _, img := range items {
		if err := validate(img.ID, img.DataURL); err != nil {
			return Collection{}, err
		}
		if _, ok := seen[img.ID]; ok {
			return Collection{}, fmt.Errorf("%w: %s", ErrConflict, img.ID)
		}
		seen[img.ID] = struct{}{}
		out = append(out, img)
	}
	return Collection{items: out}, nil
}

// Add appends a new image uploaded at now.
func (c Collection) Add(id, name, dataURL string, now int64) (Collection, error) {
	if err := validate(id, dataURL); err != nil {
		return c, err
	}
	if c.indexOf(id) >= 0 {
		return c, fmt.Errorf("%w: %s", ErrConflict, id)
	}
	next := make([]Image, len(c.items), len(c.items)+1)
	copy(next, c.items)
	next = append(next, Image{ID: id, Name: name, DataURL: dataURL, UploadedAt: now})
	return Collection{items: next}, nil
}

// Delete removes the image with the given id, reporting whether it existed.
func (c Collection) Delete(id string) (Collection, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return c, false
	}
	next := make([]Image, 0, len(c.items)-1)
	next = append(next, c.items[:i]...)
	next = append(next, c.items[i+1:]...)
	return Collection{items: next}, true
}

// Get returns the image with the given id.
func (c Collection) Get(id string) (Image, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return Image{}, false
	}
	return c.items[i], true
}

// All returns a copy of the images in insertion order.
func (c Collection) All() []Image {
	if len(c.items) == 0 {
		return nil
	}
	out := make([]Image, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of images.
func (c Collection) Len() int { return len(c.items) }

func (c Collection) indexOf(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

func validate(id, dataURL string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidInput)
	}
	if strings.TrimSpace(dataURL) == "" {
		return fmt.Errorf("%w: empty payload", ErrInvalidInput)
	}
	return nil
}
