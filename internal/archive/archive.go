// Package archive serializes store contents to and from a JSON document.
//
// The document is the only persistence boundary quill has: it is written when
// the user exports and read when a seed file is supplied. It is not an
// autosave.
package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/five82/quill/internal/entries"
	"github.com/five82/quill/internal/images"
	"github.com/five82/quill/internal/state"
)

// FormatVersion is the document version written by Encode.
const FormatVersion = 1

// ErrUnsupportedVersion is returned for documents written by an unknown format.
var ErrUnsupportedVersion = errors.New("unsupported archive version")

// Document is the on-disk layout: two flat arrays of records.
type Document struct {
	Version int             `json:"version"`
	Entries []entries.Entry `json:"entries"`
	Images  []images.Image  `json:"images"`
}

// FromSnapshot builds a document from a store snapshot.
func FromSnapshot(snap state.Snapshot) Document {
	doc := Document{Version: FormatVersion, Entries: snap.Entries, Images: snap.Images}
	if doc.Entries == nil {
		doc.Entries = []entries.Entry{}
	}
	if doc.Images == nil {
		doc.Images = []images.Image{}
	}
	return doc
}

// Encode writes snap as indented JSON.
func Encode(w io.Writer, snap state.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromSnapshot(snap)); err != nil {
		return fmt.Errorf("encode archive: %w", err)
	}
	return nil
}

// Decode reads a document and validates it the same way the store would.
func Decode(r io.Reader) (Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode archive: %w", err)
	}
	if doc.Version != FormatVersion {
		return Document{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}
	if _, err := entries.NewCollection(doc.Entries); err != nil {
		return Document{}, fmt.Errorf("archive entries: %w", err)
	}
	if _, err := images.NewCollection(doc.Images); err != nil {
		return Document{}, fmt.Errorf("archive images: %w", err)
	}
	return doc, nil
}

// Save writes the store's current contents to path atomically.
func Save(path string, store *state.Store) error {
	resolved, err := expandPath(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".quill-*.json")
	if err != nil {
		return fmt.Errorf("create temp archive: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := Encode(tmp, store.Snapshot()); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp archive: %w", err)
	}
	if err := os.Rename(tmp.Name(), resolved); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	return nil
}

// Load reads path into store, replacing its contents.
func Load(path string, store *state.Store) error {
	resolved, err := expandPath(path)
	if err != nil {
		return err
	}
	file, err := os.Open(resolved)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer func() { _ = file.Close() }()

	doc, err := Decode(file)
	if err != nil {
		return err
	}
	return store.Replace(doc.Entries, doc.Images)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
