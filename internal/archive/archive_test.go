package archive

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/quill/internal/entries"
	"github.com/five82/quill/internal/state"
)

func seededStore(t *testing.T) *state.Store {
	t.Helper()
	s := state.New(state.Options{
		Clock:  func() time.Time { return time.UnixMilli(1_700_000_000_000) },
		Picker: entries.FixedPicker(0),
	})
	require.NoError(t, s.AddEntry(entries.Input{ID: "a", Title: "First", Content: "body", IsFavorite: true}))
	require.NoError(t, s.AddEntry(entries.Input{ID: "b", Title: "Second"}))
	require.NoError(t, s.AddImage("img", "cover.png", "data:image/png;base64,AAAA"))
	_, err := s.SetEntryCover("b", entries.CoverImage, "data:image/png;base64,AAAA")
	require.NoError(t, err)
	return s
}

func TestSaveLoad_RestoresStore(t *testing.T) {
	src := seededStore(t)
	path := filepath.Join(t.TempDir(), "sub", "quill.json")

	require.NoError(t, Save(path, src))

	dst := &state.Store{}
	require.NoError(t, Load(path, dst))

	want := src.Snapshot()
	got := dst.Snapshot()
	assert.Equal(t, want.Entries, got.Entries)
	assert.Equal(t, want.Images, got.Images)
}

func TestEncode_UsesRecordFieldNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, seededStore(t).Snapshot()))

	out := buf.String()
	for _, key := range []string{`"version": 1`, `"isFavorite"`, `"coverType"`, `"coverValue"`, `"createdAt"`, `"updatedAt"`, `"dataUrl"`, `"uploadedAt"`} {
		assert.Contains(t, out, key)
	}
}

func TestEncode_EmptyStoreWritesArrays(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, state.Snapshot{}))
	assert.Contains(t, buf.String(), `"entries": []`)
	assert.Contains(t, buf.String(), `"images": []`)
}

func TestDecode_Rejects(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"bad json", `{`},
		{"unknown version", `{"version": 9, "entries": [], "images": []}`},
		{"duplicate entry", `{"version": 1, "entries": [{"id":"a"},{"id":"a"}], "images": []}`},
		{"bad cover", `{"version": 1, "entries": [{"id":"a","coverType":"color"}], "images": []}`},
		{"duplicate image", `{"version": 1, "entries": [], "images": [{"id":"i","dataUrl":"x"},{"id":"i","dataUrl":"y"}]}`},
		{"unknown field", `{"version": 1, "entries": [], "images": [], "extra": true}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.doc))
			require.Error(t, err)
		})
	}

	_, err := Decode(strings.NewReader(`{"version": 2}`))
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestLoad_InvalidFileLeavesStoreUntouched(t *testing.T) {
	s := seededStore(t)
	before := s.Snapshot()

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 1, "entries": [{"id":""}]}`), 0o644))

	require.Error(t, Load(path, s))
	require.Error(t, Load(filepath.Join(t.TempDir(), "missing.json"), s))
	assert.Equal(t, before, s.Snapshot())
}
