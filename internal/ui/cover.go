package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/quill/internal/entries"
	"github.com/five82/quill/internal/images"
)

// coverOption is one row of the cover picker.
type coverOption struct {
	label string
	typ   entries.CoverType
	value string
	color string // swatch color, empty for none and images
}

// coverOptions lists "none", the palette, then every stored image.
func (m Model) coverOptions() []coverOption {
	palette := entries.Palette()
	all := m.images.All()
	out := make([]coverOption, 0, 1+len(palette)+len(all))
	out = append(out, coverOption{label: "No cover", typ: entries.CoverNone})
	for _, c := range palette {
		out = append(out, coverOption{label: c, typ: entries.CoverColor, value: c, color: c})
	}
	for _, img := range all {
		out = append(out, coverOption{label: "Image: " + img.Name, typ: entries.CoverImage, value: img.DataURL})
	}
	return out
}

// openCoverPicker shows the picker for the given entry, starting on its
// current cover when it is listed.
func (m *Model) openCoverPicker(id string) {
	entry, ok := m.entries.Get(id)
	if !ok {
		return
	}
	if m.currentView != ViewCover {
		m.returnView = m.currentView
	}
	m.editingID = id
	m.currentView = ViewCover
	m.coverRow = 0
	for i, opt := range m.coverOptions() {
		if opt.typ == entry.CoverType && opt.value == entry.CoverValue {
			m.coverRow = i
			break
		}
	}
	m.clearStatus()
}

// handleCoverKey processes keyboard input for the cover picker.
func (m Model) handleCoverKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	opts := m.coverOptions()
	switch {
	case key.Matches(msg, m.keys.Up, m.keys.Down, m.keys.Top, m.keys.Bottom):
		m.moveSelection(msg, len(opts))
		return m, nil

	case key.Matches(msg, m.keys.Upload):
		m.uploading = true
		m.uploadInput.Reset()
		return m, m.uploadInput.Focus()

	case key.Matches(msg, m.keys.Open):
		if m.coverRow < 0 || m.coverRow >= len(opts) {
			return m, nil
		}
		m.applyCover(opts[m.coverRow].typ, opts[m.coverRow].value)
		m.currentView = m.returnView
		m.editingID = ""
	}
	return m, nil
}

// applyCover sets the picked cover on the entry being edited.
func (m *Model) applyCover(typ entries.CoverType, value string) {
	ok, err := m.store.SetEntryCover(m.editingID, typ, value)
	switch {
	case err != nil:
		m.setError("Cover rejected: " + err.Error())
	case !ok:
		m.setError("Entry no longer exists")
	default:
		m.setStatus("Cover updated")
	}
	m.refresh()
}

// handleUploadKey processes input while the upload path prompt is focused.
// In the cover picker a successful upload also becomes the entry's cover.
func (m Model) handleUploadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.uploading = false
		m.uploadInput.Blur()
		return m, nil

	case tea.KeyEnter:
		m.uploading = false
		m.uploadInput.Blur()
		img, err := m.uploadImage(m.uploadInput.Value())
		if err != nil {
			m.setError("Upload failed: " + err.Error())
			return m, nil
		}
		m.refresh()
		if m.currentView == ViewCover {
			m.applyCover(entries.CoverImage, img.DataURL)
			m.currentView = m.returnView
			m.editingID = ""
			return m, nil
		}
		m.imageRow = m.images.Len() - 1
		m.setStatus("Uploaded " + img.Name)
		return m, nil
	}

	var cmd tea.Cmd
	m.uploadInput, cmd = m.uploadInput.Update(msg)
	return m, cmd
}

// uploadImage reads a file from disk and stores it as an image.
func (m *Model) uploadImage(path string) (images.Image, error) {
	name, dataURL, err := images.ReadFile(path)
	if err != nil {
		m.log.Warn(m.ctx, "image upload rejected", "path", path, "error", err)
		return images.Image{}, err
	}
	id := m.newID()
	if err := m.store.AddImage(id, name, dataURL); err != nil {
		return images.Image{}, err
	}
	img, _ := m.store.Image(id)
	return img, nil
}

// renderCover renders the cover picker.
func (m Model) renderCover() string {
	styles := m.theme.Styles()
	entry, ok := m.entries.Get(m.editingID)
	if !ok {
		return styles.DangerText.Render("Entry was deleted")
	}

	var b strings.Builder
	b.WriteString(styles.Section.Render("Cover for " + entry.DisplayTitle()))
	b.WriteString("\n\n")

	for i, opt := range m.coverOptions() {
		current := opt.typ == entry.CoverType && opt.value == entry.CoverValue
		marker := "  "
		if current {
			marker = styles.SuccessText.Render("✓ ")
		}
		swatch := "  "
		switch opt.typ {
		case entries.CoverColor:
			swatch = styles.Swatch(opt.color, 2)
		case entries.CoverImage:
			swatch = styles.AccentText.Render("▣ ")
		}
		line := fmt.Sprintf("%s%s %s", marker, swatch, opt.label)
		if opt.typ == entries.CoverImage {
			line += styles.FaintText.Render("  " + formatBytes(images.PayloadSize(opt.value)))
		}
		if i == m.coverRow {
			line = styles.Selected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.uploading {
		b.WriteString("\n")
		b.WriteString(styles.FocusPanel.Render(m.uploadInput.View()))
	}
	return b.String()
}

// renderCoverStrip draws a full-width band in the entry's cover color.
func (m Model) renderCoverStrip(entry entries.Entry) string {
	styles := m.theme.Styles()
	width := max(m.width-2, 10)
	switch {
	case entry.CoverType == entries.CoverColor && entry.HasCover():
		return styles.Swatch(entry.CoverValue, width)
	case entry.CoverType == entries.CoverImage && entry.HasCover():
		label := " image cover · " + formatBytes(images.PayloadSize(entry.CoverValue))
		return lipgloss.NewStyle().
			Width(width).
			Background(lipgloss.Color(m.theme.SurfaceAlt)).
			Foreground(lipgloss.Color(m.theme.Muted)).
			Render(label)
	}
	return ""
}

// coverLabel describes an entry's cover in a few words.
func coverLabel(e entries.Entry) string {
	switch {
	case !e.HasCover():
		return "no cover"
	case e.CoverType == entries.CoverColor:
		return "cover " + e.CoverValue
	default:
		return "image cover"
	}
}
