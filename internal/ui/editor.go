package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// openEditor loads an entry into the title and content inputs.
func (m Model) openEditor(id string) (tea.Model, tea.Cmd) {
	entry, ok := m.entries.Get(id)
	if !ok {
		m.setError("Entry no longer exists")
		return m, nil
	}
	if m.currentView != ViewEditor {
		m.returnView = m.currentView
	}
	m.currentView = ViewEditor
	m.editingID = id
	m.titleInput.SetValue(entry.Title)
	m.contentArea.SetValue(entry.Content)
	m.contentArea.Blur()
	m.editorField = fieldTitle
	m.resizeEditor()
	m.clearStatus()
	return m, m.titleInput.Focus()
}

// closeEditor returns to the view the editor was opened from.
func (m *Model) closeEditor() {
	m.titleInput.Blur()
	m.contentArea.Blur()
	m.editingID = ""
	m.currentView = m.returnView
	if m.currentView == ViewEditor || m.currentView == ViewCover {
		m.currentView = ViewHome
	}
	m.refresh()
}

// handleEditorKey routes keys to the focused field and commits changes to
// the store as they happen.
func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Leave):
		m.closeEditor()
		return m, nil

	case key.Matches(msg, m.keys.SwitchField):
		if m.editorField == fieldTitle {
			m.editorField = fieldContent
			m.titleInput.Blur()
			return m, m.contentArea.Focus()
		}
		m.editorField = fieldTitle
		m.contentArea.Blur()
		return m, m.titleInput.Focus()
	}

	// Write back only what this key changed. The widgets normalize loaded
	// text, so their value can differ from the stored entry without an edit.
	var cmd tea.Cmd
	if m.editorField == fieldTitle {
		before := m.titleInput.Value()
		m.titleInput, cmd = m.titleInput.Update(msg)
		if after := m.titleInput.Value(); after != before {
			m.commitEditor(fieldTitle, after)
		}
	} else {
		before := m.contentArea.Value()
		m.contentArea, cmd = m.contentArea.Update(msg)
		if after := m.contentArea.Value(); after != before {
			m.commitEditor(fieldContent, after)
		}
	}
	return m, cmd
}

// commitEditor writes one edited field to the store.
func (m *Model) commitEditor(field int, value string) {
	if _, ok := m.entries.Get(m.editingID); !ok {
		m.setError("Entry was deleted")
		return
	}
	var changed bool
	if field == fieldTitle {
		changed = m.store.SetEntryTitle(m.editingID, value)
	} else {
		changed = m.store.SetEntryContent(m.editingID, value)
	}
	if changed {
		m.refresh()
	}
}

// resizeEditor fits the inputs to the window.
func (m *Model) resizeEditor() {
	width := m.width - 6
	if width < 20 {
		width = 20
	}
	// header, title, separators and footer
	height := m.height - 9
	if height < 3 {
		height = 3
	}
	m.titleInput.Width = width
	m.contentArea.SetWidth(width)
	m.contentArea.SetHeight(height)
}

// renderEditor renders the editor view.
func (m Model) renderEditor() string {
	styles := m.theme.Styles()
	entry, ok := m.entries.Get(m.editingID)
	if !ok {
		return styles.DangerText.Render("Entry was deleted")
	}

	titlePanel := styles.Panel
	contentPanel := styles.Panel
	if m.editorField == fieldTitle {
		titlePanel = styles.FocusPanel
	} else {
		contentPanel = styles.FocusPanel
	}

	var meta []string
	if entry.IsFavorite {
		meta = append(meta, styles.Star.Render("★ favorite"))
	}
	meta = append(meta, styles.MutedText.Render("edited "+m.relTime(entry.UpdatedAt)))
	meta = append(meta, styles.FaintText.Render(strings.ToUpper(coverLabel(entry))))

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderCoverStrip(entry),
		titlePanel.Render(m.titleInput.View()),
		strings.Join(meta, styles.FaintText.Render("  ·  ")),
		contentPanel.Render(m.contentArea.View()),
	)
}
