package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/quill/internal/entries"
	"github.com/five82/quill/internal/images"
)

// handleSearchKey edits the search query in the all-entries view.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Reset()
		m.search.Blur()
		m.clampRows()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.listRow = 0
	return m, cmd
}

// renderHome renders the latest-updated and favorites sections side by side.
func (m Model) renderHome() string {
	styles := m.theme.Styles()
	latest := m.entries.LatestUpdated(m.viewLimit)
	favorites := m.entries.Favorites(m.viewLimit)

	colWidth := max((m.width-4)/2, 24)
	left := m.renderSection("Latest updated", latest, m.homeSection == sectionLatest, colWidth,
		"No entries yet. Press n to write one.")
	right := m.renderSection("Favorites", favorites, m.homeSection == sectionFavorites, colWidth,
		"No favorites. Press f on an entry to star it.")

	if m.width < 60 {
		return lipgloss.JoinVertical(lipgloss.Left, left, right)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, styles.Text.Render("  "), right)
}

// renderSection renders one titled card list.
func (m Model) renderSection(title string, items []entries.Entry, focused bool, width int, empty string) string {
	styles := m.theme.Styles()
	panel := styles.Panel
	heading := styles.MutedText.Bold(true)
	if focused {
		panel = styles.FocusPanel
		heading = styles.Section
	}

	var b strings.Builder
	b.WriteString(heading.Render(fmt.Sprintf("%s (%d)", title, len(items))))
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(styles.FaintText.Render(empty))
		return panel.Width(width).Render(b.String())
	}
	for i, e := range items {
		b.WriteString("\n")
		b.WriteString(m.renderCard(e, width-4, focused && i == m.homeRow))
	}
	return panel.Width(width).Render(b.String())
}

// renderAll renders every entry, most recent first, with an optional filter.
func (m Model) renderAll() string {
	styles := m.theme.Styles()
	items := m.visibleEntries()

	var b strings.Builder
	header := fmt.Sprintf("All entries (%d)", len(items))
	if q := strings.TrimSpace(m.search.Value()); q != "" {
		header = fmt.Sprintf("Matching %q (%d of %d)", q, len(items), m.entries.Len())
	}
	b.WriteString(styles.Section.Render(header))
	b.WriteString("\n")
	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	if len(items) == 0 {
		b.WriteString("\n")
		if m.entries.Len() == 0 {
			b.WriteString(styles.FaintText.Render("No entries yet. Press n to write one."))
		} else {
			b.WriteString(styles.FaintText.Render("Nothing matches the search."))
		}
		return b.String()
	}

	width := max(m.width-2, 20)
	var cards strings.Builder
	selectedLine, line := 0, 0
	for i, e := range items {
		card := m.renderCard(e, width, i == m.listRow)
		if i == m.listRow {
			selectedLine = line
		}
		if i > 0 {
			cards.WriteString("\n")
		}
		cards.WriteString(card)
		line += strings.Count(card, "\n") + 1
	}

	// header, search box and chrome
	vp := viewport.New(width, max(m.height-6-lipgloss.Height(b.String()), 3))
	vp.SetContent(cards.String())
	if selectedLine >= vp.Height {
		vp.SetYOffset(selectedLine - vp.Height + 2)
	}
	b.WriteString("\n")
	b.WriteString(vp.View())
	return b.String()
}

// renderCard renders a single entry as a swatch, title and metadata line,
// followed by a content preview when previews are enabled.
func (m Model) renderCard(e entries.Entry, width int, selected bool) string {
	styles := m.theme.Styles()

	swatch := "  "
	switch {
	case e.CoverType == entries.CoverColor && e.HasCover():
		swatch = styles.Swatch(e.CoverValue, 2)
	case e.CoverType == entries.CoverImage && e.HasCover():
		swatch = styles.AccentText.Render("▣ ")
	}

	star := "  "
	if e.IsFavorite {
		star = styles.Star.Render("★ ")
	}

	when := m.relTime(e.UpdatedAt)
	titleWidth := max(width-lipgloss.Width(when)-8, 8)
	title := truncate(e.DisplayTitle(), titleWidth)
	titleStyle := styles.Text
	if strings.TrimSpace(e.Title) == "" {
		titleStyle = styles.MutedText.Italic(true)
	}

	line := swatch + " " + star + titleStyle.Render(title)
	gap := max(width-lipgloss.Width(line)-lipgloss.Width(when), 1)
	line += strings.Repeat(" ", gap) + styles.FaintText.Render(when)

	if m.showPreview {
		if preview := previewLine(e.Content, max(width-5, 8)); preview != "" {
			line += "\n     " + styles.MutedText.Render(preview)
		}
	}
	if selected {
		return styles.Selected.Width(width).Render(line)
	}
	return line
}

// handleImagesKey processes keyboard input for the images view.
func (m Model) handleImagesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	all := m.images.All()
	switch {
	case key.Matches(msg, m.keys.Up, m.keys.Down, m.keys.Top, m.keys.Bottom):
		m.moveSelection(msg, len(all))
	case key.Matches(msg, m.keys.Upload):
		m.uploading = true
		m.uploadInput.Reset()
		return m, m.uploadInput.Focus()
	case key.Matches(msg, m.keys.Delete):
		if m.imageRow >= 0 && m.imageRow < len(all) {
			img := all[m.imageRow]
			m.confirm = confirmState{imageID: img.ID, label: img.Name}
		}
	}
	return m, nil
}

// renderImages lists stored images with size and upload time.
func (m Model) renderImages() string {
	styles := m.theme.Styles()
	all := m.images.All()

	var b strings.Builder
	b.WriteString(styles.Section.Render(fmt.Sprintf("Images (%d)", len(all))))
	b.WriteString("\n")
	if len(all) == 0 {
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render("No images. Press u to upload one."))
	}

	width := max(m.width-2, 20)
	for i, img := range all {
		name := truncateMiddle(img.Name, max(width/2, 12))
		meta := formatBytes(images.PayloadSize(img.DataURL)) + "  ·  uploaded " + m.relTime(img.UploadedAt)
		gap := max(width-lipgloss.Width(name)-lipgloss.Width(meta)-2, 1)
		line := "▣ " + name + strings.Repeat(" ", gap) + styles.FaintText.Render(meta)
		if i == m.imageRow {
			line = styles.Selected.Width(width).Render(line)
		}
		b.WriteString("\n")
		b.WriteString(line)
	}

	if m.uploading {
		b.WriteString("\n\n")
		b.WriteString(styles.FocusPanel.Render(m.uploadInput.View()))
	}
	return b.String()
}
