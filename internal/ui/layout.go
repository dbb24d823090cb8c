package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// renderMain renders the header, active view and footer.
func (m Model) renderMain() string {
	header := m.renderHeader()
	footer := m.renderFooter()

	body := m.renderContent()
	bodyHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 1)
	body = lipgloss.NewStyle().
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Padding(0, 1).
		Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewHome:
		return m.renderHome()
	case ViewAll:
		return m.renderAll()
	case ViewEditor:
		return m.renderEditor()
	case ViewCover:
		return m.renderCover()
	case ViewImages:
		return m.renderImages()
	default:
		return ""
	}
}

// viewTitle names the current view in the header.
func (m Model) viewTitle() string {
	switch m.currentView {
	case ViewHome:
		return "Home"
	case ViewAll:
		return "All entries"
	case ViewEditor:
		return "Editor"
	case ViewCover:
		return "Cover"
	case ViewImages:
		return "Images"
	default:
		return ""
	}
}

// renderHeader renders the logo, view name and collection counts.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	sep := styles.FaintText.Render("  │  ")

	favorites := len(m.entries.Favorites(m.entries.Len()))
	parts := []string{
		styles.Logo.Render("quill"),
		styles.AccentText.Render(m.viewTitle()),
		styles.MutedText.Render(fmt.Sprintf("%d entries · %d ★ · %d images",
			m.entries.Len(), favorites, m.images.Len())),
	}
	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// renderFooter renders the status line, or the short key help when idle.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	var content string
	switch {
	case m.confirm.active():
		content = styles.WarningText.Bold(true).Render(
			fmt.Sprintf("Delete %s? y to confirm, any other key to cancel", truncate(m.confirm.label, 40)))
	case m.status != "" && m.statusErr:
		content = styles.DangerText.Render(m.status)
	case m.status != "":
		content = styles.SuccessText.Render(m.status)
	default:
		content = m.shortHelp()
	}
	return styles.Footer.Width(m.width).Render(content)
}

// shortHelp renders the footer key hints for the current view.
func (m Model) shortHelp() string {
	styles := m.theme.Styles()
	var bindings []key.Binding
	switch m.currentView {
	case ViewEditor:
		bindings = []key.Binding{m.keys.SwitchField, m.keys.Leave, m.keys.ForceQuit}
	case ViewCover:
		bindings = []key.Binding{m.keys.Open, m.keys.Upload, m.keys.Escape}
	case ViewImages:
		bindings = []key.Binding{m.keys.Upload, m.keys.Delete, m.keys.Escape, m.keys.Help}
	default:
		bindings = m.keys.ShortHelp()
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.AccentText.Render(h.Key)+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}
