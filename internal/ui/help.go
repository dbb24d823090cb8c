package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var helpGroupTitles = []string{"Navigation", "Entries", "Editor", "General"}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")

	for i, group := range m.keys.FullHelp() {
		b.WriteString("\n")
		if i < len(helpGroupTitles) {
			b.WriteString(styles.Section.Render(helpGroupTitles[i]))
			b.WriteString("\n")
		}
		seen := make(map[string]bool, len(group))
		for _, binding := range group {
			h := binding.Help()
			if seen[h.Key] {
				continue
			}
			seen[h.Key] = true
			keyCol := styles.AccentText.Width(10).Render(h.Key)
			b.WriteString("  " + keyCol + styles.Text.Render(h.Desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Press any key to close"))

	box := styles.FocusPanel.
		Padding(1, 2).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
