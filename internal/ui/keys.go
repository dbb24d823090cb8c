package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	ForceQuit   key.Binding
	Quit        key.Binding
	Help        key.Binding
	CycleTheme  key.Binding
	TogglePrev  key.Binding
	Tab         key.Binding
	Escape      key.Binding
	ViewImages  key.Binding
	Export      key.Binding
	SearchFocus key.Binding

	// Entry actions
	New      key.Binding
	Open     key.Binding
	Clone    key.Binding
	Favorite key.Binding
	Delete   key.Binding
	Copy     key.Binding
	Cover    key.Binding
	Upload   key.Binding
	Confirm  key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Left   key.Binding
	Right  key.Binding

	// Editor
	SwitchField key.Binding
	Leave       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit from anywhere"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		TogglePrev: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Toggle previews"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Home/All entries"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),
		ViewImages: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "Images"),
		),
		Export: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "Export to file"),
		),
		SearchFocus: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search entries"),
		),

		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New entry"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open"),
		),
		Clone: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Clone"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Favorite/Unfavorite"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Delete"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy content"),
		),
		Cover: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "Change cover"),
		),
		Upload: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Upload image"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "Confirm"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/l", "Switch home section"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("h/l", "Switch home section"),
		),

		SwitchField: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "Title/Content"),
		),
		Leave: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close editor"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Open, k.Favorite, k.Cover, k.Help, k.Quit}
}

// FullHelp returns key bindings grouped for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.SearchFocus, k.ViewImages, k.Escape, k.Up, k.Down, k.Top, k.Bottom, k.Left},
		{k.New, k.Open, k.Clone, k.Favorite, k.Delete, k.Copy, k.Cover, k.Upload},
		{k.SwitchField, k.Leave},
		{k.Export, k.CycleTheme, k.TogglePrev, k.Help, k.Quit, k.ForceQuit},
	}
}
