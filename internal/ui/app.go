package ui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/quill/internal/archive"
	"github.com/five82/quill/internal/entries"
	"github.com/five82/quill/internal/ids"
	"github.com/five82/quill/internal/images"
	"github.com/five82/quill/internal/logging"
	"github.com/five82/quill/internal/prefs"
	"github.com/five82/quill/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewHome View = iota
	ViewAll
	ViewEditor
	ViewCover
	ViewImages
)

// Home sections.
const (
	sectionLatest = iota
	sectionFavorites
)

// Editor fields.
const (
	fieldTitle = iota
	fieldContent
)

// Options configures the UI.
type Options struct {
	Context      context.Context
	Store        *state.Store
	Logger       logging.Logger
	NewID        ids.Generator
	ViewLimit    int
	ThemeName    string
	ShowPreview  bool
	PrefsPath    string
	ExportPath   string
	Clipboard    func(string) error
	Export       func(path string, store *state.Store) error
	Now          func() time.Time
	RefreshEvery time.Duration
}

// confirmState holds a pending destructive action awaiting y/n.
type confirmState struct {
	entryID string
	imageID string
	label   string
}

func (c confirmState) active() bool { return c.entryID != "" || c.imageID != "" }

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx          context.Context
	store        *state.Store
	log          logging.Logger
	newID        ids.Generator
	viewLimit    int
	prefsPath    string
	exportPath   string
	clipboard    func(string) error
	export       func(string, *state.Store) error
	now          func() time.Time
	refreshEvery time.Duration
	keys         keyMap

	// UI state
	theme       Theme
	showPreview bool
	currentView View
	returnView  View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Data state
	entries entries.Collection
	images  images.Collection
	version uint64

	// Home state
	homeSection int
	homeRow     int

	// All entries state
	listRow   int
	search    textinput.Model
	searching bool

	// Editor state
	editingID   string
	titleInput  textinput.Model
	contentArea textarea.Model
	editorField int

	// Cover picker state
	coverRow    int
	uploading   bool
	uploadInput textinput.Model

	// Images state
	imageRow int

	confirm   confirmState
	status    string
	statusErr bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	newID := opts.NewID
	if newID == nil {
		newID = ids.New
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	exportFn := opts.Export
	if exportFn == nil {
		exportFn = archive.Save
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	refresh := opts.RefreshEvery
	if refresh == 0 {
		refresh = 30 * time.Second
	}

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search titles and content"

	title := textinput.New()
	title.Prompt = ""
	title.Placeholder = "Untitled Entry"
	title.CharLimit = 0

	content := textarea.New()
	content.Placeholder = "Start writing..."
	content.ShowLineNumbers = false
	content.CharLimit = 0

	upload := textinput.New()
	upload.Prompt = "path: "
	upload.Placeholder = "~/Pictures/cover.png"

	m := Model{
		ctx:          ctx,
		store:        store,
		log:          log,
		newID:        newID,
		viewLimit:    opts.ViewLimit,
		prefsPath:    prefsPath,
		exportPath:   opts.ExportPath,
		clipboard:    copyFn,
		export:       exportFn,
		now:          now,
		refreshEvery: refresh,
		keys:         DefaultKeyMap(),
		theme:        GetTheme(themeName),
		showPreview:  opts.ShowPreview,
		currentView:  ViewHome,
		search:       search,
		titleInput:   title,
		contentArea:  content,
		uploadInput:  upload,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.refreshEvery)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeEditor()
		return m, nil

	case tickMsg:
		// The redraw after every tick keeps relative timestamps current;
		// collections are only re-read when the store changed.
		if m.store.Version() != m.version {
			m.refresh()
		}
		return m, tickCmd(m.refreshEvery)
	}

	return m, m.updateFocusedInput(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.confirm.active() {
		return m.handleConfirmKey(msg)
	}

	// Text inputs own the keyboard while focused.
	switch {
	case m.currentView == ViewEditor:
		return m.handleEditorKey(msg)
	case m.currentView == ViewCover && m.uploading:
		return m.handleUploadKey(msg)
	case m.currentView == ViewImages && m.uploading:
		return m.handleUploadKey(msg)
	case m.currentView == ViewAll && m.searching:
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.TogglePrev):
		m.showPreview = !m.showPreview
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Export):
		m.exportArchive()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.clearStatus()
		switch {
		case m.currentView == ViewCover:
			m.currentView = m.returnView
			return m, nil
		case m.currentView == ViewAll && m.search.Value() != "":
			m.search.Reset()
			m.clampRows()
			return m, nil
		}
		m.currentView = ViewHome
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.clearStatus()
		if m.currentView == ViewAll {
			m.currentView = ViewHome
		} else {
			m.currentView = ViewAll
		}
		return m, nil

	case key.Matches(msg, m.keys.ViewImages):
		m.clearStatus()
		m.currentView = ViewImages
		m.clampRows()
		return m, nil
	}

	switch m.currentView {
	case ViewHome, ViewAll:
		return m.handleEntryListKey(msg)
	case ViewCover:
		return m.handleCoverKey(msg)
	case ViewImages:
		return m.handleImagesKey(msg)
	}
	return m, nil
}

// handleConfirmKey resolves a pending delete.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pending := m.confirm
	m.confirm = confirmState{}
	if !key.Matches(msg, m.keys.Confirm) {
		m.setStatus("Delete cancelled")
		return m, nil
	}
	switch {
	case pending.entryID != "":
		if m.store.DeleteEntry(pending.entryID) {
			m.setStatus("Deleted " + pending.label)
		} else {
			m.setError("Entry no longer exists")
		}
	case pending.imageID != "":
		if m.store.DeleteImage(pending.imageID) {
			m.setStatus("Deleted image " + pending.label)
		} else {
			m.setError("Image no longer exists")
		}
	}
	m.refresh()
	return m, nil
}

// handleEntryListKey processes keys shared by the home and all-entries views.
func (m Model) handleEntryListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.SearchFocus) && m.currentView == ViewAll:
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Left) && m.currentView == ViewHome:
		m.homeSection = sectionLatest
		m.clampRows()
		return m, nil

	case key.Matches(msg, m.keys.Right) && m.currentView == ViewHome:
		m.homeSection = sectionFavorites
		m.clampRows()
		return m, nil

	case key.Matches(msg, m.keys.New):
		return m.createEntry()
	}

	items := m.visibleEntries()
	if key.Matches(msg, m.keys.Up, m.keys.Down, m.keys.Top, m.keys.Bottom) {
		m.moveSelection(msg, len(items))
		return m, nil
	}

	selected, ok := m.selectedEntry()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Open):
		return m.openEditor(selected.ID)

	case key.Matches(msg, m.keys.Favorite):
		m.store.ToggleFavorite(selected.ID)
		m.refresh()

	case key.Matches(msg, m.keys.Clone):
		cloneID := m.newID()
		ok, err := m.store.CloneEntry(selected.ID, cloneID)
		switch {
		case err != nil:
			m.setError("Clone failed: " + err.Error())
		case ok:
			m.refresh()
			next, cmd := m.openEditor(cloneID)
			edited := next.(Model)
			edited.setStatus("Cloned " + selected.DisplayTitle())
			return edited, cmd
		}
		m.refresh()

	case key.Matches(msg, m.keys.Delete):
		m.confirm = confirmState{entryID: selected.ID, label: selected.DisplayTitle()}

	case key.Matches(msg, m.keys.Copy):
		if err := m.clipboard(selected.Content); err != nil {
			m.log.Warn(m.ctx, "copy to clipboard failed", "id", selected.ID, "error", err)
			m.setError("Copy failed: " + err.Error())
		} else {
			m.setStatus("Copied content of " + selected.DisplayTitle())
		}

	case key.Matches(msg, m.keys.Cover):
		m.openCoverPicker(selected.ID)
	}
	return m, nil
}

// createEntry adds an empty entry and opens it in the editor.
func (m Model) createEntry() (tea.Model, tea.Cmd) {
	id := m.newID()
	if err := m.store.AddEntry(entries.Input{ID: id}); err != nil {
		m.setError("Create failed: " + err.Error())
		return m, nil
	}
	m.refresh()
	return m.openEditor(id)
}

// moveSelection applies a navigation key to the active list.
func (m *Model) moveSelection(msg tea.KeyMsg, count int) {
	row := m.activeRow()
	if row == nil || count == 0 {
		return
	}
	switch {
	case key.Matches(msg, m.keys.Down):
		if *row < count-1 {
			*row++
		}
	case key.Matches(msg, m.keys.Up):
		if *row > 0 {
			*row--
		}
	case key.Matches(msg, m.keys.Top):
		*row = 0
	case key.Matches(msg, m.keys.Bottom):
		*row = count - 1
	}
}

// activeRow returns the cursor of the current list view.
func (m *Model) activeRow() *int {
	switch m.currentView {
	case ViewHome:
		return &m.homeRow
	case ViewAll:
		return &m.listRow
	case ViewCover:
		return &m.coverRow
	case ViewImages:
		return &m.imageRow
	}
	return nil
}

// visibleEntries returns the entries shown by the current list view.
func (m Model) visibleEntries() []entries.Entry {
	switch m.currentView {
	case ViewHome:
		if m.homeSection == sectionFavorites {
			return m.entries.Favorites(m.viewLimit)
		}
		return m.entries.LatestUpdated(m.viewLimit)
	case ViewAll:
		if q := strings.TrimSpace(m.search.Value()); q != "" {
			return m.entries.Search(q)
		}
		return m.entries.SortedByRecency()
	}
	return nil
}

// selectedEntry returns the entry under the cursor.
func (m Model) selectedEntry() (entries.Entry, bool) {
	items := m.visibleEntries()
	row := m.homeRow
	if m.currentView == ViewAll {
		row = m.listRow
	}
	if row < 0 || row >= len(items) {
		return entries.Entry{}, false
	}
	return items[row], true
}

// refresh re-reads the store and keeps cursors in range.
func (m *Model) refresh() {
	m.entries, m.images = m.store.Collections()
	m.version = m.store.Version()
	m.clampRows()
}

func (m *Model) clampRows() {
	clamp := func(row *int, n int) {
		if *row >= n {
			*row = n - 1
		}
		if *row < 0 {
			*row = 0
		}
	}
	switch m.currentView {
	case ViewHome, ViewAll:
		n := len(m.visibleEntries())
		if m.currentView == ViewHome {
			clamp(&m.homeRow, n)
		} else {
			clamp(&m.listRow, n)
		}
	case ViewCover:
		clamp(&m.coverRow, len(m.coverOptions()))
	case ViewImages:
		clamp(&m.imageRow, m.images.Len())
	}
}

// exportArchive writes the current state to the configured export file.
func (m *Model) exportArchive() {
	if m.exportPath == "" {
		m.setError("No export file configured")
		return
	}
	if err := m.export(m.exportPath, m.store); err != nil {
		m.log.Error(m.ctx, "export failed", "path", m.exportPath, "error", err)
		m.setError("Export failed: " + err.Error())
		return
	}
	m.log.Info(m.ctx, "exported archive", "path", m.exportPath)
	m.setStatus("Exported to " + truncateMiddle(m.exportPath, 48))
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, ShowPreview: m.showPreview}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.log.Warn(m.ctx, "save prefs failed", "path", m.prefsPath, "error", err)
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

// updateFocusedInput forwards non-key messages such as cursor blinks to the
// focused text component.
func (m *Model) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.currentView == ViewEditor && m.editorField == fieldTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case m.currentView == ViewEditor:
		m.contentArea, cmd = m.contentArea.Update(msg)
	case m.uploading:
		m.uploadInput, cmd = m.uploadInput.Update(msg)
	case m.searching:
		m.search, cmd = m.search.Update(msg)
	}
	return cmd
}

// Messages

type tickMsg time.Time

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	// Cancellation from a signal is a normal exit.
	if err != nil && m.ctx.Err() != nil {
		return nil
	}
	return err
}
