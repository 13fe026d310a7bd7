// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/jeranaias/archview/internal/aggregate"
	"github.com/jeranaias/archview/internal/config"
	"github.com/jeranaias/archview/internal/export"
	"github.com/jeranaias/archview/internal/ingest"
	"github.com/jeranaias/archview/internal/model"
	"github.com/jeranaias/archview/internal/prefs"
	"github.com/jeranaias/archview/internal/query"
	"github.com/jeranaias/archview/internal/ui/styles"
)

// =============================================================================
// VIEW STATE
// =============================================================================

// viewState is the top-level screen the browser is showing.
type viewState int

const (
	stateLoading viewState = iota
	stateBrowse
	stateTranscript
	stateError
)

// focusMode is which input owns keystrokes while browsing.
type focusMode int

const (
	focusList focusMode = iota
	focusSearch
	focusDate
)

// rowHeight is the rendered height of one list row: name line plus preview.
const rowHeight = 2

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the archive browser.
type Model struct {
	theme *styles.Theme
	keys  KeyMap

	// Archive source
	path       string
	archive    *aggregate.Archive
	result     *ingest.Result
	progressCh chan float64
	progress   float64
	reloading  bool

	// Screen state
	state viewState
	focus focusMode

	// Filtering
	queryState query.State
	filtered   []*model.Group
	selected   int
	scroll     int

	// Components
	spinner     spinner.Model
	searchInput textinput.Model
	dateInput   textinput.Model
	transcript  viewport.Model

	// Wiring
	debouncer  *query.Debouncer
	watcher    *ingest.Watcher
	store      *prefs.Store
	exportOpts *export.Options
	cfg        *config.Config

	// Overlays and notices
	showHelp    bool
	helpView    string
	showPreview bool
	previewView string
	notice      string
	noticeIsErr bool
	loadErr     error

	// Transcript subject
	open           *model.Group
	showTimestamps bool

	width  int
	height int
}

// New creates a browser model for the archive at path. The watcher and
// preference store are optional; nil disables the feature.
func New(path string, cfg *config.Config, store *prefs.Store, watcher *ingest.Watcher) Model {
	theme := styles.NewTheme()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	search := textinput.New()
	search.Placeholder = "search"
	search.Prompt = "/ "
	search.CharLimit = 256

	date := textinput.New()
	date.Placeholder = query.DateLayout
	date.Prompt = "date: "
	date.CharLimit = len(query.DateLayout)

	return Model{
		theme:          theme,
		keys:           DefaultKeyMap(),
		path:           path,
		archive:        aggregate.NewArchive(),
		progressCh:     make(chan float64, 1),
		state:          stateLoading,
		queryState:     query.State{Tab: query.TabConversations, RoomType: query.RoomTypeAll},
		spinner:        sp,
		searchInput:    search,
		dateInput:      date,
		transcript:     viewport.New(0, 0),
		debouncer:      query.NewDebouncer(query.DebounceInterval),
		watcher:        watcher,
		store:          store,
		exportOpts:     &export.Options{OutputDir: cfg.Export.OutputDir},
		cfg:            cfg,
		showTimestamps: cfg.UI.ShowTimestamps,
	}
}

// Init starts the archive load and the long-lived listeners.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		LoadArchiveCmd(m.path, m.progressCh),
		ListenProgressCmd(m.progressCh),
		WaitSearchSettledCmd(m.debouncer),
		LoadPrefsCmd(m.store),
	}
	if m.watcher != nil {
		cmds = append(cmds, WatchArchiveCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

// =============================================================================
// FILTER APPLICATION
// =============================================================================

// applyFilters re-runs the filter pipeline and clamps the selection.
func (m *Model) applyFilters() {
	m.filtered = query.Run(m.archive.Groups(), m.queryState)
	if m.selected >= len(m.filtered) {
		m.selected = len(m.filtered) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	m.ensureVisible()
}

// ensureVisible scrolls the list so the selected row is on screen.
func (m *Model) ensureVisible() {
	vpHeight := m.listHeight()
	if vpHeight <= 0 {
		return
	}
	top := m.selected * rowHeight
	bottom := top + rowHeight
	if top < m.scroll {
		m.scroll = top
	}
	if bottom > m.scroll+vpHeight {
		m.scroll = bottom - vpHeight
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// listHeight is the vertical space available to the list viewport, after
// the header, filter bar, and status bar.
func (m *Model) listHeight() int {
	h := m.height - chromeHeight
	if h < 0 {
		return 0
	}
	return h
}

// chromeHeight is the rows consumed by header, filter bar, and status bar.
const chromeHeight = 3

// selectedGroup returns the group under the cursor, or nil.
func (m *Model) selectedGroup() *model.Group {
	if m.selected < 0 || m.selected >= len(m.filtered) {
		return nil
	}
	return m.filtered[m.selected]
}

// hasActiveFilters reports whether any filter deviates from the default view.
func (m *Model) hasActiveFilters() bool {
	return m.queryState.Search != "" ||
		(m.queryState.RoomType != query.RoomTypeAll && m.queryState.RoomType != "") ||
		m.queryState.Date != ""
}

// clearFilters resets search, room type, and date.
func (m *Model) clearFilters() {
	m.queryState.Search = ""
	m.queryState.RoomType = query.RoomTypeAll
	m.queryState.Date = ""
	m.searchInput.SetValue("")
	m.dateInput.SetValue("")
	m.applyFilters()
}

// currentPrefs snapshots the view settings for persistence.
func (m *Model) currentPrefs() *prefs.Preferences {
	return &prefs.Preferences{
		LastTab:        string(m.queryState.Tab),
		LastRoomType:   m.queryState.RoomType,
		ShowTimestamps: m.showTimestamps,
		ItemsPerPage:   m.cfg.UI.ItemsPerPage,
	}
}

// Close releases the model's background resources.
func (m *Model) Close() {
	m.debouncer.Stop()
	if m.watcher != nil {
		m.watcher.Close()
	}
	if m.store != nil {
		m.store.Close()
	}
}
