// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"

	"github.com/jeranaias/archview/internal/model"
	"github.com/jeranaias/archview/internal/query"
)

// Update routes Bubble Tea messages to the current screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.searchInput.Width = msg.Width / 3
		m.transcript.Width = msg.Width
		m.transcript.Height = m.listHeight()
		m.helpView = "" // re-render at the new width
		if m.open != nil {
			m.transcript.SetContent(m.renderTranscript(m.open))
		}
		m.ensureVisible()
		return m, nil

	case spinner.TickMsg:
		if m.state != stateLoading && !m.reloading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case LoadProgressMsg:
		m.progress = msg.Fraction
		return m, ListenProgressCmd(m.progressCh)

	case LoadResultMsg:
		return m.handleLoadResult(msg)

	case ArchiveChangedMsg:
		m.reloading = true
		m.progressCh = make(chan float64, 1)
		return m, tea.Batch(
			m.spinner.Tick,
			LoadArchiveCmd(m.path, m.progressCh),
			ListenProgressCmd(m.progressCh),
			WatchArchiveCmd(m.watcher),
		)

	case PrefsLoadedMsg:
		if msg.Prefs == nil {
			return m, nil
		}
		switch query.Tab(msg.Prefs.LastTab) {
		case query.TabConversations, query.TabSenders, query.TabRooms:
			m.queryState.Tab = query.Tab(msg.Prefs.LastTab)
		}
		if msg.Prefs.LastRoomType != "" {
			m.queryState.RoomType = msg.Prefs.LastRoomType
		}
		m.showTimestamps = msg.Prefs.ShowTimestamps
		if m.state == stateBrowse {
			m.applyFilters()
		}
		return m, nil

	case SearchSettledMsg:
		m.queryState.Search = m.searchInput.Value()
		m.applyFilters()
		return m, WaitSearchSettledCmd(m.debouncer)

	case ExportDoneMsg:
		if msg.Err != nil {
			m.notice = fmt.Sprintf("export failed: %v", msg.Err)
			m.noticeIsErr = true
		} else {
			m.notice = fmt.Sprintf("exported %s", filepath.Base(msg.Path))
			m.noticeIsErr = false
		}
		return m, ClearNoticeCmd()

	case ClearNoticeMsg:
		m.notice = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleLoadResult applies a finished load or reload.
func (m Model) handleLoadResult(msg LoadResultMsg) (tea.Model, tea.Cmd) {
	wasReload := m.reloading
	m.reloading = false

	if msg.Err != nil {
		if wasReload {
			// Keep showing the last good archive
			m.notice = fmt.Sprintf("reload failed: %v", msg.Err)
			m.noticeIsErr = true
			return m, ClearNoticeCmd()
		}
		m.loadErr = msg.Err
		m.state = stateError
		return m, nil
	}

	m.result = msg.Result
	m.archive.SetRecords(msg.Result.Records)
	m.state = stateBrowse
	m.applyFilters()

	var cmd tea.Cmd
	switch {
	case msg.Result.Dropped > 0:
		m.notice = fmt.Sprintf("loaded with %d invalid record(s) skipped", msg.Result.Dropped)
		m.noticeIsErr = false
		cmd = ClearNoticeCmd()
	case wasReload:
		m.notice = "archive reloaded"
		m.noticeIsErr = false
		cmd = ClearNoticeCmd()
	}
	return m, cmd
}

// =============================================================================
// KEY DISPATCH
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Overlays swallow keys first
	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Back, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	}
	if m.showPreview {
		if key.Matches(msg, m.keys.Preview, m.keys.Back, m.keys.Quit) {
			m.showPreview = false
		}
		return m, nil
	}

	switch m.state {
	case stateBrowse:
		return m.handleBrowseKey(msg)
	case stateTranscript:
		return m.handleTranscriptKey(msg)
	case stateError:
		if key.Matches(msg, m.keys.Quit, m.keys.Back) {
			return m.quit()
		}
		return m, nil
	default: // stateLoading
		if key.Matches(msg, m.keys.Quit) {
			return m.quit()
		}
		return m, nil
	}
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.focus {
	case focusSearch:
		return m.handleSearchKey(msg)
	case focusDate:
		return m.handleDateKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveSelection(-m.pageSize())
	case key.Matches(msg, m.keys.PageDown):
		m.moveSelection(m.pageSize())
	case key.Matches(msg, m.keys.Home):
		m.selected = 0
		m.ensureVisible()
	case key.Matches(msg, m.keys.End):
		m.selected = len(m.filtered) - 1
		if m.selected < 0 {
			m.selected = 0
		}
		m.ensureVisible()

	case key.Matches(msg, m.keys.Open):
		if g := m.selectedGroup(); g != nil {
			m.open = g
			m.transcript.Width = m.width
			m.transcript.Height = m.listHeight()
			m.transcript.SetContent(m.renderTranscript(g))
			m.transcript.GotoBottom()
			m.state = stateTranscript
		}

	case key.Matches(msg, m.keys.Back):
		if m.hasActiveFilters() {
			m.clearFilters()
		}

	case key.Matches(msg, m.keys.CycleTab):
		m.queryState.Tab = nextTab(m.queryState.Tab)
		m.selected = 0
		m.scroll = 0
		m.applyFilters()

	case key.Matches(msg, m.keys.CycleType):
		m.queryState.RoomType = nextRoomType(m.queryState.RoomType)
		m.applyFilters()

	case key.Matches(msg, m.keys.Search):
		m.focus = focusSearch
		m.searchInput.Focus()
		return m, nil

	case key.Matches(msg, m.keys.DateFilter):
		m.focus = focusDate
		m.dateInput.SetValue(m.queryState.Date)
		m.dateInput.Focus()
		return m, nil

	case key.Matches(msg, m.keys.ExportJSON):
		return m, ExportJSONCmd(m.filtered, m.archive.Stats(), m.queryState, m.exportOpts)

	case key.Matches(msg, m.keys.ExportText):
		if g := m.selectedGroup(); g != nil {
			return m, ExportTranscriptCmd(g, m.exportOpts)
		}

	case key.Matches(msg, m.keys.Preview):
		m.previewView = m.renderPreview(m.selectedGroup())
		m.showPreview = true

	case key.Matches(msg, m.keys.Help):
		if m.helpView == "" {
			m.helpView = m.helpContent()
		}
		m.showHelp = true
	}

	return m, nil
}

// handleSearchKey feeds keystrokes to the search input and the debouncer.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = focusList
		m.searchInput.Blur()
		m.searchInput.SetValue(m.queryState.Search)
		return m, nil
	case "enter":
		// Apply immediately without waiting for the debounce
		m.focus = focusList
		m.searchInput.Blur()
		m.queryState.Search = m.searchInput.Value()
		m.applyFilters()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.debouncer.Trigger(m.searchInput.Value())
	return m, cmd
}

func (m Model) handleDateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = focusList
		m.dateInput.Blur()
		return m, nil
	case "enter":
		m.focus = focusList
		m.dateInput.Blur()
		m.queryState.Date = m.dateInput.Value()
		m.applyFilters()
		return m, nil
	}

	var cmd tea.Cmd
	m.dateInput, cmd = m.dateInput.Update(msg)
	return m, cmd
}

func (m Model) handleTranscriptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Back):
		m.state = stateBrowse
		m.open = nil
		return m, nil
	case key.Matches(msg, m.keys.ExportText):
		if m.open != nil {
			return m, ExportTranscriptCmd(m.open, m.exportOpts)
		}
		return m, nil
	case key.Matches(msg, m.keys.Help):
		if m.helpView == "" {
			m.helpView = m.helpContent()
		}
		m.showHelp = true
		return m, nil
	}

	var cmd tea.Cmd
	m.transcript, cmd = m.transcript.Update(msg)
	return m, cmd
}

// =============================================================================
// HELPERS
// =============================================================================

func (m *Model) moveSelection(delta int) {
	m.selected += delta
	if m.selected < 0 {
		m.selected = 0
	}
	if m.selected >= len(m.filtered) {
		m.selected = len(m.filtered) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	m.ensureVisible()
}

// pageSize is how many rows a page jump moves.
func (m *Model) pageSize() int {
	if n := m.listHeight() / rowHeight; n > 1 {
		return n
	}
	return m.cfg.UI.ItemsPerPage
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	save := SavePrefsCmd(m.store, m.currentPrefs())
	return m, tea.Sequence(save, tea.Quit)
}

// nextTab cycles conversations -> senders -> rooms.
func nextTab(t query.Tab) query.Tab {
	switch t {
	case query.TabConversations:
		return query.TabSenders
	case query.TabSenders:
		return query.TabRooms
	default:
		return query.TabConversations
	}
}

// nextRoomType cycles all -> direct -> sms -> group.
func nextRoomType(rt string) string {
	switch rt {
	case query.RoomTypeAll, "":
		return model.RoomTypeDirect
	case model.RoomTypeDirect:
		return model.RoomTypeSMS
	case model.RoomTypeSMS:
		return model.RoomTypeGroup
	default:
		return query.RoomTypeAll
	}
}
