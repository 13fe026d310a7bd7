// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/archview/internal/config"
	"github.com/jeranaias/archview/internal/ingest"
	"github.com/jeranaias/archview/internal/query"
)

func testModel(t *testing.T) Model {
	t.Helper()
	m := New("archive.json", config.Default(), nil, nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model)
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	input := `[
		{"author_user_name":"Alice","room_id":"r1","room_type":"direct","room_name":"Direct [Alice] [Bob]","ts_iso":"2024-03-01T09:00:00Z","message":"hello"},
		{"author_user_name":"Carol","room_id":"r2","room_type":"group","room_name":"Engineering","ts_iso":"2024-03-02T12:00:00Z","message":"ship it"}
	]`
	res, err := ingest.Load([]byte(input))
	if err != nil {
		t.Fatalf("ingest.Load: %v", err)
	}
	m := testModel(t)
	next, _ := m.Update(LoadResultMsg{Result: res})
	return next.(Model)
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// =============================================================================
// STATE TRANSITIONS
// =============================================================================

func TestLoadSuccessEntersBrowse(t *testing.T) {
	m := loadedModel(t)
	if m.state != stateBrowse {
		t.Fatalf("state = %v, want browse", m.state)
	}
	if len(m.filtered) != 2 {
		t.Errorf("filtered = %d groups, want 2", len(m.filtered))
	}
}

func TestLoadFailureEntersError(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(LoadResultMsg{Err: errors.New("bad archive")})
	m = next.(Model)
	if m.state != stateError {
		t.Fatalf("state = %v, want error", m.state)
	}
}

func TestReloadFailureKeepsBrowse(t *testing.T) {
	m := loadedModel(t)
	m.reloading = true
	next, _ := m.Update(LoadResultMsg{Err: errors.New("bad rewrite")})
	m = next.(Model)
	if m.state != stateBrowse {
		t.Errorf("reload failure should keep the last good archive, state = %v", m.state)
	}
	if m.notice == "" || !m.noticeIsErr {
		t.Error("reload failure should surface an error notice")
	}
}

func TestOpenTranscriptAndBack(t *testing.T) {
	m := loadedModel(t)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if m.state != stateTranscript {
		t.Fatalf("enter should open the transcript, state = %v", m.state)
	}
	if m.open == nil {
		t.Fatal("open group should be set")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.state != stateBrowse {
		t.Errorf("esc should return to browse, state = %v", m.state)
	}
}

// =============================================================================
// FILTER KEYS
// =============================================================================

func TestTabKeyCyclesGrouping(t *testing.T) {
	m := loadedModel(t)
	want := []query.Tab{query.TabSenders, query.TabRooms, query.TabConversations}
	for _, w := range want {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = next.(Model)
		if m.queryState.Tab != w {
			t.Fatalf("tab = %q, want %q", m.queryState.Tab, w)
		}
	}
}

func TestTypeKeyCyclesRoomType(t *testing.T) {
	m := loadedModel(t)
	want := []string{"direct", "sms", "group", query.RoomTypeAll}
	for _, w := range want {
		next, _ := m.Update(keyRune('t'))
		m = next.(Model)
		if m.queryState.RoomType != w {
			t.Fatalf("room type = %q, want %q", m.queryState.RoomType, w)
		}
	}
}

func TestSearchEnterAppliesImmediately(t *testing.T) {
	m := loadedModel(t)

	next, _ := m.Update(keyRune('/'))
	m = next.(Model)
	if m.focus != focusSearch {
		t.Fatalf("/ should focus search, focus = %v", m.focus)
	}

	for _, r := range "ship" {
		next, _ = m.Update(keyRune(r))
		m = next.(Model)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	if m.focus != focusList {
		t.Errorf("enter should return focus to the list")
	}
	if m.queryState.Search != "ship" {
		t.Errorf("search = %q, want ship", m.queryState.Search)
	}
	if len(m.filtered) != 1 {
		t.Errorf("filtered = %d groups, want 1", len(m.filtered))
	}
}

func TestEscClearsActiveFilters(t *testing.T) {
	m := loadedModel(t)
	m.queryState.Search = "hello"
	m.queryState.RoomType = "direct"
	m.applyFilters()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)

	if m.queryState.Search != "" || m.queryState.RoomType != query.RoomTypeAll {
		t.Errorf("esc should clear filters, got search=%q type=%q",
			m.queryState.Search, m.queryState.RoomType)
	}
	if len(m.filtered) != 2 {
		t.Errorf("filtered = %d groups after clear, want 2", len(m.filtered))
	}
}

// =============================================================================
// CYCLE HELPERS
// =============================================================================

func TestNextTabCycle(t *testing.T) {
	if nextTab(query.TabConversations) != query.TabSenders {
		t.Error("conversations should cycle to senders")
	}
	if nextTab(query.TabRooms) != query.TabConversations {
		t.Error("rooms should wrap to conversations")
	}
}

func TestNextRoomTypeCycle(t *testing.T) {
	got := nextRoomType(query.RoomTypeAll)
	for _, want := range []string{"direct", "sms", "group", query.RoomTypeAll} {
		if got != want {
			t.Fatalf("cycle = %q, want %q", got, want)
		}
		got = nextRoomType(got)
	}
}

// =============================================================================
// SELECTION AND SCROLLING
// =============================================================================

func TestMoveSelectionClamps(t *testing.T) {
	m := loadedModel(t)

	m.moveSelection(-5)
	if m.selected != 0 {
		t.Errorf("selection clamped low = %d, want 0", m.selected)
	}
	m.moveSelection(99)
	if m.selected != len(m.filtered)-1 {
		t.Errorf("selection clamped high = %d, want %d", m.selected, len(m.filtered)-1)
	}
}

func TestNoticeLifecycle(t *testing.T) {
	m := loadedModel(t)
	next, _ := m.Update(ExportDoneMsg{Path: "/tmp/out.json"})
	m = next.(Model)
	if m.notice == "" || m.noticeIsErr {
		t.Fatalf("export success should set a notice, got %q", m.notice)
	}
	next, _ = m.Update(ClearNoticeMsg{})
	m = next.(Model)
	if m.notice != "" {
		t.Error("ClearNoticeMsg should clear the notice")
	}
}

// =============================================================================
// KEY MAP
// =============================================================================

func TestKeyMapHelpText(t *testing.T) {
	k := DefaultKeyMap()
	if len(k.ShortHelp()) == 0 {
		t.Error("short help must not be empty")
	}
	for _, group := range k.FullHelp() {
		for _, b := range group {
			if b.Help().Key == "" || b.Help().Desc == "" {
				t.Errorf("binding %v is missing help text", b.Keys())
			}
		}
	}
}
