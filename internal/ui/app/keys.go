// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app provides the archive browser component for the TUI.
//
// This file defines keyboard bindings for the browser. It provides a
// KeyMap with vim-like navigation and standard terminal shortcuts, along
// with help text generation for the help overlay.
package app

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the browser.
// Each binding supports multiple keys and includes help text.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Home       key.Binding
	End        key.Binding
	Open       key.Binding
	Back       key.Binding
	CycleTab   key.Binding
	CycleType  key.Binding
	Search     key.Binding
	DateFilter key.Binding
	ExportJSON key.Binding
	ExportText key.Binding
	Preview    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings for the browser.
// These bindings support both standard terminal navigation and vim-like
// shortcuts.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "move down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp/C-u", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn/C-d", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home/g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End/G", "go to bottom"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "open transcript"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "back / clear"),
		),
		CycleTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "cycle grouping"),
		),
		CycleType: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle room type"),
		),
		Search: key.NewBinding(
			key.WithKeys("/", "ctrl+f"),
			key.WithHelp("/ or C-f", "search"),
		),
		DateFilter: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "filter by date"),
		),
		ExportJSON: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export filtered JSON"),
		),
		ExportText: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export transcript"),
		),
		Preview: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "raw record preview"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q/C-c", "quit"),
		),
	}
}

// ShortHelp returns the key bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Search, k.CycleTab, k.Help, k.Quit}
}

// FullHelp returns the key bindings shown in the help overlay, grouped.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Navigation
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		// Filters
		{k.Search, k.CycleType, k.DateFilter, k.CycleTab},
		// Actions
		{k.Open, k.Back, k.ExportJSON, k.ExportText, k.Preview},
		// Misc
		{k.Help, k.Quit},
	}
}

// helpMarkdown is the help overlay content, rendered through Glamour.
const helpMarkdown = `# archview

Browse an exported chat-message archive.

## Navigation

| Key | Action |
|-----|--------|
| up/k, down/j | Move selection |
| PgUp, PgDn | Page |
| Home/g, End/G | Jump to top / bottom |
| Enter | Open transcript |
| Esc | Back, or clear active filters |

## Filters

| Key | Action |
|-----|--------|
| / | Search (applies after you stop typing) |
| t | Cycle room type: all, direct, sms, group |
| d | Filter by day (YYYY-MM-DD) |
| Tab | Cycle grouping: conversations, senders, rooms |

## Export

| Key | Action |
|-----|--------|
| e | Export the filtered set as JSON |
| x | Export the selected conversation as a transcript |

## Misc

| Key | Action |
|-----|--------|
| p | Raw JSON preview of the selected conversation's first record |
| ? | Toggle this help |
| q | Quit |
`
