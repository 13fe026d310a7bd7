// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/archview/internal/aggregate"
	"github.com/jeranaias/archview/internal/export"
	"github.com/jeranaias/archview/internal/ingest"
	"github.com/jeranaias/archview/internal/model"
	"github.com/jeranaias/archview/internal/prefs"
	"github.com/jeranaias/archview/internal/query"
)

// noticeTTL is how long transient status notices stay visible.
const noticeTTL = 3 * time.Second

// =============================================================================
// LOADING COMMANDS
// =============================================================================

// LoadArchiveCmd reads and parses the archive file, reporting progress on
// progressCh. The channel is closed when parsing finishes, so the paired
// listener command terminates.
func LoadArchiveCmd(path string, progressCh chan float64) tea.Cmd {
	return func() tea.Msg {
		defer close(progressCh)

		info, err := os.Stat(path)
		if err != nil {
			return LoadResultMsg{Err: fmt.Errorf("stat archive: %w", err)}
		}
		if err := ingest.ValidateSource(path, info.Size()); err != nil {
			return LoadResultMsg{Err: err}
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return LoadResultMsg{Err: fmt.Errorf("read archive: %w", err)}
		}

		res, err := ingest.LoadWithProgress(data, func(frac float64) {
			select {
			case progressCh <- frac:
			default:
			}
		})
		if err != nil {
			return LoadResultMsg{Err: err}
		}
		return LoadResultMsg{Result: res}
	}
}

// ListenProgressCmd forwards one progress fraction from the loader. The
// update loop re-issues it after each message until the channel closes.
func ListenProgressCmd(progressCh chan float64) tea.Cmd {
	return func() tea.Msg {
		frac, ok := <-progressCh
		if !ok {
			return nil
		}
		return LoadProgressMsg{Fraction: frac}
	}
}

// WatchArchiveCmd waits for the next settled change on the watched archive.
func WatchArchiveCmd(w *ingest.Watcher) tea.Cmd {
	return func() tea.Msg {
		if w == nil {
			return nil
		}
		if _, ok := <-w.Events(); !ok {
			return nil
		}
		return ArchiveChangedMsg{}
	}
}

// =============================================================================
// FILTERING COMMANDS
// =============================================================================

// WaitSearchSettledCmd waits for the debouncer to emit a settled term.
func WaitSearchSettledCmd(d *query.Debouncer) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-d.Settled(); !ok {
			return nil
		}
		return SearchSettledMsg{}
	}
}

// =============================================================================
// EXPORT COMMANDS
// =============================================================================

// ExportJSONCmd exports the filtered conversation set as JSON.
func ExportJSONCmd(groups []*model.Group, stats aggregate.Stats, st query.State, opts *export.Options) tea.Cmd {
	return func() tea.Msg {
		path, err := export.ExportToFile(export.NewJSONExporter(groups, stats, st), opts)
		return ExportDoneMsg{Path: path, Err: err}
	}
}

// ExportTranscriptCmd exports one conversation as a plain-text transcript.
func ExportTranscriptCmd(g *model.Group, opts *export.Options) tea.Cmd {
	return func() tea.Msg {
		path, err := export.ExportToFile(export.NewTranscriptExporter(g), opts)
		return ExportDoneMsg{Path: path, Err: err}
	}
}

// =============================================================================
// PREFERENCE COMMANDS
// =============================================================================

// LoadPrefsCmd restores persisted view preferences. A nil store yields nil.
func LoadPrefsCmd(store *prefs.Store) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		p, err := store.LoadPreferences(ctx)
		if err != nil {
			return nil
		}
		return PrefsLoadedMsg{Prefs: p}
	}
}

// SavePrefsCmd persists the current view preferences. Failures are silent:
// preferences are a convenience, not data.
func SavePrefsCmd(store *prefs.Store, p *prefs.Preferences) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = store.SavePreferences(ctx, p)
		return nil
	}
}

// =============================================================================
// UI STATE COMMANDS
// =============================================================================

// ClearNoticeCmd expires the status notice after noticeTTL.
func ClearNoticeCmd() tea.Cmd {
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return ClearNoticeMsg{}
	})
}
