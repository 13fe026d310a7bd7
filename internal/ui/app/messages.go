// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app provides the archive browser component for the TUI.
//
// This file defines all Bubble Tea message types used by the browser.
// Messages are organized into the following categories:
//   - Loading: archive load progress, completion, and reload triggers
//   - Filtering: debounced search settlement
//   - Export: export completion notices
//   - UI State: notice expiry
//
// All message types follow Bubble Tea conventions and are immutable.
package app

import (
	"github.com/jeranaias/archview/internal/ingest"
	"github.com/jeranaias/archview/internal/prefs"
)

// =============================================================================
// LOADING MESSAGES
// =============================================================================

// LoadProgressMsg reports archive parsing progress in [0, 1].
type LoadProgressMsg struct {
	Fraction float64
}

// LoadResultMsg delivers the parsed archive, or the reason it was rejected.
type LoadResultMsg struct {
	Result *ingest.Result
	Err    error
}

// ArchiveChangedMsg signals that the watched archive file settled after a
// change and should be reloaded.
type ArchiveChangedMsg struct{}

// PrefsLoadedMsg delivers the persisted view preferences.
type PrefsLoadedMsg struct {
	Prefs *prefs.Preferences
}

// =============================================================================
// FILTERING MESSAGES
// =============================================================================

// SearchSettledMsg signals that search input went quiet long enough for the
// pending term to be applied.
type SearchSettledMsg struct{}

// =============================================================================
// EXPORT MESSAGES
// =============================================================================

// ExportDoneMsg reports the outcome of an export.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// =============================================================================
// UI STATE MESSAGES
// =============================================================================

// ClearNoticeMsg expires the transient status notice.
type ClearNoticeMsg struct{}
