// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package query filters and orders conversation groups.
//
// Run is a pure function of (groups, State): tab candidate selection,
// case-folded substring search, room-type filter and calendar-day filter
// compose conjunctively, and the survivors come back ordered by recency.
// Running it twice with identical inputs yields identical output; no
// hidden state exists.
//
// Debouncer is the timing primitive for search input: the engine observes
// a search term only after 300ms of input quiescence, and a superseding
// keystroke cancels the pending emission and restarts the clock.
package query
