// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prefs persists view preferences between sessions.
//
// Preferences (active tab, room-type filter, transcript toggles) are
// serialized as one JSON record in a SQLite settings table under
// ~/.archview/prefs.db. Loading tolerates a missing or corrupt record
// by falling back to defaults, so a bad database never blocks startup.
package prefs
