// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the Bubble Tea model for the archive browser.
//
// The browser has four screens: loading (spinner plus parse progress),
// browse (the filtered conversation list), transcript (one conversation
// as aligned message bubbles), and error (archive rejection). Browse
// owns the filter controls: a debounced search input, a room-type cycle,
// a day filter, and the grouping tabs.
//
// Long-lived concerns run as re-issued commands: the loader reports
// progress over a channel, the file watcher emits reload triggers, and
// the search debouncer emits settled terms. Each listener command
// returns one message and is re-issued by Update, the standard Bubble
// Tea pattern for channel-backed sources.
package app
