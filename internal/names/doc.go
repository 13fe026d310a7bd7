// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package names derives human-facing labels for conversations.
//
// Room names in the archive follow free-text conventions like
// "Direct [Alice] [Bob]" and "LEGACY_SMS [Joshua] [+13306053584]". The
// resolver extracts a short display label from them, and for two-party
// room types also a "primary participant" used to attribute message
// ownership in the transcript view.
//
// Everything here is a best-effort heuristic over a naming convention. It
// is isolated in this package so a better rule (say, explicit member-role
// fields) can replace it without touching grouping or filtering.
package names
