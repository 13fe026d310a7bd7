// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles defines the archview color palette and Lip Gloss styles.
//
// Colors are AdaptiveColor pairs so the same theme works on light and
// dark terminals; Theme detects capabilities through termenv once at
// startup and exposes pre-built styles for every view: list rows and
// room-type badges, transcript bubbles (own vs counterpart), the filter
// and status bars, and modal overlays.
package styles
