// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package aggregate groups archive records into conversations.
//
// BuildGroups is the single-pass grouping algorithm; Archive wraps it with
// memoization so the groups are rebuilt only when the source record slice
// changes, not on every filter keystroke. All derived structures are
// treated as immutable outputs: a new load replaces them wholesale.
//
// Guarantee: every input record lands in exactly one group, so the sum of
// group message counts always equals the input length.
package aggregate
