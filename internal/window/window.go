// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package window maps an ordered conversation list and a scroll offset to
// the subset of rows that must be rendered.
//
// Rendering cost stays bounded by the viewport, not the list: on every
// scroll or list change only the visible index range (plus a small buffer
// on each side) is recomputed, never the whole list.
package window

import (
	"github.com/jeranaias/archview/internal/model"
)

// BufferRows is rendered on each side of the visible range so small
// scrolls reveal already-rendered rows.
const BufferRows = 5

// =============================================================================
// PROJECTION
// =============================================================================

// Item is one renderable row, tagged with its absolute index in the
// ordered list for stable keying.
type Item struct {
	Index int
	Group *model.Group
}

// Slice is the windowed render state for one scroll position.
type Slice struct {
	// Items are the rows to render, in list order.
	Items []Item

	// Start and End are the half-open absolute index range of Items.
	Start, End int

	// TotalHeight is rowHeight times the item count, for a native-feeling
	// scrollbar over the whole list.
	TotalHeight int

	// OffsetY is the pixel offset of the first rendered row, for absolute
	// positioning inside the scroll container.
	OffsetY int
}

// Project computes the minimal contiguous index range covering the
// viewport at scrollOffset, widened by BufferRows on each side and clamped
// to the list bounds.
func Project(groups []*model.Group, rowHeight, viewportHeight, scrollOffset int) Slice {
	if rowHeight <= 0 {
		rowHeight = 1
	}
	if viewportHeight < 0 {
		viewportHeight = 0
	}

	total := len(groups) * rowHeight

	// Clamp the scroll position to the scrollable range.
	maxScroll := total - viewportHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}
	if scrollOffset > maxScroll {
		scrollOffset = maxScroll
	}

	start := scrollOffset/rowHeight - BufferRows
	if start < 0 {
		start = 0
	}

	visible := (viewportHeight + rowHeight - 1) / rowHeight
	end := scrollOffset/rowHeight + visible + BufferRows
	if end > len(groups) {
		end = len(groups)
	}
	if start > end {
		start = end
	}

	items := make([]Item, 0, end-start)
	for i := start; i < end; i++ {
		items = append(items, Item{Index: i, Group: groups[i]})
	}

	return Slice{
		Items:       items,
		Start:       start,
		End:         end,
		TotalHeight: total,
		OffsetY:     start * rowHeight,
	}
}
