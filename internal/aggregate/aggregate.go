// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package aggregate

import (
	"sync"

	"github.com/jeranaias/archview/internal/model"
)

// =============================================================================
// GROUPING
// =============================================================================

// BuildGroups partitions records into conversation groups in one pass.
// Records are visited in input order; groups are returned in
// first-encounter order. Each group's message list is sorted ascending by
// resolved timestamp afterwards (stable, so equal timestamps keep input
// order). No record is dropped or duplicated.
func BuildGroups(records []*model.Record) []*model.Group {
	byKey := make(map[string]*model.Group)
	groups := make([]*model.Group, 0)

	for _, rec := range records {
		key := rec.RoomKey()
		g, ok := byKey[key]
		if !ok {
			g = model.NewGroup(key)
			byKey[key] = g
			groups = append(groups, g)
		}
		g.Append(rec)
	}

	for _, g := range groups {
		g.SortMessages()
	}

	return groups
}

// =============================================================================
// STATS
// =============================================================================

// Stats are the archive-level counters shown in the status line.
type Stats struct {
	TotalMessages      int
	TotalConversations int
	DistinctSenders    int
	DistinctRooms      int
	RoomTypes          []string // distinct non-empty types, first-encounter order
}

// buildStats derives the counters from records and their groups.
func buildStats(records []*model.Record, groups []*model.Group) Stats {
	senders := make(map[string]struct{})
	for _, rec := range records {
		senders[rec.SenderKey()] = struct{}{}
	}

	typesSeen := make(map[string]struct{})
	types := make([]string, 0, 4)
	for _, g := range groups {
		if g.RoomType == "" {
			continue
		}
		if _, ok := typesSeen[g.RoomType]; ok {
			continue
		}
		typesSeen[g.RoomType] = struct{}{}
		types = append(types, g.RoomType)
	}

	return Stats{
		TotalMessages:      len(records),
		TotalConversations: len(groups),
		DistinctSenders:    len(senders),
		DistinctRooms:      len(groups),
		RoomTypes:          types,
	}
}

// =============================================================================
// ARCHIVE
// =============================================================================

// Archive holds the in-memory snapshot of loaded records and memoizes the
// derived groups and stats. The rebuild happens whenever the source slice
// reference changes; otherwise Groups and Stats return the cached values.
type Archive struct {
	mu      sync.Mutex
	records []*model.Record
	groups  []*model.Group
	stats   Stats
	built   bool
}

// NewArchive creates an empty archive.
func NewArchive() *Archive {
	return &Archive{}
}

// SetRecords replaces the source records and invalidates derived state.
func (a *Archive) SetRecords(records []*model.Record) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = records
	a.groups = nil
	a.stats = Stats{}
	a.built = false
}

// Reset discards all records and derived state.
func (a *Archive) Reset() {
	a.SetRecords(nil)
}

// Records returns the current source records.
func (a *Archive) Records() []*model.Record {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.records
}

// Groups returns the conversation groups, rebuilding if needed.
func (a *Archive) Groups() []*model.Group {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.build()
	return a.groups
}

// Stats returns the archive counters, rebuilding if needed.
func (a *Archive) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.build()
	return a.stats
}

// Empty reports whether any records are loaded.
func (a *Archive) Empty() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.records) == 0
}

// build rebuilds derived state once per SetRecords. Callers hold a.mu.
func (a *Archive) build() {
	if a.built {
		return
	}
	a.groups = BuildGroups(a.records)
	a.stats = buildStats(a.records, a.groups)
	a.built = true
}
