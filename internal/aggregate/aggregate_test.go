// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package aggregate

import (
	"fmt"
	"testing"
	"time"

	"github.com/jeranaias/archview/internal/model"
)

func recordFrom(t *testing.T, raw map[string]any) *model.Record {
	t.Helper()
	return model.NewRecordFromMap(raw, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
}

// =============================================================================
// GROUPING TESTS
// =============================================================================

func TestBuildGroupsTwoMessageScenario(t *testing.T) {
	records := []*model.Record{
		recordFrom(t, map[string]any{"author_user_name": "A", "room_id": "r1", "ts_iso": "2024-01-01T10:00:00Z", "message": "hi"}),
		recordFrom(t, map[string]any{"author_user_name": "B", "room_id": "r1", "ts_iso": "2024-01-01T11:00:00Z", "message": "yo"}),
	}

	groups := BuildGroups(records)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}

	g := groups[0]
	if g.Key != "r1" {
		t.Errorf("group key = %q, want r1", g.Key)
	}
	if g.MessageCount != 2 {
		t.Errorf("messageCount = %d, want 2", g.MessageCount)
	}
	if g.Latest.Body != "yo" {
		t.Errorf("latest message = %q, want yo", g.Latest.Body)
	}
	if g.Messages[0].Body != "hi" || g.Messages[1].Body != "yo" {
		t.Errorf("message order = [%q, %q], want [hi, yo]", g.Messages[0].Body, g.Messages[1].Body)
	}
}

func TestBuildGroupsPartitionsEveryRecord(t *testing.T) {
	// A spread of rooms, some keyed by id, some by name, some unknown
	var records []*model.Record
	for i := 0; i < 50; i++ {
		records = append(records, recordFrom(t, map[string]any{
			"room_id": fmt.Sprintf("room-%d", i%7),
			"message": fmt.Sprintf("m%d", i),
		}))
	}
	for i := 0; i < 13; i++ {
		records = append(records, recordFrom(t, map[string]any{"room_name": "Named Room", "message": "n"}))
	}
	records = append(records, recordFrom(t, map[string]any{"message": "orphan"}))

	groups := BuildGroups(records)

	total := 0
	keys := make(map[string]bool)
	for _, g := range groups {
		if keys[g.Key] {
			t.Errorf("duplicate group for key %q", g.Key)
		}
		keys[g.Key] = true
		if len(g.Messages) != g.MessageCount {
			t.Errorf("group %q: list length %d != count %d", g.Key, len(g.Messages), g.MessageCount)
		}
		total += g.MessageCount
	}
	if total != len(records) {
		t.Errorf("sum of group counts = %d, want %d", total, len(records))
	}
	if !keys["unknown"] {
		t.Error("record without room fields should land in the unknown group")
	}
}

func TestBuildGroupsSortsWithinGroup(t *testing.T) {
	records := []*model.Record{
		recordFrom(t, map[string]any{"room_id": "r1", "message": "third", "ts_iso": "2024-03-01T00:00:00Z"}),
		recordFrom(t, map[string]any{"room_id": "r1", "message": "first", "ts_iso": "2024-01-01T00:00:00Z"}),
		recordFrom(t, map[string]any{"room_id": "r1", "message": "second", "ts_iso": "2024-02-01T00:00:00Z"}),
	}

	groups := BuildGroups(records)
	g := groups[0]
	for i, want := range []string{"first", "second", "third"} {
		if g.Messages[i].Body != want {
			t.Errorf("messages[%d] = %q, want %q", i, g.Messages[i].Body, want)
		}
	}
	for i := 1; i < len(g.Messages); i++ {
		if g.Messages[i].Timestamp().Before(g.Messages[i-1].Timestamp()) {
			t.Error("message list must be non-decreasing by resolved timestamp")
		}
	}
}

// =============================================================================
// STATS TESTS
// =============================================================================

func TestArchiveStats(t *testing.T) {
	records := []*model.Record{
		recordFrom(t, map[string]any{"author_user_id": "u1", "room_id": "r1", "room_type": "direct", "message": "a"}),
		recordFrom(t, map[string]any{"author_user_id": "u2", "room_id": "r1", "room_type": "direct", "message": "b"}),
		recordFrom(t, map[string]any{"author_user_id": "u1", "room_id": "r2", "room_type": "group", "message": "c"}),
		recordFrom(t, map[string]any{"author_user_name": "Nameless Norm", "room_id": "r3", "message": "d"}),
	}

	arch := NewArchive()
	arch.SetRecords(records)

	stats := arch.Stats()
	if stats.TotalMessages != 4 {
		t.Errorf("TotalMessages = %d, want 4", stats.TotalMessages)
	}
	if stats.TotalConversations != 3 || stats.DistinctRooms != 3 {
		t.Errorf("conversations/rooms = %d/%d, want 3/3", stats.TotalConversations, stats.DistinctRooms)
	}
	if stats.DistinctSenders != 3 {
		t.Errorf("DistinctSenders = %d, want 3", stats.DistinctSenders)
	}
	if len(stats.RoomTypes) != 2 || stats.RoomTypes[0] != "direct" || stats.RoomTypes[1] != "group" {
		t.Errorf("RoomTypes = %v, want [direct group]", stats.RoomTypes)
	}
}

// =============================================================================
// MEMOIZATION TESTS
// =============================================================================

func TestArchiveMemoizesGroups(t *testing.T) {
	records := []*model.Record{
		recordFrom(t, map[string]any{"room_id": "r1", "message": "a"}),
	}

	arch := NewArchive()
	arch.SetRecords(records)

	first := arch.Groups()
	second := arch.Groups()
	if len(first) != 1 || len(second) != 1 {
		t.Fatal("expected one group")
	}
	if first[0] != second[0] {
		t.Error("repeated Groups() calls must return the memoized build")
	}

	arch.SetRecords(records) // new reference assignment invalidates
	third := arch.Groups()
	if third[0] == first[0] {
		t.Error("SetRecords must trigger a rebuild")
	}

	arch.Reset()
	if !arch.Empty() {
		t.Error("Reset must discard records")
	}
	if len(arch.Groups()) != 0 {
		t.Error("reset archive must have no groups")
	}
}
