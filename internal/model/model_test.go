// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"testing"
	"time"
)

// =============================================================================
// RECORD TESTS
// =============================================================================

func TestRecordFallbackChains(t *testing.T) {
	now := time.Now()

	rec := NewRecordFromMap(map[string]any{}, now)
	if rec.Author() != UnknownUser {
		t.Errorf("empty record author = %q, want %q", rec.Author(), UnknownUser)
	}
	if rec.RoomKey() != UnknownKey {
		t.Errorf("empty record room key = %q, want %q", rec.RoomKey(), UnknownKey)
	}
	if rec.SenderKey() != UnknownKey {
		t.Errorf("empty record sender key = %q, want %q", rec.SenderKey(), UnknownKey)
	}

	rec = NewRecordFromMap(map[string]any{"room_name": "General"}, now)
	if rec.RoomKey() != "General" {
		t.Errorf("room key should fall back to room name, got %q", rec.RoomKey())
	}

	rec = NewRecordFromMap(map[string]any{"room_id": "r1", "room_name": "General"}, now)
	if rec.RoomKey() != "r1" {
		t.Errorf("room id should win over room name, got %q", rec.RoomKey())
	}
}

func TestRecordTimestampResolution(t *testing.T) {
	loadTime := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  map[string]any
		want time.Time
	}{
		{
			"iso field wins",
			map[string]any{"ts_iso": "2024-01-01T10:00:00Z", "timestamp": "2023-01-01T00:00:00Z", "ts": 100.0},
			time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			"generic field second",
			map[string]any{"timestamp": "2023-05-05T08:30:00Z", "ts": 100.0},
			time.Date(2023, 5, 5, 8, 30, 0, 0, time.UTC),
		},
		{
			"epoch number third",
			map[string]any{"ts": 1700000000.0},
			time.Unix(1700000000, 0),
		},
		{
			"no timestamp resolves to load time",
			map[string]any{"message": "hi"},
			loadTime,
		},
		{
			"malformed iso resolves to epoch zero",
			map[string]any{"ts_iso": "not a date"},
			time.Unix(0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecordFromMap(tt.raw, loadTime)
			if !rec.Timestamp().Equal(tt.want) {
				t.Errorf("Timestamp() = %v, want %v", rec.Timestamp(), tt.want)
			}
		})
	}
}

func TestRecordPreservesExtraFields(t *testing.T) {
	raw := map[string]any{
		"message":       "hi",
		"custom_field":  "kept",
		"nested_object": map[string]any{"a": 1.0},
	}
	rec := NewRecordFromMap(raw, time.Now())

	if rec.Extra["custom_field"] != "kept" {
		t.Error("unknown fields should be preserved in Extra")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["custom_field"] != "kept" {
		t.Error("extra fields should round-trip through JSON")
	}
	if out["message"] != "hi" {
		t.Error("known fields should round-trip through JSON")
	}
}

// =============================================================================
// GROUP TESTS
// =============================================================================

func TestGroupLatestStrictGreaterThan(t *testing.T) {
	loadTime := time.Now()
	a := NewRecordFromMap(map[string]any{"message": "a", "ts_iso": "2024-01-01T10:00:00Z"}, loadTime)
	b := NewRecordFromMap(map[string]any{"message": "b", "ts_iso": "2024-01-01T10:00:00Z"}, loadTime)
	c := NewRecordFromMap(map[string]any{"message": "c", "ts_iso": "2024-01-01T11:00:00Z"}, loadTime)

	g := NewGroup("r1")
	g.Append(a)
	g.Append(b) // equal timestamp: must NOT replace a
	if g.Latest.Body != "a" {
		t.Errorf("equal timestamp replaced latest, got %q", g.Latest.Body)
	}
	g.Append(c)
	if g.Latest.Body != "c" {
		t.Errorf("strictly newer message should become latest, got %q", g.Latest.Body)
	}
	if g.MessageCount != 3 || len(g.Messages) != g.MessageCount {
		t.Errorf("message count %d does not match list length %d", g.MessageCount, len(g.Messages))
	}
}

func TestGroupParticipantUnion(t *testing.T) {
	loadTime := time.Now()
	withMembers := NewRecordFromMap(map[string]any{
		"author_user_name": "Alice",
		"room_members": []any{
			map[string]any{"user_id": "u1", "user_name": "Alice"},
			map[string]any{"user_id": "u2", "user_name": "Bob"},
		},
	}, loadTime)
	noMembers := NewRecordFromMap(map[string]any{"author_user_name": "Charlie"}, loadTime)
	dup := NewRecordFromMap(map[string]any{"author_user_name": "Bob"}, loadTime)

	g := NewGroup("r1")
	g.Append(withMembers)
	g.Append(noMembers)
	g.Append(dup)

	want := []string{"Alice", "Bob", "Charlie"}
	if len(g.Participants) != len(want) {
		t.Fatalf("participants = %v, want %v", g.Participants, want)
	}
	for i, name := range want {
		if g.Participants[i] != name {
			t.Errorf("participant[%d] = %q, want %q", i, g.Participants[i], name)
		}
	}
}

func TestGroupSortMessagesStable(t *testing.T) {
	loadTime := time.Now()
	g := NewGroup("r1")
	// Two equal-timestamp messages inserted after a later one
	late := NewRecordFromMap(map[string]any{"message": "late", "ts_iso": "2024-02-01T00:00:00Z"}, loadTime)
	e1 := NewRecordFromMap(map[string]any{"message": "first", "ts_iso": "2024-01-01T00:00:00Z"}, loadTime)
	e2 := NewRecordFromMap(map[string]any{"message": "second", "ts_iso": "2024-01-01T00:00:00Z"}, loadTime)
	g.Append(late)
	g.Append(e1)
	g.Append(e2)
	g.SortMessages()

	got := []string{g.Messages[0].Body, g.Messages[1].Body, g.Messages[2].Body}
	want := []string{"first", "second", "late"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted order = %v, want %v", got, want)
		}
	}
}
