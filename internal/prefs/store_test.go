// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prefs

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "prefs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetSetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get on empty store = %v, want ErrNotFound", err)
	}

	if err := s.Set(ctx, "theme", "dark"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := s.Get(ctx, "theme")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "dark" {
		t.Errorf("Get = %q, want dark", got)
	}

	// Upsert replaces
	if err := s.Set(ctx, "theme", "light"); err != nil {
		t.Fatalf("Set (replace): %v", err)
	}
	got, _ = s.Get(ctx, "theme")
	if got != "light" {
		t.Errorf("Get after replace = %q, want light", got)
	}
}

func TestPreferencesDefaultsWhenEmpty(t *testing.T) {
	s := openTestStore(t)

	p, err := s.LoadPreferences(context.Background())
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if p.LastTab != "conversations" {
		t.Errorf("LastTab = %q, want conversations", p.LastTab)
	}
	if p.LastRoomType != "all" {
		t.Errorf("LastRoomType = %q, want all", p.LastRoomType)
	}
	if p.ItemsPerPage <= 0 {
		t.Error("ItemsPerPage must be positive")
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	want := &Preferences{
		LastTab:        "senders",
		LastRoomType:   "direct",
		ShowTimestamps: false,
		ItemsPerPage:   35,
	}
	if err := s.SavePreferences(ctx, want); err != nil {
		t.Fatalf("SavePreferences: %v", err)
	}

	got, err := s.LoadPreferences(ctx)
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if *got != *want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestCorruptRecordFallsBackToDefaults(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "session", "{not json"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	p, err := s.LoadPreferences(ctx)
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if p.LastTab != "conversations" {
		t.Errorf("corrupt record should yield defaults, got LastTab=%q", p.LastTab)
	}
}

func TestClosedStore(t *testing.T) {
	s := openTestStore(t)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Set(context.Background(), "k", "v"); !errors.Is(err, ErrClosed) {
		t.Errorf("Set after Close = %v, want ErrClosed", err)
	}
	if _, err := s.Get(context.Background(), "k"); !errors.Is(err, ErrClosed) {
		t.Errorf("Get after Close = %v, want ErrClosed", err)
	}
}
