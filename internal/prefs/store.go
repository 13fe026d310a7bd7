// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prefs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNotFound = errors.New("preference not found")
	ErrClosed   = errors.New("preference store is closed")
)

// =============================================================================
// PREFERENCES
// =============================================================================

// Preferences are the view settings restored between sessions.
type Preferences struct {
	// LastTab is the grouping tab active when the app last exited
	LastTab string `json:"lastTab"`
	// LastRoomType is the room-type filter active at exit
	LastRoomType string `json:"lastRoomType"`
	// ShowTimestamps toggles per-message timestamps in transcripts
	ShowTimestamps bool `json:"showTimestamps"`
	// ItemsPerPage is the page-jump size
	ItemsPerPage int `json:"itemsPerPage"`
}

// sessionKey is the settings-table key the serialized Preferences live under.
const sessionKey = "session"

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

// =============================================================================
// STORE
// =============================================================================

// Store is a small SQLite-backed key-value store for view preferences.
// Safe for use from multiple goroutines; SQLite only supports one writer
// at a time, so the connection pool is limited to a single connection.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the preference database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Get returns the raw value stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if s.db == nil {
		return "", ErrClosed
	}
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read setting %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if s.db == nil {
		return ErrClosed
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write setting %q: %w", key, err)
	}
	return nil
}

// LoadPreferences reads the stored session preferences. A missing record
// is not an error: defaults apply.
func (s *Store) LoadPreferences(ctx context.Context) (*Preferences, error) {
	prefs := defaultPreferences()

	raw, err := s.Get(ctx, sessionKey)
	if errors.Is(err, ErrNotFound) {
		return prefs, nil
	}
	if err != nil {
		return prefs, err
	}

	if err := json.Unmarshal([]byte(raw), prefs); err != nil {
		// A corrupt record falls back to defaults rather than failing startup
		return defaultPreferences(), nil
	}
	if prefs.ItemsPerPage <= 0 {
		prefs.ItemsPerPage = defaultPreferences().ItemsPerPage
	}
	return prefs, nil
}

// SavePreferences persists the session preferences.
func (s *Store) SavePreferences(ctx context.Context, prefs *Preferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	return s.Set(ctx, sessionKey, string(data))
}

func defaultPreferences() *Preferences {
	return &Preferences{
		LastTab:        "conversations",
		LastRoomType:   "all",
		ShowTimestamps: true,
		ItemsPerPage:   20,
	}
}
