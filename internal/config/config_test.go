// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"path/filepath"
	"sync"
	"testing"
)

func TestDefaultValues(t *testing.T) {
	cfg := Default()

	if cfg.UI.Theme != "dark" {
		t.Errorf("default theme = %q, want dark", cfg.UI.Theme)
	}
	if cfg.UI.ItemsPerPage <= 0 {
		t.Error("default items per page must be positive")
	}
	if !cfg.Watch.Enabled {
		t.Error("watch should default to enabled")
	}
	if cfg.Watch.DebounceMs <= 0 {
		t.Error("watch debounce must be positive")
	}
}

func TestTOMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.UI.Theme = "light"
	cfg.UI.ItemsPerPage = 42
	cfg.Export.OutputDir = "/tmp/exports"

	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML: %v", err)
	}

	loaded := Default()
	if err := LoadTOML(loaded, path); err != nil {
		t.Fatalf("LoadTOML: %v", err)
	}

	if loaded.UI.Theme != "light" {
		t.Errorf("theme = %q, want light", loaded.UI.Theme)
	}
	if loaded.UI.ItemsPerPage != 42 {
		t.Errorf("items per page = %d, want 42", loaded.UI.ItemsPerPage)
	}
	if loaded.Export.OutputDir != "/tmp/exports" {
		t.Errorf("output dir = %q", loaded.Export.OutputDir)
	}
}

func TestPartialFileGetsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	partial := &Config{UI: UIConfig{Theme: "light"}}
	if err := SaveTOML(partial, path); err != nil {
		t.Fatalf("SaveTOML: %v", err)
	}

	loaded := &Config{}
	if err := LoadTOML(loaded, path); err != nil {
		t.Fatalf("LoadTOML: %v", err)
	}
	if loaded.UI.Theme != "light" {
		t.Errorf("theme = %q, want light", loaded.UI.Theme)
	}
	if loaded.UI.ItemsPerPage != Default().UI.ItemsPerPage {
		t.Error("missing fields should be backfilled with defaults")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ARCHVIEW_THEME", "light")
	t.Setenv("ARCHVIEW_WATCH", "false")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.UI.Theme != "light" {
		t.Errorf("theme = %q, want light (env override)", cfg.UI.Theme)
	}
	if cfg.Watch.Enabled {
		t.Error("ARCHVIEW_WATCH=false should disable watching")
	}
}

// TestConfig_ConcurrentAccess tests that Global(), SetGlobal(), and
// ReloadGlobal() can be safely called concurrently.
// Run with: go test -race ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	ResetGlobalForTesting()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()

		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}
