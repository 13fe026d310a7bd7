// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for archview.
//
// Supports a TOML configuration file with sensible defaults and environment
// variable overrides.
//
// Configuration file location:
//   - ~/.archview/config.toml
//   - Built-in defaults otherwise
//
// The config covers the presentation layer only (theme, export directory,
// watch behavior). Core aggregation and filtering never read it.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/archview/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete archview configuration.
type Config struct {
	Version string `toml:"version"`

	// UI configuration
	UI UIConfig `toml:"ui"`

	// Export configuration
	Export ExportConfig `toml:"export"`

	// Archive watch configuration
	Watch WatchConfig `toml:"watch"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// Theme selects the color theme: "dark" or "light"
	Theme string `toml:"theme"`
	// ShowEmails includes author emails in list rows when present
	ShowEmails bool `toml:"show_emails"`
	// ShowTimestamps includes per-message timestamps in the transcript view
	ShowTimestamps bool `toml:"show_timestamps"`
	// ItemsPerPage is the page-jump size hint for pgup/pgdn
	ItemsPerPage int `toml:"items_per_page"`
}

// ExportConfig contains export output settings.
type ExportConfig struct {
	// OutputDir is where export files are written. Empty = working directory.
	OutputDir string `toml:"output_dir"`
}

// WatchConfig controls archive auto-reload.
type WatchConfig struct {
	// Enabled turns on fsnotify watching of the loaded archive file
	Enabled bool `toml:"enabled"`
	// DebounceMs is how long the file must stay quiet before a reload
	DebounceMs int `toml:"debounce_ms"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: "1",
		UI: UIConfig{
			Theme:          "dark",
			ShowEmails:     false,
			ShowTimestamps: true,
			ItemsPerPage:   20,
		},
		Export: ExportConfig{
			OutputDir: ".",
		},
		Watch: WatchConfig{
			Enabled:    true,
			DebounceMs: 500,
		},
	}
}

// fillDefaults backfills zero values after a partial file load.
func (c *Config) fillDefaults() {
	def := Default()
	if c.Version == "" {
		c.Version = def.Version
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
	if c.UI.ItemsPerPage <= 0 {
		c.UI.ItemsPerPage = def.UI.ItemsPerPage
	}
	if c.Export.OutputDir == "" {
		c.Export.OutputDir = def.Export.OutputDir
	}
	if c.Watch.DebounceMs <= 0 {
		c.Watch.DebounceMs = def.Watch.DebounceMs
	}
}

// ApplyEnvOverrides applies ARCHVIEW_* environment variables on top of the
// loaded values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("ARCHVIEW_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("ARCHVIEW_EXPORT_DIR"); v != "" {
		c.Export.OutputDir = v
	}
	if v := os.Getenv("ARCHVIEW_WATCH"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Watch.Enabled = b
		}
	}
}

// =============================================================================
// PATHS
// =============================================================================

// Dir returns the archview state directory (~/.archview), creating it if
// needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	dir := filepath.Join(home, ".archview")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create state directory: %w", err)
	}
	return dir, nil
}

// Path returns the TOML config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads the config file, merged over defaults. A missing file is not
// an error: defaults apply.
func Load() (*Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return cfg, err
	}
	if _, statErr := os.Stat(path); statErr != nil {
		cfg.ApplyEnvOverrides()
		return cfg, nil
	}

	if err := LoadTOML(cfg, path); err != nil {
		return Default(), fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyEnvOverrides()
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	cfg.fillDefaults()
	return nil
}

// Save writes the configuration to the config file atomically.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to a TOML file atomically.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode TOML: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// =============================================================================
// GLOBAL CONFIG
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			// Log but don't fail - use defaults
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// ResetGlobalForTesting resets the global config state for testing.
// This should only be used in tests to reset state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
