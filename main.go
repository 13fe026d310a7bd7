// archview - A terminal viewer for exported chat-message archives.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/jeranaias/archview/internal/config"
	"github.com/jeranaias/archview/internal/ingest"
	"github.com/jeranaias/archview/internal/prefs"
	"github.com/jeranaias/archview/internal/ui/app"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	args := os.Args[1:]
	if len(args) == 1 {
		switch args[0] {
		case "-v", "--version", "version":
			fmt.Printf("archview %s (%s, built %s)\n", Version, GitCommit, BuildDate)
			return
		case "-h", "--help", "help":
			usage(os.Stdout)
			return
		}
	}
	if len(args) != 1 {
		usage(os.Stderr)
		os.Exit(2)
	}

	path := args[0]
	if err := run(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage(w *os.File) {
	fmt.Fprintf(w, `archview - browse an exported chat-message archive

Usage:
  archview <archive.json>
  archview --version

The archive must be a JSON array of message records. Inside the viewer,
press ? for keyboard shortcuts.
`)
}

func run(path string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("archview is interactive and needs a terminal")
	}

	// Fail fast on an unusable file before entering the alt screen
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", path, err)
	}
	if err := ingest.ValidateSource(path, info.Size()); err != nil {
		return err
	}

	// Lock in the color profile before any rendering happens
	lipglossProfile := termenv.ColorProfile()
	termenv.SetDefaultOutput(termenv.NewOutput(os.Stdout, termenv.WithProfile(lipglossProfile)))

	cfg := config.Global()

	// Preference store failures are non-fatal: the viewer works without one
	var store *prefs.Store
	if dir, err := config.Dir(); err == nil {
		if s, err := prefs.Open(filepath.Join(dir, "prefs.db")); err == nil {
			store = s
		} else {
			fmt.Fprintf(os.Stderr, "Warning: preference store unavailable: %v\n", err)
		}
	}

	// Watch the archive for rewrites so the view can auto-reload
	var watcher *ingest.Watcher
	if cfg.Watch.Enabled {
		debounce := time.Duration(cfg.Watch.DebounceMs) * time.Millisecond
		w, err := ingest.NewWatcher(path, debounce)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: file watching unavailable: %v\n", err)
		} else if err := w.Watch(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: file watching unavailable: %v\n", err)
		} else {
			watcher = w
		}
	}

	m := app.New(path, cfg, store, watcher)
	defer m.Close()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running archview: %w", err)
	}
	return nil
}
