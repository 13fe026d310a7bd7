// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ingest

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// ARCHIVE WATCHER
// =============================================================================

// Watcher reports settled changes to one archive file so the caller can
// re-ingest it. The parent directory is watched rather than the file itself
// because editors and exporters commonly replace the file via rename.
//
// Rapid successive events are debounced: a change is reported only after
// the file has been quiet for the debounce interval.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	events   chan struct{}

	mu      sync.Mutex
	pending time.Time // last change time, zero when nothing pending

	ctx    context.Context
	cancel context.CancelFunc
}

// NewWatcher creates a watcher for the archive at path.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		path:     abs,
		watcher:  fsw,
		debounce: debounce,
		events:   make(chan struct{}, 1),
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Watch starts watching for changes.
func (w *Watcher) Watch() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	go w.processEvents()
	go w.processPending()

	return nil
}

// Events is the settled-change channel. The channel has capacity one and
// changes coalesce: a slow consumer sees at most one pending notification.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.cancel()
	return w.watcher.Close()
}

// processEvents filters raw fsnotify events down to changes of the watched
// file and marks them pending.
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Name != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.mu.Lock()
			w.pending = time.Now()
			w.mu.Unlock()

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Non-fatal: keep watching
		}
	}
}

// processPending emits a notification once a pending change has been quiet
// for the debounce interval.
func (w *Watcher) processPending() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case <-ticker.C:
			w.mu.Lock()
			settled := !w.pending.IsZero() && time.Since(w.pending) >= w.debounce
			if settled {
				w.pending = time.Time{}
			}
			w.mu.Unlock()

			if settled {
				select {
				case w.events <- struct{}{}:
				default: // already one queued
				}
			}
		}
	}
}
