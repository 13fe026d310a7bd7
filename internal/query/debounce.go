// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package query

import (
	"sync"
	"time"
)

// DebounceInterval is how long search input must stay quiet before the
// engine observes the term.
const DebounceInterval = 300 * time.Millisecond

// =============================================================================
// DEBOUNCER
// =============================================================================

// Debouncer buffers raw search input and emits a term on Settled only
// after the configured quiet period. A superseding Trigger cancels the
// pending emission and restarts the timer, so only the latest term is
// ever observed.
//
// The Settled channel has capacity one and a newer term replaces an
// unconsumed older one: last write wins.
type Debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	timer    *time.Timer
	out      chan string
	stopped  bool
}

// NewDebouncer creates a debouncer with the given quiet interval.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		out:      make(chan string, 1),
	}
}

// Trigger records a new raw term, restarting the quiet-period timer.
func (d *Debouncer) Trigger(term string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, func() {
		d.emit(term)
	})
}

// Settled is the channel of debounced terms.
func (d *Debouncer) Settled() <-chan string {
	return d.out
}

// Stop cancels any pending emission. The debouncer ignores Triggers
// afterwards.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// emit delivers a settled term, replacing any unconsumed older one.
func (d *Debouncer) emit(term string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	select {
	case <-d.out:
	default:
	}
	d.out <- term
}
