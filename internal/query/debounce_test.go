// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package query

import (
	"testing"
	"time"
)

// Short interval keeps the tests fast; waits are generous multiples of it
// to stay reliable on slow CI machines.
const testInterval = 25 * time.Millisecond

func TestDebouncerEmitsAfterQuiescence(t *testing.T) {
	d := NewDebouncer(testInterval)
	defer d.Stop()

	d.Trigger("hello")

	select {
	case term := <-d.Settled():
		t.Fatalf("emitted %q before the quiet period elapsed", term)
	case <-time.After(testInterval / 3):
	}

	select {
	case term := <-d.Settled():
		if term != "hello" {
			t.Errorf("settled term = %q, want hello", term)
		}
	case <-time.After(10 * testInterval):
		t.Fatal("no emission after the quiet period")
	}
}

func TestDebouncerSupersedingKeystrokeRestartsTimer(t *testing.T) {
	d := NewDebouncer(testInterval)
	defer d.Stop()

	d.Trigger("h")
	d.Trigger("he")
	d.Trigger("hel")

	select {
	case term := <-d.Settled():
		if term != "hel" {
			t.Errorf("settled term = %q, want only the latest (hel)", term)
		}
	case <-time.After(10 * testInterval):
		t.Fatal("no emission after the quiet period")
	}

	// Nothing further should arrive
	select {
	case term := <-d.Settled():
		t.Fatalf("unexpected extra emission %q", term)
	case <-time.After(3 * testInterval):
	}
}

func TestDebouncerLatestWinsWhenUnconsumed(t *testing.T) {
	d := NewDebouncer(testInterval)
	defer d.Stop()

	d.Trigger("first")
	time.Sleep(4 * testInterval) // let "first" settle unconsumed
	d.Trigger("second")
	time.Sleep(4 * testInterval)

	select {
	case term := <-d.Settled():
		if term != "second" {
			t.Errorf("settled term = %q, want second (last write wins)", term)
		}
	default:
		t.Fatal("expected a settled term")
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := NewDebouncer(testInterval)

	d.Trigger("doomed")
	d.Stop()

	select {
	case term := <-d.Settled():
		t.Fatalf("emission %q after Stop", term)
	case <-time.After(4 * testInterval):
	}

	// Triggers after Stop are ignored
	d.Trigger("ignored")
	select {
	case term := <-d.Settled():
		t.Fatalf("emission %q after Stop", term)
	case <-time.After(4 * testInterval):
	}
}
