// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// STRING UTILITY TESTS
// =============================================================================

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxRunes int
		want     string
	}{
		{"shorter than limit", "hello", 10, "hello"},
		{"exactly at limit", "hello", 5, "hello"},
		{"over limit", "hello world", 8, "hello..."},
		{"zero limit", "hello", 0, ""},
		{"tiny limit keeps no ellipsis", "hello", 2, "he"},
		{"multibyte preserved", "héllo wörld", 8, "héllo..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateRunes(tt.input, tt.maxRunes)
			if got != tt.want {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tt.input, tt.maxRunes, got, tt.want)
			}
		})
	}
}

func TestTruncateWidth_CJK(t *testing.T) {
	// Each CJK character is 2 columns wide
	s := "日本語のテキスト"
	got := TruncateWidth(s, 8)
	if StringWidth(got) > 8 {
		t.Errorf("TruncateWidth produced width %d, want <= 8 (%q)", StringWidth(got), got)
	}

	// ASCII passes through untouched
	if TruncateWidth("abc", 10) != "abc" {
		t.Error("short ASCII string should not be truncated")
	}
}

func TestPadWidth(t *testing.T) {
	got := PadWidth("ab", 5)
	if got != "ab   " {
		t.Errorf("PadWidth(\"ab\", 5) = %q", got)
	}
	if StringWidth(PadWidth("日本語テキスト", 6)) > 6 {
		t.Error("PadWidth should truncate strings wider than the target")
	}
}

func TestCollapseWhitespace(t *testing.T) {
	got := CollapseWhitespace("line one\nline\ttwo\r\n  spaced")
	want := "line one line two spaced"
	if got != want {
		t.Errorf("CollapseWhitespace = %q, want %q", got, want)
	}
}

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.json")

	if err := AtomicWriteFile(path, []byte(`{"ok":true}`), 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Errorf("unexpected content: %q", data)
	}

	// Overwrite must replace, not append
	if err := AtomicWriteFile(path, []byte("v2"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile overwrite failed: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "v2" {
		t.Errorf("overwrite produced %q, want %q", data, "v2")
	}

	// No temp files should be left behind
	entries, _ := os.ReadDir(filepath.Dir(path))
	for _, e := range entries {
		if e.Name() != "out.json" {
			t.Errorf("leftover file in directory: %s", e.Name())
		}
	}
}
