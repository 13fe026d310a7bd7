// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ingest

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/archview/internal/model"
)

// =============================================================================
// LIMITS
// =============================================================================

// MaxArchiveSize is the largest accepted input file (100 MiB). Enforced by
// ValidateSource before any bytes are read into the loader.
const MaxArchiveSize = 100 << 20

// progressInterval caps how often a progress callback fires. Progress is a
// cosmetic approximation with no correctness contract.
const progressInterval = 33 * time.Millisecond

// =============================================================================
// RESULT TYPE
// =============================================================================

// Result is a successfully loaded archive.
type Result struct {
	// Records are the normalized messages, in input order.
	Records []*model.Record

	// Preview is the raw first element, kept for display.
	Preview json.RawMessage

	// Total is the number of elements in the input array; Dropped counts
	// the non-object elements that were discarded.
	Total   int
	Dropped int

	// LoadedAt is the read time stamped on records missing a timestamp.
	LoadedAt time.Time
}

// =============================================================================
// LOADING
// =============================================================================

// Load parses and normalizes archive bytes. See the package documentation
// for the failure taxonomy. The transform is pure: no state outside the
// returned Result is touched, so a failed load leaves the caller's current
// dataset intact.
func Load(data []byte) (*Result, error) {
	return LoadWithProgress(data, nil)
}

// LoadWithProgress is Load with a progress callback. The callback receives
// monotonically increasing fractions in [0,1] and is rate-limited, so it is
// safe to hand it something expensive like a UI update.
func LoadWithProgress(data []byte, progress func(frac float64)) (*Result, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		if !json.Valid(data) {
			return nil, &ParseError{Err: err}
		}
		return nil, &SchemaError{Got: rootKind(data)}
	}
	// A null root unmarshals into a nil slice without error; only a real
	// (possibly empty) array reaches the empty-input check.
	if elements == nil {
		return nil, &SchemaError{Got: rootKind(data)}
	}
	if len(elements) == 0 {
		return nil, ErrEmptyInput
	}

	limiter := rate.NewLimiter(rate.Every(progressInterval), 1)
	report := func(frac float64) {
		if progress == nil {
			return
		}
		if frac >= 1 || limiter.Allow() {
			progress(frac)
		}
	}
	report(0)

	res := &Result{
		Records:  make([]*model.Record, 0, len(elements)),
		Preview:  elements[0],
		Total:    len(elements),
		LoadedAt: time.Now(),
	}

	for i, element := range elements {
		var obj map[string]any
		if err := json.Unmarshal(element, &obj); err != nil || obj == nil {
			res.Dropped++
		} else {
			res.Records = append(res.Records, model.NewRecordFromMap(obj, res.LoadedAt))
		}
		report(float64(i+1) / float64(len(elements)))
	}

	// Data-quality gate: reject when non-objects are the majority.
	if res.Dropped*2 > res.Total {
		return nil, &MajorityInvalidError{Invalid: res.Dropped, Total: res.Total}
	}

	report(1)
	return res, nil
}

// rootKind names the JSON root value for SchemaError messages.
func rootKind(data []byte) string {
	for _, b := range data {
		switch {
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			continue
		case b == '{':
			return "an object"
		case b == '"':
			return "a string"
		case b == 't' || b == 'f':
			return "a boolean"
		case b == 'n':
			return "null"
		default:
			return "a number"
		}
	}
	return "an empty document"
}

// =============================================================================
// SOURCE VALIDATION
// =============================================================================

// ValidateSource enforces the pre-parse gates: a .json extension
// (case-insensitive) and the MaxArchiveSize cap. Callers run this before
// reading the file.
func ValidateSource(path string, size int64) error {
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return ErrBadExtension
	}
	if size > MaxArchiveSize {
		return ErrTooLarge
	}
	return nil
}
