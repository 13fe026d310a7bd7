// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ingest loads exported chat archives into normalized records.
//
// The loader is a pure transform over input bytes: well-formed JSON whose
// root is a non-empty array of objects. Non-object elements are dropped
// silently, but when the dropped fraction exceeds 50% the whole load is
// rejected (a data-quality gate, not a strict schema check). Field-level
// problems are never errors; defaulting happens in package model.
//
// Load failures carry a specific reason:
//
//   - ParseError: the bytes are not valid JSON
//   - SchemaError: the root value is not an array
//   - ErrEmptyInput: the array has zero elements
//   - MajorityInvalidError: more than half the elements are not objects
//
// The package also provides an fsnotify-based Watcher that reports settled
// changes to a loaded archive file so the caller can re-ingest it.
package ingest
