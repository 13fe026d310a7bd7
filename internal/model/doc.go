// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for archive records and
// conversation groups.
//
// This package defines the core domain types used throughout the application
// for representing exported chat messages and the conversations derived from
// them.
//
// # Key Types
//
//   - Record: a single message from the archive. Records are loosely typed:
//     every field is optional and access goes through accessor methods that
//     encode the fallback chain (e.g. ts_iso -> timestamp -> ts -> load time)
//     so the defaulting policy lives in one place.
//   - Member: an id+name pair from a room member list.
//   - Group: a conversation derived from all records sharing a room key,
//     with an ordered message list and incremental summary state.
//
// # Usage
//
// Build a record from a decoded JSON object:
//
//	rec := model.NewRecordFromMap(raw, loadTime)
//	when := rec.Timestamp() // never panics, always resolvable
//
// Records are immutable after ingest and are discarded wholesale on reset.
package model
