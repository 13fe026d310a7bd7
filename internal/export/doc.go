// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export serializes conversations to portable formats.
//
// Two exporters exist:
//
//   - JSONExporter: the whole filtered conversation set wrapped in a
//     metadata envelope (export id and date, totals, active filters).
//     Messages keep their archive field names, so flattening the exported
//     conversations back into a message array and re-ingesting it yields
//     the same groups.
//   - TranscriptExporter: one conversation as a plain-text transcript
//     with a header block and numbered, dated messages.
//
// Both are pure formatting; ExportToFile is the only place that touches
// the filesystem, via an atomic write.
package export
