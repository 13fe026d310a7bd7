// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ingest

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERRORS
// =============================================================================

// Sentinel errors for load failures without extra context.
var (
	// ErrEmptyInput is returned when the archive array has no elements.
	ErrEmptyInput = errors.New("archive contains no messages")

	// ErrTooLarge is returned by ValidateSource for files over MaxArchiveSize.
	ErrTooLarge = errors.New("archive exceeds the maximum accepted size")

	// ErrBadExtension is returned by ValidateSource for non-.json files.
	ErrBadExtension = errors.New("archive must be a .json file")
)

// ParseError reports malformed JSON. The wrapped error is the decoder's
// message, surfaced verbatim to the user.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaError reports a well-formed JSON document whose root is not an
// array of messages.
type SchemaError struct {
	// Got describes the root value that was found, e.g. "object" or "string".
	Got string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("expected a JSON array of messages, got %s", e.Got)
}

// MajorityInvalidError reports an array where more than half the elements
// are not objects. Invalid and Total help the user diagnose the file.
type MajorityInvalidError struct {
	Invalid int
	Total   int
}

func (e *MajorityInvalidError) Error() string {
	return fmt.Sprintf("too many invalid entries: %d of %d elements are not message objects", e.Invalid, e.Total)
}
