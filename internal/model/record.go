// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for archive records and
// conversation groups.
package model

import (
	"encoding/json"
	"strconv"
	"time"
)

// =============================================================================
// RECORD TYPE
// =============================================================================

// Known archive field names. Anything else on a record is preserved in the
// Extra map but never interpreted.
const (
	fieldAuthorID    = "author_user_id"
	fieldAuthorName  = "author_user_name"
	fieldAuthorEmail = "author_user_email"
	fieldMessage     = "message"
	fieldRoomID      = "room_id"
	fieldRoomName    = "room_name"
	fieldRoomType    = "room_type"
	fieldRoomMembers = "room_members"
	fieldTSEpoch     = "ts"
	fieldTSISO       = "ts_iso"
	fieldTSGeneric   = "timestamp"
)

// Defaults applied when a field is missing. Field-level anomalies are never
// errors: the archive format is best-effort and heterogeneous.
const (
	UnknownUser = "Unknown User"
	UnknownRoom = "Unknown Room"
	UnknownKey  = "unknown"
)

// Room types with dedicated handling. Any other string is passed through.
const (
	RoomTypeDirect = "direct"
	RoomTypeSMS    = "sms"
	RoomTypeGroup  = "group"
)

// Member is an id+name pair from a room member list.
type Member struct {
	UserID   string `json:"user_id,omitempty"`
	UserName string `json:"user_name,omitempty"`
}

// Record is a single message from the archive. Every field is optional;
// use the accessor methods rather than reading fields directly so the
// fallback chains stay in one place.
//
// Records are immutable after ingest.
type Record struct {
	AuthorID    string
	AuthorName  string
	AuthorEmail string
	Body        string
	RoomID      string
	RoomName    string
	RoomType    string
	Members     []Member

	// Raw timestamp fields as found in the archive. At most one is used for
	// resolution; all are preserved for export.
	TSEpoch   *float64
	TSISO     string
	TSGeneric string

	// Extra holds unrecognized fields, preserved but not interpreted.
	Extra map[string]any

	// resolved is stamped once at ingest so sorting is consistent per read.
	resolved time.Time
}

// NewRecordFromMap builds a Record from a decoded JSON object. loadTime is
// the moment the archive was read; records carrying no timestamp field at
// all resolve to it, which keeps ordering consistent within one load.
func NewRecordFromMap(raw map[string]any, loadTime time.Time) *Record {
	r := &Record{
		AuthorID:    asString(raw[fieldAuthorID]),
		AuthorName:  asString(raw[fieldAuthorName]),
		AuthorEmail: asString(raw[fieldAuthorEmail]),
		Body:        asString(raw[fieldMessage]),
		RoomID:      asString(raw[fieldRoomID]),
		RoomName:    asString(raw[fieldRoomName]),
		RoomType:    asString(raw[fieldRoomType]),
		Members:     asMembers(raw[fieldRoomMembers]),
		TSISO:       asString(raw[fieldTSISO]),
		TSGeneric:   asString(raw[fieldTSGeneric]),
	}

	if f, ok := asFloat(raw[fieldTSEpoch]); ok {
		r.TSEpoch = &f
	}

	for k, v := range raw {
		switch k {
		case fieldAuthorID, fieldAuthorName, fieldAuthorEmail, fieldMessage,
			fieldRoomID, fieldRoomName, fieldRoomType, fieldRoomMembers,
			fieldTSEpoch, fieldTSISO, fieldTSGeneric:
			continue
		}
		if r.Extra == nil {
			r.Extra = make(map[string]any)
		}
		r.Extra[k] = v
	}

	r.resolved = resolveTimestamp(r, loadTime)
	return r
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Author returns the author display name, defaulting to "Unknown User".
func (r *Record) Author() string {
	if r.AuthorName != "" {
		return r.AuthorName
	}
	return UnknownUser
}

// SenderKey returns the sender identity used for deduplication:
// author id, else author name, else "unknown".
func (r *Record) SenderKey() string {
	if r.AuthorID != "" {
		return r.AuthorID
	}
	if r.AuthorName != "" {
		return r.AuthorName
	}
	return UnknownKey
}

// RoomKey returns the conversation grouping key:
// room id, else room name, else "unknown".
func (r *Record) RoomKey() string {
	if r.RoomID != "" {
		return r.RoomID
	}
	if r.RoomName != "" {
		return r.RoomName
	}
	return UnknownKey
}

// Timestamp returns the resolved timestamp stamped at ingest. It never
// fails: malformed timestamps resolve to the epoch, absent ones to the
// load time.
func (r *Record) Timestamp() time.Time {
	return r.resolved
}

// =============================================================================
// TIMESTAMP RESOLUTION
// =============================================================================

// Layouts tried for string timestamp fields, most common first.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// resolveTimestamp applies the fallback chain: ts_iso, then the generic
// timestamp field, then the epoch number, then the load time. A field that
// is present but unparsable resolves to epoch 0 so it sorts as oldest.
func resolveTimestamp(r *Record, loadTime time.Time) time.Time {
	if r.TSISO != "" {
		return parseTimeString(r.TSISO)
	}
	if r.TSGeneric != "" {
		return parseTimeString(r.TSGeneric)
	}
	if r.TSEpoch != nil {
		sec := int64(*r.TSEpoch)
		nsec := int64((*r.TSEpoch - float64(sec)) * float64(time.Second))
		return time.Unix(sec, nsec)
	}
	return loadTime
}

func parseTimeString(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	// Numeric string: treat as epoch seconds
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Unix(int64(f), 0)
	}
	return time.Unix(0, 0)
}

// =============================================================================
// JSON
// =============================================================================

// MarshalJSON emits the record in its archive shape: known fields under
// their archive names plus the preserved extras, so exported data can be
// re-ingested losslessly.
func (r *Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Extra)+11)
	for k, v := range r.Extra {
		out[k] = v
	}
	putString(out, fieldAuthorID, r.AuthorID)
	putString(out, fieldAuthorName, r.AuthorName)
	putString(out, fieldAuthorEmail, r.AuthorEmail)
	putString(out, fieldMessage, r.Body)
	putString(out, fieldRoomID, r.RoomID)
	putString(out, fieldRoomName, r.RoomName)
	putString(out, fieldRoomType, r.RoomType)
	putString(out, fieldTSISO, r.TSISO)
	putString(out, fieldTSGeneric, r.TSGeneric)
	if r.TSEpoch != nil {
		out[fieldTSEpoch] = *r.TSEpoch
	}
	if len(r.Members) > 0 {
		out[fieldRoomMembers] = r.Members
	}
	return json.Marshal(out)
}

// =============================================================================
// HELPERS
// =============================================================================

func putString(m map[string]any, key, val string) {
	if val != "" {
		m[key] = val
	}
}

// asString coerces a decoded JSON value to a string, formatting numbers
// rather than dropping them. Anything else yields "".
func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

func asFloat(v any) (float64, bool) {
	switch f := v.(type) {
	case float64:
		return f, true
	case string:
		parsed, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// asMembers decodes a member list defensively: entries that are not objects
// are skipped, missing names default to empty strings.
func asMembers(v any) []Member {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	members := make([]Member, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		members = append(members, Member{
			UserID:   asString(obj["user_id"]),
			UserName: asString(obj["user_name"]),
		})
	}
	if len(members) == 0 {
		return nil
	}
	return members
}
