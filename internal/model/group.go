// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"sort"
	"time"
)

// =============================================================================
// GROUP TYPE
// =============================================================================

// Group is a conversation: every record sharing one room key, with
// incrementally maintained summary state. Exactly one Group exists per
// distinct room key; the message list always matches MessageCount and is
// sorted ascending by resolved timestamp after SortMessages.
type Group struct {
	Key          string    `json:"key"`
	RoomName     string    `json:"roomName,omitempty"`
	RoomType     string    `json:"roomType,omitempty"`
	Participants []string  `json:"participants"`
	Messages     []*Record `json:"messages"`
	MessageCount int       `json:"messageCount"`
	Latest       *Record   `json:"latestMessage,omitempty"`
	LatestTime   time.Time `json:"latestTimestamp"`

	seen map[string]struct{} // participant names already recorded
}

// NewGroup creates an empty group for a room key.
func NewGroup(key string) *Group {
	return &Group{
		Key:          key,
		Participants: make([]string, 0, 2),
		Messages:     make([]*Record, 0, 8),
		seen:         make(map[string]struct{}),
	}
}

// =============================================================================
// MUTATION
// =============================================================================

// Append adds a record to the group, updating the count, the latest message
// (strict greater-than: on equal timestamps the earlier arrival wins) and
// the participant union. The first record always becomes the initial latest.
func (g *Group) Append(rec *Record) {
	g.Messages = append(g.Messages, rec)
	g.MessageCount = len(g.Messages)

	if rec.RoomName != "" && g.RoomName == "" {
		g.RoomName = rec.RoomName
	}
	if rec.RoomType != "" && g.RoomType == "" {
		g.RoomType = rec.RoomType
	}

	if g.Latest == nil || rec.Timestamp().After(g.LatestTime) {
		g.Latest = rec
		g.LatestTime = rec.Timestamp()
	}

	g.addParticipants(rec)
}

// addParticipants unions the record's member names into the participant
// set, falling back to the author name when no member list exists.
func (g *Group) addParticipants(rec *Record) {
	if len(rec.Members) > 0 {
		for _, m := range rec.Members {
			g.addParticipant(m.UserName)
		}
		return
	}
	g.addParticipant(rec.AuthorName)
}

func (g *Group) addParticipant(name string) {
	if name == "" {
		return
	}
	if g.seen == nil {
		g.seen = make(map[string]struct{})
	}
	if _, ok := g.seen[name]; ok {
		return
	}
	g.seen[name] = struct{}{}
	g.Participants = append(g.Participants, name)
}

// SortMessages orders the message list ascending by resolved timestamp.
// The sort is stable: records with equal timestamps keep input order.
func (g *Group) SortMessages() {
	sort.SliceStable(g.Messages, func(i, j int) bool {
		return g.Messages[i].Timestamp().Before(g.Messages[j].Timestamp())
	})
}

// =============================================================================
// DERIVED VIEWS
// =============================================================================

// First returns the chronologically first message, or nil when empty.
// Valid only after SortMessages.
func (g *Group) First() *Record {
	if len(g.Messages) == 0 {
		return nil
	}
	return g.Messages[0]
}

// DateRange returns the timestamps of the first and last messages.
// Valid only after SortMessages.
func (g *Group) DateRange() (time.Time, time.Time) {
	if len(g.Messages) == 0 {
		return time.Time{}, time.Time{}
	}
	return g.Messages[0].Timestamp(), g.Messages[len(g.Messages)-1].Timestamp()
}

// Preview returns the latest message body, or "" when empty.
func (g *Group) Preview() string {
	if g.Latest == nil {
		return ""
	}
	return g.Latest.Body
}
