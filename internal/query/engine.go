// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package query

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/jeranaias/archview/internal/model"
)

// =============================================================================
// STATE
// =============================================================================

// Tab is the top-level candidate-selection rule, applied before any filter.
type Tab string

const (
	// TabConversations shows all groups.
	TabConversations Tab = "conversations"
	// TabSenders shows one group per distinct sender: the one that sender
	// touched most recently.
	TabSenders Tab = "senders"
	// TabRooms shows all groups with room-centric labeling.
	TabRooms Tab = "rooms"
)

// RoomTypeAll is the sentinel meaning "no room-type filter".
const RoomTypeAll = "all"

// DateLayout is the calendar-day format accepted by State.Date.
const DateLayout = "2006-01-02"

// State is one immutable filter configuration. Tab changes re-select the
// candidate set; all other filters compose conjunctively on top of it.
type State struct {
	Tab      Tab
	Search   string // settled (debounced) term; "" disables
	RoomType string // "" or "all" disables
	// Date is a DateLayout calendar day in local time; "" disables. An
	// unparsable value also disables the filter (everything shown) rather
	// than matching nothing: a half-typed day should not blank the list.
	Date string
}

// =============================================================================
// ENGINE
// =============================================================================

var fold = cases.Fold()

// Run applies the filter state to the groups and returns a fresh ordered
// slice, descending by latest timestamp. The input is never mutated.
func Run(groups []*model.Group, st State) []*model.Group {
	out := selectCandidates(groups, st.Tab)

	if term := fold.String(strings.TrimSpace(st.Search)); term != "" {
		kept := out[:0]
		for _, g := range out {
			if strings.Contains(searchText(g), term) {
				kept = append(kept, g)
			}
		}
		out = kept
	}

	if st.RoomType != "" && st.RoomType != RoomTypeAll {
		kept := out[:0]
		for _, g := range out {
			if g.RoomType == st.RoomType {
				kept = append(kept, g)
			}
		}
		out = kept
	}

	if day, ok := parseDay(st.Date); ok {
		kept := out[:0]
		for _, g := range out {
			if sameLocalDay(g.LatestTime, day) {
				kept = append(kept, g)
			}
		}
		out = kept
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LatestTime.After(out[j].LatestTime)
	})

	return out
}

// selectCandidates applies the tab rule. It always copies so later
// in-place filtering never touches the caller's slice.
func selectCandidates(groups []*model.Group, tab Tab) []*model.Group {
	if tab != TabSenders {
		out := make([]*model.Group, len(groups))
		copy(out, groups)
		return out
	}

	// One group per sender: keep the group whose latest timestamp is
	// maximal for that sender. Strict greater-than, so first seen wins ties.
	out := make([]*model.Group, 0, len(groups))
	bySender := make(map[string]int)
	for _, g := range groups {
		key := senderKey(g)
		if idx, ok := bySender[key]; ok {
			if g.LatestTime.After(out[idx].LatestTime) {
				out[idx] = g
			}
			continue
		}
		bySender[key] = len(out)
		out = append(out, g)
	}
	return out
}

// senderKey identifies the sender of a group's latest message:
// author id, else author name, else "unknown".
func senderKey(g *model.Group) string {
	if g.Latest == nil {
		return model.UnknownKey
	}
	return g.Latest.SenderKey()
}

// searchText concatenates everything a search term can match against:
// the room name, room type, participant names, and every message body,
// author name and email. Case-folded. Derived display labels are not
// included: their real content is already here, and their synthetic
// fallbacks (like the unknown-room placeholder) must not be matchable.
func searchText(g *model.Group) string {
	var b strings.Builder
	b.WriteString(g.RoomName)
	b.WriteByte(' ')
	b.WriteString(g.RoomType)
	for _, p := range g.Participants {
		b.WriteByte(' ')
		b.WriteString(p)
	}
	for _, rec := range g.Messages {
		b.WriteByte(' ')
		b.WriteString(rec.Body)
		b.WriteByte(' ')
		b.WriteString(rec.AuthorName)
		b.WriteByte(' ')
		b.WriteString(rec.AuthorEmail)
	}
	return fold.String(b.String())
}

// parseDay parses a DateLayout day in local time. Unparsable input
// disables the filter rather than failing the run.
func parseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	day, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

// sameLocalDay compares calendar days in local time.
func sameLocalDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
