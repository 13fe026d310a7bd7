// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package names

import (
	"regexp"
	"strings"

	"github.com/jeranaias/archview/internal/model"
)

// =============================================================================
// PATTERNS
// =============================================================================

var (
	// [+13306053584]
	bracketedPhoneRe = regexp.MustCompile(`\[(\+\d+)\]`)

	// Bare run of 10+ digits, optionally prefixed with +
	longDigitsRe = regexp.MustCompile(`\+?\d{10,}`)

	// [Any Token]
	bracketTokenRe = regexp.MustCompile(`\[([^\]]+)\]`)

	// First bracketed token after the room-type marker
	smsPrimaryRe    = regexp.MustCompile(`LEGACY_SMS \[([^\]]+)\]`)
	directPrimaryRe = regexp.MustCompile(`Direct \[([^\]]+)\]`)

	// Generic cleaning
	leadingMarkerRe  = regexp.MustCompile(`^(Direct|LEGACY_SMS) \[`)
	trailingSuffixRe = regexp.MustCompile(`\] \[[^\]]*\]$`)
)

// =============================================================================
// DISPLAY NAME
// =============================================================================

// DisplayName derives the label a human reads for a conversation.
//
// SMS rooms resolve to the phone number; direct rooms resolve to the
// "other party" relative to the latest message's author; everything else
// falls through to generic cleaning of the room name.
func DisplayName(g *model.Group) string {
	name := g.RoomName

	switch g.RoomType {
	case model.RoomTypeSMS:
		if m := bracketedPhoneRe.FindStringSubmatch(name); m != nil {
			return m[1]
		}
		if m := longDigitsRe.FindString(name); m != "" {
			return m
		}

	case model.RoomTypeDirect:
		if other, ok := otherParty(name, latestAuthor(g)); ok {
			return other
		}
	}

	return cleanRoomName(name)
}

// otherParty picks the direct-room token that is not the author. When the
// author matches neither token (or matching is ambiguous), the first token
// is the fallback. ok is false when fewer than two tokens exist.
func otherParty(roomName, author string) (string, bool) {
	matches := bracketTokenRe.FindAllStringSubmatch(roomName, -1)
	if len(matches) < 2 {
		return "", false
	}
	first, second := matches[0][1], matches[1][1]

	switch author {
	case first:
		return second, true
	case second:
		return first, true
	default:
		return first, true
	}
}

// cleanRoomName strips the naming-convention scaffolding: the leading
// "Direct [" / "LEGACY_SMS [" marker, a trailing "] [...]" suffix, and any
// remaining brackets. An empty result yields "Unknown Room".
func cleanRoomName(name string) string {
	s := leadingMarkerRe.ReplaceAllString(name, "")
	s = trailingSuffixRe.ReplaceAllString(s, "")
	s = strings.NewReplacer("[", "", "]", "").Replace(s)
	s = strings.TrimSpace(s)
	if s == "" {
		return model.UnknownRoom
	}
	return s
}

// =============================================================================
// MESSAGE OWNERSHIP
// =============================================================================

// PrimaryParticipant resolves the name whose messages count as "own" in a
// two-party transcript. SMS and direct rooms take the first bracketed
// token after their marker; when extraction fails the most frequent author
// name across the conversation wins (first to reach the top count, so the
// result is deterministic for a given message order).
func PrimaryParticipant(g *model.Group) string {
	switch g.RoomType {
	case model.RoomTypeSMS:
		if m := smsPrimaryRe.FindStringSubmatch(g.RoomName); m != nil {
			return m[1]
		}
	case model.RoomTypeDirect:
		if m := directPrimaryRe.FindStringSubmatch(g.RoomName); m != nil {
			return m[1]
		}
	}
	return mostFrequentAuthor(g)
}

// IsOwn reports whether a message belongs to the primary participant.
// This drives left/right alignment in the transcript view.
func IsOwn(rec *model.Record, primary string) bool {
	return primary != "" && rec.AuthorName == primary
}

// =============================================================================
// HELPERS
// =============================================================================

func latestAuthor(g *model.Group) string {
	if g.Latest == nil {
		return ""
	}
	return g.Latest.AuthorName
}

func mostFrequentAuthor(g *model.Group) string {
	counts := make(map[string]int)
	best := ""
	bestCount := 0
	for _, rec := range g.Messages {
		name := rec.AuthorName
		if name == "" {
			continue
		}
		counts[name]++
		if counts[name] > bestCount {
			best = name
			bestCount = counts[name]
		}
	}
	return best
}
