// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/archview/internal/model"
	"github.com/jeranaias/archview/internal/names"
)

// =============================================================================
// TRANSCRIPT EXPORTER
// =============================================================================

const transcriptRule = "================================================================================"

// TranscriptExporter exports one conversation as a human-readable
// plain-text transcript: a header block followed by every message,
// numbered and dated, with a trailing export timestamp line.
type TranscriptExporter struct {
	Group *model.Group
}

// NewTranscriptExporter creates a transcript exporter for one conversation.
func NewTranscriptExporter(g *model.Group) *TranscriptExporter {
	return &TranscriptExporter{Group: g}
}

// Export renders the transcript.
func (e *TranscriptExporter) Export() ([]byte, error) {
	if e.Group == nil {
		return nil, fmt.Errorf("conversation is nil")
	}

	g := e.Group
	first, last := g.DateRange()

	var b strings.Builder
	b.WriteString(transcriptRule + "\n")
	fmt.Fprintf(&b, "Conversation: %s\n", names.DisplayName(g))
	if g.RoomType != "" {
		fmt.Fprintf(&b, "Type: %s\n", g.RoomType)
	}
	if len(g.Participants) > 0 {
		fmt.Fprintf(&b, "Participants: %s\n", strings.Join(g.Participants, ", "))
	}
	fmt.Fprintf(&b, "Messages: %d\n", g.MessageCount)
	if g.MessageCount > 0 {
		fmt.Fprintf(&b, "Range: %s to %s\n",
			first.Format("2006-01-02"), last.Format("2006-01-02"))
	}
	b.WriteString(transcriptRule + "\n\n")

	for i, rec := range g.Messages {
		fmt.Fprintf(&b, "[%d] %s %s %s%s\n",
			i+1,
			rec.Timestamp().Format("2006-01-02"),
			rec.Timestamp().Format("15:04:05"),
			rec.Author(),
			emailSuffix(rec),
		)
		body := rec.Body
		if body == "" {
			body = "(no content)"
		}
		for _, line := range strings.Split(body, "\n") {
			fmt.Fprintf(&b, "    %s\n", line)
		}
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "Exported %s\n", time.Now().Format(time.RFC3339))
	return []byte(b.String()), nil
}

// Label returns the cleaned room label used to derive the filename.
func (e *TranscriptExporter) Label() string {
	if e.Group == nil {
		return "conversation"
	}
	return names.DisplayName(e.Group)
}

// FileExtension returns the file extension for plain text.
func (e *TranscriptExporter) FileExtension() string {
	return ".txt"
}

// MimeType returns the MIME type for plain text.
func (e *TranscriptExporter) MimeType() string {
	return "text/plain"
}

func emailSuffix(rec *model.Record) string {
	if rec.AuthorEmail == "" {
		return ""
	}
	return fmt.Sprintf(" <%s>", rec.AuthorEmail)
}
