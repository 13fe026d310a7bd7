// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/archview/internal/aggregate"
	"github.com/jeranaias/archview/internal/model"
	"github.com/jeranaias/archview/internal/query"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// Envelope is the JSON export document: the filtered conversation set plus
// a metadata block describing when and under which filters it was taken.
// The conversations carry their full message lists, so flattening them
// back to a message array and re-ingesting reproduces the same groups.
type Envelope struct {
	Metadata      Metadata       `json:"metadata"`
	Conversations []*model.Group `json:"conversations"`
}

// Metadata describes one export.
type Metadata struct {
	ExportID              string       `json:"exportId"`
	ExportDate            string       `json:"exportDate"`
	TotalMessages         int          `json:"totalMessages"`
	TotalConversations    int          `json:"totalConversations"`
	FilteredConversations int          `json:"filteredConversations"`
	Filters               FilterValues `json:"filters"`
}

// FilterValues records the filter state active at export time.
type FilterValues struct {
	Search   string `json:"search"`
	RoomType string `json:"roomType"`
	Date     string `json:"date"`
	Tab      string `json:"tab"`
}

// JSONExporter exports the filtered conversation list to a JSON document.
type JSONExporter struct {
	Groups  []*model.Group
	Stats   aggregate.Stats
	Filters query.State
}

// NewJSONExporter creates an exporter over the current filtered result.
func NewJSONExporter(groups []*model.Group, stats aggregate.Stats, filters query.State) *JSONExporter {
	return &JSONExporter{Groups: groups, Stats: stats, Filters: filters}
}

// Export renders the envelope with indentation for human inspection.
func (e *JSONExporter) Export() ([]byte, error) {
	env := Envelope{
		Metadata: Metadata{
			ExportID:              uuid.New().String(),
			ExportDate:            time.Now().Format(time.RFC3339),
			TotalMessages:         e.Stats.TotalMessages,
			TotalConversations:    e.Stats.TotalConversations,
			FilteredConversations: len(e.Groups),
			Filters: FilterValues{
				Search:   e.Filters.Search,
				RoomType: e.Filters.RoomType,
				Date:     e.Filters.Date,
				Tab:      string(e.Filters.Tab),
			},
		},
		Conversations: e.Groups,
	}
	return json.MarshalIndent(env, "", "  ")
}

// Label returns the filename base for the whole-set export.
func (e *JSONExporter) Label() string {
	return "conversations"
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
