// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export serializes conversations to portable formats.
// Supports a JSON document covering the whole filtered set and a
// plain-text transcript of a single conversation.
package export

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/jeranaias/archview/internal/util"
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter defines the interface for conversation exporters. Exporters are
// pure formatting: they hand bytes back and never touch network or storage
// themselves.
type Exporter interface {
	// Export renders the target format.
	Export() ([]byte, error)

	// Label is the human-derived base for the output filename.
	Label() string

	// FileExtension returns the appropriate file extension (e.g. ".json").
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures where exports are written.
type Options struct {
	// OutputDir is the directory where files will be saved.
	// Default: current working directory
	OutputDir string
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{OutputDir: "."}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile renders the exporter's content and writes it next to the
// working directory (or opts.OutputDir). Returns the output file path.
//
// The filename is the cleaned label with every non-alphanumeric run
// replaced by underscores, suffixed with the export date.
func ExportToFile(e Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := e.Export()
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	filename := fmt.Sprintf("%s_%s%s",
		sanitizeLabel(e.Label()),
		time.Now().Format("2006-01-02"),
		e.FileExtension(),
	)

	outputPath := filepath.Join(opts.OutputDir, filename)
	if err := util.AtomicWriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return outputPath, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// sanitizeLabel maps a display label to a safe filename base: ASCII
// letters and digits pass through, everything else becomes an underscore.
func sanitizeLabel(s string) string {
	const maxLen = 50
	runes := []rune(s)
	if len(runes) > maxLen {
		runes = runes[:maxLen]
	}

	out := make([]rune, 0, len(runes))
	for _, r := range runes {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}

	if len(out) == 0 {
		return "conversation"
	}
	return string(out)
}
