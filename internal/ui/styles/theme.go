// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER AND TAB STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// ==========================================================================
	// LIST STYLES
	// ==========================================================================

	ListRow         lipgloss.Style
	ListRowSelected lipgloss.Style
	ListName        lipgloss.Style
	ListPreview     lipgloss.Style
	ListMeta        lipgloss.Style
	BadgeDirect     lipgloss.Style
	BadgeSMS        lipgloss.Style
	BadgeGroup      lipgloss.Style
	EmptyList       lipgloss.Style

	// ==========================================================================
	// FILTER BAR STYLES
	// ==========================================================================

	FilterBar       lipgloss.Style
	FilterLabel     lipgloss.Style
	FilterActive    lipgloss.Style
	SearchPrompt    lipgloss.Style
	SearchInactive  lipgloss.Style

	// ==========================================================================
	// TRANSCRIPT STYLES
	// ==========================================================================

	OwnBubble       lipgloss.Style
	OtherBubble     lipgloss.Style
	BubbleAuthor    lipgloss.Style
	BubbleTimestamp lipgloss.Style
	TranscriptTitle lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	StatsLabel   lipgloss.Style
	StatsValue   lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// OVERLAY STYLES
	// ==========================================================================

	OverlayBox   lipgloss.Style
	OverlayTitle lipgloss.Style
	HelpBox      lipgloss.Style

	// ==========================================================================
	// SPINNER AND NOTICE STYLES
	// ==========================================================================

	Spinner     lipgloss.Style
	LoadingText lipgloss.Style
	ErrorBox    lipgloss.Style
	ErrorTitle  lipgloss.Style
	Notice      lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header and tabs
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 2)
	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)
	t.TabActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Cyan).
		Padding(0, 2)
	t.TabInactive = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 2)

	// List
	t.ListRow = lipgloss.NewStyle().
		Padding(0, 1)
	t.ListRowSelected = lipgloss.NewStyle().
		Padding(0, 1).
		Background(SelectionBg).
		Bold(true)
	t.ListName = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)
	t.ListPreview = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.ListMeta = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.BadgeDirect = lipgloss.NewStyle().
		Background(BadgeDirectBg).
		Foreground(TextPrimary).
		Padding(0, 1)
	t.BadgeSMS = lipgloss.NewStyle().
		Background(BadgeSMSBg).
		Foreground(TextPrimary).
		Padding(0, 1)
	t.BadgeGroup = lipgloss.NewStyle().
		Background(BadgeGroupBg).
		Foreground(TextPrimary).
		Padding(0, 1)
	t.EmptyList = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		Padding(2, 4)

	// Filter bar
	t.FilterBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)
	t.FilterLabel = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.FilterActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)
	t.SearchPrompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)
	t.SearchInactive = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Transcript
	t.OwnBubble = lipgloss.NewStyle().
		Background(OwnBubbleBg).
		Foreground(OwnBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(OwnBubbleBorder).
		Padding(0, 1)
	t.OtherBubble = lipgloss.NewStyle().
		Background(OtherBubbleBg).
		Foreground(OtherBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(OtherBubbleBorder).
		Padding(0, 1)
	t.BubbleAuthor = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary)
	t.BubbleTimestamp = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.TranscriptTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Padding(0, 1)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)
	t.StatsLabel = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.StatsValue = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)
	t.ShortcutKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)
	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Overlays
	t.OverlayBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Padding(1, 2)
	t.OverlayTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)
	t.HelpBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	// Spinner and notices
	t.Spinner = lipgloss.NewStyle().
		Foreground(Cyan)
	t.LoadingText = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.ErrorBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(1, 2)
	t.ErrorTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Rose)
	t.Notice = lipgloss.NewStyle().
		Foreground(Emerald)
}

// SetSize updates the theme's layout dimensions on terminal resize.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// BadgeFor returns the badge style for a room type.
func (t *Theme) BadgeFor(roomType string) lipgloss.Style {
	switch roomType {
	case "direct":
		return t.BadgeDirect
	case "sms":
		return t.BadgeSMS
	case "group":
		return t.BadgeGroup
	default:
		return t.ListMeta
	}
}
