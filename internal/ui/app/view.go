// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/archview/internal/model"
	"github.com/jeranaias/archview/internal/names"
	"github.com/jeranaias/archview/internal/query"
	"github.com/jeranaias/archview/internal/util"
	"github.com/jeranaias/archview/internal/window"
)

// View renders the current screen.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	switch m.state {
	case stateLoading:
		return m.viewLoading()
	case stateError:
		return m.viewError()
	case stateTranscript:
		return m.overlayOr(m.viewTranscript())
	default:
		return m.overlayOr(m.viewBrowse())
	}
}

// overlayOr places an active overlay over the base view, or returns the base.
func (m Model) overlayOr(base string) string {
	switch {
	case m.showHelp:
		return m.centerBox(m.helpContent())
	case m.showPreview:
		box := m.theme.OverlayBox.Render(
			m.theme.OverlayTitle.Render("Raw record") + "\n\n" + m.previewView)
		return m.centerBox(box)
	}
	return base
}

func (m Model) centerBox(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// =============================================================================
// LOADING AND ERROR SCREENS
// =============================================================================

func (m Model) viewLoading() string {
	line := fmt.Sprintf("%s Loading %s", m.spinner.View(), m.path)
	if m.progress > 0 {
		line += fmt.Sprintf("  %d%%", int(m.progress*100))
	}
	return m.centerBox(m.theme.LoadingText.Render(line))
}

func (m Model) viewError() string {
	box := m.theme.ErrorBox.Render(
		m.theme.ErrorTitle.Render("Could not load archive") + "\n\n" +
			m.loadErr.Error() + "\n\n" +
			m.theme.ShortcutDesc.Render("press q to quit"))
	return m.centerBox(box)
}

// =============================================================================
// BROWSE SCREEN
// =============================================================================

func (m Model) viewBrowse() string {
	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteByte('\n')
	b.WriteString(m.viewFilterBar())
	b.WriteByte('\n')
	b.WriteString(m.viewList())
	b.WriteString(m.viewStatusBar())
	return b.String()
}

func (m Model) viewHeader() string {
	tabs := []query.Tab{query.TabConversations, query.TabSenders, query.TabRooms}
	parts := make([]string, 0, len(tabs)+1)
	parts = append(parts, m.theme.HeaderTitle.Render("archview"))
	for _, t := range tabs {
		style := m.theme.TabInactive
		if t == m.queryState.Tab {
			style = m.theme.TabActive
		}
		parts = append(parts, style.Render(string(t)))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if pad := m.width - lipgloss.Width(row); pad > 0 {
		row += strings.Repeat(" ", pad)
	}
	return row
}

func (m Model) viewFilterBar() string {
	var parts []string

	switch m.focus {
	case focusSearch:
		parts = append(parts, m.searchInput.View())
	case focusDate:
		parts = append(parts, m.dateInput.View())
	default:
		if m.queryState.Search != "" {
			parts = append(parts, m.theme.FilterActive.Render("/"+m.queryState.Search))
		} else {
			parts = append(parts, m.theme.SearchInactive.Render("/ search"))
		}
	}

	typeLabel := m.queryState.RoomType
	if typeLabel == "" {
		typeLabel = query.RoomTypeAll
	}
	style := m.theme.FilterLabel
	if typeLabel != query.RoomTypeAll {
		style = m.theme.FilterActive
	}
	parts = append(parts, style.Render("type:"+typeLabel))

	if m.queryState.Date != "" {
		parts = append(parts, m.theme.FilterActive.Render("date:"+m.queryState.Date))
	}
	if m.reloading {
		parts = append(parts, m.spinner.View())
	}

	return m.theme.FilterBar.Render(strings.Join(parts, "  "))
}

func (m Model) viewList() string {
	height := m.listHeight()
	if height <= 0 {
		return ""
	}
	if len(m.filtered) == 0 {
		empty := m.theme.EmptyList.Render("no conversations match the active filters")
		return padLines(empty, height)
	}

	sl := window.Project(m.filtered, rowHeight, height, m.scroll)

	var lines []string
	for _, item := range sl.Items {
		lines = append(lines, m.renderRow(item.Group, item.Index == m.selected)...)
	}

	// Trim the buffered rows above the fold, then fit to the viewport
	skip := m.scroll - sl.OffsetY
	if skip < 0 {
		skip = 0
	}
	if skip > len(lines) {
		skip = len(lines)
	}
	lines = lines[skip:]
	if len(lines) > height {
		lines = lines[:height]
	}
	return padLines(strings.Join(lines, "\n"), height)
}

// renderRow renders one list entry as rowHeight lines.
func (m Model) renderRow(g *model.Group, selected bool) []string {
	label := m.rowLabel(g)
	badge := m.theme.BadgeFor(g.RoomType).Render(g.RoomType)
	meta := m.theme.ListMeta.Render(fmt.Sprintf("%d msgs  %s",
		g.MessageCount, g.LatestTime.Format("2006-01-02 15:04")))

	name := m.theme.ListName.Render(util.TruncateWidth(label, m.width/2))
	head := name + " " + badge
	gap := m.width - lipgloss.Width(head) - lipgloss.Width(meta) - 4
	if gap < 1 {
		gap = 1
	}
	line1 := head + strings.Repeat(" ", gap) + meta

	preview := m.theme.ListPreview.Render(
		util.TruncateWidth("  "+util.CollapseWhitespace(g.Preview()), m.width-4))

	rowStyle := m.theme.ListRow
	if selected {
		rowStyle = m.theme.ListRowSelected
	}
	return []string{
		rowStyle.Render(line1),
		rowStyle.Render(preview),
	}
}

// rowLabel is the primary label for a list entry under the active tab.
func (m Model) rowLabel(g *model.Group) string {
	if m.queryState.Tab == query.TabSenders && g.Latest != nil {
		return g.Latest.Author()
	}
	return names.DisplayName(g)
}

func (m Model) viewStatusBar() string {
	if m.notice != "" {
		var text string
		if m.noticeIsErr {
			text = m.theme.StatusBar.Render(m.theme.ErrorTitle.Render(m.notice))
		} else {
			text = m.theme.StatusBar.Render(m.theme.Notice.Render(m.notice))
		}
		return text
	}

	stats := m.archive.Stats()
	left := fmt.Sprintf("%s %s  %s %s  %s %s  %s %s  %s %s",
		m.theme.StatsValue.Render(fmt.Sprintf("%d", len(m.filtered))),
		m.theme.StatsLabel.Render("shown"),
		m.theme.StatsValue.Render(fmt.Sprintf("%d", stats.TotalConversations)),
		m.theme.StatsLabel.Render("conversations"),
		m.theme.StatsValue.Render(fmt.Sprintf("%d", stats.TotalMessages)),
		m.theme.StatsLabel.Render("messages"),
		m.theme.StatsValue.Render(fmt.Sprintf("%d", stats.DistinctSenders)),
		m.theme.StatsLabel.Render("senders"),
		m.theme.StatsValue.Render(fmt.Sprintf("%d", stats.DistinctRooms)),
		m.theme.StatsLabel.Render("rooms"))

	var shortcuts []string
	for _, b := range m.keys.ShortHelp() {
		shortcuts = append(shortcuts,
			m.theme.ShortcutKey.Render(b.Help().Key)+" "+
				m.theme.ShortcutDesc.Render(b.Help().Desc))
	}
	right := strings.Join(shortcuts, "  ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		return m.theme.StatusBar.Render(left)
	}
	return m.theme.StatusBar.Render(left + strings.Repeat(" ", gap) + right)
}

// =============================================================================
// TRANSCRIPT SCREEN
// =============================================================================

func (m Model) viewTranscript() string {
	if m.open == nil {
		return m.viewBrowse()
	}
	title := m.theme.TranscriptTitle.Render(
		fmt.Sprintf("%s  (%d messages)", names.DisplayName(m.open), m.open.MessageCount))
	footer := m.theme.StatusBar.Render(
		m.theme.ShortcutKey.Render("Esc") + " " + m.theme.ShortcutDesc.Render("back") + "  " +
			m.theme.ShortcutKey.Render("x") + " " + m.theme.ShortcutDesc.Render("export transcript"))
	return title + "\n" + m.transcript.View() + "\n" + footer
}

// renderTranscript renders a conversation as aligned message bubbles: the
// archive owner's messages on the right, everyone else on the left.
func (m Model) renderTranscript(g *model.Group) string {
	primary := names.PrimaryParticipant(g)
	bubbleWidth := m.width * 2 / 3
	if bubbleWidth < 20 {
		bubbleWidth = m.width
	}

	var b strings.Builder
	for _, rec := range g.Messages {
		own := names.IsOwn(rec, primary)

		header := m.theme.BubbleAuthor.Render(rec.Author())
		if m.showTimestamps {
			header += " " + m.theme.BubbleTimestamp.Render(
				rec.Timestamp().Format("2006-01-02 15:04"))
		}

		body := rec.Body
		if body == "" {
			body = "(no content)"
		}

		style := m.theme.OtherBubble
		align := lipgloss.Left
		if own {
			style = m.theme.OwnBubble
			align = lipgloss.Right
		}
		bubble := style.MaxWidth(bubbleWidth).Render(body)
		block := lipgloss.JoinVertical(align, header, bubble)

		b.WriteString(lipgloss.PlaceHorizontal(m.width, align, block))
		b.WriteByte('\n')
	}
	return b.String()
}

// =============================================================================
// OVERLAY CONTENT
// =============================================================================

// helpContent renders the help markdown through Glamour, cached until resize.
func (m Model) helpContent() string {
	if m.helpView != "" {
		return m.helpView
	}
	width := m.width - 8
	if width > 80 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return m.theme.HelpBox.Render(out)
}

// renderPreview pretty-prints and syntax-highlights the first record of a
// conversation. With no conversation it falls back to the archive's raw
// first element retained at ingest time.
func (m Model) renderPreview(g *model.Group) string {
	if g != nil {
		if first := g.First(); first != nil {
			raw, err := json.MarshalIndent(first, "", "  ")
			if err != nil {
				return fmt.Sprintf("(unrenderable record: %v)", err)
			}
			return m.highlightJSON(raw)
		}
	}
	if m.result != nil && len(m.result.Preview) > 0 {
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, m.result.Preview, "", "  "); err == nil {
			return m.highlightJSON(pretty.Bytes())
		}
		return m.highlightJSON(m.result.Preview)
	}
	return "(nothing to preview)"
}

func (m Model) highlightJSON(raw []byte) string {
	chromaStyle := "catppuccin-mocha"
	if !m.theme.IsDark {
		chromaStyle = "catppuccin-latte"
	}
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, string(raw), "json", "terminal256", chromaStyle); err != nil {
		return string(raw)
	}
	return buf.String()
}

// padLines pads content with blank lines to exactly height lines.
func padLines(content string, height int) string {
	lines := strings.Split(content, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n") + "\n"
}
