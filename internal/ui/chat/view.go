// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/madhwagpt-tui/internal/model"
	"github.com/jeranaias/madhwagpt-tui/internal/ui/markdown"
	"github.com/jeranaias/madhwagpt-tui/internal/util"
)

// Fixed rows around the viewport: header (2), indicator (1), input (2 plus
// border 2), status bar (1).
const chromeHeight = 8

// =============================================================================
// VIEW
// =============================================================================

// View renders the chat screen.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	parts := []string{
		m.renderHeader(),
		m.viewport.View(),
	}
	if s := m.renderSuggestions(); s != "" {
		parts = append(parts, s)
	}
	parts = append(parts,
		m.renderIndicator(),
		m.theme.InputContainer.Width(max(m.width-2, 10)).Render(m.input.View()),
		m.theme.StatusBar.Render(m.help.ShortHelpView(m.keyMap.ShortHelp())),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("MadhwaGPT")
	sub := fmt.Sprintf("%s level", m.conversation.Level)
	if m.verse != nil {
		sub = fmt.Sprintf("Verse %s  |  %s", m.verse.Title(), sub)
	}
	line := title + "  " + m.theme.HeaderSubtitle.Render(sub)
	return m.theme.Header.Width(max(m.width-2, 10)).Render(line)
}

// renderIndicator shows the thinking line while waiting and a blank row
// otherwise.
func (m Model) renderIndicator() string {
	if m.state != StateWaiting {
		return ""
	}
	return m.spinner.View() + " " + m.theme.ThinkingText.Render(ThinkingText)
}

func (m Model) renderSuggestions() string {
	suggestions := m.Suggestions()
	if len(suggestions) == 0 || m.state == StateWaiting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.SuggestionTitle.Render("Try asking"))
	for i, s := range suggestions {
		b.WriteString("\n")
		// UNICODE: truncate by display width, Kannada and Devanagari
		// clusters are wider than their rune count suggests.
		text := util.TruncateWidth(s.Text, max(m.width-6, 10))
		if i == m.selected {
			b.WriteString(m.theme.SuggestionSelected.Render("> " + text))
		} else {
			b.WriteString(m.theme.SuggestionItem.Render("  " + text))
		}
	}
	return b.String()
}

// =============================================================================
// LAYOUT
// =============================================================================

// layout sizes the viewport to whatever the other rows leave over.
func (m *Model) layout() {
	if m.height == 0 {
		return
	}
	used := chromeHeight
	if n := len(m.Suggestions()); n > 0 && m.state != StateWaiting {
		used += n + 1
	}
	m.viewport.Width = max(m.width-2, 10)
	m.viewport.Height = max(m.height-used, 3)
}

// refreshViewport re-renders every message into the viewport and scrolls
// to the newest.
func (m *Model) refreshViewport() {
	bw := m.theme.BubbleWidth()
	if bw <= 0 {
		bw = 60
	}
	wrap := bw - 4
	if m.wordWrap > 0 && m.wordWrap < wrap {
		wrap = m.wordWrap
	}
	// PERFORMANCE: glamour renderers are costly, rebuild only on resize or
	// theme change.
	if m.renderer == nil || m.renderer.Width() != wrap || m.renderer.Plain() != m.theme.Plain() {
		m.renderer = markdown.New(wrap, m.theme.Plain())
	}

	blocks := make([]string, 0, len(m.conversation.Messages))
	for _, msg := range m.conversation.Messages {
		blocks = append(blocks, m.renderMessage(msg, bw))
	}
	m.viewport.SetContent(strings.Join(blocks, "\n\n"))
	m.viewport.GotoBottom()
}

func (m *Model) renderMessage(msg *model.Message, bw int) string {
	label := m.theme.RoleLabel.Render(msg.Role.DisplayName()) + " " +
		m.theme.Timestamp.Render(msg.Timestamp.Format("15:04"))

	switch msg.Role {
	case model.RoleUser:
		style := m.theme.UserBubble
		w := min(bw, util.StringWidth(msg.Content)+style.GetHorizontalPadding())
		block := lipgloss.JoinVertical(lipgloss.Right, label, style.Width(w).Render(msg.Content))
		return lipgloss.PlaceHorizontal(m.viewport.Width, lipgloss.Right, block)
	case model.RoleAssistant:
		return lipgloss.JoinVertical(lipgloss.Left, label,
			m.theme.AssistantBubble.MaxWidth(bw).Render(m.renderer.Render(msg.Content)))
	default:
		return lipgloss.PlaceHorizontal(m.viewport.Width, lipgloss.Center,
			m.theme.SystemBubble.Render(msg.Content))
	}
}
