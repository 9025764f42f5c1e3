// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/madhwagpt-tui/internal/util"
)

// Rows taken by the header, breadcrumb, page indicator and status bar.
const chromeHeight = 6

// =============================================================================
// VIEW
// =============================================================================

// View renders the current screen.
func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	if m.screen == ScreenChat {
		return m.chat.View()
	}
	if m.errorDisplay.IsVisible() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.errorDisplay.View(m.theme))
	}

	var body string
	switch {
	case m.loading:
		body = m.spinner.View() + " " + m.theme.ThinkingText.Render(m.loadingLabel)
	case m.screen == ScreenWorks:
		body = m.viewWorks()
	case m.screen == ScreenChapters:
		body = m.viewChapters()
	case m.screen == ScreenVerses:
		body = m.viewVerses()
	case m.screen == ScreenVerse:
		body = m.detail.View()
	}

	parts := []string{m.viewHeader(), body}
	if m.notice != "" {
		parts = append(parts, m.notice)
	}
	parts = append(parts, m.theme.StatusBar.Render(m.help.ShortHelpView(m.keyMap.helpFor(m.screen))))
	return m.theme.App.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m *Model) viewHeader() string {
	title := m.theme.HeaderTitle.Render("MadhwaGPT") + "  " +
		m.theme.HeaderSubtitle.Render("Dvaita Vedanta scriptures")
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Header.Width(max(m.width-2, 10)).Render(title),
		m.theme.Breadcrumb.Render(m.breadcrumb()))
}

// breadcrumb shows where the user is, e.g. "Works > Bhagavatgeetha > 2".
func (m *Model) breadcrumb() string {
	crumbs := []string{"Works"}
	if m.screen >= ScreenChapters && m.screen != ScreenChat {
		crumbs = append(crumbs, m.work.Title)
	}
	if m.screen >= ScreenVerses && m.screen != ScreenChat {
		crumbs = append(crumbs, fmt.Sprintf("%d", m.chapter.Number))
	}
	if m.screen == ScreenVerse && m.verse != nil {
		crumbs = append(crumbs, m.verse.Title())
	}
	return strings.Join(crumbs, " > ")
}

// =============================================================================
// LISTS
// =============================================================================

func (m *Model) viewWorks() string {
	if len(m.works) == 0 {
		return m.theme.ListMeta.Render("No works available.")
	}
	var b strings.Builder
	for i, w := range m.works {
		meta := fmt.Sprintf("%s  |  %s  |  %s", w.Language, w.Metadata[0], w.Metadata[1])
		lines := w.Title + "\n" + m.theme.ListMeta.Render("   "+w.Description+"  ("+meta+")")
		b.WriteString(m.listItem(i == m.workCursor, lines))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) viewChapters() string {
	page := m.chapters.CurrentItems()
	if len(page) == 0 {
		// Failed loads under the empty policy land here too.
		return m.theme.ListMeta.Render("No chapters.")
	}

	var b strings.Builder
	for i, c := range page {
		line := util.TruncateWidth(c.Label(), max(m.width-8, 10))
		line += "\n" + m.theme.ListMeta.Render("   "+c.DisplayName())
		b.WriteString(m.listItem(i == m.chapterCursor, line))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.PageIndicator.Render(fmt.Sprintf("Page %d of %d",
		m.chapters.Page()+1, m.chapters.TotalPages())))
	return b.String()
}

func (m *Model) viewVerses() string {
	var b strings.Builder
	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	if len(m.filtered) == 0 {
		b.WriteString(m.theme.ListMeta.Render("No verses."))
		return b.String()
	}

	rows := max(m.height-chromeHeight-2, 3)
	start, end := window(len(m.filtered), m.verseCursor, rows)
	for i := start; i < end; i++ {
		v := m.filtered[i]
		// UNICODE: transliteration carries IAST diacritics, truncate by width.
		line := fmt.Sprintf("%-6s %s", v.Title(), util.FirstLine(v.Transliteration))
		line = util.TruncateWidth(line, max(m.width-6, 10))
		b.WriteString(m.listItem(i == m.verseCursor, line))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.PageIndicator.Render(fmt.Sprintf("%d of %d", m.verseCursor+1, len(m.filtered))))
	return b.String()
}

func (m *Model) listItem(selected bool, text string) string {
	if selected {
		return m.theme.ListItemSelected.Render("> " + text)
	}
	return m.theme.ListItem.Render("  " + text)
}

// window returns the [start, end) range of rows to show so the cursor stays
// visible.
func window(total, cursor, rows int) (int, int) {
	if total <= rows {
		return 0, total
	}
	start := max(cursor-rows/2, 0)
	end := start + rows
	if end > total {
		end = total
		start = end - rows
	}
	return start, end
}

// =============================================================================
// VERSE DETAIL
// =============================================================================

func (m *Model) layoutDetail() {
	m.detail.Width = max(m.width-2, 10)
	m.detail.Height = max(m.height-chromeHeight, 3)
}

// renderVerseDetail lays out one verse: script text, transliteration,
// translation and the word-by-word glosses.
func (m *Model) renderVerseDetail() string {
	v := m.verse
	if v == nil {
		return ""
	}
	width := max(m.detail.Width-2, 20)
	if m.wrap > 0 && m.wrap < width {
		width = m.wrap
	}

	var sections []string
	sections = append(sections, m.theme.VerseTitle.Render("Verse "+v.Title()))

	if v.Kannada != nil && *v.Kannada != "" {
		sections = append(sections, m.section("Kannada", m.theme.VerseScript.Width(width).Render(*v.Kannada)))
	}
	if v.Sanskrit != nil && *v.Sanskrit != "" {
		sections = append(sections, m.section("Sanskrit", m.theme.VerseScript.Width(width).Render(*v.Sanskrit)))
	}
	if v.Transliteration != "" {
		sections = append(sections, m.section("Transliteration", m.theme.Transliteration.Width(width).Render(v.Transliteration)))
	}
	if t := v.Translation(); t != "" {
		sections = append(sections, m.section("Translation", m.theme.Translation.Width(width).Render(t)))
	}
	if len(v.WordByWord) > 0 {
		var glosses []string
		for _, g := range v.WordByWord {
			glosses = append(glosses, m.theme.GlossTerm.Render(g.Term)+"  "+m.theme.GlossMeaning.Render(g.Meaning))
		}
		sections = append(sections, m.section("Word by word", strings.Join(glosses, "\n")))
	}
	if len(v.SuggestedQuestions) > 0 {
		sections = append(sections, m.theme.ListMeta.Render(
			fmt.Sprintf("Press a to ask about this verse (%d suggested questions)", len(v.SuggestedQuestions))))
	}
	return strings.Join(sections, "\n\n")
}

func (m *Model) section(label, body string) string {
	return m.theme.SectionLabel.Render(label) + "\n" + body
}
