// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package browser

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/madhwagpt-tui/internal/config"
	"github.com/jeranaias/madhwagpt-tui/internal/pagination"
	"github.com/jeranaias/madhwagpt-tui/internal/scripture"
	"github.com/jeranaias/madhwagpt-tui/internal/ui/chat"
	"github.com/jeranaias/madhwagpt-tui/internal/ui/components"
	"github.com/jeranaias/madhwagpt-tui/internal/ui/styles"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.errorDisplay.SetSize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		m.search.Width = max(msg.Width-6, 10)
		m.layoutDetail()
		if m.screen == ScreenChat {
			m.chat.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case ChaptersLoadedMsg:
		return m.handleChapters(msg)

	case VersesLoadedMsg:
		return m.handleVerses(msg)

	case ConfigReloadedMsg:
		m.ApplyConfig(msg.Config)
		return m, nil

	case ConfigErrorMsg:
		m.log.Warn("config reload failed", slog.Any("error", msg.Err))
		m.notice = styles.RenderWarning("config not reloaded: " + msg.Err.Error())
		return m, nil

	case chat.CloseMsg:
		m.level = m.chat.Level()
		m.screen = m.chatReturn
		return m, nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		if m.screen == ScreenChat {
			cmds = append(cmds, m.updateChat(msg))
		}
		return m, tea.Batch(cmds...)
	}

	if m.screen == ScreenChat {
		return m, m.updateChat(msg)
	}
	return m, nil
}

func (m *Model) updateChat(msg tea.Msg) tea.Cmd {
	updated, cmd := m.chat.Update(msg)
	m.chat = updated.(chat.Model)
	return cmd
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key dismisses the error box.
	if m.errorDisplay.IsVisible() {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.errorDisplay.Hide()
		return m, nil
	}
	m.notice = ""

	if m.screen == ScreenChat {
		return m, m.updateChat(msg)
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	if m.loading {
		switch {
		case msg.String() == "ctrl+c":
			m.cancelInFlight()
			return m, tea.Quit
		case key.Matches(msg, m.keyMap.Back):
			m.cancelInFlight()
			m.seq++
			m.loading = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keyMap.Back):
		m.back()
		return m, nil
	}

	switch m.screen {
	case ScreenWorks:
		return m.handleWorksKey(msg)
	case ScreenChapters:
		return m.handleChaptersKey(msg)
	case ScreenVerses:
		return m.handleVersesKey(msg)
	case ScreenVerse:
		return m.handleVerseKey(msg)
	}
	return m, nil
}

// back moves up one level in the navigation.
func (m *Model) back() {
	switch m.screen {
	case ScreenChapters:
		m.screen = ScreenWorks
	case ScreenVerses:
		m.screen = ScreenChapters
	case ScreenVerse:
		m.screen = ScreenVerses
	}
}

func (m *Model) handleWorksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Up):
		m.workCursor = moveCursor(m.workCursor, -1, len(m.works))
	case key.Matches(msg, m.keyMap.Down):
		m.workCursor = moveCursor(m.workCursor, 1, len(m.works))
	case key.Matches(msg, m.keyMap.Select):
		if len(m.works) == 0 {
			return m, nil
		}
		return m, m.loadChapters(m.works[m.workCursor])
	case key.Matches(msg, m.keyMap.Chat):
		return m, m.openChat(nil)
	}
	return m, nil
}

func (m *Model) handleChaptersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := m.chapters.CurrentItems()
	switch {
	case key.Matches(msg, m.keyMap.Up):
		m.chapterCursor = moveCursor(m.chapterCursor, -1, len(page))
	case key.Matches(msg, m.keyMap.Down):
		m.chapterCursor = moveCursor(m.chapterCursor, 1, len(page))
	case key.Matches(msg, m.keyMap.NextPage):
		if m.chapters.Next() {
			m.chapterCursor = 0
		}
	case key.Matches(msg, m.keyMap.PrevPage):
		if m.chapters.Prev() {
			m.chapterCursor = 0
		}
	case key.Matches(msg, m.keyMap.Select):
		if len(page) == 0 {
			return m, nil
		}
		return m, m.loadVerses(page[m.chapterCursor])
	}
	return m, nil
}

func (m *Model) handleVersesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Up):
		m.verseCursor = moveCursor(m.verseCursor, -1, len(m.filtered))
	case key.Matches(msg, m.keyMap.Down):
		m.verseCursor = moveCursor(m.verseCursor, 1, len(m.filtered))
	case key.Matches(msg, m.keyMap.Search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, m.keyMap.Select):
		if len(m.filtered) == 0 {
			return m, nil
		}
		v := m.filtered[m.verseCursor]
		m.verse = &v
		m.screen = ScreenVerse
		m.layoutDetail()
		m.detail.SetContent(m.renderVerseDetail())
		m.detail.GotoTop()
	}
	return m, nil
}

// handleSearchKey edits the search box; the list filters as the user types.
func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.applySearch()
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applySearch()
	return m, cmd
}

func (m *Model) applySearch() {
	m.filtered = scripture.Search(m.verses, m.search.Value())
	m.verseCursor = 0
}

func (m *Model) handleVerseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Ask):
		return m, m.openChat(m.verse)
	case key.Matches(msg, m.keyMap.Up):
		m.detail.LineUp(1)
	case key.Matches(msg, m.keyMap.Down):
		m.detail.LineDown(1)
	case key.Matches(msg, m.keyMap.PrevPage):
		m.detail.HalfViewUp()
	case key.Matches(msg, m.keyMap.NextPage):
		m.detail.HalfViewDown()
	}
	return m, nil
}

// moveCursor steps a list cursor, clamping at both ends.
func moveCursor(cursor, delta, n int) int {
	if n == 0 {
		return 0
	}
	return min(max(cursor+delta, 0), n-1)
}

// =============================================================================
// CHAT
// =============================================================================

// openChat switches to a fresh chat screen. A nil verse opens a general chat.
func (m *Model) openChat(verse *scripture.Verse) tea.Cmd {
	m.chat = chat.New(m.theme, chat.Options{
		Asker:    m.asker,
		Policy:   m.policy,
		Level:    m.level,
		Logger:   m.log,
		Verse:    verse,
		WordWrap: m.wrap,
	})
	m.chat.SetSize(m.width, m.height)
	m.chatReturn = m.screen
	m.screen = ScreenChat
	return m.chat.Init()
}

// =============================================================================
// LOADING
// =============================================================================

// startLoad cancels any load in flight and returns a context and sequence
// number for a new one.
func (m *Model) startLoad(label string) (context.Context, uint64) {
	m.cancelInFlight()
	ctx, cancel := context.WithCancel(context.Background())

	m.cancelMu.Lock()
	m.cancelLoad = cancel
	m.cancelMu.Unlock()

	m.seq++
	m.loading = true
	m.loadingLabel = label
	return ctx, m.seq
}

func (m *Model) cancelInFlight() {
	m.cancelMu.Lock()
	defer m.cancelMu.Unlock()
	if m.cancelLoad != nil {
		m.cancelLoad()
		m.cancelLoad = nil
	}
}

func (m *Model) loadChapters(w scripture.Work) tea.Cmd {
	ctx, seq := m.startLoad("Loading " + w.Title + "...")
	lib := m.library
	fetch := func() tea.Msg {
		if lib == nil {
			return ChaptersLoadedMsg{Seq: seq, Work: w, Chapters: []scripture.Chapter{}}
		}
		chapters, err := lib.Chapters(ctx, w)
		return ChaptersLoadedMsg{Seq: seq, Work: w, Chapters: chapters, Err: err}
	}
	return tea.Batch(m.spinner.Tick, fetch)
}

func (m *Model) loadVerses(c scripture.Chapter) tea.Cmd {
	w := m.work
	m.chapter = c
	ctx, seq := m.startLoad(fmt.Sprintf("Loading %s...", c.Label()))
	lib := m.library
	fetch := func() tea.Msg {
		if lib == nil {
			return VersesLoadedMsg{Seq: seq, Work: w, Chapter: c.Number, Verses: []scripture.Verse{}}
		}
		verses, err := lib.Verses(ctx, w, c.Number)
		return VersesLoadedMsg{Seq: seq, Work: w, Chapter: c.Number, Verses: verses, Err: err}
	}
	return tea.Batch(m.spinner.Tick, fetch)
}

// finishLoad reports whether a load result is current, and ends loading if
// so.
func (m *Model) finishLoad(seq uint64, err error) bool {
	if seq != m.seq || !m.loading {
		m.log.Debug("dropping stale load", slog.Uint64("seq", seq), slog.Uint64("current", m.seq))
		return false
	}
	m.loading = false
	m.cancelInFlight()
	if err != nil {
		m.errorDisplay = components.FromError(err)
		m.errorDisplay.SetSize(m.width, m.height)
	}
	return true
}

func (m *Model) handleChapters(msg ChaptersLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.finishLoad(msg.Seq, msg.Err) || msg.Err != nil {
		return m, nil
	}
	m.work = msg.Work
	m.chapters.SetItems(msg.Chapters)
	m.chapterCursor = 0
	m.screen = ScreenChapters
	return m, nil
}

func (m *Model) handleVerses(msg VersesLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.finishLoad(msg.Seq, msg.Err) || msg.Err != nil {
		return m, nil
	}
	m.verses = msg.Verses
	m.search.SetValue("")
	m.searching = false
	m.applySearch()
	m.screen = ScreenVerses
	return m, nil
}

// =============================================================================
// CONFIG RELOAD
// =============================================================================

// ApplyConfig applies the settings that can change while the TUI runs:
// theme, level, fallback policy, page size and word wrap.
func (m *Model) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}

	chatTheme, err := styles.ThemeByName(cfg.UI.Theme)
	if err != nil {
		m.log.Warn("unknown theme in reloaded config", slog.Any("error", err))
	}
	m.theme.SetChatTheme(chatTheme)
	m.spinner.Style = m.theme.Spinner

	m.level = cfg.ChatLevel()
	m.policy = cfg.FallbackPolicy()
	if m.library != nil {
		m.library.SetPolicy(m.policy)
	}
	m.wrap = cfg.UI.WordWrap

	if cfg.UI.PageSize != m.chapters.PageSize() {
		items := m.chapters.Items()
		m.chapters = pagination.New(items, cfg.UI.PageSize)
		m.chapterCursor = 0
	}

	// The zero chat has no conversation until one is opened.
	if m.chat.Conversation() != nil {
		m.chat.SetTheme(m.theme)
		m.chat.SetLevel(m.level)
		m.chat.SetPolicy(m.policy)
	}
	if m.verse != nil {
		m.detail.SetContent(m.renderVerseDetail())
	}

	m.log.Info("config reloaded",
		slog.String("theme", chatTheme.Name),
		slog.String("level", m.level.Persona()),
		slog.String("fallback", m.policy.String()))
	m.notice = styles.RenderInfo("config reloaded")
}
