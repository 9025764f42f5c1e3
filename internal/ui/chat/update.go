// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// errNoAsker is reported when the screen was built without a client.
var errNoAsker = errors.New("chat: no question client configured")

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case AnswerMsg:
		return m.handleAnswer(msg)

	case spinner.TickMsg:
		if m.state != StateWaiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// SetSize lays the screen out for a new terminal size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)
	m.input.SetWidth(max(width-4, 10))
	m.help.Width = width
	m.layout()
	m.refreshViewport()
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		m.pending.abandon()
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Back):
		if m.state == StateWaiting {
			m.abort()
			return m, nil
		}
		return m, func() tea.Msg { return CloseMsg{} }

	case key.Matches(msg, m.keyMap.CycleLevel):
		m.SetLevel(m.conversation.Level.Next())
		m.conversation.AddSystemMessage(fmt.Sprintf("Level: %s (%s)",
			m.conversation.Level, m.conversation.Level.Description()))
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keyMap.Clear):
		if m.state == StateWaiting {
			return m, nil
		}
		m.conversation.ClearHistory()
		m.selected = -1
		m.lastError = nil
		m.layout()
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.NextSuggestion, m.keyMap.PrevSuggestion):
		if m.canSelectSuggestion() {
			m.moveSelection(key.Matches(msg, m.keyMap.NextSuggestion))
			return m, nil
		}

	case key.Matches(msg, m.keyMap.Submit):
		// IMPORTANT: one question in flight at a time.
		if m.state == StateWaiting {
			return m, nil
		}
		question := strings.TrimSpace(m.input.Value())
		if question == "" && m.selected >= 0 && m.selected < len(m.Suggestions()) {
			question = m.suggestions[m.selected].Text
		}
		if question == "" {
			return m, nil
		}
		return m.submit(question)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != "" {
		m.selected = -1
	}
	return m, cmd
}

func (m Model) canSelectSuggestion() bool {
	return m.state == StateReady && m.input.Value() == "" && len(m.Suggestions()) > 0
}

// moveSelection steps through the suggestions, wrapping at both ends.
func (m *Model) moveSelection(forward bool) {
	n := len(m.Suggestions())
	switch {
	case m.selected < 0 && forward:
		m.selected = 0
	case m.selected < 0:
		m.selected = n - 1
	case forward:
		m.selected = (m.selected + 1) % n
	default:
		m.selected = (m.selected - 1 + n) % n
	}
}

// =============================================================================
// ASKING
// =============================================================================

// submit records the question and starts the request.
func (m Model) submit(question string) (tea.Model, tea.Cmd) {
	msg := m.conversation.AddUserMessage(question)
	m.input.Reset()
	m.selected = -1
	m.lastError = nil
	m.state = StateWaiting
	m.seq++

	ctx, cancel := context.WithCancel(context.Background())
	m.pending.track(cancel)

	m.log.Debug("asking",
		slog.Uint64("seq", m.seq),
		slog.String("persona", msg.Persona),
		slog.Int("question_len", len(question)))

	m.layout()
	m.refreshViewport()
	return m, tea.Batch(m.spinner.Tick, askCmd(ctx, m.asker, m.seq, question, msg.Persona))
}

// askCmd runs one question off the Update loop.
func askCmd(ctx context.Context, asker Asker, seq uint64, question, persona string) tea.Cmd {
	return func() tea.Msg {
		if asker == nil {
			return AnswerMsg{Seq: seq, Question: question, Err: errNoAsker}
		}
		answer, err := asker.Ask(ctx, question, persona)
		return AnswerMsg{Seq: seq, Question: question, Answer: answer, Err: err}
	}
}

// abort cancels the question in flight. Its answer, if it still arrives,
// carries an old sequence number and is dropped.
func (m *Model) abort() {
	m.pending.abandon()
	m.seq++
	m.state = StateReady
	m.conversation.AddSystemMessage("Cancelled.")
	m.layout()
	m.refreshViewport()
}

// handleAnswer applies the fallback policy to a finished question.
func (m Model) handleAnswer(msg AnswerMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.seq || m.state != StateWaiting {
		m.log.Debug("dropping stale answer", slog.Uint64("seq", msg.Seq), slog.Uint64("current", m.seq))
		return m, nil
	}
	m.pending.abandon()
	m.state = StateReady

	answer, err := m.policy.ApplyAnswer(m.log, msg.Answer, msg.Err)
	switch {
	case err != nil:
		m.lastError = err
		m.conversation.AddSystemMessage("Could not get an answer: " + err.Error())
	case strings.TrimSpace(answer) != "":
		m.conversation.AddAssistantMessage(answer)
	}

	m.layout()
	m.refreshViewport()
	return m, nil
}
