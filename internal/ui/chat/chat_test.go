// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/madhwagpt-tui/internal/api"
	"github.com/jeranaias/madhwagpt-tui/internal/model"
	"github.com/jeranaias/madhwagpt-tui/internal/scripture"
	"github.com/jeranaias/madhwagpt-tui/internal/ui/styles"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

type askCall struct {
	question string
	persona  string
}

type fakeAsker struct {
	mu     sync.Mutex
	answer string
	err    error
	calls  []askCall
}

func (f *fakeAsker) Ask(ctx context.Context, question, persona string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, askCall{question: question, persona: persona})
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return f.answer, f.err
}

func newTestModel(t *testing.T, asker Asker, policy api.Policy, verse *scripture.Verse) Model {
	t.Helper()
	theme := styles.NewTheme(styles.ChatThemes()[0])
	m := New(theme, Options{
		Asker:  asker,
		Policy: policy,
		Level:  model.LevelIntermediate,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Verse:  verse,
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func send(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(text)
	return press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

// findAnswer runs cmd and any batched commands until it finds an AnswerMsg.
func findAnswer(cmd tea.Cmd) (AnswerMsg, bool) {
	if cmd == nil {
		return AnswerMsg{}, false
	}
	switch msg := cmd().(type) {
	case AnswerMsg:
		return msg, true
	case tea.BatchMsg:
		for _, c := range msg {
			if a, ok := findAnswer(c); ok {
				return a, true
			}
		}
	}
	return AnswerMsg{}, false
}

func deliver(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	answer, ok := findAnswer(cmd)
	require.True(t, ok, "command produced no AnswerMsg")
	updated, _ := m.Update(answer)
	return updated.(Model)
}

// =============================================================================
// ASKING
// =============================================================================

func TestSubmitAndAnswer(t *testing.T) {
	asker := &fakeAsker{answer: "Five-fold difference..."}
	m := newTestModel(t, asker, api.PolicyEmpty, nil)

	m, cmd := send(t, m, "  What is Pancha-bheda?  ")
	assert.Equal(t, StateWaiting, m.State())
	assert.Empty(t, m.input.Value())
	assert.Contains(t, m.View(), ThinkingText)

	m = deliver(t, m, cmd)
	assert.Equal(t, StateReady, m.State())

	require.Len(t, asker.calls, 1)
	assert.Equal(t, askCall{question: "What is Pancha-bheda?", persona: "intermediate"}, asker.calls[0])

	msgs := m.Conversation().Messages
	require.Len(t, msgs, 2)
	assert.Equal(t, model.RoleUser, msgs[0].Role)
	assert.Equal(t, "intermediate", msgs[0].Persona)
	assert.Equal(t, model.RoleAssistant, msgs[1].Role)
	assert.Equal(t, "Five-fold difference...", msgs[1].Content)
	assert.NotContains(t, m.View(), ThinkingText)
}

func TestBlankInputIsIgnored(t *testing.T) {
	asker := &fakeAsker{answer: "x"}
	m := newTestModel(t, asker, api.PolicyEmpty, nil)

	m, cmd := send(t, m, "   ")
	assert.Nil(t, cmd)
	assert.Equal(t, StateReady, m.State())
	assert.True(t, m.Conversation().IsEmpty())
}

func TestSubmitWhileWaitingIsIgnored(t *testing.T) {
	asker := &fakeAsker{answer: "x"}
	m := newTestModel(t, asker, api.PolicyEmpty, nil)

	m, first := send(t, m, "first")
	m, second := send(t, m, "second")
	assert.Nil(t, second)
	assert.Equal(t, "second", m.input.Value())

	m = deliver(t, m, first)
	assert.Equal(t, 2, m.Conversation().MessageCount())
}

func TestFailurePolicies(t *testing.T) {
	failure := &api.ClientError{Type: api.ErrTypeBadStatus, Message: "unexpected status", StatusCode: 500}

	tests := []struct {
		name       string
		policy     api.Policy
		answer     string
		err        error
		wantLast   model.Role
		wantCount  int
		wantErrSet bool
	}{
		{"empty policy hides failure", api.PolicyEmpty, "", failure, model.RoleUser, 1, false},
		{"empty policy drops empty answer", api.PolicyEmpty, "", nil, model.RoleUser, 1, false},
		{"strict policy reports failure", api.PolicyStrict, "", failure, model.RoleSystem, 2, true},
		{"strict policy keeps answer", api.PolicyStrict, "ok", nil, model.RoleAssistant, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, &fakeAsker{answer: tt.answer, err: tt.err}, tt.policy, nil)
			m, cmd := send(t, m, "question")
			m = deliver(t, m, cmd)

			if got := m.Conversation().MessageCount(); got != tt.wantCount {
				t.Errorf("MessageCount() = %d, want %d", got, tt.wantCount)
			}
			if got := m.Conversation().GetLastMessage().Role; got != tt.wantLast {
				t.Errorf("last role = %v, want %v", got, tt.wantLast)
			}
			if (m.LastError() != nil) != tt.wantErrSet {
				t.Errorf("LastError() = %v, want set=%v", m.LastError(), tt.wantErrSet)
			}
		})
	}
}

func TestEscCancelsAndDropsStaleAnswer(t *testing.T) {
	asker := &fakeAsker{answer: "late answer"}
	m := newTestModel(t, asker, api.PolicyStrict, nil)

	m, cmd := send(t, m, "question")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateReady, m.State())
	assert.Equal(t, model.RoleSystem, m.Conversation().GetLastMessage().Role)

	// The request context was cancelled, and its answer carries an old seq.
	answer, ok := findAnswer(cmd)
	require.True(t, ok)
	assert.ErrorIs(t, answer.Err, context.Canceled)

	updated, _ := m.Update(answer)
	m = updated.(Model)
	assert.Nil(t, m.LastError())
	assert.Nil(t, m.Conversation().GetLastAssistantMessage())
}

func TestPendingQuestion(t *testing.T) {
	var p pendingQuestion
	p.abandon() // nothing tracked

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.track(cancel)
	p.abandon()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	p.abandon()
}

func TestEscWhenIdleCloses(t *testing.T) {
	m := newTestModel(t, &fakeAsker{}, api.PolicyEmpty, nil)
	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, CloseMsg{}, cmd())
}

func TestNoAsker(t *testing.T) {
	m := newTestModel(t, nil, api.PolicyStrict, nil)
	m, cmd := send(t, m, "question")
	m = deliver(t, m, cmd)
	assert.ErrorIs(t, m.LastError(), errNoAsker)
}

// =============================================================================
// SUGGESTIONS AND LEVELS
// =============================================================================

func TestStarterSuggestionsUntilFirstQuestion(t *testing.T) {
	m := newTestModel(t, &fakeAsker{answer: "a"}, api.PolicyEmpty, nil)
	assert.Equal(t, model.StarterSuggestions(), m.Suggestions())
	assert.Contains(t, m.View(), "Try asking")

	m, cmd := send(t, m, "question")
	m = deliver(t, m, cmd)
	assert.Empty(t, m.Suggestions())
	assert.NotContains(t, m.View(), "Try asking")
}

func TestSelectSuggestionAndSend(t *testing.T) {
	asker := &fakeAsker{answer: "a"}
	m := newTestModel(t, asker, api.PolicyEmpty, nil)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.selected)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, len(m.Suggestions())-1, m.selected, "selection wraps")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	_ = deliver(t, m, cmd)
	require.Len(t, asker.calls, 1)
	assert.Equal(t, model.StarterSuggestions()[5].Text, asker.calls[0].question)
}

func TestVerseModeSuggestions(t *testing.T) {
	sanskrit := "कर्मण्येवाधिकारस्ते"
	verse := &scripture.Verse{
		CanonicalID:        "BG_2_47",
		Sanskrit:           &sanskrit,
		SuggestedQuestions: []string{"What is nishkama karma?", "", "Who speaks this verse?"},
	}
	m := newTestModel(t, &fakeAsker{answer: "a"}, api.PolicyEmpty, verse)

	got := m.Suggestions()
	require.Len(t, got, 2)
	assert.Equal(t, "What is nishkama karma?", got[0].Text)
	assert.Equal(t, "BG_2_47", m.Conversation().VerseID)

	m, cmd := send(t, m, "explain")
	m = deliver(t, m, cmd)
	for _, msg := range m.Conversation().Messages {
		assert.Equal(t, "BG_2_47", msg.VerseID)
	}
}

func TestTabCyclesLevel(t *testing.T) {
	asker := &fakeAsker{answer: "a"}
	m := newTestModel(t, asker, api.PolicyEmpty, nil)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, model.LevelScholar, m.Level())
	assert.True(t, strings.HasPrefix(m.Conversation().GetLastMessage().Content, "Level: Scholar"))

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, model.LevelBeginner, m.Level())

	m, cmd := send(t, m, "question")
	_ = deliver(t, m, cmd)
	assert.Equal(t, "beginner", asker.calls[0].persona)
}

func TestClearHistory(t *testing.T) {
	m := newTestModel(t, &fakeAsker{answer: "a"}, api.PolicyEmpty, nil)
	m, cmd := send(t, m, "question")
	m = deliver(t, m, cmd)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.True(t, m.Conversation().IsEmpty())
	assert.NotEmpty(t, m.Suggestions(), "suggestions return on an empty chat")
}

func TestSetTheme(t *testing.T) {
	m := newTestModel(t, &fakeAsker{answer: "**bold**"}, api.PolicyEmpty, nil)
	m, cmd := send(t, m, "question")
	m = deliver(t, m, cmd)

	plain, err := styles.ThemeByName("default")
	require.NoError(t, err)
	m.SetTheme(styles.NewTheme(plain))
	assert.True(t, m.renderer.Plain())
	assert.Contains(t, m.View(), "bold")
}
