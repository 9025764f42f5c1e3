// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package browser

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/madhwagpt-tui/internal/api"
	"github.com/jeranaias/madhwagpt-tui/internal/config"
	"github.com/jeranaias/madhwagpt-tui/internal/model"
	"github.com/jeranaias/madhwagpt-tui/internal/scripture"
	"github.com/jeranaias/madhwagpt-tui/internal/ui/chat"
	"github.com/jeranaias/madhwagpt-tui/internal/ui/styles"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

type fakeLibrary struct {
	works    []scripture.Work
	chapters []scripture.Chapter
	verses   []scripture.Verse
	err      error
	policy   api.Policy
}

func (f *fakeLibrary) SetPolicy(p api.Policy) {
	f.policy = p
}

func (f *fakeLibrary) Works() []scripture.Work {
	return f.works
}

func (f *fakeLibrary) Chapters(ctx context.Context, w scripture.Work) ([]scripture.Chapter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.chapters, f.err
}

func (f *fakeLibrary) Verses(ctx context.Context, w scripture.Work, chapter int) ([]scripture.Verse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.verses, f.err
}

type fakeAsker struct{}

func (fakeAsker) Ask(ctx context.Context, question, persona string) (string, error) {
	return "answer", nil
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func testChapters(n int) []scripture.Chapter {
	out := make([]scripture.Chapter, n)
	for i := range out {
		out[i] = scripture.Chapter{Number: i + 1, EnglishName: fmt.Sprintf("Chapter %d", i+1), VerseCount: 10}
	}
	return out
}

func testVerses() []scripture.Verse {
	return []scripture.Verse{
		{
			CanonicalID:        "BG_2_47",
			Chapter:            intPtr(2),
			Verse:              intPtr(47),
			Sanskrit:           strPtr("कर्मण्येवाधिकारस्ते"),
			Transliteration:    "karmaṇy evādhikāras te",
			TranslationEnglish: "You have a right to action alone.",
			SuggestedQuestions: []string{"What is nishkama karma?"},
			WordByWord:         []scripture.WordGloss{{Term: "karmaṇi", Meaning: "in action"}},
		},
		{
			CanonicalID:        "BG_2_48",
			Chapter:            intPtr(2),
			Verse:              intPtr(48),
			Sanskrit:           strPtr("योगस्थः कुरु कर्माणि"),
			Transliteration:    "yoga-sthaḥ kuru karmāṇi",
			TranslationEnglish: "Perform your duty established in yoga.",
			SuggestedQuestions: []string{},
		},
	}
}

func newTestModel(t *testing.T, lib *fakeLibrary, policy api.Policy) *Model {
	t.Helper()
	if lib.works == nil {
		lib.works = scripture.Catalog()
	}
	m := New(styles.NewTheme(styles.ChatThemes()[0]), Options{
		Library:  lib,
		Asker:    fakeAsker{},
		Policy:   policy,
		Level:    model.LevelIntermediate,
		PageSize: 10,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func press(m *Model, keyType tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: keyType})
	return cmd
}

func pressRune(m *Model, r rune) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return cmd
}

// collect runs cmd, expanding batches, and returns every message produced.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// deliverLoads feeds the load results found in cmd back into the model.
func deliverLoads(m *Model, cmd tea.Cmd) int {
	n := 0
	for _, msg := range collect(cmd) {
		switch msg.(type) {
		case ChaptersLoadedMsg, VersesLoadedMsg:
			m.Update(msg)
			n++
		}
	}
	return n
}

// openVerses walks from the works screen to the verse list of chapter 1.
func openVerses(t *testing.T, m *Model) {
	t.Helper()
	require.Equal(t, 1, deliverLoads(m, press(m, tea.KeyEnter)))
	require.Equal(t, ScreenChapters, m.Screen())
	require.Equal(t, 1, deliverLoads(m, press(m, tea.KeyEnter)))
	require.Equal(t, ScreenVerses, m.Screen())
}

// =============================================================================
// NAVIGATION
// =============================================================================

func TestNavigateToChapters(t *testing.T) {
	m := newTestModel(t, &fakeLibrary{chapters: testChapters(18)}, api.PolicyEmpty)
	assert.Equal(t, ScreenWorks, m.Screen())
	assert.Contains(t, m.View(), "Bhagavatgeetha")

	cmd := press(m, tea.KeyEnter)
	assert.True(t, m.Loading())
	assert.Contains(t, m.View(), "Loading Bhagavatgeetha")

	require.Equal(t, 1, deliverLoads(m, cmd))
	assert.False(t, m.Loading())
	assert.Equal(t, ScreenChapters, m.Screen())
	assert.Len(t, m.Chapters().Items(), 18)
	assert.Contains(t, m.View(), "Page 1 of 2")

	press(m, tea.KeyRight)
	assert.Equal(t, 1, m.Chapters().Page())
	assert.Len(t, m.Chapters().CurrentItems(), 8)
	assert.Contains(t, m.View(), "Page 2 of 2")

	press(m, tea.KeyEsc)
	assert.Equal(t, ScreenWorks, m.Screen())
}

func TestEmptyPolicyShowsEmptyList(t *testing.T) {
	// *scripture.Library turns a failure into an empty list under the
	// empty policy.
	m := newTestModel(t, &fakeLibrary{chapters: []scripture.Chapter{}}, api.PolicyEmpty)
	deliverLoads(m, press(m, tea.KeyEnter))

	assert.Equal(t, ScreenChapters, m.Screen())
	assert.False(t, m.ErrorDisplay().IsVisible())
	assert.Contains(t, m.View(), "No chapters.")
}

func TestStrictFailureShowsError(t *testing.T) {
	failure := &api.ClientError{Type: api.ErrTypeBadStatus, Message: "unexpected status", StatusCode: 500}
	m := newTestModel(t, &fakeLibrary{err: failure}, api.PolicyStrict)

	deliverLoads(m, press(m, tea.KeyEnter))
	assert.Equal(t, ScreenWorks, m.Screen())
	require.True(t, m.ErrorDisplay().IsVisible())
	assert.Equal(t, "Service Error", m.ErrorDisplay().Title())
	assert.Contains(t, m.View(), "Service Error")

	pressRune(m, 'x')
	assert.False(t, m.ErrorDisplay().IsVisible())
}

func TestCancelledLoadIsDropped(t *testing.T) {
	m := newTestModel(t, &fakeLibrary{chapters: testChapters(3)}, api.PolicyStrict)

	cmd := press(m, tea.KeyEnter)
	press(m, tea.KeyEsc)
	assert.False(t, m.Loading())

	deliverLoads(m, cmd)
	assert.Equal(t, ScreenWorks, m.Screen())
	assert.False(t, m.ErrorDisplay().IsVisible(), "cancelled load must not surface an error")
}

func TestNewerLoadWins(t *testing.T) {
	m := newTestModel(t, &fakeLibrary{chapters: testChapters(3)}, api.PolicyEmpty)

	first := press(m, tea.KeyEnter)
	firstMsgs := collect(first)

	// A second load supersedes the first.
	press(m, tea.KeyEsc)
	press(m, tea.KeyDown)
	second := press(m, tea.KeyEnter)

	for _, msg := range firstMsgs {
		m.Update(msg)
	}
	assert.True(t, m.Loading(), "stale result must not end the newer load")

	deliverLoads(m, second)
	assert.Equal(t, ScreenChapters, m.Screen())
	assert.Equal(t, "Harikathamrutasara", m.work.Title)
}

// =============================================================================
// VERSES
// =============================================================================

func TestVerseSearchAndDetail(t *testing.T) {
	m := newTestModel(t, &fakeLibrary{chapters: testChapters(2), verses: testVerses()}, api.PolicyEmpty)
	openVerses(t, m)
	assert.Len(t, m.Verses(), 2)

	pressRune(m, '/')
	for _, r := range "karmany" {
		pressRune(m, r)
	}
	require.Len(t, m.Verses(), 1)
	assert.Equal(t, "BG_2_47", m.Verses()[0].CanonicalID)
	press(m, tea.KeyEnter)

	press(m, tea.KeyEnter)
	assert.Equal(t, ScreenVerse, m.Screen())
	require.NotNil(t, m.Verse())

	view := m.View()
	for _, want := range []string{"Verse 2.47", "Sanskrit", "karmaṇy", "right to action", "in action"} {
		assert.Contains(t, view, want)
	}

	press(m, tea.KeyEsc)
	assert.Equal(t, ScreenVerses, m.Screen())
}

func TestSearchEscClears(t *testing.T) {
	m := newTestModel(t, &fakeLibrary{chapters: testChapters(1), verses: testVerses()}, api.PolicyEmpty)
	openVerses(t, m)

	pressRune(m, '/')
	for _, r := range "yog" {
		pressRune(m, r)
	}
	require.Len(t, m.Verses(), 1)

	press(m, tea.KeyEsc)
	assert.Len(t, m.Verses(), 2)
	assert.Equal(t, ScreenVerses, m.Screen())
}

// =============================================================================
// CHAT
// =============================================================================

func TestAskAIOpensVerseChat(t *testing.T) {
	m := newTestModel(t, &fakeLibrary{chapters: testChapters(1), verses: testVerses()}, api.PolicyEmpty)
	openVerses(t, m)
	press(m, tea.KeyEnter)
	require.Equal(t, ScreenVerse, m.Screen())

	pressRune(m, 'a')
	assert.Equal(t, ScreenChat, m.Screen())
	assert.Equal(t, "BG_2_47", m.Chat().Conversation().VerseID)
	require.Len(t, m.Chat().Suggestions(), 1)
	assert.Equal(t, "What is nishkama karma?", m.Chat().Suggestions()[0].Text)

	// Esc in the chat closes it and returns to the verse.
	for _, msg := range collect(press(m, tea.KeyEsc)) {
		m.Update(msg)
	}
	assert.Equal(t, ScreenVerse, m.Screen())
}

func TestGeneralChatFromWorks(t *testing.T) {
	m := newTestModel(t, &fakeLibrary{}, api.PolicyEmpty)
	pressRune(m, 'c')
	assert.Equal(t, ScreenChat, m.Screen())
	assert.Equal(t, model.StarterSuggestions(), m.Chat().Suggestions())

	// Tab in the chat changes the level kept by the browser.
	press(m, tea.KeyTab)
	for _, msg := range collect(press(m, tea.KeyEsc)) {
		m.Update(msg)
	}
	assert.Equal(t, ScreenWorks, m.Screen())
	assert.Equal(t, model.LevelScholar, m.level)
}

func TestChatAnswerRoutedThroughBrowser(t *testing.T) {
	m := newTestModel(t, &fakeLibrary{}, api.PolicyEmpty)
	pressRune(m, 'c')

	for _, r := range "hello" {
		pressRune(m, r)
	}
	for _, msg := range collect(press(m, tea.KeyEnter)) {
		if _, ok := msg.(chat.AnswerMsg); ok {
			m.Update(msg)
		}
	}
	last := m.Chat().Conversation().GetLastAssistantMessage()
	require.NotNil(t, last)
	assert.Equal(t, "answer", last.Content)
}

// =============================================================================
// CONFIG RELOAD
// =============================================================================

func TestApplyConfig(t *testing.T) {
	lib := &fakeLibrary{chapters: testChapters(18)}
	m := newTestModel(t, lib, api.PolicyEmpty)
	deliverLoads(m, press(m, tea.KeyEnter))
	press(m, tea.KeyRight)

	cfg := config.Default()
	cfg.UI.Theme = "Saffron Wisdom"
	cfg.UI.PageSize = 5
	cfg.Chat.Level = "scholar"
	cfg.Chat.Fallback = "strict"

	m.Update(ConfigReloadedMsg{Config: cfg})
	assert.Equal(t, "Saffron Wisdom", m.theme.Chat.Name)
	assert.Equal(t, model.LevelScholar, m.level)
	assert.Equal(t, api.PolicyStrict, m.policy)
	assert.Equal(t, api.PolicyStrict, lib.policy)
	assert.Equal(t, 5, m.Chapters().PageSize())
	assert.Equal(t, 0, m.Chapters().Page())
	assert.Equal(t, 4, m.Chapters().TotalPages())
	assert.Contains(t, m.View(), "config reloaded")
}

func TestApplyConfig_StrictReachesListLoads(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	works, err := scripture.Rebase(scripture.Catalog(), server.URL)
	require.NoError(t, err)
	lib := scripture.NewLibrary(api.NewClient(api.Config{Logger: log}), works, api.PolicyEmpty, log)

	m := New(styles.NewTheme(styles.ChatThemes()[0]), Options{
		Library:  lib,
		Asker:    fakeAsker{},
		Policy:   api.PolicyEmpty,
		Level:    model.LevelIntermediate,
		PageSize: 10,
		Logger:   log,
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	// Empty policy: the failed load becomes an empty chapter list.
	deliverLoads(m, press(m, tea.KeyEnter))
	assert.Equal(t, ScreenChapters, m.Screen())
	assert.False(t, m.ErrorDisplay().IsVisible())
	press(m, tea.KeyEsc)
	require.Equal(t, ScreenWorks, m.Screen())

	cfg := config.Default()
	cfg.Chat.Fallback = "strict"
	m.Update(ConfigReloadedMsg{Config: cfg})
	assert.Equal(t, api.PolicyStrict, lib.Policy())

	deliverLoads(m, press(m, tea.KeyEnter))
	assert.Equal(t, ScreenWorks, m.Screen())
	require.True(t, m.ErrorDisplay().IsVisible())
	assert.Equal(t, "Service Error", m.ErrorDisplay().Title())
}

func TestConfigErrorKeepsSettings(t *testing.T) {
	m := newTestModel(t, &fakeLibrary{}, api.PolicyEmpty)
	m.Update(ConfigErrorMsg{Err: fmt.Errorf("invalid config: bad")})
	assert.Equal(t, api.PolicyEmpty, m.policy)
	assert.Contains(t, m.View(), "config not reloaded")
}

func TestWindow(t *testing.T) {
	tests := []struct {
		total, cursor, rows int
		wantStart, wantEnd  int
	}{
		{5, 0, 10, 0, 5},
		{20, 0, 5, 0, 5},
		{20, 10, 5, 8, 13},
		{20, 19, 5, 15, 20},
	}
	for _, tt := range tests {
		start, end := window(tt.total, tt.cursor, tt.rows)
		if start != tt.wantStart || end != tt.wantEnd {
			t.Errorf("window(%d, %d, %d) = (%d, %d), want (%d, %d)",
				tt.total, tt.cursor, tt.rows, start, end, tt.wantStart, tt.wantEnd)
		}
	}
}
