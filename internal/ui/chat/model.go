// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"log/slog"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/madhwagpt-tui/internal/api"
	"github.com/jeranaias/madhwagpt-tui/internal/model"
	"github.com/jeranaias/madhwagpt-tui/internal/scripture"
	"github.com/jeranaias/madhwagpt-tui/internal/ui/markdown"
	"github.com/jeranaias/madhwagpt-tui/internal/ui/styles"
)

// ThinkingText is shown while a question is in flight.
const ThinkingText = "Consulting Shastras..."

// Asker answers one question at a persona. *api.Client implements it.
type Asker interface {
	Ask(ctx context.Context, question, persona string) (string, error)
}

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady   State = iota // Ready for input
	StateWaiting              // One question in flight
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Options configures a chat screen.
type Options struct {
	Asker  Asker
	Policy api.Policy
	Level  model.Level
	Logger *slog.Logger

	// Verse anchors the chat to one verse; its suggested questions replace
	// the starter suggestions.
	Verse *scripture.Verse

	// WordWrap caps answer width; 0 follows the window.
	WordWrap int
}

// Model is the Bubble Tea model for the chat view.
type Model struct {
	state State
	theme *styles.Theme

	width  int
	height int

	asker  Asker
	policy api.Policy
	log    *slog.Logger

	conversation *model.Conversation
	verse        *scripture.Verse

	// Suggestions shown until the first question; selected is -1 for none.
	suggestions []model.Suggestion
	selected    int

	viewport viewport.Model
	input    textarea.Model
	spinner  spinner.Model
	help     help.Model
	keyMap   KeyMap

	renderer *markdown.Renderer
	wordWrap int

	// seq numbers questions; only the answer to the latest one is shown.
	seq       uint64
	pending   *pendingQuestion
	lastError error
}

// pendingQuestion owns the context of the question being asked. Model is
// copied on every Update, so the copies share it by pointer.
type pendingQuestion struct {
	mu   sync.Mutex
	stop context.CancelFunc
}

// track records stop as the way to abandon the current question.
func (p *pendingQuestion) track(stop context.CancelFunc) {
	p.mu.Lock()
	p.stop = stop
	p.mu.Unlock()
}

// abandon cancels the tracked question. Calling it with nothing tracked is
// a no-op.
func (p *pendingQuestion) abandon() {
	p.mu.Lock()
	stop := p.stop
	p.stop = nil
	p.mu.Unlock()
	if stop != nil {
		stop()
	}
}

// New creates a chat model.
func New(theme *styles.Theme, opts Options) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask about the shastras..."
	ta.ShowLineNumbers = false
	ta.Prompt = "> "
	ta.CharLimit = 2000
	ta.SetHeight(2)
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = styles.DotsSpinner.Bubbles()
	sp.Style = theme.Spinner

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	conv := model.NewConversation()
	conv.Level = opts.Level
	if !conv.Level.Valid() {
		conv.Level = model.DefaultLevel()
	}

	suggestions := model.StarterSuggestions()
	if opts.Verse != nil {
		conv.VerseID = opts.Verse.CanonicalID
		suggestions = model.SuggestionsFrom(opts.Verse.SuggestedQuestions)
	}

	return Model{
		state:        StateReady,
		theme:        theme,
		asker:        opts.Asker,
		policy:       opts.Policy,
		log:          log.With(slog.String("component", "chat")),
		conversation: conv,
		verse:        opts.Verse,
		suggestions:  suggestions,
		selected:     -1,
		viewport:     viewport.New(80, 10),
		input:        ta,
		spinner:      sp,
		help:         help.New(),
		keyMap:       DefaultKeyMap(),
		wordWrap:     opts.WordWrap,
		pending:      &pendingQuestion{},
	}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// State returns the current state.
func (m Model) State() State {
	return m.state
}

// Conversation returns the in-memory conversation.
func (m Model) Conversation() *model.Conversation {
	return m.conversation
}

// Level returns the level questions are asked at.
func (m Model) Level() model.Level {
	return m.conversation.Level
}

// Suggestions returns the suggestions currently offered, or nil once a
// question has been asked.
func (m Model) Suggestions() []model.Suggestion {
	if m.conversation.HasUserMessage() {
		return nil
	}
	return m.suggestions
}

// LastError returns the most recent failure under the strict policy.
func (m Model) LastError() error {
	return m.lastError
}

// SetLevel changes the level for subsequent questions.
func (m *Model) SetLevel(level model.Level) {
	if level.Valid() {
		m.conversation.Level = level
	}
}

// SetPolicy changes how failures are presented.
func (m *Model) SetPolicy(p api.Policy) {
	m.policy = p
}

// SetTheme swaps the style set, for example after a config reload.
func (m *Model) SetTheme(theme *styles.Theme) {
	m.theme = theme
	m.spinner.Style = theme.Spinner
	m.renderer = nil
	m.refreshViewport()
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}
