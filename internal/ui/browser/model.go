// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package browser

import (
	"context"
	"log/slog"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/madhwagpt-tui/internal/api"
	"github.com/jeranaias/madhwagpt-tui/internal/model"
	"github.com/jeranaias/madhwagpt-tui/internal/pagination"
	"github.com/jeranaias/madhwagpt-tui/internal/scripture"
	"github.com/jeranaias/madhwagpt-tui/internal/ui/chat"
	"github.com/jeranaias/madhwagpt-tui/internal/ui/components"
	"github.com/jeranaias/madhwagpt-tui/internal/ui/styles"
)

// Library is the scripture source the browser reads from. *scripture.Library
// implements it and applies the list fallback policy itself; SetPolicy
// carries a reloaded policy into later loads.
type Library interface {
	Works() []scripture.Work
	Chapters(ctx context.Context, w scripture.Work) ([]scripture.Chapter, error)
	Verses(ctx context.Context, w scripture.Work, chapter int) ([]scripture.Verse, error)
	SetPolicy(p api.Policy)
}

// =============================================================================
// SCREENS
// =============================================================================

// Screen identifies the view being shown.
type Screen int

const (
	ScreenWorks    Screen = iota // Catalog of works
	ScreenChapters               // Paginated chapters of a work
	ScreenVerses                 // Verses of a chapter, searchable
	ScreenVerse                  // One verse in full
	ScreenChat                   // Chat, general or anchored to a verse
)

// String returns the breadcrumb label of the screen.
func (s Screen) String() string {
	switch s {
	case ScreenWorks:
		return "Works"
	case ScreenChapters:
		return "Chapters"
	case ScreenVerses:
		return "Verses"
	case ScreenVerse:
		return "Verse"
	case ScreenChat:
		return "Chat"
	default:
		return "Unknown"
	}
}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// Options configures the browser.
type Options struct {
	Library  Library
	Asker    chat.Asker
	Policy   api.Policy
	Level    model.Level
	PageSize int
	WordWrap int
	Logger   *slog.Logger
}

// Model is the root Bubble Tea model: the scripture browser with the chat
// screen embedded.
type Model struct {
	screen Screen
	theme  *styles.Theme

	width  int
	height int

	library Library
	asker   chat.Asker
	policy  api.Policy
	level   model.Level
	wrap    int
	log     *slog.Logger

	// Works
	works      []scripture.Work
	workCursor int

	// Chapters of the selected work
	work          scripture.Work
	chapters      *pagination.Pager[scripture.Chapter]
	chapterCursor int // index within the current page

	// Verses of the selected chapter
	chapter     scripture.Chapter
	verses      []scripture.Verse
	filtered    []scripture.Verse
	verseCursor int
	search      textinput.Model
	searching   bool

	// Selected verse
	verse  *scripture.Verse
	detail viewport.Model

	// Chat
	chat       chat.Model
	chatReturn Screen

	// Loading state. seq numbers loads; only the latest one is applied.
	loading      bool
	loadingLabel string
	seq          uint64
	cancelMu     sync.Mutex
	cancelLoad   context.CancelFunc
	spinner      spinner.Model

	errorDisplay components.ErrorDisplay
	notice       string

	help   help.Model
	keyMap KeyMap
}

// New creates the browser at the works screen.
func New(theme *styles.Theme, opts Options) *Model {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	sp := spinner.New()
	sp.Spinner = styles.LineSpinner.Bubbles()
	sp.Style = theme.Spinner

	search := textinput.New()
	search.Placeholder = "search transliteration, translation or words"
	search.Prompt = "/ "
	search.CharLimit = 100

	level := opts.Level
	if !level.Valid() {
		level = model.DefaultLevel()
	}

	var works []scripture.Work
	if opts.Library != nil {
		works = opts.Library.Works()
	}

	return &Model{
		screen:   ScreenWorks,
		theme:    theme,
		library:  opts.Library,
		asker:    opts.Asker,
		policy:   opts.Policy,
		level:    level,
		wrap:     opts.WordWrap,
		log:      log.With(slog.String("component", "browser")),
		works:    works,
		chapters: pagination.New[scripture.Chapter](nil, opts.PageSize),
		search:   search,
		detail:   viewport.New(80, 20),
		spinner:  sp,
		help:     help.New(),
		keyMap:   DefaultKeyMap(),
	}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Screen returns the screen being shown.
func (m *Model) Screen() Screen {
	return m.screen
}

// Loading reports whether a fetch is in flight.
func (m *Model) Loading() bool {
	return m.loading
}

// Chapters returns the loaded chapter pager.
func (m *Model) Chapters() *pagination.Pager[scripture.Chapter] {
	return m.chapters
}

// Verses returns the verses shown on the verse list, after search.
func (m *Model) Verses() []scripture.Verse {
	return m.filtered
}

// Verse returns the selected verse, if any.
func (m *Model) Verse() *scripture.Verse {
	return m.verse
}

// Chat returns the embedded chat screen.
func (m *Model) Chat() chat.Model {
	return m.chat
}

// ErrorDisplay returns the current error box.
func (m *Model) ErrorDisplay() components.ErrorDisplay {
	return m.errorDisplay
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}
