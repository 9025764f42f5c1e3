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

	// Chat is the selected color scheme.
	Chat ChatTheme

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App            lipgloss.Style
	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	Breadcrumb     lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	SystemBubble    lipgloss.Style
	RoleLabel       lipgloss.Style
	Timestamp       lipgloss.Style

	// ==========================================================================
	// INPUT AND SUGGESTION STYLES
	// ==========================================================================

	InputContainer     lipgloss.Style
	InputPlaceholder   lipgloss.Style
	SuggestionTitle    lipgloss.Style
	SuggestionItem     lipgloss.Style
	SuggestionSelected lipgloss.Style

	// ==========================================================================
	// LIST STYLES (works, chapters, verses)
	// ==========================================================================

	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style
	ListMeta         lipgloss.Style
	PageIndicator    lipgloss.Style

	// ==========================================================================
	// VERSE STYLES
	// ==========================================================================

	VerseTitle      lipgloss.Style
	VerseScript     lipgloss.Style
	Transliteration lipgloss.Style
	Translation     lipgloss.Style
	GlossTerm       lipgloss.Style
	GlossMeaning    lipgloss.Style
	SectionLabel    lipgloss.Style

	// ==========================================================================
	// STATUS BAR AND SPINNER STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	Spinner      lipgloss.Style
	ThinkingText lipgloss.Style

	// ==========================================================================
	// ERROR BOX STYLES
	// ==========================================================================

	ErrorBox     lipgloss.Style
	ErrorTitle   lipgloss.Style
	ErrorMessage lipgloss.Style

	// ACCESSIBILITY: pair these with StatusIndicators symbols.
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
}

// NewTheme creates a theme for the given chat color scheme.
// NO_COLOR and CLICOLOR_FORCE are honored through termenv.
func NewTheme(chat ChatTheme) *Theme {
	colorProfile := termenv.EnvColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.SetChatTheme(chat)
	return t
}

// SetChatTheme switches color scheme and rebuilds every style. Used when
// the config file changes while the TUI runs.
func (t *Theme) SetChatTheme(chat ChatTheme) {
	t.Chat = chat
	t.initStyles()
}

// Plain reports whether styles render without color.
func (t *Theme) Plain() bool {
	return t.Chat.Plain || t.ColorProfile == termenv.Ascii
}

// color returns c, or no color at all for the plain theme.
func (t *Theme) color(c lipgloss.AdaptiveColor) lipgloss.TerminalColor {
	if t.Plain() || (c.Light == "" && c.Dark == "") {
		return lipgloss.NoColor{}
	}
	return c
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	accent := t.color(t.Chat.Accent)

	t.App = lipgloss.NewStyle().Padding(0, 1)

	t.Header = lipgloss.NewStyle().
		Bold(true).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(accent)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(t.color(TextSecondary)).
		Italic(true)

	t.Breadcrumb = lipgloss.NewStyle().
		Foreground(t.color(TextMuted))

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(t.color(t.Chat.UserBubbleFg)).
		Background(t.color(t.Chat.UserBubbleBg)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 2).
		MarginLeft(4)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(t.color(t.Chat.AssistantBubbleFg)).
		Background(t.color(t.Chat.AssistantBubbleBg)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.color(Overlay)).
		Padding(0, 2).
		MarginRight(4)

	t.SystemBubble = lipgloss.NewStyle().
		Foreground(t.color(SystemBubbleFg)).
		Background(t.color(SystemBubbleBg)).
		Padding(0, 2).
		Align(lipgloss.Center)

	t.RoleLabel = lipgloss.NewStyle().
		Foreground(accent).
		Bold(true)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(t.color(TextMuted))

	// Input and suggestions
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(t.color(Overlay))

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(t.color(TextMuted)).
		Italic(true)

	t.SuggestionTitle = lipgloss.NewStyle().
		Foreground(t.color(TextSecondary)).
		Bold(true)

	t.SuggestionItem = lipgloss.NewStyle().
		Foreground(t.color(TextPrimary)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.color(Overlay)).
		Padding(0, 1)

	t.SuggestionSelected = t.SuggestionItem.
		BorderForeground(accent).
		Foreground(accent).
		Bold(true)

	// Lists
	t.ListItem = lipgloss.NewStyle().
		Foreground(t.color(TextPrimary)).
		PaddingLeft(2)

	t.ListItemSelected = lipgloss.NewStyle().
		Foreground(accent).
		Bold(true).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(accent).
		PaddingLeft(1)

	t.ListMeta = lipgloss.NewStyle().
		Foreground(t.color(TextMuted))

	t.PageIndicator = lipgloss.NewStyle().
		Foreground(t.color(TextSecondary))

	// Verses
	t.VerseTitle = lipgloss.NewStyle().
		Foreground(accent).
		Bold(true)

	t.VerseScript = lipgloss.NewStyle().
		Foreground(t.color(Saffron)).
		Bold(true)

	t.Transliteration = lipgloss.NewStyle().
		Foreground(t.color(TextSecondary)).
		Italic(true)

	t.Translation = lipgloss.NewStyle().
		Foreground(t.color(TextPrimary))

	t.GlossTerm = lipgloss.NewStyle().
		Foreground(t.color(Cyan)).
		Bold(true)

	t.GlossMeaning = lipgloss.NewStyle().
		Foreground(t.color(TextSecondary))

	t.SectionLabel = lipgloss.NewStyle().
		Foreground(t.color(TextMuted)).
		Bold(true).
		MarginTop(1)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(t.color(SurfaceDim)).
		Foreground(t.color(TextSecondary)).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(accent).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(t.color(TextMuted))

	t.Spinner = lipgloss.NewStyle().
		Foreground(accent)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(t.color(TextSecondary)).
		Italic(true)

	// Error boxes
	t.ErrorBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(t.color(Rose)).
		Padding(0, 2)

	t.ErrorTitle = lipgloss.NewStyle().
		Foreground(t.color(Rose)).
		Bold(true)

	t.ErrorMessage = lipgloss.NewStyle().
		Foreground(t.color(TextPrimary))

	t.SuccessStyle = lipgloss.NewStyle().Foreground(t.color(SuccessHighContrast)).Bold(true)
	t.ErrorStyle = lipgloss.NewStyle().Foreground(t.color(ErrorHighContrast)).Bold(true)
	t.WarningStyle = lipgloss.NewStyle().Foreground(t.color(WarningHighContrast)).Bold(true)
	t.InfoStyle = lipgloss.NewStyle().Foreground(t.color(InfoHighContrast)).Bold(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// BubbleWidth is the width of a chat bubble at the current size.
func (t *Theme) BubbleWidth() int {
	switch t.GetLayoutMode() {
	case LayoutNarrow:
		return max(t.Width-6, 20)
	case LayoutMedium:
		return t.Width * 3 / 4
	default:
		return t.Width * 2 / 3
	}
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
