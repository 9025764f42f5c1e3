// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/madhwagpt-tui/internal/api"
	"github.com/jeranaias/madhwagpt-tui/internal/ui/styles"
)

// =============================================================================
// ERROR DISPLAY MODEL
// =============================================================================

// ErrorDisplay is a dismissible error box shown over a screen when a fetch
// fails under the strict fallback policy.
type ErrorDisplay struct {
	title       string
	message     string
	suggestions []string

	visible bool
	width   int
}

// NewError creates a visible error display.
func NewError(title, message string) ErrorDisplay {
	return ErrorDisplay{title: title, message: message, visible: true}
}

// NewErrorWithSuggestions creates a visible error display with hints.
func NewErrorWithSuggestions(title, message string, suggestions []string) ErrorDisplay {
	e := NewError(title, message)
	e.suggestions = suggestions
	return e
}

// FromError builds an error display whose title and hints follow the kind
// of client failure.
func FromError(err error) ErrorDisplay {
	if err == nil {
		return ErrorDisplay{}
	}
	msg := err.Error()

	if errors.Is(err, context.DeadlineExceeded) {
		return NewErrorWithSuggestions("Request Timed Out", msg, []string{
			"The service may be waking up, try again in a minute",
			"Raise [api] timeout in config.toml",
		})
	}

	switch api.TypeOf(err) {
	case api.ErrTypeInvalidURL:
		return NewErrorWithSuggestions("Invalid Address", msg, []string{
			"Check [api] base_url and query_url in config.toml",
		})
	case api.ErrTypeTransport:
		return NewErrorWithSuggestions("Connection Failed", msg, []string{
			"Check your network connection",
			"The service may be waking up, try again in a minute",
		})
	case api.ErrTypeBadStatus:
		title := "Service Error"
		if code, ok := api.StatusCode(err); ok && code < 500 {
			title = "Request Rejected"
		}
		return NewErrorWithSuggestions(title, msg, []string{
			"Try again later",
		})
	case api.ErrTypeDecode, api.ErrTypeNonHTTP:
		return NewErrorWithSuggestions("Unexpected Response", msg, []string{
			"The service returned data this version cannot read",
		})
	default:
		return NewError("Error", msg)
	}
}

// =============================================================================
// STATE
// =============================================================================

// SetSize sets the available width.
func (e *ErrorDisplay) SetSize(width, _ int) {
	e.width = width
}

// Hide dismisses the error.
func (e *ErrorDisplay) Hide() {
	e.visible = false
}

// IsVisible reports whether the error is shown.
func (e ErrorDisplay) IsVisible() bool {
	return e.visible
}

// Title returns the error title.
func (e ErrorDisplay) Title() string {
	return e.title
}

// Message returns the error message.
func (e ErrorDisplay) Message() string {
	return e.message
}

// Suggestions returns the hints shown under the message.
func (e ErrorDisplay) Suggestions() []string {
	return e.suggestions
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the error box, or "" when hidden.
func (e ErrorDisplay) View(theme *styles.Theme) string {
	if !e.visible {
		return ""
	}

	boxWidth := 60
	if e.width > 0 && e.width-4 < boxWidth {
		boxWidth = max(e.width-4, 20)
	}

	// ACCESSIBILITY: the [X] indicator carries the meaning without color.
	lines := []string{
		theme.ErrorTitle.Render(styles.StatusIndicators.Error + " " + e.title),
		"",
		theme.ErrorMessage.Width(boxWidth - 4).Render(e.message),
	}
	if len(e.suggestions) > 0 {
		lines = append(lines, "")
		for _, s := range e.suggestions {
			lines = append(lines, theme.InfoStyle.Render("  - ")+s)
		}
	}
	lines = append(lines, "", theme.ShortcutDesc.Render("Press any key to dismiss"))

	box := theme.ErrorBox.Width(boxWidth).Render(strings.Join(lines, "\n"))
	if e.width > 0 {
		return lipgloss.PlaceHorizontal(e.width, lipgloss.Center, box)
	}
	return box
}
