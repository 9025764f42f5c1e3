// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// CHAT THEMES
// =============================================================================

// ChatTheme is a named color scheme for the chat and browser screens.
type ChatTheme struct {
	Name        string
	Description string

	Accent            lipgloss.AdaptiveColor
	UserBubbleBg      lipgloss.AdaptiveColor
	UserBubbleFg      lipgloss.AdaptiveColor
	AssistantBubbleBg lipgloss.AdaptiveColor
	AssistantBubbleFg lipgloss.AdaptiveColor

	// Plain disables all theme colors.
	Plain bool
}

// DefaultChatThemeName is used when no theme is configured.
const DefaultChatThemeName = "NotebookLM Purple"

// ChatThemes returns the selectable themes in display order.
func ChatThemes() []ChatTheme {
	return []ChatTheme{
		{
			Name:              "NotebookLM Purple",
			Description:       "Modern purple theme",
			Accent:            Purple,
			UserBubbleBg:      lipgloss.AdaptiveColor{Light: "#EDE9FE", Dark: "#5B21B6"},
			UserBubbleFg:      lipgloss.AdaptiveColor{Light: "#4C1D95", Dark: "#F5F3FF"},
			AssistantBubbleBg: lipgloss.AdaptiveColor{Light: "#F5F3FF", Dark: "#3B3655"},
			AssistantBubbleFg: lipgloss.AdaptiveColor{Light: "#5B4B8A", Dark: "#E9E4F5"},
		},
		{
			Name:              "Saffron Wisdom",
			Description:       "Traditional Indian spiritual theme",
			Accent:            lipgloss.AdaptiveColor{Light: "#EA580C", Dark: "#FB923C"},
			UserBubbleBg:      lipgloss.AdaptiveColor{Light: "#FFEDD5", Dark: "#9A3412"},
			UserBubbleFg:      lipgloss.AdaptiveColor{Light: "#7C2D12", Dark: "#FFF7ED"},
			AssistantBubbleBg: lipgloss.AdaptiveColor{Light: "#FFF7ED", Dark: "#431407"},
			AssistantBubbleFg: lipgloss.AdaptiveColor{Light: "#9A3412", Dark: "#FED7AA"},
		},
		{
			Name:              "Temple Gold",
			Description:       "Rich traditional temple palette",
			Accent:            lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FACC15"},
			UserBubbleBg:      lipgloss.AdaptiveColor{Light: "#FEF9C3", Dark: "#854D0E"},
			UserBubbleFg:      lipgloss.AdaptiveColor{Light: "#713F12", Dark: "#FEFCE8"},
			AssistantBubbleBg: lipgloss.AdaptiveColor{Light: "#FEFCE8", Dark: "#422006"},
			AssistantBubbleFg: lipgloss.AdaptiveColor{Light: "#854D0E", Dark: "#FEF08A"},
		},
		{
			Name:              "Ancient Rose Gold",
			Description:       "Premium rose-gold with parchment warmth",
			Accent:            lipgloss.AdaptiveColor{Light: "#B76E79", Dark: "#E8B4B8"},
			UserBubbleBg:      lipgloss.AdaptiveColor{Light: "#FCE7EA", Dark: "#7F3B45"},
			UserBubbleFg:      lipgloss.AdaptiveColor{Light: "#6B2A33", Dark: "#FDF2F4"},
			AssistantBubbleBg: lipgloss.AdaptiveColor{Light: "#FBF5EC", Dark: "#3F2A2C"},
			AssistantBubbleFg: lipgloss.AdaptiveColor{Light: "#7A5A48", Dark: "#F1E3D3"},
		},
		{
			Name:              "Scholarly Teal",
			Description:       "Calm academic theme",
			Accent:            lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#2DD4BF"},
			UserBubbleBg:      lipgloss.AdaptiveColor{Light: "#CCFBF1", Dark: "#115E59"},
			UserBubbleFg:      lipgloss.AdaptiveColor{Light: "#134E4A", Dark: "#F0FDFA"},
			AssistantBubbleBg: lipgloss.AdaptiveColor{Light: "#F0FDFA", Dark: "#042F2E"},
			AssistantBubbleFg: lipgloss.AdaptiveColor{Light: "#115E59", Dark: "#99F6E4"},
		},
		{
			Name:              "Ancient Manuscript",
			Description:       "Warm parchment theme",
			Accent:            lipgloss.AdaptiveColor{Light: "#8B5E3C", Dark: "#D2B48C"},
			UserBubbleBg:      lipgloss.AdaptiveColor{Light: "#F3E5C8", Dark: "#5C4033"},
			UserBubbleFg:      lipgloss.AdaptiveColor{Light: "#4A3222", Dark: "#FAF0DC"},
			AssistantBubbleBg: lipgloss.AdaptiveColor{Light: "#FAF3E3", Dark: "#33261C"},
			AssistantBubbleFg: lipgloss.AdaptiveColor{Light: "#5C4033", Dark: "#E8D8B8"},
		},
		{
			Name:              "Sage Green",
			Description:       "Natural wisdom theme",
			Accent:            lipgloss.AdaptiveColor{Light: "#4D7C0F", Dark: "#A3B18A"},
			UserBubbleBg:      lipgloss.AdaptiveColor{Light: "#E3EBD3", Dark: "#3A5A40"},
			UserBubbleFg:      lipgloss.AdaptiveColor{Light: "#344E41", Dark: "#F1F5EA"},
			AssistantBubbleBg: lipgloss.AdaptiveColor{Light: "#F4F7EE", Dark: "#243326"},
			AssistantBubbleFg: lipgloss.AdaptiveColor{Light: "#3A5A40", Dark: "#DAD7CD"},
		},
		{
			Name:        "Default (No color theme)",
			Description: "No theming applied",
			Plain:       true,
		},
	}
}

// ThemeByName finds a theme by name, case-insensitively. "default" selects
// the uncolored theme.
func ThemeByName(name string) (ChatTheme, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	themes := ChatThemes()
	for _, ct := range themes {
		if strings.ToLower(ct.Name) == needle {
			return ct, nil
		}
	}
	if needle == "default" || needle == "none" {
		return themes[len(themes)-1], nil
	}

	names := make([]string, len(themes))
	for i, ct := range themes {
		names[i] = ct.Name
	}
	return themes[0], fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(names, ", "))
}
