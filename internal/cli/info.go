// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/madhwagpt-tui/internal/model"
	"github.com/jeranaias/madhwagpt-tui/internal/ui/styles"
)

// ThemesCmd lists the chat color themes.
type ThemesCmd struct{}

// Run prints each theme with a swatch of its accent color, marking the
// configured one.
func (c *ThemesCmd) Run(app *App) error {
	app.printf("%s\n", TitleStyle.Render("Themes"))
	for _, ct := range styles.ChatThemes() {
		marker := "  "
		if strings.EqualFold(ct.Name, app.Config.UI.Theme) {
			marker = "> "
		}
		swatch := "   "
		if !ct.Plain {
			swatch = lipgloss.NewStyle().Background(ct.Accent).Render("   ")
		}
		app.printf("%s%s %s %s\n", marker, swatch, RenderLabel(ct.Name, 26), DimStyle.Render(ct.Description))
	}
	app.printf("\n%s\n", DimStyle.Render(`Set one with [ui] theme = "<name>" in config.toml.`))
	return nil
}

// LevelsCmd lists the explanation levels.
type LevelsCmd struct{}

// Run prints each level, marking the configured one.
func (c *LevelsCmd) Run(app *App) error {
	current := app.Config.ChatLevel()
	app.printf("%s\n", TitleStyle.Render("Levels"))
	for _, lv := range model.Levels() {
		marker := "  "
		if lv == current {
			marker = "> "
		}
		app.printf("%s%s %s\n", marker, RenderLabel(lv.String(), 14), DimStyle.Render(lv.Description()))
	}
	return nil
}
