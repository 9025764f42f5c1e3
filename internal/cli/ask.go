// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jeranaias/madhwagpt-tui/internal/model"
	"github.com/jeranaias/madhwagpt-tui/internal/ui/markdown"
)

// AskCmd asks one question and prints the answer.
type AskCmd struct {
	Level    string   `short:"l" help:"Explanation level: beginner, intermediate or scholar. Defaults to [chat] level."`
	JSON     bool     `help:"Output the answer as JSON."`
	Strict   bool     `help:"Fail on service errors instead of printing an empty answer."`
	Question []string `arg:"" help:"The question to ask."`
}

// Run posts the question and renders the answer as markdown.
func (c *AskCmd) Run(app *App) error {
	level, err := resolveLevel(app, c.Level)
	if err != nil {
		return err
	}
	question := strings.TrimSpace(strings.Join(c.Question, " "))
	if question == "" {
		return NewValidationErrorWithExample("question", "", "question is empty",
			`madhwagpt ask "What is the nature of the soul?"`)
	}

	log := app.Log.With(slog.String("level", level.String()))
	answer, err := app.clientWith(log).Ask(app.context(), question, level.Persona())
	answer, err = app.policy(c.Strict).ApplyAnswer(log, answer, err)
	if err != nil {
		return err
	}

	if c.JSON {
		return app.writeJSON(AskData{
			Question: question,
			Level:    level.String(),
			Persona:  level.Persona(),
			Answer:   answer,
		})
	}

	if answer == "" {
		fmt.Fprintln(app.Err, DimStyle.Render("No answer."))
		return nil
	}
	fmt.Fprintln(app.Out, renderAnswer(app, answer))
	return nil
}

// renderAnswer formats an answer for the terminal.
func renderAnswer(app *App, answer string) string {
	width := min(GetTerminalWidth()-2, app.Config.UI.WordWrap)
	if width <= 0 {
		width = GetTerminalWidth() - 2
	}
	return strings.TrimRight(markdown.New(width, !app.Color).Render(answer), "\n")
}

// resolveLevel parses the --level flag, falling back to the configured level.
func resolveLevel(app *App, name string) (model.Level, error) {
	if name == "" {
		return app.Config.ChatLevel(), nil
	}
	level, err := model.LevelByName(name)
	if err != nil {
		return 0, NewValidationErrorWithExample("level", name, err.Error(), "--level scholar")
	}
	return level, nil
}
