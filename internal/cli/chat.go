// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/madhwagpt-tui/internal/api"
	"github.com/jeranaias/madhwagpt-tui/internal/model"
	"github.com/jeranaias/madhwagpt-tui/internal/ui/chat"
)

// ChatCmd runs a line-mode conversation.
type ChatCmd struct {
	Level  string `short:"l" help:"Starting explanation level. Defaults to [chat] level."`
	Strict bool   `help:"Show service errors instead of empty answers."`
}

// lineReader is the part of *liner.State the chat loop uses.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

func newLinerReader() lineReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return state
}

// chatSession is one run of the chat loop.
type chatSession struct {
	app    *App
	asker  chat.Asker
	policy api.Policy
	level  model.Level
	conv   *model.Conversation
	log    *slog.Logger
}

// Run reads questions until /quit, Ctrl+C at the prompt or end of input.
func (c *ChatCmd) Run(app *App) error {
	level, err := resolveLevel(app, c.Level)
	if err != nil {
		return err
	}

	open := app.newLineReader
	if open == nil {
		if err := RequiresTTY("chat"); err != nil {
			return err
		}
		open = newLinerReader
	}
	reader := open()
	defer reader.Close()

	s := &chatSession{
		app:    app,
		asker:  app.clientWith(app.Log),
		policy: app.policy(c.Strict),
		level:  level,
		conv:   model.NewConversation(),
		log:    app.Log.With(slog.String("component", "chat")),
	}
	return s.loop(reader)
}

func (s *chatSession) loop(reader lineReader) error {
	s.app.printf("%s\n", TitleStyle.Render("MadhwaGPT"))
	s.app.printf("%s\n\n", DimStyle.Render(fmt.Sprintf(
		"Level: %s. Type /help for commands, /quit to leave.", s.level)))

	for {
		line, err := reader.Prompt(s.prompt())
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			s.app.printf("\n")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		reader.AppendHistory(line)

		if strings.HasPrefix(line, "/") || line == "exit" || line == "quit" {
			if done := s.command(line); done {
				return nil
			}
			continue
		}
		s.ask(line)
	}
}

func (s *chatSession) prompt() string {
	return fmt.Sprintf("[%s] > ", s.level.Persona())
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// command runs a slash command and reports whether the session should end.
func (s *chatSession) command(line string) bool {
	fields := strings.Fields(line)
	name := strings.ToLower(fields[0])
	args := fields[1:]

	switch name {
	case "/quit", "/exit", "/q", "exit", "quit":
		return true

	case "/help", "/?":
		s.app.printf("%s\n", SectionStyle.Render("Commands"))
		s.app.printf("  %s Cycle the level, or set it by name\n", RenderLabel("/level [name]", 16))
		s.app.printf("  %s List the levels\n", RenderLabel("/levels", 16))
		s.app.printf("  %s Forget the conversation\n", RenderLabel("/clear", 16))
		s.app.printf("  %s Leave the chat\n\n", RenderLabel("/quit", 16))

	case "/level":
		if len(args) == 0 {
			s.level = s.level.Next()
		} else {
			lv, err := model.LevelByName(args[0])
			if err != nil {
				s.app.printf("%s\n", WarningStyle.Render(err.Error()))
				return false
			}
			s.level = lv
		}
		s.conv.AddSystemMessage("Level: " + s.level.String())
		s.app.printf("%s\n", DimStyle.Render(fmt.Sprintf("Level: %s (%s)", s.level, s.level.Description())))

	case "/levels":
		for _, lv := range model.Levels() {
			marker := "  "
			if lv == s.level {
				marker = "> "
			}
			s.app.printf("%s%s %s\n", marker, RenderLabel(lv.String(), 14), DimStyle.Render(lv.Description()))
		}

	case "/clear":
		s.conv.ClearHistory()
		s.app.printf("%s\n", DimStyle.Render("Conversation cleared."))

	default:
		msg := "Unknown command " + name + ". Type /help for commands."
		if hint := Suggest(name, []string{"/help", "/level", "/levels", "/clear", "/quit"}); hint != "" {
			msg = fmt.Sprintf("Unknown command %s. Did you mean %s?", name, hint)
		}
		s.app.printf("%s\n", WarningStyle.Render(msg))
	}
	return false
}

// =============================================================================
// QUESTIONS
// =============================================================================

// ask sends one question. Ctrl+C while waiting cancels the request and
// returns to the prompt.
func (s *chatSession) ask(question string) {
	s.conv.AddUserMessage(question)

	ctx, cancel := context.WithCancel(s.app.context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	s.app.printf("%s\n", DimStyle.Render(chat.ThinkingText))
	answer, err := s.asker.Ask(ctx, question, s.level.Persona())

	if ctx.Err() != nil && errors.Is(err, context.Canceled) {
		s.conv.AddSystemMessage("Cancelled.")
		s.app.printf("%s\n\n", DimStyle.Render("Cancelled."))
		return
	}

	answer, err = s.policy.ApplyAnswer(s.log, answer, err)
	if err != nil {
		s.conv.AddSystemMessage("Could not get an answer: " + err.Error())
		s.app.printf("%s %s\n\n", ErrorStyle.Render("[ERROR]"), err.Error())
		return
	}
	if answer == "" {
		s.app.printf("%s\n\n", DimStyle.Render("No answer."))
		return
	}

	s.conv.AddAssistantMessage(answer)
	s.app.printf("%s\n\n", renderAnswer(s.app, answer))
}
