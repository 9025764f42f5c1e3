// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/jeranaias/madhwagpt-tui/internal/api"
	"github.com/jeranaias/madhwagpt-tui/internal/config"
	"github.com/jeranaias/madhwagpt-tui/internal/logging"
	"github.com/jeranaias/madhwagpt-tui/internal/scripture"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// APPLICATION CONTEXT
// =============================================================================

// App carries what every command needs. It is built once by main and bound
// into kong so Run methods receive it as an argument.
type App struct {
	Config     *config.Config
	ConfigPath string
	Log        *slog.Logger

	// Ctx is cancelled on interrupt. Nil means context.Background.
	Ctx context.Context

	Out io.Writer
	Err io.Writer

	// Color enables ANSI styling and JSON highlighting on Out.
	Color bool

	// JSONMode is set when --json was given, so errors are reported as a
	// JSON envelope too.
	JSONMode bool

	// newLineReader opens the chat prompt. Tests replace it.
	newLineReader func() lineReader

	// currentCommand is the full command path, used in JSON envelopes.
	currentCommand string
}

// NewApp returns an App writing to stdout and stderr.
func NewApp(cfg *config.Config, configPath string, log *slog.Logger) *App {
	if log == nil {
		log = logging.Discard()
	}
	return &App{
		Config:     cfg,
		ConfigPath: configPath,
		Log:        log,
		Out:        os.Stdout,
		Err:        os.Stderr,
		Color:      ColorsEnabled(),
	}
}

func (a *App) context() context.Context {
	if a.Ctx == nil {
		return context.Background()
	}
	return a.Ctx
}

// Command returns the command path being run, e.g. "config show".
func (a *App) Command() string {
	return a.currentCommand
}

// clientWith builds the HTTP client from the [api] section.
func (a *App) clientWith(log *slog.Logger) *api.Client {
	cc := a.Config.ClientConfig()
	cc.Logger = log
	return api.NewClient(cc)
}

// libraryWith builds the scripture library over client with the given list
// policy. Catalog URLs are rebased onto [api] base_url when it is set.
func (a *App) libraryWith(client *api.Client, policy api.Policy, log *slog.Logger) (*scripture.Library, error) {
	works, err := scripture.Rebase(scripture.Catalog(), a.Config.API.BaseURL)
	if err != nil {
		return nil, NewValidationError("api.base_url", a.Config.API.BaseURL, err.Error())
	}
	return scripture.NewLibrary(client, works, policy, log), nil
}

// library builds a library logging to the app logger.
func (a *App) library(policy api.Policy) (*scripture.Library, error) {
	return a.libraryWith(a.clientWith(a.Log), policy, a.Log)
}

// policy resolves the fallback policy, letting --strict win over config.
func (a *App) policy(strict bool) api.Policy {
	if strict {
		return api.PolicyStrict
	}
	return a.Config.FallbackPolicy()
}

// writeJSON writes a success envelope for the current command.
func (a *App) writeJSON(data interface{}) error {
	return NewJSONResponse(a.currentCommand, data).Write(a.Out, a.Color)
}

// Report displays a command error: a JSON envelope on Out in JSON mode,
// a styled line on Err otherwise.
func (a *App) Report(err error) {
	if a.JSONMode {
		DisplayError(a.Out, a.currentCommand, err, true)
		return
	}
	DisplayError(a.Err, a.currentCommand, err, false)
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.Out, format, args...)
}

// =============================================================================
// COMMAND TREE
// =============================================================================

// CLI is the kong grammar of the madhwagpt command line.
type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Print version information and exit."`

	Tui      TuiCmd      `cmd:"" default:"1" help:"Browse the scriptures and chat in a full-screen interface."`
	Ask      AskCmd      `cmd:"" help:"Ask a single question and print the answer."`
	Chat     ChatCmd     `cmd:"" help:"Chat in line mode."`
	Works    WorksCmd    `cmd:"" help:"List the available works."`
	Chapters ChaptersCmd `cmd:"" help:"List the chapters of a work."`
	Verses   VersesCmd   `cmd:"" help:"List the verses of a chapter."`
	Verse    VerseCmd    `cmd:"" help:"Show one verse in full."`
	Details  DetailsCmd  `cmd:"" help:"Read a chapter-detail document by address."`
	Themes   ThemesCmd   `cmd:"" help:"List the chat color themes."`
	Levels   LevelsCmd   `cmd:"" help:"List the explanation levels."`
	Config   ConfigCmd   `cmd:"" help:"Inspect or create the configuration file."`
}

// versionString is printed by --version.
func versionString() string {
	return fmt.Sprintf("madhwagpt %s (commit %s, built %s)", Version, GitCommit, BuildDate)
}

// Execute parses args and runs the selected command. Help and --version
// print and return nil.
func Execute(app *App, args []string) error {
	var grammar CLI
	exited := false
	exitCode := 0

	parser, err := kong.New(&grammar,
		kong.Name("madhwagpt"),
		kong.Description("Read Dvaita Vedanta scriptures and ask questions about them."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": versionString()},
		kong.Writers(app.Out, app.Err),
		kong.Exit(func(code int) {
			exited = true
			exitCode = code
		}),
		kong.Bind(app),
	)
	if err != nil {
		return err
	}

	app.JSONMode = slices.Contains(args, "--json")
	ctx, err := parser.Parse(args)
	if exited {
		if exitCode != 0 {
			return NewValidationError("arguments", strings.Join(args, " "), "see --help")
		}
		return nil
	}
	if err != nil {
		return usageError(args, err)
	}

	app.currentCommand = commandName(ctx.Command())
	app.Log.Debug("running command", slog.String("command", app.currentCommand))
	return ctx.Run()
}

// commandName drops kong's positional placeholders, so
// "chapters <work>" becomes "chapters".
func commandName(path string) string {
	var words []string
	for _, w := range strings.Fields(path) {
		if strings.HasPrefix(w, "<") {
			continue
		}
		words = append(words, w)
	}
	return strings.Join(words, " ")
}

// usageError turns a kong parse error into a ValidationError, hinting at
// the nearest command when the first argument looks like a typo.
func usageError(args []string, err error) error {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		if s := SuggestCommand(args[0]); s != "" {
			return NewValidationErrorWithExample("command", args[0], err.Error(), "madhwagpt "+s)
		}
	}
	return NewValidationError("arguments", "", err.Error())
}
