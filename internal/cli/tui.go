// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/madhwagpt-tui/internal/config"
	"github.com/jeranaias/madhwagpt-tui/internal/logging"
	"github.com/jeranaias/madhwagpt-tui/internal/ui/browser"
	"github.com/jeranaias/madhwagpt-tui/internal/ui/styles"
)

// TuiCmd starts the full-screen browser.
type TuiCmd struct {
	NoWatch bool `help:"Do not reload the config file when it changes."`
}

// Run starts the Bubble Tea program and blocks until it exits.
func (c *TuiCmd) Run(app *App) error {
	if err := RequiresTTY("run the full-screen interface"); err != nil {
		return err
	}

	// IMPORTANT: the alt screen owns the terminal, so the TUI logs to the
	// configured file or nowhere.
	sink, err := logging.Open(app.Config.Log)
	if err != nil {
		return err
	}
	defer sink.Close()
	log := sink.Logger

	m, err := newBrowser(app, log)
	if err != nil {
		return err
	}

	var opts []tea.ProgramOption
	if app.Config.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(m, opts...)

	ctx, cancel := context.WithCancel(app.context())
	defer cancel()

	if !c.NoWatch && app.ConfigPath != "" {
		watchConfig(ctx, app.ConfigPath, p, log)
	}

	log.Info("tui started", slog.String("theme", app.Config.UI.Theme))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// newBrowser builds the root model from the configuration.
func newBrowser(app *App, log *slog.Logger) (*browser.Model, error) {
	chatTheme, err := styles.ThemeByName(app.Config.UI.Theme)
	if err != nil {
		return nil, err
	}

	client := app.clientWith(log)
	lib, err := app.libraryWith(client, app.Config.FallbackPolicy(), log)
	if err != nil {
		return nil, err
	}

	return browser.New(styles.NewTheme(chatTheme), browser.Options{
		Library:  lib,
		Asker:    client,
		Policy:   app.Config.FallbackPolicy(),
		Level:    app.Config.ChatLevel(),
		PageSize: app.Config.UI.PageSize,
		WordWrap: app.Config.UI.WordWrap,
		Logger:   log,
	}), nil
}

// watchConfig forwards config file changes into the running program and
// reports whether a watcher started. A missing config directory means there
// is nothing to watch; it is not created. A watcher that cannot start is
// logged and otherwise ignored.
func watchConfig(ctx context.Context, path string, p *tea.Program, log *slog.Logger) bool {
	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		log.Debug("config watch skipped, no config directory", slog.String("dir", dir))
		return false
	}
	err := config.Watch(ctx, path,
		func(cfg *config.Config) {
			log.Info("config reloaded", slog.String("path", path))
			p.Send(browser.ConfigReloadedMsg{Config: cfg})
		},
		func(err error) {
			p.Send(browser.ConfigErrorMsg{Err: err})
		},
	)
	if err != nil {
		log.Warn("config watch disabled", slog.Any("error", err))
		return false
	}
	return true
}
