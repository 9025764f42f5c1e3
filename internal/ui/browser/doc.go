// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package browser is the root TUI model: a scripture browser that walks
// works, chapters, verses and a single verse, with the chat screen embedded.
//
// Each fetch runs as a tea.Cmd tagged with a sequence number. Going back or
// starting another fetch cancels the one in flight and bumps the number, so a
// late result is dropped instead of replacing the screen.
//
// # Key Types
//
//   - Model: root Bubble Tea model
//   - Library: chapter and verse source, satisfied by *scripture.Library
//   - Screen: works, chapters, verses, verse, chat
//   - ConfigReloadedMsg: sent by config.Watch to apply settings live
//
// # Usage
//
//	m := browser.New(theme, browser.Options{
//	    Library:  library,
//	    Asker:    client,
//	    Policy:   cfg.FallbackPolicy(),
//	    Level:    cfg.ChatLevel(),
//	    PageSize: cfg.UI.PageSize,
//	})
//	p := tea.NewProgram(m, tea.WithAltScreen())
//	go config.Watch(ctx, path, func(c *config.Config) {
//	    p.Send(browser.ConfigReloadedMsg{Config: c})
//	}, nil)
package browser
