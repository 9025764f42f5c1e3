// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the question-answering screen.
//
// The screen shows starter suggestions until the first question, sends one
// question at a time to an Asker at the selected level, and renders answers
// as markdown. A chat opened from a verse offers that verse's suggested
// questions instead.
//
// # Key Types
//
//   - Model: Bubble Tea model for the screen
//   - Asker: the question client, satisfied by *api.Client
//   - AnswerMsg: result of one question, tagged with its sequence number
//   - CloseMsg: emitted on Esc when nothing is in flight
//
// # Failure Handling
//
// Failures go through the configured api.Policy. Under PolicyEmpty a failed
// question adds no bubble; under PolicyStrict a system notice explains it.
//
// # Usage
//
//	m := chat.New(theme, chat.Options{
//	    Asker:  client,
//	    Policy: cfg.FallbackPolicy(),
//	    Level:  cfg.ChatLevel(),
//	})
//	p := tea.NewProgram(m, tea.WithAltScreen())
package chat
