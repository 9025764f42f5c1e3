// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// Conversations are held in memory only; closing a chat screen discards it.
//
// # Key Types
//
//   - Conversation: message list plus the current explanation Level
//   - Message: single bubble with role, content and timestamp
//   - Level: Beginner, Intermediate or Scholar; Persona() is the wire value
//   - Suggestion: starter question with a script hint for rendering
//
// # Usage
//
//	conv := model.NewConversation()
//	conv.Level = model.LevelScholar
//	q := conv.AddUserMessage("What is tāratamya?")
//	answer, err := client.Ask(ctx, q.Content, q.Persona)
//	conv.AddAssistantMessage(api.AnswerOrEmpty(log, answer, err))
package model
