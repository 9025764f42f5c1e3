// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

// =============================================================================
// ANSWER MESSAGES
// =============================================================================

// AnswerMsg carries the outcome of one question. Seq identifies the request
// it answers; a mismatch with the model's current sequence means the user
// cancelled or moved on, and the message is dropped.
type AnswerMsg struct {
	Seq      uint64
	Question string
	Answer   string
	Err      error
}

// =============================================================================
// NAVIGATION MESSAGES
// =============================================================================

// CloseMsg asks the parent screen to close the chat.
type CloseMsg struct{}
