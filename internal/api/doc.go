// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the MadhwaGPT service.
//
// Two operations make up the client: a generic JSON GET used for chapter and
// verse lists, and a question-answer POST. Both make exactly one attempt per
// call and report failures as a typed *ClientError.
//
// # Key Types
//
//   - Client: HTTP client holding the injected *http.Client and logger
//   - ClientError: typed failure (invalid URL, transport, non-HTTP, bad status, decode)
//   - QueryRequest / QueryResponse: wire shapes for the question endpoint
//   - Policy: call-site choice between surfacing errors and showing nothing
//
// # Usage
//
// Fetch a decoded document:
//
//	client := api.NewClient(api.DefaultConfig())
//	list, err := api.Fetch[scripture.ChapterList](ctx, client, work.ChaptersURL)
//	if code, ok := api.StatusCode(err); ok {
//	    log.Printf("server returned %d", code)
//	}
//
// Ask a question and opt into the empty-answer fallback:
//
//	answer, err := client.Ask(ctx, "What is Pancha-bheda?", "")
//	answer = api.AnswerOrEmpty(logger, answer, err)
//
// # Errors
//
// Every failure can be checked with errors.Is against the sentinels
// (ErrInvalidURL, ErrTransport, ErrNonHTTP, ErrBadStatus, ErrDecode,
// ErrInvalidRequest). A malformed URL is rejected before any network I/O.
package api
