// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// DefaultPersona is sent when the caller does not pick a level.
const DefaultPersona = "intermediate"

// =============================================================================
// QUERY TYPES
// =============================================================================

// QueryRequest is the wire body for the question-answer endpoint.
// Field order matches the server contract:
//
//	{"question":"...","persona":"...","stream":false}
type QueryRequest struct {
	Question string `json:"question"`
	Persona  string `json:"persona"`
	Stream   bool   `json:"stream"`
}

// QueryResponse is the single-field answer body.
type QueryResponse struct {
	Answer string `json:"answer"`
}

// UnmarshalJSON requires the answer key; `{}` is not a valid answer.
func (r *QueryResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Answer *string `json:"answer"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Answer == nil {
		return errors.New("missing answer field")
	}
	r.Answer = *raw.Answer
	return nil
}

// NewQueryRequest builds a request body. Stream is always false; incremental
// delivery is not supported by this client.
func NewQueryRequest(question, persona string) QueryRequest {
	persona = strings.TrimSpace(persona)
	if persona == "" {
		persona = DefaultPersona
	}
	return QueryRequest{
		Question: question,
		Persona:  persona,
		Stream:   false,
	}
}

// =============================================================================
// ASK
// =============================================================================

// Ask posts a question and returns the answer text. An empty persona falls
// back to DefaultPersona.
//
// Failures are returned as *ClientError; Ask never substitutes an empty
// answer itself. Use AnswerOrEmpty at the call site for that behavior.
func (c *Client) Ask(ctx context.Context, question, persona string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", newError(ErrTypeInvalidRequest, "question is empty", nil)
	}
	if _, err := ParseURL(c.queryURL); err != nil {
		return "", err
	}

	// Pacing only; a rejected wait is reported, never retried.
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", newError(ErrTypeTransport, "request cancelled while waiting", err)
		}
	}

	var resp QueryResponse
	if err := c.Do(ctx, http.MethodPost, c.queryURL, NewQueryRequest(question, persona), &resp); err != nil {
		return "", err
	}
	return resp.Answer, nil
}
