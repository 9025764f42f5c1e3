// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"fmt"
	"log/slog"
	"strings"
)

// =============================================================================
// CALL-SITE FALLBACK POLICY
// =============================================================================

// Policy decides what a caller does with a failed request.
type Policy int

const (
	// PolicyEmpty replaces a failure with an empty answer or list, after
	// logging it. The screen then renders nothing.
	PolicyEmpty Policy = iota

	// PolicyStrict returns the typed failure to the caller unchanged.
	PolicyStrict
)

// String returns the config name of the policy.
func (p Policy) String() string {
	switch p {
	case PolicyStrict:
		return "strict"
	default:
		return "empty"
	}
}

// ParsePolicy parses "empty" or "strict".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "empty":
		return PolicyEmpty, nil
	case "strict":
		return PolicyStrict, nil
	default:
		return PolicyEmpty, fmt.Errorf("unknown fallback policy %q, must be one of: empty, strict", s)
	}
}

// AnswerOrEmpty logs err and returns "" when the question failed. On
// success it returns answer unchanged.
func AnswerOrEmpty(log *slog.Logger, answer string, err error) string {
	if err == nil {
		return answer
	}
	logFailure(log, "question failed, showing no answer", err)
	return ""
}

// ListOrEmpty logs err and returns an empty list when a fetch failed. On
// success it returns items, never nil.
func ListOrEmpty[T any](log *slog.Logger, items []T, err error) []T {
	if err != nil {
		logFailure(log, "fetch failed, showing empty list", err)
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

// ApplyAnswer runs the policy over an Ask result.
func (p Policy) ApplyAnswer(log *slog.Logger, answer string, err error) (string, error) {
	if p == PolicyStrict {
		return answer, err
	}
	return AnswerOrEmpty(log, answer, err), nil
}

// ApplyList runs the policy over a list fetch result.
func ApplyList[T any](p Policy, log *slog.Logger, items []T, err error) ([]T, error) {
	if p == PolicyStrict {
		return items, err
	}
	return ListOrEmpty(log, items, err), nil
}

func logFailure(log *slog.Logger, msg string, err error) {
	if log == nil {
		log = slog.Default()
	}
	attrs := []any{
		slog.String("error_type", TypeOf(err).String()),
		slog.Any("error", err),
	}
	if code, ok := StatusCode(err); ok {
		attrs = append(attrs, slog.Int("status", code))
	}
	log.Warn(msg, attrs...)
}
