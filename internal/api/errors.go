// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeInvalidURL
	ErrTypeInvalidRequest
	ErrTypeTransport
	ErrTypeNonHTTP
	ErrTypeBadStatus
	ErrTypeDecode
)

// String returns a short name for the error type.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeInvalidURL:
		return "invalid_url"
	case ErrTypeInvalidRequest:
		return "invalid_request"
	case ErrTypeTransport:
		return "transport"
	case ErrTypeNonHTTP:
		return "non_http_response"
	case ErrTypeBadStatus:
		return "bad_status"
	case ErrTypeDecode:
		return "decode_failed"
	default:
		return "unknown"
	}
}

// ClientError represents a failed fetch or query.
// StatusCode is only set for ErrTypeBadStatus.
type ClientError struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Cause      error
}

func (e *ClientError) Error() string {
	msg := e.Message
	if e.Type == ErrTypeBadStatus {
		msg = fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a ClientError of the same Type, so the
// sentinels below can be used with errors.Is.
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// Sentinel errors for easy checking.
var (
	ErrInvalidURL     = &ClientError{Type: ErrTypeInvalidURL, Message: "invalid URL"}
	ErrInvalidRequest = &ClientError{Type: ErrTypeInvalidRequest, Message: "invalid request"}
	ErrTransport      = &ClientError{Type: ErrTypeTransport, Message: "request failed"}
	ErrNonHTTP        = &ClientError{Type: ErrTypeNonHTTP, Message: "response is not an HTTP response"}
	ErrBadStatus      = &ClientError{Type: ErrTypeBadStatus, Message: "unexpected status"}
	ErrDecode         = &ClientError{Type: ErrTypeDecode, Message: "failed to decode response"}
)

// StatusCode returns the HTTP status carried by a bad-status error.
func StatusCode(err error) (int, bool) {
	var ce *ClientError
	if errors.As(err, &ce) && ce.Type == ErrTypeBadStatus {
		return ce.StatusCode, true
	}
	return 0, false
}

// TypeOf returns the ErrorType of err, or ErrTypeUnknown if err is not a
// ClientError.
func TypeOf(err error) ErrorType {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Type
	}
	return ErrTypeUnknown
}

func newError(t ErrorType, msg string, cause error) *ClientError {
	return &ClientError{Type: t, Message: msg, Cause: cause}
}
