// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - JSON output support for scripting.
//
// Provides a standardized JSON envelope for every command that accepts
// --json. Pretty output is syntax highlighted when colors are enabled.
package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"

	"github.com/jeranaias/madhwagpt-tui/internal/scripture"
)

// JSONResponse is the standardized response format for all CLI commands.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is the RFC3339 timestamp when the response was generated
	Timestamp string `json:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a new error JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Write encodes the response indented to w, highlighting it when color is
// true.
func (r *JSONResponse) Write(w io.Writer, color bool) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if color {
		if highlighted, ok := highlightJSON(data); ok {
			data = highlighted
		}
	}
	_, err = w.Write(data)
	return err
}

// highlightJSON colors JSON for a terminal. It reports false when chroma
// cannot handle the input so callers fall back to plain text.
func highlightJSON(data []byte) ([]byte, bool) {
	lexer := lexers.Get("json")
	if lexer == nil {
		return nil, false
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return nil, false
	}

	it, err := lexer.Tokenise(nil, string(data))
	if err != nil {
		return nil, false
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, it); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// AskData is the payload of `ask --json`.
type AskData struct {
	Question string `json:"question"`
	Level    string `json:"level"`
	Persona  string `json:"persona"`
	Answer   string `json:"answer"`
}

// WorksData is the payload of `works --json`.
type WorksData struct {
	Works []scripture.Work `json:"works"`
}

// ChaptersData is the payload of `chapters --json`.
type ChaptersData struct {
	Work       string              `json:"work"`
	Page       int                 `json:"page"`
	TotalPages int                 `json:"total_pages"`
	Total      int                 `json:"total"`
	Chapters   []scripture.Chapter `json:"chapters"`
}

// VersesData is the payload of `verses --json`.
type VersesData struct {
	Work    string            `json:"work"`
	Chapter int               `json:"chapter"`
	Search  string            `json:"search,omitempty"`
	Total   int               `json:"total"`
	Verses  []scripture.Verse `json:"verses"`
}

// VerseData is the payload of `verse --json`.
type VerseData struct {
	Work    string          `json:"work"`
	Chapter int             `json:"chapter"`
	Title   string          `json:"title"`
	Verse   scripture.Verse `json:"verse"`
}

// DetailsData is the payload of `details --json`.
type DetailsData struct {
	URL    string                    `json:"url"`
	Total  int                       `json:"total"`
	Verses []scripture.ChapterDetail `json:"verses"`
}
