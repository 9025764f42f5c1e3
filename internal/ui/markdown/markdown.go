// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markdown renders answer text for the terminal with glamour.
//
// Answers from the QA service are markdown. Rendering never fails from the
// caller's point of view: any glamour error yields the raw text.
//
// # Usage
//
//	r := markdown.New(80, false)
//	fmt.Print(r.Render(answer))
package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer wraps a glamour renderer built for one width.
type Renderer struct {
	width int
	plain bool
	tr    *glamour.TermRenderer
}

// New builds a renderer wrapping at width columns (0 disables wrapping).
// Plain renderers use glamour's no-color style.
func New(width int, plain bool) *Renderer {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if plain {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	} else {
		opts = append(opts, glamour.WithAutoStyle())
	}

	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		// Fallback to plain text if renderer initialization fails
		tr = nil
	}
	return &Renderer{width: width, plain: plain, tr: tr}
}

// Width returns the wrap width the renderer was built for.
func (r *Renderer) Width() int {
	return r.width
}

// Plain reports whether the renderer emits uncolored output.
func (r *Renderer) Plain() bool {
	return r.plain
}

// Render renders markdown content, trimming the blank lines glamour adds
// around the document. Returns the original content on failure.
func (r *Renderer) Render(content string) string {
	if r == nil || r.tr == nil || strings.TrimSpace(content) == "" {
		return content
	}
	rendered, err := r.tr.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(rendered, "\n")
}
