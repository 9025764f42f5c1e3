// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the application's slog logger from the [log]
// configuration section.
//
// # Key Types
//
//   - Sink: a logger plus the closer of whatever file backs it
//
// # Usage
//
//	log := logging.New(cfg.Log, os.Stderr)
//	slog.SetDefault(log)
//
// The TUI owns the terminal, so it logs to a file or nowhere:
//
//	sink, err := logging.Open(cfg.Log)
//	defer sink.Close()
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/madhwagpt-tui/internal/config"
)

// AppName tags every record.
const AppName = "madhwagpt"

// ParseLevel maps a config level name to a slog level. Unknown names map
// to info; config validation rejects them earlier.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a logger writing text or JSON records to w at the configured
// level, tagged app=madhwagpt.
func New(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With(slog.String("app", AppName))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// =============================================================================
// FILE SINK
// =============================================================================

// Sink is a logger bound to an optional log file.
type Sink struct {
	Logger *slog.Logger
	file   *os.File
}

// Open returns a sink appending to cfg.File, or a discarding sink when no
// file is configured.
func Open(cfg config.LogConfig) (*Sink, error) {
	if cfg.File == "" {
		return &Sink{Logger: Discard()}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return &Sink{Logger: New(cfg, f), file: f}, nil
}

// Close closes the backing file, if any.
func (s *Sink) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}
