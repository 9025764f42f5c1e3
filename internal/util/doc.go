// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small string and file helpers shared by the CLI and TUI.
//
// # Key Functions
//
// String Utilities:
//   - TruncateWidth, StringWidth, PadRight: column-aware, safe for Kannada
//     and Devanagari text
//   - TruncateRunes, SafeSubstring: rune-indexed slicing
//
// File Operations:
//   - AtomicWriteFile: crash-safe write used for the config file
//
// # Usage
//
//	row := util.PadRight(util.TruncateWidth(chapter.Label(), 40), 40)
//	err := util.AtomicWriteFile(path, data, 0644)
package util
