// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package browser

import (
	"github.com/jeranaias/madhwagpt-tui/internal/config"
	"github.com/jeranaias/madhwagpt-tui/internal/scripture"
)

// ChaptersLoadedMsg carries the chapter list of a work. Seq identifies the
// load it answers; a stale Seq is dropped.
type ChaptersLoadedMsg struct {
	Seq      uint64
	Work     scripture.Work
	Chapters []scripture.Chapter
	Err      error
}

// VersesLoadedMsg carries the verses of one chapter.
type VersesLoadedMsg struct {
	Seq     uint64
	Work    scripture.Work
	Chapter int
	Verses  []scripture.Verse
	Err     error
}

// ConfigReloadedMsg is sent by the config watcher after config.toml changes.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// ConfigErrorMsg is sent when a changed config.toml fails to load. The
// previous settings stay in effect.
type ConfigErrorMsg struct {
	Err error
}
