// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"strings"
)

// =============================================================================
// LEVEL TYPE
// =============================================================================

// Level is the explanation depth requested from the QA service.
type Level int

const (
	LevelBeginner Level = iota
	LevelIntermediate
	LevelScholar
)

// levelInfo carries the display metadata for one level.
type levelInfo struct {
	name        string
	description string
}

var levels = map[Level]levelInfo{
	LevelBeginner:     {name: "Beginner", description: "Simple explanations"},
	LevelIntermediate: {name: "Intermediate", description: "Balanced detail"},
	LevelScholar:      {name: "Scholar", description: "Advanced terminology"},
}

// DefaultLevel is the level new conversations start at.
func DefaultLevel() Level {
	return LevelIntermediate
}

// Levels returns every level in display order.
func Levels() []Level {
	return []Level{LevelBeginner, LevelIntermediate, LevelScholar}
}

// String returns the display name ("Beginner", "Intermediate", "Scholar").
func (l Level) String() string {
	if info, ok := levels[l]; ok {
		return info.name
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// Description returns the one-line summary shown in the level picker.
func (l Level) Description() string {
	return levels[l].description
}

// Persona is the value sent in the "persona" field of a query: the
// lowercased display name.
func (l Level) Persona() string {
	return strings.ToLower(l.String())
}

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	_, ok := levels[l]
	return ok
}

// Next cycles to the following level, wrapping after Scholar.
func (l Level) Next() Level {
	if !l.Valid() {
		return DefaultLevel()
	}
	return (l + 1) % Level(len(levels))
}

// LevelByName resolves a level from its display name or persona,
// case-insensitively.
func LevelByName(name string) (Level, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, l := range Levels() {
		if l.Persona() == needle {
			return l, nil
		}
	}
	return DefaultLevel(), fmt.Errorf("unknown level %q (want beginner, intermediate or scholar)", name)
}

// MarshalText encodes the level as its persona so it round-trips through
// TOML and JSON.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.Persona()), nil
}

// UnmarshalText parses a level name.
func (l *Level) UnmarshalText(text []byte) error {
	lv, err := LevelByName(string(text))
	if err != nil {
		return err
	}
	*l = lv
	return nil
}
