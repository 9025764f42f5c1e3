// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package scripture

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Chapter is one numbered division of a work (a chapter of the Gita, a
// sandhi of the Harikathamritasara). Number is its identity; ID exists only
// so list views have a stable key and is never sent anywhere.
type Chapter struct {
	ID                 uuid.UUID `json:"-"`
	Number             int       `json:"number"`
	SanskritName       *string   `json:"sanskrit_name,omitempty"`
	KannadaName        *string   `json:"kannada_name,omitempty"`
	EnglishName        string    `json:"english_name"`
	TransliteratedName string    `json:"transliterated_name"`
	Description        *string   `json:"description,omitempty"`
	VerseCount         int       `json:"verse_count"`
}

// DisplayName returns the script name used as a heading.
func (c Chapter) DisplayName() string {
	switch {
	case c.SanskritName != nil:
		return *c.SanskritName
	case c.KannadaName != nil:
		return *c.KannadaName
	default:
		return "Unknown"
	}
}

// Label is a one-line summary for lists, e.g. "2. Sankhya Yoga (72 verses)".
func (c Chapter) Label() string {
	name := c.EnglishName
	if name == "" {
		name = c.TransliteratedName
	}
	return fmt.Sprintf("%d. %s (%d verses)", c.Number, name, c.VerseCount)
}

// =============================================================================
// CHAPTER LIST DECODING
// =============================================================================

// ChapterList is the chapter-list response. The server uses "sandhis" for
// some works and "chapters" for others.
type ChapterList struct {
	Chapters []Chapter
}

// UnmarshalJSON decodes "sandhis" if present, otherwise "chapters",
// otherwise an empty list. A key holding null counts as absent.
func (l *ChapterList) UnmarshalJSON(data []byte) error {
	var raw struct {
		Sandhis  json.RawMessage `json:"sandhis"`
		Chapters json.RawMessage `json:"chapters"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var chapters []Chapter
	switch {
	case present(raw.Sandhis):
		if err := json.Unmarshal(raw.Sandhis, &chapters); err != nil {
			return fmt.Errorf("sandhis: %w", err)
		}
	case present(raw.Chapters):
		if err := json.Unmarshal(raw.Chapters, &chapters); err != nil {
			return fmt.Errorf("chapters: %w", err)
		}
	}
	if chapters == nil {
		chapters = []Chapter{}
	}

	for i := range chapters {
		chapters[i].ID = uuid.New()
	}
	l.Chapters = chapters
	return nil
}

// present reports whether a raw field was sent with a non-null value.
func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

// MarshalJSON always writes the "chapters" key.
func (l ChapterList) MarshalJSON() ([]byte, error) {
	chapters := l.Chapters
	if chapters == nil {
		chapters = []Chapter{}
	}
	return json.Marshal(struct {
		Chapters []Chapter `json:"chapters"`
	}{chapters})
}
