// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package scripture

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// VERSE
// =============================================================================

// Verse is one addressable unit of text within a chapter.
//
// Gita verses carry Chapter/Verse and Sanskrit text; Harikathamritasara
// padyas carry Sandhi/Padya and Kannada text. Both ordinal pairs are
// optional and independent: nothing checks that they agree with the script
// fields, and Title decides which pair to show by script presence.
type Verse struct {
	CanonicalID string `json:"canonical_id"`

	Chapter  *int `json:"chapter,omitempty"`
	Verse    *int `json:"verse,omitempty"`
	Sandhi   *int `json:"sandhi,omitempty"`
	Padya    *int `json:"padya,omitempty"`
	SubVerse *int `json:"sub_verse,omitempty"`

	Sanskrit           *string `json:"sanskrit,omitempty"`
	Kannada            *string `json:"kannada,omitempty"`
	Transliteration    string  `json:"transliteration"`
	EnglishTranslation *string `json:"english_translation,omitempty"` // legacy
	TranslationEnglish string  `json:"translation_english"`

	SuggestedQuestions []string    `json:"suggested_questions"`
	WordByWord         []WordGloss `json:"word_by_word,omitempty"`
}

// verseWire mirrors Verse with the required fields as pointers so absence
// can be told apart from an empty value.
type verseWire struct {
	CanonicalID *string `json:"canonical_id"`

	Chapter  *int `json:"chapter"`
	Verse    *int `json:"verse"`
	Sandhi   *int `json:"sandhi"`
	Padya    *int `json:"padya"`
	SubVerse *int `json:"sub_verse"`

	Sanskrit           *string `json:"sanskrit"`
	Kannada            *string `json:"kannada"`
	Transliteration    *string `json:"transliteration"`
	EnglishTranslation *string `json:"english_translation"`
	TranslationEnglish *string `json:"translation_english"`

	SuggestedQuestions *[]string   `json:"suggested_questions"`
	WordByWord         []WordGloss `json:"word_by_word"`
}

// UnmarshalJSON rejects verses missing canonical_id, transliteration,
// translation_english or suggested_questions.
func (v *Verse) UnmarshalJSON(data []byte) error {
	var w verseWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	var missing []string
	if w.CanonicalID == nil {
		missing = append(missing, "canonical_id")
	}
	if w.Transliteration == nil {
		missing = append(missing, "transliteration")
	}
	if w.TranslationEnglish == nil {
		missing = append(missing, "translation_english")
	}
	if w.SuggestedQuestions == nil {
		missing = append(missing, "suggested_questions")
	}
	if len(missing) > 0 {
		return fmt.Errorf("verse missing required fields: %s", strings.Join(missing, ", "))
	}

	*v = Verse{
		CanonicalID:        *w.CanonicalID,
		Chapter:            w.Chapter,
		Verse:              w.Verse,
		Sandhi:             w.Sandhi,
		Padya:              w.Padya,
		SubVerse:           w.SubVerse,
		Sanskrit:           w.Sanskrit,
		Kannada:            w.Kannada,
		Transliteration:    *w.Transliteration,
		EnglishTranslation: w.EnglishTranslation,
		TranslationEnglish: *w.TranslationEnglish,
		SuggestedQuestions: *w.SuggestedQuestions,
		WordByWord:         w.WordByWord,
	}
	if v.SuggestedQuestions == nil {
		v.SuggestedQuestions = []string{}
	}
	return nil
}

// Equal reports whether two verses share a canonical ID.
func (v Verse) Equal(other Verse) bool {
	return v.CanonicalID == other.CanonicalID
}

// Title returns the "a.b" address shown above a verse. Sanskrit text selects
// chapter.verse and wins over Kannada text, which selects sandhi.padya.
// Missing ordinals print as 0.
func (v Verse) Title() string {
	major, minor := 0, 0
	switch {
	case v.Sanskrit != nil:
		major, minor = deref(v.Chapter), deref(v.Verse)
	case v.Kannada != nil:
		major, minor = deref(v.Sandhi), deref(v.Padya)
	}
	return fmt.Sprintf("%d.%d", major, minor)
}

// Text returns the original-script text, Kannada before Sanskrit.
func (v Verse) Text() string {
	var parts []string
	if v.Kannada != nil && *v.Kannada != "" {
		parts = append(parts, *v.Kannada)
	}
	if v.Sanskrit != nil && *v.Sanskrit != "" {
		parts = append(parts, *v.Sanskrit)
	}
	return strings.Join(parts, "\n\n")
}

// Translation returns the primary English translation, or the legacy field
// when the primary one is empty.
func (v Verse) Translation() string {
	if v.TranslationEnglish != "" {
		return v.TranslationEnglish
	}
	if v.EnglishTranslation != nil {
		return *v.EnglishTranslation
	}
	return ""
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// VerseList is the `{"verses":[...]}` response of the verse-list endpoint.
type VerseList struct {
	Verses []Verse `json:"verses"`
}

// FindVerse looks a verse up by canonical ID or by its displayed title.
func FindVerse(verses []Verse, key string) (Verse, bool) {
	key = strings.TrimSpace(key)
	for _, v := range verses {
		if v.CanonicalID == key {
			return v, true
		}
	}
	for _, v := range verses {
		if v.Title() == key {
			return v, true
		}
	}
	return Verse{}, false
}

// =============================================================================
// WORD GLOSS
// =============================================================================

// ErrMissingTerm is returned when a gloss has neither "word" nor "term".
var ErrMissingTerm = errors.New(`word gloss has no "word" or "term" key`)

// WordGloss is one word-by-word entry of a verse.
type WordGloss struct {
	Term    string `json:"word"`
	Meaning string `json:"meaning"`
}

// UnmarshalJSON reads the term from "word", falling back to "term". Only
// the absence of both is an error. "meaning" is required.
func (g *WordGloss) UnmarshalJSON(data []byte) error {
	var raw struct {
		Word    json.RawMessage `json:"word"`
		Term    json.RawMessage `json:"term"`
		Meaning *string         `json:"meaning"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	// Try "word", then "term"; a key of the wrong type counts as absent.
	term, ok := stringField(raw.Word)
	if !ok {
		term, ok = stringField(raw.Term)
	}
	if !ok {
		return ErrMissingTerm
	}

	if raw.Meaning == nil {
		return errors.New(`word gloss has no "meaning" key`)
	}
	g.Term = term
	g.Meaning = *raw.Meaning
	return nil
}

func stringField(raw json.RawMessage) (string, bool) {
	if !present(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
