// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package scripture

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold reduces s to a search key: decomposed, combining marks removed,
// case folded. IAST diacritics drop away ("karmaṇy" -> "karmany") while
// Devanagari and Kannada letters keep their base consonants.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(out)
}

// Search returns the verses whose transliteration, translations, script text
// or gloss terms contain query after folding. An empty query returns all
// verses.
func Search(verses []Verse, query string) []Verse {
	q := Fold(strings.TrimSpace(query))
	if q == "" {
		return verses
	}

	matches := make([]Verse, 0, len(verses))
	for _, v := range verses {
		if verseMatches(v, q) {
			matches = append(matches, v)
		}
	}
	return matches
}

func verseMatches(v Verse, q string) bool {
	fields := []string{v.CanonicalID, v.Transliteration, v.Translation(), v.Text(), v.Title()}
	for _, g := range v.WordByWord {
		fields = append(fields, g.Term, g.Meaning)
	}
	for _, f := range fields {
		if f != "" && strings.Contains(Fold(f), q) {
			return true
		}
	}
	return false
}
