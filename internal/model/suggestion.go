// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// Script hints the writing system of a suggestion so the UI can pick a
// suitable style.
type Script string

const (
	ScriptLatin      Script = "latin"
	ScriptDevanagari Script = "devanagari"
	ScriptKannada    Script = "kannada"
)

// Suggestion is a starter question shown on an empty chat.
type Suggestion struct {
	Text   string `json:"text"`
	Script Script `json:"script"`
}

// StarterSuggestions returns the questions offered before the first send.
// A fresh slice is returned each call.
func StarterSuggestions() []Suggestion {
	return []Suggestion{
		{Text: "Explain the five-fold difference (Pancha-bheda)", Script: ScriptLatin},
		{Text: "In 'कर्मण्येवाधिकारस्ते' (Gita 2.47), what is Krishna teaching Arjuna?", Script: ScriptLatin},
		{Text: "What is the hierarchy among souls according to Madhvacharya?", Script: ScriptLatin},
		{Text: "ಭಗವದ್ಗೀತೆಯ ಪ್ರಕಾರ ಭಕ್ತಿ ಎಂದರೇನು?", Script: ScriptKannada},
		{Text: "How does Harikathāmṛtasāra explain creation, sustenance, and dissolution of the universe?", Script: ScriptLatin},
		{Text: "नासतो विद्यते भावो नाभावो विद्यते सतः। उभयोरपि दृष्टोऽन्तस्त्वनयोस्तत्त्वदर्शिभिः॥ - Explain", Script: ScriptDevanagari},
	}
}

// SuggestionsFrom wraps plain questions, such as a verse's suggested
// questions, tagging each with its detected script.
func SuggestionsFrom(questions []string) []Suggestion {
	out := make([]Suggestion, 0, len(questions))
	for _, q := range questions {
		if q == "" {
			continue
		}
		out = append(out, Suggestion{Text: q, Script: DetectScript(q)})
	}
	return out
}

// DetectScript reports the first non-Latin script found in s.
func DetectScript(s string) Script {
	for _, r := range s {
		switch {
		case r >= 0x0900 && r <= 0x097F:
			return ScriptDevanagari
		case r >= 0x0C80 && r <= 0x0CFF:
			return ScriptKannada
		}
	}
	return ScriptLatin
}
