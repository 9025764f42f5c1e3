// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// suggest.go - "Did you mean" hints for mistyped commands and work names.
package cli

import (
	"strings"
)

// commandNames lists the top-level commands, used to hint at typos.
var commandNames = []string{
	"tui",
	"ask",
	"chat",
	"works",
	"chapters",
	"verses",
	"verse",
	"details",
	"themes",
	"levels",
	"config",
	"version",
}

// SuggestCommand returns a suggested command if the input is close to a valid command.
// Returns empty string if no good match is found.
func SuggestCommand(input string) string {
	return Suggest(input, commandNames)
}

// Suggest returns the candidate closest to input, ignoring case, or "" when
// none is close enough. Uses Levenshtein distance with a threshold based on
// input length.
func Suggest(input string, candidates []string) string {
	input = strings.ToLower(strings.TrimSpace(input))

	// Don't suggest for very short inputs (likely intentional)
	if len([]rune(input)) < 2 {
		return ""
	}

	// For very short inputs (<=3 chars): allow 1 edit
	// For short and medium inputs: allow 2 edits (catches transpositions)
	// For longer inputs: allow 3 edits
	n := len([]rune(input))
	maxDistance := 1
	if n >= 4 {
		maxDistance = 2
	}
	if n > 8 {
		maxDistance = 3
	}

	bestMatch := ""
	bestDistance := -1
	for _, c := range candidates {
		distance := levenshteinDistance(input, strings.ToLower(c))
		if distance == 0 {
			return ""
		}
		if distance <= maxDistance && (bestDistance == -1 || distance < bestDistance) {
			bestDistance = distance
			bestMatch = c
		}
	}
	return bestMatch
}

// levenshteinDistance calculates the edit distance between two strings.
// UNICODE: compares runes, so Kannada and IAST titles count one edit per
// character rather than per byte.
func levenshteinDistance(a, b string) int {
	s1, s2 := []rune(a), []rune(b)
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	cols := len(s2) + 1

	// Use two rows instead of full matrix for memory efficiency
	prev := make([]int, cols)
	curr := make([]int, cols)
	for j := 0; j < cols; j++ {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j < cols; j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			// Minimum of: delete, insert, substitute
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[cols-1]
}
