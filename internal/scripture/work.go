// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package scripture

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// MetadataPair is a display label such as "18 Chapters".
type MetadataPair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// String renders the pair as "<key> <value>".
func (m MetadataPair) String() string {
	return m.Key + " " + m.Value
}

// Work is a canonical text. Title is its identity.
type Work struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Language    string          `json:"language"`
	ChaptersURL string          `json:"chapters_url"`
	Metadata    [2]MetadataPair `json:"metadata"`
}

// Equal reports whether two works share a title.
func (w Work) Equal(other Work) bool {
	return w.Title == other.Title
}

// VersesURL returns the verse-list endpoint for a chapter of this work.
func (w Work) VersesURL(chapter int) string {
	return strings.TrimRight(w.ChaptersURL, "/") + "/" + strconv.Itoa(chapter) + "/verses"
}

// =============================================================================
// CATALOG
// =============================================================================

// Catalog returns the built-in list of works. The slice is freshly
// allocated on every call so callers may modify it.
func Catalog() []Work {
	return []Work{
		{
			Title:       "Bhagavatgeetha",
			Description: "The song of god",
			Language:    "Sanskrit",
			ChaptersURL: "https://madhwagpt2.onrender.com/api/gita/chapters",
			Metadata: [2]MetadataPair{
				{Key: "18", Value: "Chapters"},
				{Key: "700", Value: "Verses"},
			},
		},
		{
			Title:       "Harikathamrutasara",
			Description: "The Nectar of Hari's stories",
			Language:    "Kannada",
			ChaptersURL: "https://madhwagpt2.onrender.com/api/works/harikathamritha_sara/chapters",
			Metadata: [2]MetadataPair{
				{Key: "33", Value: "sandhis"},
				{Key: "960", Value: "Padyas"},
			},
		},
	}
}

// FindWork looks a work up by title, ignoring case and surrounding space.
// A numeric name selects by 1-based position in works.
func FindWork(works []Work, name string) (Work, error) {
	name = strings.TrimSpace(name)
	for _, w := range works {
		if strings.EqualFold(w.Title, name) {
			return w, nil
		}
	}
	if n, err := strconv.Atoi(name); err == nil && n >= 1 && n <= len(works) {
		return works[n-1], nil
	}

	titles := make([]string, len(works))
	for i, w := range works {
		titles[i] = w.Title
	}
	return Work{}, fmt.Errorf("unknown work %q, must be one of: %s", name, strings.Join(titles, ", "))
}

// Rebase points every work at a different scheme and host, keeping paths.
// An empty base returns works unchanged.
func Rebase(works []Work, base string) ([]Work, error) {
	if strings.TrimSpace(base) == "" {
		return works, nil
	}
	b, err := url.Parse(base)
	if err != nil || b.Scheme == "" || b.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", base)
	}
	prefix := strings.TrimRight(b.Path, "/")

	out := make([]Work, len(works))
	for i, w := range works {
		u, err := url.Parse(w.ChaptersURL)
		if err != nil {
			return nil, fmt.Errorf("work %q: invalid chapters URL: %w", w.Title, err)
		}
		u.Scheme = b.Scheme
		u.Host = b.Host
		u.Path = prefix + u.Path
		w.ChaptersURL = u.String()
		out[i] = w
	}
	return out, nil
}
