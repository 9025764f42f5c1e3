// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package scripture

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jeranaias/madhwagpt-tui/internal/api"
)

// Library loads chapters and verses for the works in its catalog. It keeps
// no state between calls: each call fetches and returns a fresh list. The
// policy can be swapped while loads are in flight.
type Library struct {
	client *api.Client
	works  []Work
	log    *slog.Logger

	mu     sync.RWMutex
	policy api.Policy
}

// NewLibrary creates a library over works. A nil works slice uses Catalog().
func NewLibrary(client *api.Client, works []Work, policy api.Policy, log *slog.Logger) *Library {
	if works == nil {
		works = Catalog()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Library{
		client: client,
		works:  works,
		policy: policy,
		log:    log.With(slog.String("component", "library")),
	}
}

// Works returns the catalog.
func (l *Library) Works() []Work {
	out := make([]Work, len(l.works))
	copy(out, l.works)
	return out
}

// Policy returns the fallback policy applied to failed fetches.
func (l *Library) Policy() api.Policy {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.policy
}

// SetPolicy replaces the fallback policy. Loads already past their fetch keep
// the policy they read.
func (l *Library) SetPolicy(p api.Policy) {
	l.mu.Lock()
	l.policy = p
	l.mu.Unlock()
}

// Chapters fetches the chapter list of w.
func (l *Library) Chapters(ctx context.Context, w Work) ([]Chapter, error) {
	list, err := api.Fetch[ChapterList](ctx, l.client, w.ChaptersURL)
	return api.ApplyList(l.Policy(), l.log.With(slog.String("work", w.Title)), list.Chapters, err)
}

// Verses fetches the verses of one chapter of w.
func (l *Library) Verses(ctx context.Context, w Work, chapter int) ([]Verse, error) {
	list, err := api.Fetch[VerseList](ctx, l.client, w.VersesURL(chapter))
	return api.ApplyList(l.Policy(), l.log.With(slog.String("work", w.Title), slog.Int("chapter", chapter)), list.Verses, err)
}

// ChapterDetails fetches a legacy chapter-detail document.
func (l *Library) ChapterDetails(ctx context.Context, rawURL string) ([]ChapterDetail, error) {
	d, err := api.Fetch[ChapterDetails](ctx, l.client, rawURL)
	return api.ApplyList(l.Policy(), l.log, d.Details, err)
}
