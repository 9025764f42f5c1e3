// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package scripture contains the works, chapters and verses served by the
// MadhwaGPT API, and the Library that fetches them.
//
// # Key Types
//
//   - Work: a canonical text from the built-in Catalog (identity: Title)
//   - Chapter / ChapterList: chapter list, accepting "sandhis" or "chapters"
//   - Verse / VerseList: verse list of one chapter (identity: CanonicalID)
//   - WordGloss: word-by-word entry, accepting "word" or "term"
//   - Library: fetches lists through api.Client and applies a fallback policy
//
// # Usage
//
//	lib := scripture.NewLibrary(client, nil, api.PolicyEmpty, logger)
//	gita, _ := scripture.FindWork(lib.Works(), "bhagavatgeetha")
//	chapters, _ := lib.Chapters(ctx, gita)
//	verses, _ := lib.Verses(ctx, gita, chapters[1].Number)
//	for _, v := range scripture.Search(verses, "karmanye") {
//	    fmt.Println(v.Title(), v.Transliteration)
//	}
package scripture
