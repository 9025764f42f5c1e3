// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package scripture

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/madhwagpt-tui/internal/api"
)

// =============================================================================
// CATALOG TESTS
// =============================================================================

func TestCatalog(t *testing.T) {
	works := Catalog()
	require.Len(t, works, 2)

	gita := works[0]
	assert.Equal(t, "Bhagavatgeetha", gita.Title)
	assert.Equal(t, "The song of god", gita.Description)
	assert.Equal(t, "Sanskrit", gita.Language)
	assert.Equal(t, "https://madhwagpt2.onrender.com/api/gita/chapters", gita.ChaptersURL)
	assert.Equal(t, "18 Chapters", gita.Metadata[0].String())
	assert.Equal(t, "700 Verses", gita.Metadata[1].String())

	hks := works[1]
	assert.Equal(t, "Harikathamrutasara", hks.Title)
	assert.Equal(t, "The Nectar of Hari's stories", hks.Description)
	assert.Equal(t, "Kannada", hks.Language)
	assert.Equal(t, "https://madhwagpt2.onrender.com/api/works/harikathamritha_sara/chapters", hks.ChaptersURL)
	assert.Equal(t, "33 sandhis", hks.Metadata[0].String())
	assert.Equal(t, "960 Padyas", hks.Metadata[1].String())

	// Fresh slice every call.
	works[0].Title = "changed"
	assert.Equal(t, "Bhagavatgeetha", Catalog()[0].Title)
}

func TestWork_IdentityIsTitle(t *testing.T) {
	a := Work{Title: "Bhagavatgeetha", Description: "one"}
	b := Work{Title: "Bhagavatgeetha", Description: "two", ChaptersURL: "x"}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(Work{Title: "Harikathamrutasara"}))
}

func TestWork_VersesURL(t *testing.T) {
	gita := Catalog()[0]
	assert.Equal(t, "https://madhwagpt2.onrender.com/api/gita/chapters/2/verses", gita.VersesURL(2))
	assert.Equal(t, "http://h/c/5/verses", Work{ChaptersURL: "http://h/c/"}.VersesURL(5))
}

func TestFindWork(t *testing.T) {
	works := Catalog()

	w, err := FindWork(works, "  harikathamrutasara ")
	require.NoError(t, err)
	assert.Equal(t, "Harikathamrutasara", w.Title)

	w, err = FindWork(works, "1")
	require.NoError(t, err)
	assert.Equal(t, "Bhagavatgeetha", w.Title)

	_, err = FindWork(works, "3")
	assert.Error(t, err)
	_, err = FindWork(works, "Ramayana")
	assert.ErrorContains(t, err, "Bhagavatgeetha, Harikathamrutasara")
}

func TestRebase(t *testing.T) {
	works, err := Rebase(Catalog(), "http://127.0.0.1:9000/prefix/")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000/prefix/api/gita/chapters", works[0].ChaptersURL)
	assert.Equal(t, "Bhagavatgeetha", works[0].Title)

	same, err := Rebase(Catalog(), "")
	require.NoError(t, err)
	assert.Equal(t, Catalog(), same)

	_, err = Rebase(Catalog(), "not-a-base")
	assert.Error(t, err)
}

// =============================================================================
// LIBRARY TESTS
// =============================================================================

func newLibraryServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/gita/chapters", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chapters":` + chapterArray + `}`))
	})
	mux.HandleFunc("/api/works/harikathamritha_sara/chapters", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"sandhis":[{"number":1,"kannada_name":"ಮಂಗಳಾಚರಣ","english_name":"Invocation","transliterated_name":"Mangalacharana","verse_count":15}]}`))
	})
	mux.HandleFunc("/api/gita/chapters/2/verses", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"verses":[` + gitaVerse + `]}`))
	})
	mux.HandleFunc("/api/gita/chapters/3/verses", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	mux.HandleFunc("/legacy", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"verse":1,"sanskrit":"s","transliteration":"t","english_translation":"e"}]`))
	})
	return httptest.NewServer(mux)
}

func newTestLibrary(t *testing.T, base string, policy api.Policy) *Library {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	works, err := Rebase(Catalog(), base)
	require.NoError(t, err)
	client := api.NewClient(api.Config{Logger: log})
	return NewLibrary(client, works, policy, log)
}

func TestLibrary_Chapters(t *testing.T) {
	server := newLibraryServer(t)
	defer server.Close()
	lib := newTestLibrary(t, server.URL, api.PolicyStrict)

	works := lib.Works()
	gita, err := lib.Chapters(context.Background(), works[0])
	require.NoError(t, err)
	assert.Len(t, gita, 2)

	hks, err := lib.Chapters(context.Background(), works[1])
	require.NoError(t, err)
	require.Len(t, hks, 1)
	assert.Equal(t, "ಮಂಗಳಾಚರಣ", hks[0].DisplayName())
}

func TestLibrary_Verses(t *testing.T) {
	server := newLibraryServer(t)
	defer server.Close()

	strict := newTestLibrary(t, server.URL, api.PolicyStrict)
	gita := strict.Works()[0]

	verses, err := strict.Verses(context.Background(), gita, 2)
	require.NoError(t, err)
	require.Len(t, verses, 1)
	assert.Equal(t, "2.47", verses[0].Title())

	_, err = strict.Verses(context.Background(), gita, 3)
	assert.True(t, errors.Is(err, api.ErrBadStatus))

	empty := newTestLibrary(t, server.URL, api.PolicyEmpty)
	verses, err = empty.Verses(context.Background(), gita, 3)
	require.NoError(t, err)
	assert.NotNil(t, verses)
	assert.Empty(t, verses)
	assert.Equal(t, api.PolicyEmpty, empty.Policy())
}

func TestLibrary_SetPolicy(t *testing.T) {
	server := newLibraryServer(t)
	defer server.Close()
	lib := newTestLibrary(t, server.URL, api.PolicyEmpty)
	gita := lib.Works()[0]

	verses, err := lib.Verses(context.Background(), gita, 3)
	require.NoError(t, err)
	assert.Empty(t, verses)

	lib.SetPolicy(api.PolicyStrict)
	assert.Equal(t, api.PolicyStrict, lib.Policy())
	_, err = lib.Verses(context.Background(), gita, 3)
	assert.True(t, errors.Is(err, api.ErrBadStatus))
}

func TestLibrary_ChapterDetails(t *testing.T) {
	server := newLibraryServer(t)
	defer server.Close()
	lib := newTestLibrary(t, server.URL, api.PolicyStrict)

	details, err := lib.ChapterDetails(context.Background(), server.URL+"/legacy")
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "e", details[0].EnglishTranslation)

	_, err = lib.ChapterDetails(context.Background(), "::bad")
	assert.True(t, errors.Is(err, api.ErrInvalidURL))
}

func TestNewLibrary_Defaults(t *testing.T) {
	lib := NewLibrary(api.NewClient(api.Config{}), nil, api.PolicyEmpty, nil)
	assert.Equal(t, Catalog(), lib.Works())
}

// =============================================================================
// SEARCH TESTS
// =============================================================================

func TestFold(t *testing.T) {
	assert.Equal(t, "karmany evadhikaras te", Fold("Karmaṇy Evādhikāras Te"))
	assert.Equal(t, Fold("śrīramaṇa"), Fold("sriramana"))
	assert.Equal(t, "", Fold(""))
}

func TestSearch(t *testing.T) {
	var list VerseList
	require.NoError(t, json.Unmarshal([]byte(`{"verses":[`+gitaVerse+`,`+hksVerse+`]}`), &list))

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"BG.2.47", "HKS.1.3"}},
		{"karmany", []string{"BG.2.47"}},
		{"SARVESA", []string{"HKS.1.3"}},
		{"fruits", []string{"BG.2.47"}},
		{"phalesu", []string{"BG.2.47"}},
		{"1.3", []string{"HKS.1.3"}},
		{"moksha", []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			got := Search(list.Verses, tc.query)
			ids := make([]string, 0, len(got))
			for _, v := range got {
				ids = append(ids, v.CanonicalID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}
