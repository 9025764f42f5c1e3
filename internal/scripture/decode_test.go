// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package scripture

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chapterArray = `[
	{"number":1,"sanskrit_name":"अर्जुनविषादयोगः","english_name":"Arjuna's Despondency","transliterated_name":"Arjuna Vishada Yoga","description":"Arjuna sees his kin.","verse_count":47},
	{"number":2,"sanskrit_name":"साङ्ख्ययोगः","english_name":"Sankhya Yoga","transliterated_name":"Sankhya Yoga","verse_count":72}
]`

func stripIDs(chapters []Chapter) []Chapter {
	out := make([]Chapter, len(chapters))
	for i, c := range chapters {
		c.ID = uuid.Nil
		out[i] = c
	}
	return out
}

// =============================================================================
// CHAPTER LIST TESTS
// =============================================================================

func TestChapterList_EitherKey(t *testing.T) {
	var fromChapters, fromSandhis ChapterList
	require.NoError(t, json.Unmarshal([]byte(`{"chapters":`+chapterArray+`}`), &fromChapters))
	require.NoError(t, json.Unmarshal([]byte(`{"sandhis":`+chapterArray+`}`), &fromSandhis))

	require.Len(t, fromChapters.Chapters, 2)
	assert.Equal(t, stripIDs(fromChapters.Chapters), stripIDs(fromSandhis.Chapters))

	first := fromChapters.Chapters[0]
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, "अर्जुनविषादयोगः", first.DisplayName())
	require.NotNil(t, first.Description)
	assert.Nil(t, fromChapters.Chapters[1].Description)
	assert.Nil(t, first.KannadaName)
	assert.Equal(t, 47, first.VerseCount)
}

func TestChapterList_NeitherKeyIsEmpty(t *testing.T) {
	for _, body := range []string{`{}`, `{"sections":[{"number":1}]}`, `{"sandhis":null}`, `{"chapters":null}`} {
		var list ChapterList
		require.NoErrorf(t, json.Unmarshal([]byte(body), &list), "body %s", body)
		assert.NotNilf(t, list.Chapters, "body %s", body)
		assert.Emptyf(t, list.Chapters, "body %s", body)
	}
}

func TestChapterList_SandhisWins(t *testing.T) {
	body := `{"sandhis":[{"number":7,"kannada_name":"ಸೃಷ್ಟಿ ಪ್ರಕರಣ","english_name":"Creation","transliterated_name":"Srishti","verse_count":30}],
		"chapters":[{"number":1,"english_name":"x","transliterated_name":"x","verse_count":1}]}`

	var list ChapterList
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	require.Len(t, list.Chapters, 1)
	assert.Equal(t, 7, list.Chapters[0].Number)
	assert.Equal(t, "ಸೃಷ್ಟಿ ಪ್ರಕರಣ", list.Chapters[0].DisplayName())
}

func TestChapterList_NullSandhisFallsThrough(t *testing.T) {
	var list ChapterList
	require.NoError(t, json.Unmarshal([]byte(`{"sandhis":null,"chapters":`+chapterArray+`}`), &list))
	assert.Len(t, list.Chapters, 2)
}

func TestChapterList_MalformedArrayFails(t *testing.T) {
	var list ChapterList
	assert.Error(t, json.Unmarshal([]byte(`{"chapters":[{"number":"one"}]}`), &list))
	assert.Error(t, json.Unmarshal([]byte(`{"sandhis":{}}`), &list))
	assert.Error(t, json.Unmarshal([]byte(`[]`), &list))
}

func TestChapterList_AssignsDistinctIDs(t *testing.T) {
	var list ChapterList
	require.NoError(t, json.Unmarshal([]byte(`{"chapters":`+chapterArray+`}`), &list))
	assert.NotEqual(t, uuid.Nil, list.Chapters[0].ID)
	assert.NotEqual(t, list.Chapters[0].ID, list.Chapters[1].ID)

	data, err := json.Marshal(list)
	require.NoError(t, err)
	assert.NotContains(t, string(data), list.Chapters[0].ID.String())
	assert.Contains(t, string(data), `"chapters":[`)
}

func TestChapter_DisplayName(t *testing.T) {
	kn := "ಮಂಗಳಾಚರಣ ಸಂಧಿ"
	assert.Equal(t, kn, Chapter{KannadaName: &kn}.DisplayName())
	assert.Equal(t, "Unknown", Chapter{}.DisplayName())
	assert.Equal(t, "2. Sankhya Yoga (72 verses)", Chapter{Number: 2, EnglishName: "Sankhya Yoga", VerseCount: 72}.Label())
}

// =============================================================================
// WORD GLOSS TESTS
// =============================================================================

func TestWordGloss_KeyFallback(t *testing.T) {
	var fromWord, fromTerm WordGloss
	require.NoError(t, json.Unmarshal([]byte(`{"word":"x","meaning":"y"}`), &fromWord))
	require.NoError(t, json.Unmarshal([]byte(`{"term":"x","meaning":"y"}`), &fromTerm))

	assert.Equal(t, "x", fromWord.Term)
	assert.Equal(t, "x", fromTerm.Term)
	assert.Equal(t, fromWord, fromTerm)
}

func TestWordGloss_WordBeforeTerm(t *testing.T) {
	var g WordGloss
	require.NoError(t, json.Unmarshal([]byte(`{"word":"karma","term":"ignored","meaning":"action"}`), &g))
	assert.Equal(t, "karma", g.Term)

	require.NoError(t, json.Unmarshal([]byte(`{"word":7,"term":"phala","meaning":"fruit"}`), &g))
	assert.Equal(t, "phala", g.Term)
}

func TestWordGloss_Failures(t *testing.T) {
	var g WordGloss
	err := json.Unmarshal([]byte(`{"meaning":"y"}`), &g)
	assert.ErrorIs(t, err, ErrMissingTerm)

	assert.Error(t, json.Unmarshal([]byte(`{"word":"x"}`), &g))
	assert.Error(t, json.Unmarshal([]byte(`{"word":null,"term":null,"meaning":"y"}`), &g))
}

// =============================================================================
// VERSE TESTS
// =============================================================================

const gitaVerse = `{
	"canonical_id": "BG.2.47",
	"chapter": 2, "verse": 47,
	"sanskrit": "कर्मण्येवाधिकारस्ते मा फलेषु कदाचन",
	"transliteration": "karmaṇy evādhikāras te mā phaleṣu kadācana",
	"translation_english": "You have a right to action alone, never to its fruits.",
	"suggested_questions": ["What is niṣkāma karma?"],
	"word_by_word": [{"word":"karmaṇi","meaning":"in action"},{"term":"phaleṣu","meaning":"in the fruits"}]
}`

const hksVerse = `{
	"canonical_id": "HKS.1.3",
	"sandhi": 1, "padya": 3,
	"kannada": "ಶ್ರೀರಮಣ ಸರ್ವೇಶ",
	"transliteration": "śrīramaṇa sarvēśa",
	"english_translation": "Legacy text",
	"translation_english": "",
	"suggested_questions": []
}`

func TestVerse_DecodeGita(t *testing.T) {
	var v Verse
	require.NoError(t, json.Unmarshal([]byte(gitaVerse), &v))

	assert.Equal(t, "BG.2.47", v.CanonicalID)
	assert.Equal(t, "2.47", v.Title())
	assert.Nil(t, v.Kannada)
	require.Len(t, v.WordByWord, 2)
	assert.Equal(t, "phaleṣu", v.WordByWord[1].Term)
	assert.Equal(t, []string{"What is niṣkāma karma?"}, v.SuggestedQuestions)
	assert.Equal(t, "You have a right to action alone, never to its fruits.", v.Translation())
}

func TestVerse_DecodeHarikathamritasara(t *testing.T) {
	var v Verse
	require.NoError(t, json.Unmarshal([]byte(hksVerse), &v))

	assert.Equal(t, "1.3", v.Title())
	assert.Nil(t, v.WordByWord)
	assert.NotNil(t, v.SuggestedQuestions)
	assert.Equal(t, "Legacy text", v.Translation())
}

func TestVerse_RequiredFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no canonical id", `{"transliteration":"t","translation_english":"e","suggested_questions":[]}`},
		{"no transliteration", `{"canonical_id":"a","translation_english":"e","suggested_questions":[]}`},
		{"no translation", `{"canonical_id":"a","transliteration":"t","suggested_questions":[]}`},
		{"no questions", `{"canonical_id":"a","transliteration":"t","translation_english":"e"}`},
		{"bad gloss", `{"canonical_id":"a","transliteration":"t","translation_english":"e","suggested_questions":[],"word_by_word":[{"meaning":"m"}]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var v Verse
			assert.Error(t, json.Unmarshal([]byte(tc.body), &v))
		})
	}
}

func TestVerse_Title(t *testing.T) {
	two, three, nine := 2, 3, 9
	sa, kn := "सं", "ಕ"

	tests := []struct {
		name  string
		verse Verse
		want  string
	}{
		{"sanskrit uses chapter.verse", Verse{Sanskrit: &sa, Chapter: &two, Verse: &three}, "2.3"},
		{"kannada uses sandhi.padya", Verse{Kannada: &kn, Sandhi: &nine, Padya: &two}, "9.2"},
		{"sanskrit wins over kannada", Verse{Sanskrit: &sa, Kannada: &kn, Chapter: &two, Verse: &three, Sandhi: &nine, Padya: &nine}, "2.3"},
		{"missing ordinals are zero", Verse{Sanskrit: &sa}, "0.0"},
		{"neither script", Verse{Chapter: &two, Verse: &three}, "0.0"},
		{"kannada ignores chapter pair", Verse{Kannada: &kn, Chapter: &two, Verse: &three}, "0.0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.verse.Title())
		})
	}
}

func TestVerseList_Decode(t *testing.T) {
	var list VerseList
	require.NoError(t, json.Unmarshal([]byte(`{"verses":[`+gitaVerse+`,`+hksVerse+`]}`), &list))
	require.Len(t, list.Verses, 2)

	v, ok := FindVerse(list.Verses, "1.3")
	require.True(t, ok)
	assert.Equal(t, "HKS.1.3", v.CanonicalID)

	v, ok = FindVerse(list.Verses, "BG.2.47")
	require.True(t, ok)
	assert.True(t, v.Equal(Verse{CanonicalID: "BG.2.47"}))

	_, ok = FindVerse(list.Verses, "18.66")
	assert.False(t, ok)
}

func TestDecodeChapterDetails(t *testing.T) {
	bare := `[{"verse":1,"sanskrit":"धर्मक्षेत्रे","transliteration":"dharma-kṣetre","english_translation":"On the field of dharma"}]`
	wrapped := `{"verses":` + bare + `}`

	for _, body := range []string{bare, wrapped} {
		details, err := DecodeChapterDetails([]byte(body))
		require.NoError(t, err)
		require.Len(t, details, 1)
		assert.Equal(t, 1, details[0].Verse)
		assert.Equal(t, "On the field of dharma", details[0].EnglishTranslation)
		assert.NotEqual(t, uuid.Nil, details[0].ID)
	}

	_, err := DecodeChapterDetails([]byte(`"nope"`))
	assert.Error(t, err)
}
