// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package scripture

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// ChapterDetail is the older per-verse shape served by chapter-detail
// endpoints: a verse number with Sanskrit text only.
type ChapterDetail struct {
	ID                 uuid.UUID `json:"-"`
	Verse              int       `json:"verse"`
	Sanskrit           string    `json:"sanskrit"`
	Transliteration    string    `json:"transliteration"`
	EnglishTranslation string    `json:"english_translation"`
}

// DecodeChapterDetails accepts either a bare array or a `{"verses":[...]}`
// wrapper and assigns each entry a list key.
func DecodeChapterDetails(data []byte) ([]ChapterDetail, error) {
	var details []ChapterDetail
	if err := json.Unmarshal(data, &details); err != nil {
		var wrapped struct {
			Verses []ChapterDetail `json:"verses"`
		}
		if werr := json.Unmarshal(data, &wrapped); werr != nil {
			return nil, fmt.Errorf("decode chapter details: %w", err)
		}
		details = wrapped.Verses
	}
	if details == nil {
		details = []ChapterDetail{}
	}
	for i := range details {
		details[i].ID = uuid.New()
	}
	return details, nil
}

// ChapterDetails is the decode target for Fetch.
type ChapterDetails struct {
	Details []ChapterDetail
}

// UnmarshalJSON implements json.Unmarshaler via DecodeChapterDetails.
func (d *ChapterDetails) UnmarshalJSON(data []byte) error {
	details, err := DecodeChapterDetails(data)
	if err != nil {
		return err
	}
	d.Details = details
	return nil
}
