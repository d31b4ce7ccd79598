// Copyright 2026 The Semrank Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"encoding/hex"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// Intent is the coarse classification of a query's purpose.
type Intent string

const (
	// IntentHowTo covers instructional queries ("how to fix a flat tire").
	IntentHowTo Intent = "how_to"
	// IntentReview covers evaluative queries ("best budget headphones").
	IntentReview Intent = "review"
	// IntentEntertainment covers leisure queries ("funny cat compilation").
	IntentEntertainment Intent = "entertainment"
	// IntentFactual is the default when no other intent dominates.
	IntentFactual Intent = "factual"
)

// Feedback labels as sent by callers.
const (
	LabelUp   = "up"
	LabelDown = "down"
)

// CandidateItem is a single item submitted for ranking. It is built from
// the caller payload, immutable within a request, and discarded with the
// response.
type CandidateItem struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	Metadata    string `json:"metadata"`
}

// Profile returns the title and description joined, the text against
// which feedback similarity and the learned classifier operate.
func (c *CandidateItem) Profile() string {
	return strings.TrimSpace(c.Title + " " + c.Description)
}

// RankedResult is one ranked entry of a search response. Score is
// clamped to [0,1]; ImageScore is nil when the item carried no usable
// image signal.
type RankedResult struct {
	ID          string   `json:"id"`
	Score       float64  `json:"score"`
	Title       string   `json:"title"`
	Text        string   `json:"text"`
	Description string   `json:"description"`
	Thumbnail   string   `json:"thumbnail"`
	TextScore   float64  `json:"text_score"`
	ImageScore  *float64 `json:"image_score"`
}

// FeedbackRecord is a labeled training sample. Records are consumed
// wholesale on each training call and not retained afterwards; only the
// derived model persists.
type FeedbackRecord struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Label       string `json:"label"`
}

// Text returns the training text for the record.
func (f *FeedbackRecord) Text() string {
	return strings.TrimSpace(f.Title + " " + f.Description)
}

// FeedbackExample is an unlabeled history example attached to a search
// request, used by the feedback-similarity adjustment.
type FeedbackExample struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Text returns the comparison text for the example.
func (f *FeedbackExample) Text() string {
	return strings.TrimSpace(f.Title + " " + f.Description)
}

// TagMatch is one matched entry of a tag-matching response. Score is a
// percentage in [0,100] rounded to one decimal.
type TagMatch struct {
	ID          string   `json:"id"`
	Score       float64  `json:"score"`
	Title       string   `json:"title"`
	Text        string   `json:"text"`
	Description string   `json:"description"`
	Thumbnail   string   `json:"thumbnail"`
	MatchedTags []string `json:"matched_tags"`
	TextScore   float64  `json:"text_score"`
	ImageScore  *float64 `json:"image_score"`
}

// FeedbackHistory carries the per-request liked and disliked examples
// consumed by the feedback-similarity adjustment.
type FeedbackHistory struct {
	Positive []FeedbackExample `json:"positive"`
	Negative []FeedbackExample `json:"negative"`
}

// KeyFromContent derives a compact deterministic cache key from text
// content using BLAKE2b hashing. Identical content always produces the
// same key, so embedding lookups for repeated texts hit the cache.
func KeyFromContent(text string) string {
	h, _ := blake2b.New(16, nil)
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}
