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


// Package keywords holds the heuristic keyword tables the scoring
// pipeline consumes: query expansion variants, intent markers, recency
// phrases, topic categories, the music hard-filter lists, polysemous
// term disambiguation tables, and expected visual categories.
//
// The tables are tunable data, not verified knowledge. They are loaded
// once at startup into read-only structures; tuning them means editing
// a calibration file, not redeploying logic.
package keywords

// IntentKeywords associates one intent with its marker keywords. The
// slice order in Tables.Intents is the tie-break order for intent
// detection.
type IntentKeywords struct {
	Intent   string   `koanf:"intent"`
	Keywords []string `koanf:"keywords"`
}

// RecencyBucket names a recency tier, its multiplicative boost factor
// and the metadata phrases that select it. Buckets are checked in slice
// order and the first match wins.
type RecencyBucket struct {
	Name    string   `koanf:"name"`
	Factor  float64  `koanf:"factor"`
	Phrases []string `koanf:"phrases"`
}

// VisualCategory maps query and content hints to the phrases that
// define what a matching thumbnail should look like. Used by the
// cross-modal validation stage.
type VisualCategory struct {
	Name         string   `koanf:"name"`
	QueryHints   []string `koanf:"query_hints"`
	ContentHints []string `koanf:"content_hints"`
	Phrases      []string `koanf:"phrases"`
}

// Tables is the full set of keyword tables. All maps are keyed by
// lowercased terms and matched against lowercased content.
type Tables struct {
	// Expansion maps a query to its fixed list of semantically related
	// variants. The original query always stays first in the expanded set.
	Expansion map[string][]string `koanf:"expansion"`

	// Intents lists intent markers in declaration (tie-break) order.
	Intents []IntentKeywords `koanf:"intents"`

	// Recency buckets in priority order, strongest first.
	Recency []RecencyBucket `koanf:"recency"`

	// Topics maps a topic tag to the keywords that reveal it in content.
	Topics map[string][]string `koanf:"topics"`

	// QueryTopics maps a query keyword to the topic a factual query about
	// it is expected to be about.
	QueryTopics map[string]string `koanf:"query_topics"`

	// TopicConflicts maps a topic to the topics that contradict it.
	TopicConflicts map[string][]string `koanf:"topic_conflicts"`

	// MusicContent is the hard-filter list: content matching any of these
	// is zeroed for non-music queries.
	MusicContent []string `koanf:"music_content"`

	// MusicQuery marks a query as music-related, exempting its results
	// from the hard filter.
	MusicQuery []string `koanf:"music_query"`

	// Brand maps a polysemous term to keywords indicating its brand or
	// company sense (the sense to penalize).
	Brand map[string][]string `koanf:"brand"`

	// Fruit maps a polysemous term to keywords indicating its natural
	// sense (the sense to boost).
	Fruit map[string][]string `koanf:"fruit"`

	// FlowerBoost and FlowerConflict form the second, independent
	// polysemous category with its own tier scheme.
	FlowerBoost    map[string][]string `koanf:"flower_boost"`
	FlowerConflict map[string][]string `koanf:"flower_conflict"`

	// VisualCategories in declaration order; the first category whose
	// hints match is used.
	VisualCategories []VisualCategory `koanf:"visual_categories"`
}
