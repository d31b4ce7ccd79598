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

// Package tagmatch scores candidate items against a set of tags rather
// than a free-text query. Exact substring hits score a fixed high value;
// everything else falls back to semantic similarity.
package tagmatch

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/semrank/semrank/ai"
	"github.com/semrank/semrank/cache"
	"github.com/semrank/semrank/core"
	"github.com/semrank/semrank/rank"
)

const (
	// exactMatchScore is the fixed text score for a case-insensitive
	// substring hit. It outranks all but near-perfect semantic matches.
	exactMatchScore = 0.9

	// semanticThreshold is the minimum similarity for a tag to count as
	// semantically matched.
	semanticThreshold = 0.35

	// DefaultMinScore is the percentage cutoff applied when the request
	// does not set one.
	DefaultMinScore = 70.0

	textWeight  = 0.7
	imageWeight = 0.3
)

// Matcher scores items against tag sets. It shares the vector caches
// with the ranker so tag requests and search requests warm each other.
type Matcher struct {
	textEmbedder  ai.Embedder
	imageEmbedder ai.ImageEmbedder
	fetcher       *ai.ImageFetcher
	queryCache    *cache.VectorCache
	imageCache    *cache.VectorCache
	logger        *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithTextEmbedder sets the semantic text embedder. Without one only
// exact substring matches contribute text score.
func WithTextEmbedder(embedder ai.Embedder) Option {
	return func(m *Matcher) { m.textEmbedder = embedder }
}

// WithImageEmbedder sets the cross-modal embedder and thumbnail fetcher.
func WithImageEmbedder(embedder ai.ImageEmbedder, fetcher *ai.ImageFetcher) Option {
	return func(m *Matcher) {
		m.imageEmbedder = embedder
		m.fetcher = fetcher
	}
}

// WithCaches shares existing vector caches instead of private ones.
func WithCaches(queryCache, imageCache *cache.VectorCache) Option {
	return func(m *Matcher) {
		if queryCache != nil {
			m.queryCache = queryCache
		}
		if imageCache != nil {
			m.imageCache = imageCache
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMatcher creates a tag matcher.
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{
		queryCache: cache.New(256),
		imageCache: cache.New(128),
		logger:     slog.Default().With("component", "tagmatch"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match scores every valid item against the tag set and returns those
// whose combined percentage score reaches minScore, ordered descending
// with input order breaking ties. minScore is taken as given, so 0
// keeps every valid item; callers wanting the usual cutoff pass
// DefaultMinScore. The second return is the number of items analyzed.
func (m *Matcher) Match(ctx context.Context, tags []string, items []core.CandidateItem, minScore float64) ([]core.TagMatch, int, error) {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) == 0 {
		return nil, 0, ErrNoTags
	}
	if len(items) == 0 {
		return nil, 0, ErrNoItems
	}
	joined := strings.Join(cleaned, " ")
	joinedVec := m.textVector(ctx, joined)
	joinedClipVec := m.clipVector(ctx, joined)

	tagVecs := make([][]float32, len(cleaned))
	for i, tag := range cleaned {
		tagVecs[i] = m.textVector(ctx, tag)
	}

	matches := make([]core.TagMatch, 0, len(items))
	analyzed := 0
	for i := range items {
		if core.ValidateItem(&items[i]) != nil {
			continue
		}
		analyzed++

		if match, ok := m.scoreItem(ctx, cleaned, tagVecs, joined, joinedVec, joinedClipVec, items[i], minScore); ok {
			matches = append(matches, match)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	m.logger.Debug("matched tags",
		"tags", len(cleaned), "analyzed", analyzed, "matched", len(matches))
	return matches, analyzed, nil
}

func (m *Matcher) scoreItem(ctx context.Context, tags []string, tagVecs [][]float32, joined string, joinedVec, joinedClipVec []float32, item core.CandidateItem, minScore float64) (core.TagMatch, bool) {
	content := strings.ToLower(item.Title + " " + item.Description + " " + item.Text)

	var itemVec []float32
	if m.textEmbedder != nil {
		itemVec = m.textVector(ctx, item.Text)
	}

	textScore := 0.0
	matched := make([]string, 0, len(tags))
	for i, tag := range tags {
		score, hit := m.tagScore(tag, tagVecs[i], content, itemVec, item.Text)
		if hit {
			matched = append(matched, tag)
		}
		if score > textScore {
			textScore = score
		}
	}

	// The joined tag string catches items that resemble the tag set as a
	// whole without clearing any single tag's threshold.
	if sim := m.similarity(joinedVec, itemVec, joined, item.Text); sim > textScore {
		textScore = sim
	}

	combined := textScore
	var imageScore *float64

	if m.imageEmbedder != nil && m.fetcher != nil && item.Thumbnail != "" && joinedClipVec != nil {
		if thumbVec := m.thumbnailVector(ctx, item.Thumbnail); thumbVec != nil {
			s := clamp((ai.Cosine(thumbVec, joinedClipVec) + 1.0) / 2.0)
			imageScore = &s
			combined = textScore*textWeight + s*imageWeight
		}
	}

	percent := roundTenth(clamp(combined) * 100.0)
	if percent < minScore {
		return core.TagMatch{}, false
	}

	textPct := roundTenth(clamp(textScore) * 100.0)
	match := core.TagMatch{
		ID:          item.ID,
		Score:       percent,
		Title:       item.Title,
		Text:        item.Text,
		Description: item.Description,
		Thumbnail:   item.Thumbnail,
		MatchedTags: matched,
		TextScore:   textPct,
	}
	if imageScore != nil {
		pct := roundTenth(clamp(*imageScore) * 100.0)
		match.ImageScore = &pct
	}
	return match, true
}

// tagScore scores one tag against the item: exact substring wins a
// fixed score, otherwise semantic similarity against the threshold.
// A similarity below the threshold is not a match and contributes no
// score; only the joined tag string bypasses the threshold.
func (m *Matcher) tagScore(tag string, tagVec []float32, content string, itemVec []float32, itemText string) (float64, bool) {
	if strings.Contains(content, strings.ToLower(tag)) {
		return exactMatchScore, true
	}

	sim := m.similarity(tagVec, itemVec, tag, itemText)
	if sim >= semanticThreshold {
		return sim, true
	}
	return 0, false
}

// similarity compares in vector space when both vectors exist, falling
// back to token overlap otherwise.
func (m *Matcher) similarity(aVec, bVec []float32, aText, bText string) float64 {
	if aVec != nil && bVec != nil {
		sim := ai.Cosine(aVec, bVec)
		if sim < 0 {
			return 0
		}
		return sim
	}
	return rank.Jaccard(aText, bText)
}

func (m *Matcher) textVector(ctx context.Context, text string) []float32 {
	if m.textEmbedder == nil {
		return nil
	}
	key := "text:" + core.KeyFromContent(text)
	if vec, ok := m.queryCache.Get(key); ok {
		return vec
	}
	vec, err := m.textEmbedder.EmbedText(ctx, text)
	if err != nil || len(vec) == 0 {
		m.logger.Warn("tag embedding failed", "err", err)
		return nil
	}
	m.queryCache.Set(key, vec)
	return vec
}

func (m *Matcher) clipVector(ctx context.Context, text string) []float32 {
	if m.imageEmbedder == nil {
		return nil
	}
	key := "clip:" + text
	if vec, ok := m.queryCache.Get(key); ok {
		return vec
	}
	vec, err := m.imageEmbedder.EmbedText(ctx, text)
	if err != nil || len(vec) == 0 {
		m.logger.Warn("tag image-space embedding failed", "err", err)
		return nil
	}
	m.queryCache.Set(key, vec)
	return vec
}

func (m *Matcher) thumbnailVector(ctx context.Context, url string) []float32 {
	if vec, ok := m.imageCache.Get(url); ok {
		return vec
	}
	data, err := m.fetcher.Fetch(ctx, url)
	if err != nil {
		m.imageCache.SetAbsent(url)
		return nil
	}
	vec, err := m.imageEmbedder.EmbedImage(ctx, data)
	if err != nil {
		m.imageCache.SetAbsent(url)
		return nil
	}
	m.imageCache.Set(url, vec)
	return vec
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func roundTenth(v float64) float64 {
	return math.Round(v*10.0) / 10.0
}
