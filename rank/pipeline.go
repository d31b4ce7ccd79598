package rank

import (
	"sort"
	"strings"

	"github.com/semrank/semrank/core"
)

// Fixed stage thresholds and factors. These compose multiplicatively in
// stage order; changing any of them shifts the whole calibration.
const (
	topicConflictStrongPenalty = 0.05
	topicConflictWeakPenalty   = 0.3

	visualMatchLowThreshold  = 0.20
	visualMatchSoftThreshold = 0.35
	visualMatchLowPenalty    = 0.5
	visualMatchSoftPenalty   = 0.8

	negativeConfidenceThreshold = 0.75

	feedbackStrongThreshold = 0.85
	feedbackWeakThreshold   = 0.70
	feedbackStrongPenalty   = 0.3
	feedbackWeakPenalty     = 0.6
	feedbackStrongBoost     = 1.4
	feedbackWeakBoost       = 1.2

	intentMatchBoost    = 1.15
	intentMissedPenalty = 0.9

	brandOnlyPenalty   = 0.15
	flowerNoisePenalty = 0.25

	minTextSimilarity    = 0.15
	lowSimilarityPenalty = 0.2
)

// StageFunc is one pure score transform.
type StageFunc func(score float64, it *ScoredItem, sc *Context) float64

// Stage is a named pipeline step.
type Stage struct {
	Name  string
	Apply StageFunc
}

// Pipeline is the fixed, ordered sequence of adjustment stages. The
// order is part of the scoring contract and must not be changed.
type Pipeline struct {
	stages []Stage
}

// NewPipeline builds the standard nine-stage pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{
		stages: []Stage{
			{Name: "recency_boost", Apply: recencyBoost},
			{Name: "topic_conflict", Apply: topicConflict},
			{Name: "cross_modal_validation", Apply: crossModalValidation},
			{Name: "learned_negative_penalty", Apply: learnedNegativePenalty},
			{Name: "feedback_similarity", Apply: feedbackSimilarity},
			{Name: "hard_content_filter", Apply: hardContentFilter},
			{Name: "intent_reweighting", Apply: intentReweighting},
			{Name: "domain_disambiguation", Apply: domainDisambiguation},
			{Name: "similarity_floor", Apply: similarityFloor},
		},
	}
}

// StageNames returns the stage names in execution order.
func (p *Pipeline) StageNames() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name
	}
	return names
}

// Run applies every stage in order and clamps the result to [0,1].
func (p *Pipeline) Run(score float64, it *ScoredItem, sc *Context) float64 {
	for _, stage := range p.stages {
		score = stage.Apply(score, it, sc)
	}
	return clamp(score)
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// recencyBoost multiplies the score by the first matching recency
// bucket's factor. Buckets are checked strongest first.
func recencyBoost(score float64, it *ScoredItem, sc *Context) float64 {
	if it.metadata == "" {
		return score
	}
	for _, bucket := range sc.Tables.Recency {
		for _, phrase := range bucket.Phrases {
			if strings.Contains(it.metadata, phrase) {
				return score * bucket.Factor
			}
		}
	}
	return score
}

// topicConflict penalizes factual-intent items whose title+description
// reveals a topic conflicting with what the query is expected to be
// about: near-zero for a strong conflict, moderate for a weak one.
func topicConflict(score float64, it *ScoredItem, sc *Context) float64 {
	if sc.Intent != core.IntentFactual {
		return score
	}

	expected := expectedTopic(sc)
	if expected == "" {
		return score
	}
	if countHits(it.profile, sc.Tables.Topics[expected]) > 0 {
		return score
	}

	conflictHits := 0
	for _, topic := range sc.Tables.TopicConflicts[expected] {
		conflictHits += countHits(it.profile, sc.Tables.Topics[topic])
	}
	switch {
	case conflictHits >= 2:
		return score * topicConflictStrongPenalty
	case conflictHits == 1:
		return score * topicConflictWeakPenalty
	}
	return score
}

// expectedTopic resolves the topic a factual query should be about.
// Query keywords are checked in sorted order so resolution is
// deterministic when several match.
func expectedTopic(sc *Context) string {
	hints := make([]string, 0, len(sc.Tables.QueryTopics))
	for hint := range sc.Tables.QueryTopics {
		hints = append(hints, hint)
	}
	sort.Strings(hints)

	for _, hint := range hints {
		if strings.Contains(sc.QueryLower, hint) {
			return sc.Tables.QueryTopics[hint]
		}
	}
	return ""
}

// crossModalValidation penalizes items whose thumbnail does not look
// like the query's expected visual category. Items with no visual score
// (no image signal, no known category, fetch failure) pass unchanged.
func crossModalValidation(score float64, it *ScoredItem, _ *Context) float64 {
	if it.VisualScore == nil {
		return score
	}
	switch {
	case *it.VisualScore < visualMatchLowThreshold:
		return score * visualMatchLowPenalty
	case *it.VisualScore < visualMatchSoftThreshold:
		return score * visualMatchSoftPenalty
	}
	return score
}

// learnedNegativePenalty applies the trained classifier's verdict when
// it is confident the item profile is negative content.
func learnedNegativePenalty(score float64, it *ScoredItem, _ *Context) float64 {
	if it.NegProb > negativeConfidenceThreshold {
		return score * (1 - it.NegProb)
	}
	return score
}

// feedbackSimilarity penalizes items resembling recent negative
// feedback and boosts items resembling positive feedback, capped at 1.
func feedbackSimilarity(score float64, it *ScoredItem, _ *Context) float64 {
	switch {
	case it.MaxNegSim >= feedbackStrongThreshold:
		score *= feedbackStrongPenalty
	case it.MaxNegSim >= feedbackWeakThreshold:
		score *= feedbackWeakPenalty
	}

	switch {
	case it.MaxPosSim >= feedbackStrongThreshold:
		score = min(score*feedbackStrongBoost, 1.0)
	case it.MaxPosSim >= feedbackWeakThreshold:
		score = min(score*feedbackWeakBoost, 1.0)
	}
	return score
}

// hardContentFilter zeroes music/entertainment content for queries that
// are not themselves about music or audio.
func hardContentFilter(score float64, it *ScoredItem, sc *Context) float64 {
	if queryIsMusical(sc) {
		return score
	}
	for _, kw := range sc.Tables.MusicContent {
		if strings.Contains(it.content, kw) {
			it.hardFiltered = true
			return 0
		}
	}
	return score
}

func queryIsMusical(sc *Context) bool {
	for _, kw := range sc.Tables.MusicQuery {
		if strings.Contains(sc.QueryLower, kw) {
			return true
		}
	}
	return false
}

// intentReweighting boosts how_to/review items that actually carry
// their intent's keywords and mildly penalizes those that don't.
// Other intents pass through unchanged.
func intentReweighting(score float64, it *ScoredItem, sc *Context) float64 {
	if sc.Intent != core.IntentHowTo && sc.Intent != core.IntentReview {
		return score
	}
	for _, ik := range sc.Tables.Intents {
		if core.Intent(ik.Intent) != sc.Intent {
			continue
		}
		if countHits(it.content, ik.Keywords) > 0 {
			return score * intentMatchBoost
		}
		return score * intentMissedPenalty
	}
	return score
}

// domainDisambiguation resolves polysemous query terms. The brand/fruit
// tables handle terms like "apple": brand-sense keywords penalize
// proportionally to hit count, natural-sense keywords apply tiered
// boosts, and absence of any natural-sense keyword is a severe penalty
// (total when brand keywords are present). The disjoint flower tables
// apply an analogous, independently tiered scheme, skipped for items
// the hard content filter already zeroed.
func domainDisambiguation(score float64, it *ScoredItem, sc *Context) float64 {
	if fruitKws, ok := lookupTerm(sc, sc.Tables.Fruit, sc.Tables.Brand); ok {
		brandKws := sc.Tables.Brand[sc.QueryLower]
		score = applyBrandFruit(score, countHits(it.content, fruitKws), countHits(it.content, brandKws))
	}

	if !it.hardFiltered {
		if boostKws, ok := lookupTerm(sc, sc.Tables.FlowerBoost, sc.Tables.FlowerConflict); ok {
			conflictKws := sc.Tables.FlowerConflict[sc.QueryLower]
			score = applyFlower(score, countHits(it.content, boostKws), countHits(it.content, conflictKws))
		}
	}
	return score
}

// lookupTerm reports whether the query is a known polysemous term in
// either table of a category, returning the boost keyword list.
func lookupTerm(sc *Context, boostTable, conflictTable map[string][]string) ([]string, bool) {
	if kws, ok := boostTable[sc.QueryLower]; ok {
		return kws, true
	}
	if _, ok := conflictTable[sc.QueryLower]; ok {
		return nil, true
	}
	return nil, false
}

func applyBrandFruit(score float64, fruitHits, brandHits int) float64 {
	if fruitHits == 0 {
		if brandHits > 0 {
			return 0
		}
		return score * brandOnlyPenalty
	}

	if brandHits > 0 {
		switch {
		case brandHits >= 3:
			score *= 0.15
		case brandHits == 2:
			score *= 0.25
		default:
			score *= 0.4
		}
	}

	switch {
	case fruitHits >= 3:
		score *= 1.5
	case fruitHits == 2:
		score *= 1.35
	default:
		score *= 1.2
	}
	return min(score, 1.0)
}

func applyFlower(score float64, boostHits, conflictHits int) float64 {
	if boostHits == 0 {
		if conflictHits > 0 {
			return 0
		}
		return score * flowerNoisePenalty
	}

	if conflictHits > 0 {
		switch {
		case conflictHits >= 3:
			score *= 0.2
		case conflictHits == 2:
			score *= 0.3
		default:
			score *= 0.45
		}
	}

	switch {
	case boostHits >= 3:
		score *= 1.4
	case boostHits == 2:
		score *= 1.3
	default:
		score *= 1.15
	}
	return min(score, 1.0)
}

// similarityFloor steeply penalizes items whose raw text similarity was
// below the minimum, regardless of prior boosts.
func similarityFloor(score float64, it *ScoredItem, _ *Context) float64 {
	if it.TextSim < minTextSimilarity {
		return score * lowSimilarityPenalty
	}
	return score
}

// countHits counts how many keywords from the list occur in content.
func countHits(content string, kws []string) int {
	hits := 0
	for _, kw := range kws {
		if strings.Contains(content, kw) {
			hits++
		}
	}
	return hits
}
