package rank

import (
	"strings"

	"github.com/semrank/semrank/core"
	"github.com/semrank/semrank/keywords"
)

// Context is the per-request immutable bundle the adjustment stages
// read: the query, its expansion variants, the detected intent, and the
// keyword tables. It lives for exactly one request.
type Context struct {
	Query      string
	QueryLower string
	Variants   []string
	Intent     core.Intent
	Tables     *keywords.Tables
}

// NewContext builds a score context. QueryLower is trimmed and
// lowercased once here; every stage matches against it.
func NewContext(query string, variants []string, intent core.Intent, tables *keywords.Tables) *Context {
	return &Context{
		Query:      query,
		QueryLower: strings.ToLower(strings.TrimSpace(query)),
		Variants:   variants,
		Intent:     intent,
		Tables:     tables,
	}
}

// ScoredItem carries one candidate through the pipeline together with
// the precomputed signals the stages consume. Signals are computed
// before the pipeline runs so every stage stays a pure function of
// (score, item, context).
type ScoredItem struct {
	Item core.CandidateItem

	// TextSim is the raw pre-fusion text similarity, consumed by the
	// similarity floor stage and reported as text_score.
	TextSim float64

	// ImageScore is the rescaled thumbnail similarity in [0,1], nil when
	// the item carried no usable image signal.
	ImageScore *float64

	// VisualScore is the average cross-modal match of the thumbnail
	// against its expected visual category phrases, nil when not
	// applicable (no image, no category, fetch failure).
	VisualScore *float64

	// NegProb is the learned classifier's negative probability for the
	// item profile, 0 when no model is trained.
	NegProb float64

	// MaxNegSim and MaxPosSim are the maximum similarities between the
	// item profile and the request's negative/positive feedback examples.
	MaxNegSim float64
	MaxPosSim float64

	// FinalScore is the fused and adjusted score after the pipeline.
	FinalScore float64

	profile      string // lowercased title+description
	content      string // lowercased title+description+text
	metadata     string // lowercased free-form metadata
	hardFiltered bool
}

func newScoredItem(item core.CandidateItem) *ScoredItem {
	profile := strings.ToLower(item.Profile())
	return &ScoredItem{
		Item:     item,
		profile:  profile,
		content:  strings.TrimSpace(profile + " " + strings.ToLower(item.Text)),
		metadata: strings.ToLower(item.Metadata),
	}
}

// HardFiltered reports whether the hard content filter zeroed the item.
func (s *ScoredItem) HardFiltered() bool {
	return s.hardFiltered
}
