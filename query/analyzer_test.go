package query

import (
	"testing"

	"github.com/semrank/semrank/core"
	"github.com/semrank/semrank/keywords"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	a := NewAnalyzer(nil)

	t.Run("known query appends variants", func(t *testing.T) {
		variants := a.Expand("apple")
		require.NotEmpty(t, variants)
		assert.Equal(t, "apple", variants[0])
		assert.Greater(t, len(variants), 1)
	})

	t.Run("case and whitespace insensitive lookup", func(t *testing.T) {
		variants := a.Expand("  Apple ")
		assert.Equal(t, "  Apple ", variants[0], "original query preserved verbatim")
		assert.Greater(t, len(variants), 1)
	})

	t.Run("unknown query returns singleton", func(t *testing.T) {
		variants := a.Expand("quantum chromodynamics")
		assert.Equal(t, []string{"quantum chromodynamics"}, variants)
	})
}

func TestDetectIntent(t *testing.T) {
	a := NewAnalyzer(nil)

	tests := []struct {
		query string
		want  core.Intent
	}{
		{"how to fix a flat tire", core.IntentHowTo},
		{"iphone 15 review vs pixel", core.IntentReview},
		{"funny cat compilation", core.IntentEntertainment},
		{"what is the history of rome", core.IntentFactual},
		{"apple", core.IntentFactual}, // no matches defaults to factual
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, a.DetectIntent(tt.query))
		})
	}
}

func TestDetectIntent_TieBreaksByDeclarationOrder(t *testing.T) {
	tables := keywords.DefaultTables()
	tables.Intents = []keywords.IntentKeywords{
		{Intent: "how_to", Keywords: []string{"shared"}},
		{Intent: "review", Keywords: []string{"shared"}},
	}
	a := NewAnalyzer(tables)

	assert.Equal(t, core.IntentHowTo, a.DetectIntent("shared keyword query"))
}
