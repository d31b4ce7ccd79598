package tagmatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semrank/semrank/ai/mock"
	"github.com/semrank/semrank/core"
)

func tagItems() []core.CandidateItem {
	return []core.CandidateItem{
		{ID: "cook", Title: "Cooking Basics", Text: "a cooking tutorial for beginners"},
		{ID: "bake", Title: "Baking Bread", Text: "sourdough baking at home"},
		{ID: "game", Title: "Speedrun", Text: "gameplay walkthrough"},
	}
}

func TestMatchValidation(t *testing.T) {
	m := NewMatcher()
	ctx := context.Background()

	t.Run("no tags", func(t *testing.T) {
		_, _, err := m.Match(ctx, nil, tagItems(), 0)
		assert.ErrorIs(t, err, ErrNoTags)
	})

	t.Run("blank tags", func(t *testing.T) {
		_, _, err := m.Match(ctx, []string{"  ", ""}, tagItems(), 0)
		assert.ErrorIs(t, err, ErrNoTags)
	})

	t.Run("no items", func(t *testing.T) {
		_, _, err := m.Match(ctx, []string{"cooking"}, nil, 0)
		assert.ErrorIs(t, err, ErrNoItems)
	})
}

func TestMatchExactSubstring(t *testing.T) {
	m := NewMatcher()

	matches, analyzed, err := m.Match(context.Background(), []string{"cooking"}, tagItems(), DefaultMinScore)
	require.NoError(t, err)
	assert.Equal(t, 3, analyzed)
	require.Len(t, matches, 1)

	assert.Equal(t, "cook", matches[0].ID)
	assert.Equal(t, 90.0, matches[0].Score)
	assert.Equal(t, 90.0, matches[0].TextScore)
	assert.Equal(t, []string{"cooking"}, matches[0].MatchedTags)
	assert.Nil(t, matches[0].ImageScore)
}

func TestMatchCaseInsensitive(t *testing.T) {
	m := NewMatcher()

	matches, _, err := m.Match(context.Background(), []string{"COOKING"}, tagItems(), DefaultMinScore)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "cook", matches[0].ID)
}

func TestMatchTokenOverlapFallback(t *testing.T) {
	m := NewMatcher()

	items := []core.CandidateItem{
		{ID: "perm", Title: "", Text: "recipe apple fresh"},
	}
	// Not a substring of the item text, but the token sets are equal.
	matches, _, err := m.Match(context.Background(), []string{"fresh apple recipe"}, items, DefaultMinScore)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 100.0, matches[0].Score)
	assert.Equal(t, []string{"fresh apple recipe"}, matches[0].MatchedTags)
}

func TestMatchMinScoreHundredIsEmpty(t *testing.T) {
	m := NewMatcher()

	matches, analyzed, err := m.Match(context.Background(), []string{"cooking"}, tagItems(), 100)
	require.NoError(t, err)
	assert.Equal(t, 3, analyzed)
	assert.Empty(t, matches)
}

func TestMatchMinScoreZeroKeepsAll(t *testing.T) {
	m := NewMatcher()

	matches, _, err := m.Match(context.Background(), []string{"cooking"}, tagItems(), 0)
	require.NoError(t, err)
	// Zero is a real cutoff, not a request for the default: even items
	// with no overlap at all clear it.
	assert.Len(t, matches, 3)
}

func TestMatchSkipsInvalidItems(t *testing.T) {
	m := NewMatcher()

	items := append(tagItems(), core.CandidateItem{ID: "blank", Text: "   "})
	_, analyzed, err := m.Match(context.Background(), []string{"cooking"}, items, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, analyzed)
}

func TestMatchSortsDescending(t *testing.T) {
	m := NewMatcher()

	items := []core.CandidateItem{
		{ID: "partial", Text: "cooking with gas"},
		{ID: "exactset", Text: "home cooking"},
	}
	matches, _, err := m.Match(context.Background(), []string{"home cooking"}, items, 20)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "exactset", matches[0].ID)
	assert.GreaterOrEqual(t, matches[0].Score, matches[1].Score)
}

func TestMatchSemanticWithEmbedder(t *testing.T) {
	emb := mock.NewMockEmbedder()
	emb.EmbedTextFunc = func(_ context.Context, _ string) ([]float32, error) {
		return []float32{1, 0, 0}, nil
	}
	m := NewMatcher(WithTextEmbedder(emb))

	items := []core.CandidateItem{{ID: "any", Text: "totally unrelated words"}}
	matches, _, err := m.Match(context.Background(), []string{"gardening"}, items, DefaultMinScore)
	require.NoError(t, err)
	require.Len(t, matches, 1)

	// Identical vectors: full semantic similarity for a non-substring tag.
	assert.Equal(t, 100.0, matches[0].Score)
	assert.Equal(t, []string{"gardening"}, matches[0].MatchedTags)
}

func TestMatchBelowThresholdContributesNothing(t *testing.T) {
	emb := mock.NewMockEmbedder()
	emb.EmbedTextFunc = func(_ context.Context, text string) ([]float32, error) {
		switch text {
		case "gardening":
			return []float32{1, 0, 0}, nil
		case "greenhouse tips":
			return []float32{0.3, 0, 0.9539392}, nil
		default:
			return []float32{0, 1, 0}, nil
		}
	}
	m := NewMatcher(WithTextEmbedder(emb))

	items := []core.CandidateItem{{ID: "tips", Text: "greenhouse tips"}}
	// "gardening" lands at similarity 0.3, under the match threshold,
	// so it must not feed the item's text score. The second tag and the
	// joined string are orthogonal to the item.
	matches, analyzed, err := m.Match(context.Background(), []string{"gardening", "weather"}, items, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, analyzed)
	assert.Empty(t, matches)
}
