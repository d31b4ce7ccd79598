package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semrank/semrank/feedback"
	"github.com/semrank/semrank/rank"
	"github.com/semrank/semrank/tagmatch"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	classifier := feedback.NewClassifier()
	ranker, err := rank.NewRanker(nil, classifier)
	require.NoError(t, err)
	t.Cleanup(ranker.Release)

	s, err := New(ranker, tagmatch.NewMatcher(),
		WithClassifier(classifier),
		WithModelName("all-mpnet-base-v2"))
	require.NoError(t, err)
	return s
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := testServer(t)
	w := doJSON(t, s, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "all-mpnet-base-v2", resp["model"])
}

func TestSearch(t *testing.T) {
	s := testServer(t)

	t.Run("missing query", func(t *testing.T) {
		w := doJSON(t, s, http.MethodPost, "/search", map[string]any{
			"query": " ",
			"items": []map[string]string{{"id": "1", "text": "fresh apple pie"}},
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Missing query or items"}`, w.Body.String())
	})

	t.Run("missing items", func(t *testing.T) {
		w := doJSON(t, s, http.MethodPost, "/search", map[string]any{"query": "apple"})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Missing query or items"}`, w.Body.String())
	})

	t.Run("no valid text items", func(t *testing.T) {
		w := doJSON(t, s, http.MethodPost, "/search", map[string]any{
			"query": "apple",
			"items": []map[string]string{{"id": "1", "text": "  "}},
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"No valid text items"}`, w.Body.String())
	})

	t.Run("request feedback penalizes similar items", func(t *testing.T) {
		body := map[string]any{
			"query": "apple",
			"items": []map[string]string{
				{"id": "pie", "title": "Apple Pie", "text": "fresh apple pie recipe"},
			},
		}
		w := doJSON(t, s, http.MethodPost, "/search", body)
		require.Equal(t, http.StatusOK, w.Code)
		var baseline searchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &baseline))

		body["feedback"] = map[string]any{
			"negative": []map[string]string{{"title": "Apple Pie"}},
		}
		w = doJSON(t, s, http.MethodPost, "/search", body)
		require.Equal(t, http.StatusOK, w.Code)
		var penalized searchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &penalized))

		require.Len(t, baseline.Ranked, 1)
		require.Len(t, penalized.Ranked, 1)
		assert.Less(t, penalized.Ranked[0].Score, baseline.Ranked[0].Score)
	})

	t.Run("ranked response", func(t *testing.T) {
		w := doJSON(t, s, http.MethodPost, "/search", map[string]any{
			"query": "apple",
			"items": []map[string]string{
				{"id": "pie", "title": "Apple Pie", "text": "fresh apple pie recipe"},
				{"id": "keynote", "title": "Keynote", "text": "tim cook keynote apple event"},
			},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Ranked []struct {
				ID    string  `json:"id"`
				Score float64 `json:"score"`
			} `json:"ranked"`
			QueryIntent string `json:"query_intent"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Ranked, 2)
		assert.Equal(t, "factual", resp.QueryIntent)
		assert.Equal(t, "pie", resp.Ranked[0].ID)
		assert.Equal(t, 0.0, resp.Ranked[1].Score)
	})
}

func TestMatchTags(t *testing.T) {
	s := testServer(t)

	t.Run("missing tags", func(t *testing.T) {
		w := doJSON(t, s, http.MethodPost, "/match_tags", map[string]any{
			"videos": []map[string]string{{"id": "1", "text": "cooking tutorial"}},
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Missing tags or videos"}`, w.Body.String())
	})

	t.Run("missing videos", func(t *testing.T) {
		w := doJSON(t, s, http.MethodPost, "/match_tags", map[string]any{"tags": []string{"cooking"}})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Missing tags or videos"}`, w.Body.String())
	})

	t.Run("matches", func(t *testing.T) {
		w := doJSON(t, s, http.MethodPost, "/match_tags", map[string]any{
			"tags": []string{"cooking"},
			"videos": []map[string]string{
				{"id": "1", "text": "a cooking tutorial"},
				{"id": "2", "text": "gameplay walkthrough"},
			},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Matches       []struct{ ID string } `json:"matches"`
			TotalAnalyzed int                   `json:"total_analyzed"`
			TotalMatched  int                   `json:"total_matched"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.TotalAnalyzed)
		assert.Equal(t, 1, resp.TotalMatched)
		require.Len(t, resp.Matches, 1)
	})

	t.Run("min score one hundred filters all", func(t *testing.T) {
		w := doJSON(t, s, http.MethodPost, "/match_tags", map[string]any{
			"tags":     []string{"cooking"},
			"minScore": 100,
			"videos": []map[string]string{
				{"id": "1", "text": "a cooking tutorial"},
			},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp matchTagsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 0, resp.TotalMatched)
		assert.Empty(t, resp.Matches)
	})

	t.Run("min score zero keeps all", func(t *testing.T) {
		// An explicit 0 is a valid cutoff, distinct from leaving the
		// field out and getting the default.
		w := doJSON(t, s, http.MethodPost, "/match_tags", map[string]any{
			"tags":     []string{"cooking"},
			"minScore": 0,
			"videos": []map[string]string{
				{"id": "1", "text": "a cooking tutorial"},
				{"id": "2", "text": "gameplay walkthrough"},
			},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp matchTagsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.TotalMatched)
	})
}

func TestFeedback(t *testing.T) {
	s := testServer(t)

	t.Run("missing data", func(t *testing.T) {
		w := doJSON(t, s, http.MethodPost, "/feedback", map[string]any{})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Missing feedback_data"}`, w.Body.String())
	})

	t.Run("too few samples keeps no model", func(t *testing.T) {
		w := doJSON(t, s, http.MethodPost, "/feedback", map[string]any{
			"feedback_data": []map[string]string{
				{"title": "Good cooking video", "label": "up"},
			},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp feedbackResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, 1, resp.Samples)
		assert.Empty(t, resp.LearnedKeywords)
	})

	t.Run("trains on the batch", func(t *testing.T) {
		var records []map[string]string
		for i := 0; i < 6; i++ {
			records = append(records, map[string]string{
				"title": fmt.Sprintf("great cooking recipe guide %d", i), "label": "up",
			})
			records = append(records, map[string]string{
				"title": fmt.Sprintf("loud clickbait spam prank %d", i), "label": "down",
			})
		}
		w := doJSON(t, s, http.MethodPost, "/feedback", map[string]any{"feedback_data": records})
		require.Equal(t, http.StatusOK, w.Code)

		var resp feedbackResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, 12, resp.Samples)
		assert.NotEmpty(t, resp.LearnedKeywords)
	})
}

func TestFeedbackBatchesNotRetained(t *testing.T) {
	s := testServer(t)

	batch := func(n int) []map[string]string {
		var records []map[string]string
		for i := 0; i < n/2; i++ {
			records = append(records, map[string]string{
				"title": fmt.Sprintf("great cooking recipe guide %d", i), "label": "up",
			})
			records = append(records, map[string]string{
				"title": fmt.Sprintf("loud clickbait spam prank %d", i), "label": "down",
			})
		}
		return records
	}

	// Two undersized submissions must each no-op on their own. If
	// records carried over between calls the second one would reach
	// the training floor and learn keywords.
	for i := 0; i < 2; i++ {
		w := doJSON(t, s, http.MethodPost, "/feedback", map[string]any{"feedback_data": batch(6)})
		require.Equal(t, http.StatusOK, w.Code)

		var resp feedbackResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 6, resp.Samples)
		assert.Empty(t, resp.LearnedKeywords)
	}
}

func TestFeedbackDoesNotLeakIntoSearch(t *testing.T) {
	s := testServer(t)

	search := func() searchResponse {
		w := doJSON(t, s, http.MethodPost, "/search", map[string]any{
			"query": "apple",
			"items": []map[string]string{
				{"id": "pie", "title": "Apple Pie", "text": "fresh apple pie recipe"},
			},
		})
		require.Equal(t, http.StatusOK, w.Code)
		var resp searchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Ranked, 1)
		return resp
	}

	before := search()

	w := doJSON(t, s, http.MethodPost, "/feedback", map[string]any{
		"feedback_data": []map[string]string{
			{"title": "Apple Pie", "label": "down"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	// The batch was too small to train a model, and the records are not
	// kept as history, so a search without its own feedback field
	// scores exactly as before.
	after := search()
	assert.Equal(t, before.Ranked[0].Score, after.Ranked[0].Score)
}

func TestCORS(t *testing.T) {
	s := testServer(t)

	t.Run("echoes origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://example.test")
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)

		assert.Equal(t, "http://example.test", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Equal(t, "Origin", w.Header().Get("Vary"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/search", nil)
		req.Header.Set("Origin", "http://example.test")
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	s := testServer(t)

	doJSON(t, s, http.MethodPost, "/search", map[string]any{
		"query": "apple",
		"items": []map[string]string{{"id": "1", "text": "fresh apple pie"}},
	})

	w := doJSON(t, s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "semrank_searches_total 1")
}
