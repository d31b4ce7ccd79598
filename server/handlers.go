package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/semrank/semrank/core"
	"github.com/semrank/semrank/feedback"
	"github.com/semrank/semrank/rank"
	"github.com/semrank/semrank/tagmatch"
)

type searchRequest struct {
	Query    string                `json:"query"`
	Items    []core.CandidateItem  `json:"items"`
	Feedback *core.FeedbackHistory `json:"feedback"`
}

type searchResponse struct {
	Ranked      []core.RankedResult `json:"ranked"`
	QueryIntent core.Intent         `json:"query_intent"`
}

type matchTagsRequest struct {
	Tags   []string             `json:"tags"`
	Videos []core.CandidateItem `json:"videos"`
	// MinScore is a pointer so an explicit 0 survives binding; only an
	// absent field falls back to the default cutoff.
	MinScore *float64 `json:"minScore"`
}

type matchTagsResponse struct {
	Matches       []core.TagMatch `json:"matches"`
	TotalAnalyzed int             `json:"total_analyzed"`
	TotalMatched  int             `json:"total_matched"`
}

type feedbackRequest struct {
	FeedbackData []core.FeedbackRecord `json:"feedback_data"`
}

type feedbackResponse struct {
	Status          string   `json:"status"`
	Samples         int      `json:"samples"`
	LearnedKeywords []string `json:"learned_keywords"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "model": s.modelName})
}

func (s *Server) handleSearch(c *gin.Context) {
	start := time.Now()

	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.metrics.IncSearchErrors()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query or items"})
		return
	}
	if strings.TrimSpace(req.Query) == "" || len(req.Items) == 0 {
		s.metrics.IncSearchErrors()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query or items"})
		return
	}

	// Feedback history comes from the request body only. Feedback
	// batches train the classifier but are never replayed into search.
	results, intent, err := s.ranker.Rank(c.Request.Context(), req.Query, req.Items, req.Feedback)
	if err != nil {
		s.metrics.IncSearchErrors()
		switch {
		case errors.Is(err, rank.ErrNoValidItems):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No valid text items"})
		case errors.Is(err, rank.ErrEmptyQuery), errors.Is(err, rank.ErrNoItems):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query or items"})
		default:
			s.logger.Error("search failed", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		}
		return
	}

	s.metrics.IncSearches()
	s.metrics.ObserveSearchDuration(time.Since(start).Seconds())
	c.JSON(http.StatusOK, searchResponse{Ranked: results, QueryIntent: intent})
}

func (s *Server) handleMatchTags(c *gin.Context) {
	var req matchTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing tags or videos"})
		return
	}
	if len(req.Tags) == 0 || len(req.Videos) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing tags or videos"})
		return
	}

	minScore := tagmatch.DefaultMinScore
	if req.MinScore != nil {
		minScore = *req.MinScore
	}

	matches, analyzed, err := s.matcher.Match(c.Request.Context(), req.Tags, req.Videos, minScore)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing tags or videos"})
		return
	}

	s.metrics.IncTagMatches()
	c.JSON(http.StatusOK, matchTagsResponse{
		Matches:       matches,
		TotalAnalyzed: analyzed,
		TotalMatched:  len(matches),
	})
}

func (s *Server) handleFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing feedback_data"})
		return
	}
	if len(req.FeedbackData) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing feedback_data"})
		return
	}

	accepted := 0
	for i := range req.FeedbackData {
		if core.ValidateFeedbackRecord(&req.FeedbackData[i]) == nil {
			accepted++
		}
	}
	s.metrics.IncFeedbackBatches()

	// Each submission trains on its own batch alone. Records are not
	// retained; only the model that comes out of training persists.
	var learned []string
	if s.classifier != nil {
		err := s.classifier.Train(req.FeedbackData)
		switch {
		case err == nil:
			s.metrics.IncTrainingRuns()
		case errors.Is(err, feedback.ErrInsufficientSamples), errors.Is(err, feedback.ErrSingleLabel):
			// Not enough signal in this batch; any previous model stays active.
		default:
			s.logger.Warn("classifier training failed, keeping previous model", "err", err)
		}
		learned = s.classifier.LearnedKeywords()
	}
	if learned == nil {
		learned = []string{}
	}

	c.JSON(http.StatusOK, feedbackResponse{
		Status:          "ok",
		Samples:         accepted,
		LearnedKeywords: learned,
	})
}
