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

// Package server exposes the ranking service over an HTTP JSON API. It
// is a thin adapter: validation and 400 responses live here, scoring
// semantics live in rank, tagmatch and feedback.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/semrank/semrank/feedback"
	"github.com/semrank/semrank/metrics"
	"github.com/semrank/semrank/rank"
	"github.com/semrank/semrank/tagmatch"
)

// Server wires the ranker, tag matcher and feedback loop to HTTP
// endpoints.
type Server struct {
	ranker     *rank.Ranker
	matcher    *tagmatch.Matcher
	classifier *feedback.Classifier
	metrics    *metrics.Metrics
	registry   *prometheus.Registry
	logger     *slog.Logger
	modelName  string
	engine     *gin.Engine
	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger != nil {
			s.logger = logger
		}
		return nil
	}
}

// WithModelName sets the embedding model name reported by /health.
func WithModelName(name string) Option {
	return func(s *Server) error {
		s.modelName = name
		return nil
	}
}

// WithClassifier sets the classifier retrained by /feedback. Without
// one feedback batches are validated and acknowledged but never
// trained on.
func WithClassifier(classifier *feedback.Classifier) Option {
	return func(s *Server) error {
		s.classifier = classifier
		return nil
	}
}

// New creates a server around the given ranker and tag matcher.
func New(ranker *rank.Ranker, matcher *tagmatch.Matcher, opts ...Option) (*Server, error) {
	s := &Server{
		ranker:    ranker,
		matcher:   matcher,
		metrics:   metrics.NewMetrics(),
		registry:  prometheus.NewRegistry(),
		logger:    slog.Default().With("component", "server"),
		modelName: "fallback",
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	s.metrics.ObserveCache("query", ranker.QueryCache())
	s.metrics.ObserveCache("image", ranker.ImageCache())
	if err := s.metrics.Register(s.registry); err != nil {
		return nil, err
	}

	s.engine = s.buildRouter()
	return s, nil
}

func (s *Server) buildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(s.requestLogger())
	engine.Use(corsMiddleware())

	engine.GET("/health", s.handleHealth)
	engine.POST("/search", s.handleSearch)
	engine.POST("/match_tags", s.handleMatchTags)
	engine.POST("/feedback", s.handleFeedback)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	return engine
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until the context is canceled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "model", s.modelName)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("shut down")
	return nil
}
