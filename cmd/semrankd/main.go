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

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/semrank/semrank/ai"
	"github.com/semrank/semrank/ai/clip"
	"github.com/semrank/semrank/ai/openai"
	"github.com/semrank/semrank/feedback"
	"github.com/semrank/semrank/keywords"
	"github.com/semrank/semrank/rank"
	"github.com/semrank/semrank/server"
	"github.com/semrank/semrank/tagmatch"
)

func main() {
	app := &cli.App{
		Name:  "semrankd",
		Usage: "Semantic relevance ranking service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "listen",
				Aliases: []string{"a"},
				Usage:   "HTTP listen address",
				Value:   ":8080",
			},
			&cli.StringFlag{
				Name:    "embedding-host",
				Usage:   "Text embedding service host URL",
				Value:   "http://localhost:11434/v1",
				EnvVars: []string{"SEMRANK_EMBEDDING_HOST"},
			},
			&cli.StringFlag{
				Name:    "embedding-model",
				Usage:   "Text embedding model name",
				Value:   "all-mpnet-base-v2",
				EnvVars: []string{"SEMRANK_EMBEDDING_MODEL"},
			},
			&cli.StringFlag{
				Name:    "image-host",
				Usage:   "Cross-modal embedding service host URL (empty disables image scoring)",
				EnvVars: []string{"SEMRANK_IMAGE_HOST"},
			},
			&cli.StringFlag{
				Name:    "image-model",
				Usage:   "Cross-modal embedding model name",
				Value:   "clip-ViT-B-32",
				EnvVars: []string{"SEMRANK_IMAGE_MODEL"},
			},
			&cli.Float64Flag{
				Name:    "text-weight",
				Usage:   "Weight of the text similarity signal (must sum to 1 with image-weight)",
				Value:   0.35,
				EnvVars: []string{"SEMRANK_TEXT_WEIGHT"},
			},
			&cli.Float64Flag{
				Name:    "image-weight",
				Usage:   "Weight of the image similarity signal",
				Value:   0.65,
				EnvVars: []string{"SEMRANK_IMAGE_WEIGHT"},
			},
			&cli.StringFlag{
				Name:    "keywords-file",
				Usage:   "YAML keyword calibration file overriding built-in tables",
				EnvVars: []string{"SEMRANK_KEYWORDS_FILE"},
			},
			&cli.IntFlag{
				Name:  "pool-size",
				Usage: "Worker pool size for per-item scoring (0 uses CPU count)",
			},
			&cli.DurationFlag{
				Name:  "fetch-timeout",
				Usage: "Thumbnail fetch timeout",
				Value: 5 * time.Second,
			},
			&cli.BoolFlag{
				Name:    "fallback",
				Usage:   "Disable embedding services and score with token overlap only",
				EnvVars: []string{"SEMRANK_FALLBACK"},
			},
		},
		Before: setupLogger,
		Action: serveCommand,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand(c *cli.Context) error {
	tables, err := keywords.Load(c.String("keywords-file"))
	if err != nil {
		slog.Warn("keyword calibration failed, using defaults", "err", err)
	}

	classifier := feedback.NewClassifier()

	rankerOpts := []rank.Option{}
	matcherOpts := []tagmatch.Option{}

	cfg := rank.DefaultConfig()
	cfg.TextWeight = c.Float64("text-weight")
	cfg.ImageWeight = c.Float64("image-weight")
	if poolSize := c.Int("pool-size"); poolSize > 0 {
		cfg.PoolSize = poolSize
	}
	rankerOpts = append(rankerOpts, rank.WithConfig(cfg))

	modelName := "fallback"
	if !c.Bool("fallback") {
		aiConfig := ai.NewConfig(
			ai.WithEmbeddingHost(c.String("embedding-host")),
			ai.WithEmbeddingModel(c.String("embedding-model")),
			ai.WithImageHost(c.String("image-host")),
			ai.WithImageModel(c.String("image-model")),
			ai.WithFetchTimeout(c.Duration("fetch-timeout")),
		)
		if err := aiConfig.Validate(); err != nil {
			return fmt.Errorf("invalid embedding configuration: %w", err)
		}

		embedder, err := openai.NewEmbedder(aiConfig)
		if err != nil {
			return fmt.Errorf("failed to create embedder: %w", err)
		}
		rankerOpts = append(rankerOpts, rank.WithTextEmbedder(embedder))
		matcherOpts = append(matcherOpts, tagmatch.WithTextEmbedder(embedder))
		modelName = c.String("embedding-model")

		if aiConfig.ValidateImage() == nil {
			imageEmbedder, err := clip.NewClient(aiConfig)
			if err != nil {
				return fmt.Errorf("failed to create image embedder: %w", err)
			}
			fetcher := ai.NewImageFetcher(c.Duration("fetch-timeout"))
			rankerOpts = append(rankerOpts, rank.WithImageEmbedder(imageEmbedder, fetcher))
			matcherOpts = append(matcherOpts, tagmatch.WithImageEmbedder(imageEmbedder, fetcher))
		} else {
			slog.Info("image scoring disabled, no image host configured")
		}
	} else {
		slog.Info("fallback mode, scoring with token overlap")
	}

	ranker, err := rank.NewRanker(tables, classifier, rankerOpts...)
	if err != nil {
		return fmt.Errorf("failed to create ranker: %w", err)
	}
	defer ranker.Release()

	matcherOpts = append(matcherOpts, tagmatch.WithCaches(ranker.QueryCache(), ranker.ImageCache()))
	matcher := tagmatch.NewMatcher(matcherOpts...)

	srv, err := server.New(ranker, matcher,
		server.WithClassifier(classifier),
		server.WithModelName(modelName))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx, c.String("listen"))
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
