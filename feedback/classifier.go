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


// Package feedback trains a binary text classifier from caller-supplied
// "up"/"down" examples and exposes a negative-probability predictor to
// the scoring pipeline. The process-wide model is replaced wholesale on
// each successful retrain; predictions before the first successful
// training return probability zero.
package feedback

import (
	"log/slog"
	"sort"
	"sync/atomic"

	"github.com/semrank/semrank/core"
	"gonum.org/v1/gonum/mat"
)

const (
	// MinSamples is the training floor: below it a submission is a no-op.
	MinSamples = 10

	// topNegativeCount is how many negative-indicative features are
	// extracted per model for observability.
	topNegativeCount = 10

	learningRate = 0.5
	epochs       = 300
	l2Penalty    = 1e-4
)

// Classifier holds the process-wide negative-content model behind an
// atomic pointer, so training swaps a complete snapshot and concurrent
// predictions never observe a half-updated model.
type Classifier struct {
	model  atomic.Pointer[Model]
	logger *slog.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// NewClassifier creates an untrained classifier.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		logger: slog.Default().With("component", "feedback-classifier"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Train fits a new model from the records and replaces the current one
// atomically. It requires at least MinSamples valid records spanning
// both labels; otherwise it returns an error and leaves any existing
// model untouched.
func (c *Classifier) Train(records []core.FeedbackRecord) error {
	texts := make([]string, 0, len(records))
	labels := make([]float64, 0, len(records))
	ups, downs := 0, 0

	for i := range records {
		if err := core.ValidateFeedbackRecord(&records[i]); err != nil {
			c.logger.Debug("skipping malformed feedback record", "err", err)
			continue
		}
		texts = append(texts, records[i].Text())
		if records[i].Label == core.LabelUp {
			labels = append(labels, 1)
			ups++
		} else {
			labels = append(labels, 0)
			downs++
		}
	}

	if len(texts) < MinSamples {
		c.logger.Info("feedback training skipped", "samples", len(texts), "required", MinSamples)
		return ErrInsufficientSamples
	}
	if ups == 0 || downs == 0 {
		c.logger.Info("feedback training skipped, single label only", "up", ups, "down", downs)
		return ErrSingleLabel
	}

	vectorizer := fitVectorizer(texts)
	weights, bias := fit(vectorizer, texts, labels)

	model := &Model{
		vectorizer:    vectorizer,
		weights:       weights,
		bias:          bias,
		negativeTerms: extractNegativeTerms(vectorizer, weights),
		samples:       len(texts),
	}
	c.model.Store(model)

	c.logger.Info("feedback model trained",
		"samples", len(texts), "up", ups, "down", downs,
		"features", vectorizer.Dimension())
	return nil
}

// PredictNegative returns the probability that text is negative
// content. It returns 0 when no model has been trained yet.
func (c *Classifier) PredictNegative(text string) float64 {
	model := c.model.Load()
	if model == nil {
		return 0
	}
	return model.PredictNegative(text)
}

// LearnedKeywords returns the current model's most negative-indicative
// features, or nil when no model is trained.
func (c *Classifier) LearnedKeywords() []string {
	model := c.model.Load()
	if model == nil {
		return nil
	}
	return model.NegativeTerms()
}

// HasModel reports whether a trained model is available.
func (c *Classifier) HasModel() bool {
	return c.model.Load() != nil
}

// fit runs batch gradient descent for L2-regularized logistic
// regression over the document-term matrix.
func fit(vectorizer *Vectorizer, texts []string, labels []float64) ([]float64, float64) {
	n := len(texts)
	d := vectorizer.Dimension()

	X := mat.NewDense(n, d, nil)
	for i, text := range texts {
		X.SetRow(i, vectorizer.Transform(text))
	}
	y := mat.NewVecDense(n, labels)

	w := mat.NewVecDense(d, nil)
	bias := 0.0

	z := mat.NewVecDense(n, nil)
	resid := mat.NewVecDense(n, nil)
	grad := mat.NewVecDense(d, nil)

	for epoch := 0; epoch < epochs; epoch++ {
		z.MulVec(X, w)

		biasGrad := 0.0
		for i := 0; i < n; i++ {
			p := sigmoid(z.AtVec(i) + bias)
			r := p - y.AtVec(i)
			resid.SetVec(i, r)
			biasGrad += r
		}

		grad.MulVec(X.T(), resid)
		w.AddScaledVec(w, -learningRate/float64(n), grad)
		w.AddScaledVec(w, -learningRate*l2Penalty, w)
		bias -= learningRate * biasGrad / float64(n)
	}

	weights := make([]float64, d)
	for i := 0; i < d; i++ {
		weights[i] = w.AtVec(i)
	}
	return weights, bias
}

// extractNegativeTerms returns the features with the most negative
// weights, i.e. the strongest indicators of "down" feedback.
func extractNegativeTerms(vectorizer *Vectorizer, weights []float64) []string {
	cols := make([]int, len(weights))
	for i := range cols {
		cols[i] = i
	}
	sort.Slice(cols, func(i, j int) bool {
		return weights[cols[i]] < weights[cols[j]]
	})

	terms := make([]string, 0, topNegativeCount)
	for _, col := range cols {
		if len(terms) == topNegativeCount || weights[col] >= 0 {
			break
		}
		terms = append(terms, vectorizer.Term(col))
	}
	return terms
}
