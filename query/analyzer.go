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


// Package query provides query-side analysis for the ranking pipeline:
// expansion of a query into semantically related variants, and
// rule-based intent detection.
package query

import (
	"strings"

	"github.com/semrank/semrank/core"
	"github.com/semrank/semrank/keywords"
)

// Analyzer expands queries and detects their intent from static keyword
// tables. It is immutable after construction and safe for concurrent use.
type Analyzer struct {
	tables *keywords.Tables
}

// NewAnalyzer creates an analyzer over the given tables.
func NewAnalyzer(tables *keywords.Tables) *Analyzer {
	if tables == nil {
		tables = keywords.DefaultTables()
	}
	return &Analyzer{tables: tables}
}

// Expand returns the query's expansion variants. The first element is
// always the original query; known queries (lowercased, trimmed) append
// their fixed variants in table order.
func (a *Analyzer) Expand(query string) []string {
	variants := []string{query}

	key := strings.ToLower(strings.TrimSpace(query))
	extra, ok := a.tables.Expansion[key]
	if !ok {
		return variants
	}
	return append(variants, extra...)
}

// DetectIntent classifies the query by counting intent keyword
// occurrences. The highest count wins, ties break by table declaration
// order, and a query with no matches is factual.
func (a *Analyzer) DetectIntent(query string) core.Intent {
	q := strings.ToLower(query)

	best := core.IntentFactual
	bestCount := 0
	for _, ik := range a.tables.Intents {
		count := 0
		for _, kw := range ik.Keywords {
			count += strings.Count(q, kw)
		}
		if count > bestCount {
			bestCount = count
			best = core.Intent(ik.Intent)
		}
	}
	return best
}
