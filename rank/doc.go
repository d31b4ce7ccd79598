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


// Package rank implements the scoring pipeline: per-item text and image
// similarity, fusion into a base score, and an ordered sequence of
// deterministic adjustments producing a final score in [0,1].
//
// The adjustment pipeline is a fixed sequence of named pure stages over
// (score, item, context). Stage order affects the outcome and must be
// preserved: the hard content filter can zero a score that the later
// domain disambiguation would otherwise boost, and disambiguation skips
// its flower-table adjustments for hard-filtered items. That coupling
// is pinned by tests.
//
// Similarity signals degrade independently: a missing text embedder
// selects the token-overlap fallback scorer at construction time, a
// missing image embedder or failed thumbnail fetch drops the image
// signal for the affected items only.
package rank
