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


// Package ai defines the external embedding capabilities the ranking
// pipeline depends on.
//
// Two capabilities are modeled:
//
//   - Embedder: maps text to a fixed-length normalized vector, used for
//     query/item text similarity.
//   - ImageEmbedder: maps text and decoded images into one shared vector
//     space (CLIP-style), used for thumbnail similarity and cross-modal
//     validation.
//
// Either capability may be absent at startup. The pipeline selects its
// degraded behavior once, at construction time: no Embedder means the
// token-overlap fallback scorer, no ImageEmbedder means no image signal.
// Scattered nil checks at call sites are deliberately avoided.
//
// Implementation packages:
//
//   - ai/openai: text embeddings via OpenAI-compatible APIs
//   - ai/clip: cross-modal embeddings via a CLIP-style HTTP service
//   - ai/mock: deterministic test doubles
//
// Production constructors return interface types to keep callers
// decoupled from the concrete clients; mock constructors return concrete
// types so tests can inject behavior and assert call counts.
package ai
