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

package rank

import "errors"

var (
	// ErrEmptyQuery is returned when the query is empty after trimming.
	ErrEmptyQuery = errors.New("query required")

	// ErrNoItems is returned when no candidate items are supplied.
	ErrNoItems = errors.New("items required")

	// ErrNoValidItems is returned when every item's text is empty after
	// trimming.
	ErrNoValidItems = errors.New("no valid text items")

	// ErrInvalidWeights is returned when fusion weights do not sum to 1.
	ErrInvalidWeights = errors.New("text and image weights must sum to 1")
)
