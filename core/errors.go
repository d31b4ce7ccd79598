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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidItem indicates a CandidateItem failed validation.
	ErrInvalidItem = errors.New("invalid candidate item")

	// ErrEmptyText indicates the Text field is empty after trimming.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrInvalidFeedbackRecord indicates a FeedbackRecord failed validation.
	ErrInvalidFeedbackRecord = errors.New("invalid feedback record")

	// ErrInvalidLabel indicates a feedback label other than "up" or "down".
	ErrInvalidLabel = errors.New("label must be \"up\" or \"down\"")
)
