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

import (
	"fmt"
	"strings"
)

// ValidateItem validates a CandidateItem according to domain rules.
//
// Validation rules:
//   - Text must not be empty after trimming
//
// NOT validated:
//   - ID (opaque, caller-owned; empty is allowed)
//   - Thumbnail (an unreachable URL degrades to no image signal)
func ValidateItem(item *CandidateItem) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidItem)
	}

	if strings.TrimSpace(item.Text) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidItem, ErrEmptyText)
	}

	return nil
}

// ValidateFeedbackRecord validates a FeedbackRecord according to domain rules.
//
// Validation rules:
//   - Label must be "up" or "down"
//   - Title and Description must not both be empty
func ValidateFeedbackRecord(record *FeedbackRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidFeedbackRecord)
	}

	if record.Label != LabelUp && record.Label != LabelDown {
		return fmt.Errorf("%w: %w", ErrInvalidFeedbackRecord, ErrInvalidLabel)
	}

	if record.Text() == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFeedbackRecord, ErrEmptyText)
	}

	return nil
}
