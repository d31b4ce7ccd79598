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


package feedback

import "errors"

var (
	// ErrInsufficientSamples is returned when fewer than MinSamples
	// usable records are submitted. The existing model is retained.
	ErrInsufficientSamples = errors.New("not enough feedback samples to train")

	// ErrSingleLabel is returned when all samples carry the same label.
	// The existing model is retained.
	ErrSingleLabel = errors.New("feedback samples must include both labels")
)
