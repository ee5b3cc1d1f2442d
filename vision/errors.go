// Copyright 2025 Olfact Labs
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


package vision

import "errors"

var (
	// ErrDimensionMismatch is returned when two embeddings of different
	// lengths are compared. This indicates a programming error, not a
	// recoverable condition.
	ErrDimensionMismatch = errors.New("embeddings must have the same length")

	// ErrEmbedderRequired is returned when an image embedder is not provided.
	ErrEmbedderRequired = errors.New("image embedder required")
)
