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

package dataset

import "errors"

var (
	// ErrInvalidFormat means the dataset document is neither a record array
	// nor an object carrying a fragrances array.
	ErrInvalidFormat = errors.New("invalid dataset format")
	// ErrEmptyInput means the source had no content to convert.
	ErrEmptyInput = errors.New("empty input")
	// ErrSourceRequired means a store was constructed without a source.
	ErrSourceRequired = errors.New("a dataset source is required")
)
