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


// Package vibes implements mood-based fragrance search.
//
// The Engine turns a free-text query ("dark sweet for a winter evening")
// into a weight vector over a fixed set of vibe categories, scores each
// fragrance into the same space from its notes and accords via a hand-built
// taxonomy, and ranks candidates by cosine similarity. Each match carries a
// human-readable explanation of why it was chosen.
//
// Scoring is pure and deterministic; computed profiles are cached per
// fragrance for the process lifetime through an injectable ScoreCache.
package vibes
