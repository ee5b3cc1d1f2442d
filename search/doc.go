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


// Package search provides lexical fragrance search.
//
// The Searcher scores case-insensitive substring matches over names,
// brands, notes and descriptions with fixed priorities, ranks candidates
// with a stable sort, and optionally narrows the top of the ranking through
// the filter engine. A Debouncer coalesces bursts of user-triggered
// searches so only the latest one's results are ever applied.
package search
