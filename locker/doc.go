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

// Package locker holds the user's saved fragrance collection. The
// collection is an insertion-ordered list deduplicated by (name, brand),
// written through to a BadgerDB-backed store as a single JSON array on
// every mutation. Missing or corrupt stored state loads as an empty
// collection.
package locker
