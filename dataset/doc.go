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

// Package dataset ingests raw fragrance catalog exports. It tolerates the
// historical column names and value formats found in Kaggle-style dumps
// (aliased headers, "2024.0" years, European decimal ratings, ranked
// mainaccord columns) and exposes the converted records through a lazily
// loaded, immutable Store.
package dataset
