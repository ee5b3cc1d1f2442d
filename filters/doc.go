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


// Package filters narrows fragrance result sets by structured attributes:
// price, brand, accords, notes, wear context, origin, concentration, year
// and rating. Every active filter category must pass (logical AND); within
// the wear-context category, any requested context suffices (logical OR).
package filters
