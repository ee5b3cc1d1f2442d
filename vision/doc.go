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


// Package vision matches photographed bottles against catalogue images.
//
// Embeddings come from an external image-embedding provider behind the
// ImageEmbedder interface (see the hf subpackage for the Hugging Face
// inference client and visiontest for a deterministic test double). The
// Matcher fans out candidate embedding fetches on a worker pool, tolerates
// individual fetch failures, and accepts a match only above a fixed cosine
// similarity threshold.
package vision
