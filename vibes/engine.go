package vibes

import (
	"log/slog"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/olfact/sillage/core"
)

// DefaultLimit is the number of matches returned when the caller does not
// specify a positive limit.
const DefaultLimit = 5

// similarityFloor is the minimum cosine similarity for a candidate to count
// as a match at all.
const similarityFloor = 0.1

// scanFactor bounds the candidate scan to limit*scanFactor records unless
// the engine runs exhaustively.
const scanFactor = 15

// descriptiveTerms classifies multi-word queries as vibe-intent when they
// carry common scent adjectives.
var descriptiveTerms = regexp.MustCompile(
	`(fresh|sweet|dark|woody|spicy|clean|warm|cool|light|strong|subtle|intense)`)

// contribution is one vibe's share of a note's meaning.
type contribution struct {
	vibe   Vibe
	weight float64
}

// Engine scores free-text mood queries against fragrances using the static
// taxonomy and cosine similarity over per-vibe weight vectors.
type Engine struct {
	cache      ScoreCache
	noteIndex  map[string][]contribution
	exhaustive bool
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithCache sets the score cache, letting tests reset state between runs.
// Default is an unbounded in-memory cache.
func WithCache(cache ScoreCache) Option {
	return func(e *Engine) error {
		if cache == nil {
			return ErrCacheRequired
		}
		e.cache = cache
		return nil
	}
}

// WithExhaustiveScan disables the bounded candidate scan and the early-exit
// ranking optimization. The default bounded scan is an approximate top-k:
// it may under-return true matches on very large datasets in exchange for
// latency. Enable exhaustive scanning when exact results matter more.
func WithExhaustiveScan(exhaustive bool) Option {
	return func(e *Engine) error {
		e.exhaustive = exhaustive
		return nil
	}
}

// NewEngine creates a vibe engine. The note-to-vibe contribution index is
// built once from the taxonomy.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		cache:     NewMemoryCache(),
		noteIndex: buildNoteIndex(),
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// buildNoteIndex precomputes the note -> vibe contributions lookup so the
// common exact-match path avoids scanning the whole taxonomy per note.
func buildNoteIndex() map[string][]contribution {
	index := make(map[string][]contribution)
	for _, vibe := range AllVibes {
		mapping := Taxonomy[vibe]
		for _, note := range mapping.Notes {
			note = strings.ToLower(note)
			index[note] = append(index[note], contribution{vibe: vibe, weight: mapping.Weight})
		}
	}
	return index
}

// ComputeScores returns the fragrance's vibe profile: scores in (0,1] sorted
// descending, with the top vibe scoring exactly 1.0, or an empty slice when
// nothing in the taxonomy matches. Results are cached by fragrance identity
// for the process lifetime.
func (e *Engine) ComputeScores(f *core.Fragrance) []core.VibeScore {
	id := f.ID()
	if scores, ok := e.cache.Get(id); ok {
		return scores
	}

	scores := e.computeScores(f)
	e.cache.Put(id, scores)
	return scores
}

func (e *Engine) computeScores(f *core.Fragrance) []core.VibeScore {
	weights := make(map[Vibe]float64, len(AllVibes))

	for _, note := range f.AllNotes() {
		if exact, ok := e.noteIndex[note]; ok {
			for _, c := range exact {
				weights[c.vibe] += c.weight
			}
			continue
		}
		// No exact hit: fall back to bidirectional substring matching
		// against every taxonomy note, at half weight.
		for _, vibe := range AllVibes {
			mapping := Taxonomy[vibe]
			for _, taxNote := range mapping.Notes {
				if strings.Contains(note, taxNote) || strings.Contains(taxNote, note) {
					weights[vibe] += mapping.Weight * 0.5
				}
			}
		}
	}

	for accord, intensity := range f.Accords {
		accord = strings.ToLower(accord)
		share := math.Min(intensity/100, 1)
		if share <= 0 {
			continue
		}
		for _, vibe := range AllVibes {
			mapping := Taxonomy[vibe]
			for _, taxAccord := range mapping.Accords {
				if strings.Contains(accord, taxAccord) || strings.Contains(taxAccord, accord) {
					weights[vibe] += mapping.Weight * share
				}
			}
		}
	}

	// Normalize by the maximum entry so the top vibe is exactly 1.0.
	var maxWeight float64
	for _, w := range weights {
		if w > maxWeight {
			maxWeight = w
		}
	}
	if maxWeight == 0 {
		return []core.VibeScore{}
	}

	scores := make([]core.VibeScore, 0, len(weights))
	for vibe, w := range weights {
		if w <= 0 {
			continue
		}
		scores = append(scores, core.VibeScore{Vibe: string(vibe), Score: w / maxWeight})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Vibe < scores[j].Vibe
	})
	return scores
}

// ParseQuery converts a free-text query into a vibe weight vector normalized
// to sum to 1. Three passes accumulate additively: vibe names literally
// present add 1.0, context phrases distribute 0.8 across their mapped vibes,
// and taxonomy note keywords add 0.5 to their vibe. A query with no vibe
// signal returns an empty map.
func (e *Engine) ParseQuery(query string) map[Vibe]float64 {
	query = strings.ToLower(strings.TrimSpace(query))
	weights := make(map[Vibe]float64)

	for _, vibe := range AllVibes {
		if strings.Contains(query, string(vibe)) {
			weights[vibe] += 1.0
		}
	}

	for phrase, mapped := range ContextMappings {
		if strings.Contains(query, phrase) {
			share := 0.8 / float64(len(mapped))
			for _, vibe := range mapped {
				weights[vibe] += share
			}
		}
	}

	for _, vibe := range AllVibes {
		for _, note := range Taxonomy[vibe].Notes {
			if strings.Contains(query, note) {
				weights[vibe] += 0.5
			}
		}
	}

	var total float64
	for _, w := range weights {
		total += w
	}
	if total == 0 {
		return map[Vibe]float64{}
	}
	for vibe := range weights {
		weights[vibe] /= total
	}
	return weights
}

// Search ranks fragrances against a free-text mood query. Results carry the
// cosine similarity, a human-readable explanation and the fragrance's top
// five vibe scores. Queries with no vibe signal yield no matches.
func (e *Engine) Search(fragrances []*core.Fragrance, query string, limit int) []core.VibeMatch {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if strings.TrimSpace(query) == "" {
		return []core.VibeMatch{}
	}

	queryVibes := e.ParseQuery(query)
	if len(queryVibes) == 0 {
		e.logger.Debug("query has no vibe signal", "query", query)
		return []core.VibeMatch{}
	}

	var queryMagnitude float64
	for _, w := range queryVibes {
		queryMagnitude += w * w
	}
	queryMagnitude = math.Sqrt(queryMagnitude)

	maxCandidates := len(fragrances)
	if !e.exhaustive && limit*scanFactor < maxCandidates {
		maxCandidates = limit * scanFactor
	}

	matches := make([]core.VibeMatch, 0, limit*3)
	for _, f := range fragrances[:maxCandidates] {
		scores := e.ComputeScores(f)

		// Fast pre-filter: a candidate must share a nonzero vibe with
		// the query before the full cosine is worth computing.
		shared := false
		for _, s := range scores {
			if s.Score > 0 && queryVibes[Vibe(s.Vibe)] > 0 {
				shared = true
				break
			}
		}
		if !shared {
			continue
		}

		similarity := sparseCosine(queryVibes, scores, queryMagnitude)
		if similarity <= similarityFloor {
			continue
		}

		top := scores
		if len(top) > 5 {
			top = top[:5]
		}
		matches = append(matches, core.VibeMatch{
			Fragrance:   f,
			Similarity:  similarity,
			Explanation: e.explain(queryVibes, scores, similarity),
			VibeScores:  top,
		})

		// Approximate top-k: once enough matches are collected and the
		// tail is already weak, further scanning rarely changes the head.
		if !e.exhaustive && len(matches) >= limit*3 && similarity < 0.3 {
			break
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// sparseCosine computes cosine similarity between the query vector and a
// fragrance profile over the vibes where the fragrance score is nonzero.
// Returns 0 when either vector has zero magnitude.
func sparseCosine(queryVibes map[Vibe]float64, scores []core.VibeScore, queryMagnitude float64) float64 {
	var dot, fragranceMagnitude float64
	for _, s := range scores {
		fragranceMagnitude += s.Score * s.Score
		if q := queryVibes[Vibe(s.Vibe)]; q > 0 {
			dot += q * s.Score
		}
	}
	fragranceMagnitude = math.Sqrt(fragranceMagnitude)
	if fragranceMagnitude == 0 || queryMagnitude == 0 {
		return 0
	}
	return dot / (queryMagnitude * fragranceMagnitude)
}

// explain builds the human-readable match reason: shared top vibes when both
// sides agree, otherwise a canned phrase for the similarity band.
func (e *Engine) explain(queryVibes map[Vibe]float64, scores []core.VibeScore, similarity float64) string {
	topQuery := topQueryVibes(queryVibes, 3)

	topFragrance := make(map[Vibe]bool, 3)
	count := 0
	for _, s := range scores {
		if s.Score <= 0.1 {
			continue
		}
		topFragrance[Vibe(s.Vibe)] = true
		count++
		if count == 3 {
			break
		}
	}

	var shared []string
	for _, vibe := range topQuery {
		if topFragrance[vibe] {
			shared = append(shared, titleCase(string(vibe)))
		}
	}
	if len(shared) > 0 {
		plural := ""
		if len(shared) > 1 {
			plural = "s"
		}
		return "Matches your " + strings.Join(shared, ", ") + " vibe" + plural
	}

	switch {
	case similarity > 0.7:
		return "Strong vibe match with complementary notes"
	case similarity > 0.5:
		return "Good vibe alignment with similar character"
	default:
		return "Partial vibe match"
	}
}

// topQueryVibes returns the query's strongest vibes (weight > 0.1) sorted by
// weight descending, name ascending on ties for determinism.
func topQueryVibes(queryVibes map[Vibe]float64, n int) []Vibe {
	type weighted struct {
		vibe   Vibe
		weight float64
	}
	candidates := make([]weighted, 0, len(queryVibes))
	for vibe, w := range queryVibes {
		if w > 0.1 {
			candidates = append(candidates, weighted{vibe: vibe, weight: w})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].weight != candidates[j].weight {
			return candidates[i].weight > candidates[j].weight
		}
		return candidates[i].vibe < candidates[j].vibe
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	result := make([]Vibe, len(candidates))
	for i, c := range candidates {
		result[i] = c.vibe
	}
	return result
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// IsVibeQuery classifies a query as vibe-intent versus name-intent. It is a
// best-effort UX heuristic, not a gate: callers can always invoke either
// search path directly.
func (e *Engine) IsVibeQuery(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	words := strings.Fields(query)

	if len(words) == 1 {
		// Single word: vibe-intent only when literally a vibe or context key.
		for _, vibe := range AllVibes {
			if string(vibe) == query {
				return true
			}
		}
		_, isContext := ContextMappings[query]
		return isContext
	}

	for _, vibe := range AllVibes {
		if strings.Contains(query, string(vibe)) {
			return true
		}
	}
	for phrase := range ContextMappings {
		if strings.Contains(query, phrase) {
			return true
		}
	}
	return descriptiveTerms.MatchString(query) || len(words) >= 3
}
