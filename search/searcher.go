package search

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/olfact/sillage/core"
	"github.com/olfact/sillage/filters"
)

// DefaultLimit is the number of results returned when the caller does not
// specify a positive limit.
const DefaultLimit = 20

// maxScanRecords caps how many dataset records a single search scores.
// Documented scale limit: records past the cap are invisible to bounded
// lexical search.
const maxScanRecords = 5000

// Match priorities. A name hit dominates everything else; note hits
// accumulate per matching note.
const (
	nameScore        = 100
	brandScore       = 50
	noteScore        = 10
	descriptionScore = 5
)

// Searcher performs case-insensitive token/substring search over fragrance
// names, brands, notes and descriptions.
type Searcher struct {
	exhaustive bool
	logger     *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithExhaustiveScan disables the record cap and the early scan exit. The
// default bounded scan trades completeness for latency and may under-return
// matches on datasets larger than the cap.
func WithExhaustiveScan(exhaustive bool) Option {
	return func(s *Searcher) error {
		s.exhaustive = exhaustive
		return nil
	}
}

// NewSearcher creates a lexical searcher.
func NewSearcher(opts ...Option) (*Searcher, error) {
	s := &Searcher{logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Search returns up to limit fragrances ranked by lexical score. Queries
// shorter than two characters and empty datasets yield empty results, not
// errors.
//
// When fltr is non-nil, filtering applies to a pre-ranked superset of up to
// 2xlimit candidates before the final truncation, so an active filter can
// legitimately return fewer than limit results even when more matches exist
// deeper in the dataset.
func (s *Searcher) Search(fragrances []*core.Fragrance, query string, limit int, fltr *filters.Filters) []*core.SearchResult {
	return s.SearchWithMonitor(fragrances, query, limit, fltr, nil)
}

// SearchWithMonitor is Search with observation hooks for each stage.
func (s *Searcher) SearchWithMonitor(fragrances []*core.Fragrance, query string, limit int, fltr *filters.Filters, monitor Monitor) []*core.SearchResult {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	term := strings.ToLower(strings.TrimSpace(query))
	if len(term) < 2 || len(fragrances) == 0 {
		return []*core.SearchResult{}
	}
	monitor.Start(term)

	scanLimit := len(fragrances)
	if !s.exhaustive && scanLimit > maxScanRecords {
		scanLimit = maxScanRecords
	}

	results := make([]*core.SearchResult, 0, limit*2)
	for _, f := range fragrances[:scanLimit] {
		score := s.score(f, term)
		if score == 0 {
			continue
		}
		result := &core.SearchResult{Fragrance: f, Score: score}
		results = append(results, result)
		monitor.Scored(result)

		// Once a name hit pushes the pool past 3xlimit the head of the
		// ranking is settled; scanning further only reorders the tail.
		if !s.exhaustive && score >= nameScore && len(results) >= limit*3 {
			break
		}
	}

	// Stable sort keeps first-seen dataset order on equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit*2 {
		results = results[:limit*2]
	}
	monitor.Ranked(results)

	if fltr != nil && fltr.Active() {
		candidates := make([]*core.Fragrance, len(results))
		byID := make(map[core.ID]*core.SearchResult, len(results))
		for i, r := range results {
			candidates[i] = r.Fragrance
			byID[r.Fragrance.ID()] = r
		}
		kept := filters.Apply(candidates, *fltr)
		filtered := make([]*core.SearchResult, 0, len(kept))
		for _, f := range kept {
			filtered = append(filtered, byID[f.ID()])
		}
		results = filtered
		monitor.Filtered(results)
	}

	if len(results) > limit {
		results = results[:limit]
	}
	monitor.Finish(results)
	return results
}

// score computes the lexical score of one candidate. A name match
// short-circuits the note and description passes.
func (s *Searcher) score(f *core.Fragrance, term string) int {
	if strings.Contains(strings.ToLower(f.Name), term) {
		return nameScore
	}

	score := 0
	if f.Brand != "" && strings.Contains(strings.ToLower(f.Brand), term) {
		score += brandScore
	}

	for _, note := range f.AllNotes() {
		if strings.Contains(note, term) {
			score += noteScore
		}
	}

	// Description is a cheap fallback, only consulted for weak candidates.
	if score < brandScore && f.Description != "" {
		if strings.Contains(strings.ToLower(f.Description), term) {
			score += descriptionScore
		}
	}

	return score
}

// ByBrand returns up to limit fragrances whose brand contains the given
// text, in dataset order.
func (s *Searcher) ByBrand(fragrances []*core.Fragrance, brand string, limit int) []*core.Fragrance {
	if limit <= 0 {
		limit = DefaultLimit
	}
	term := strings.ToLower(strings.TrimSpace(brand))
	if term == "" {
		return []*core.Fragrance{}
	}
	matches := make([]*core.Fragrance, 0, limit)
	for _, f := range fragrances {
		if strings.Contains(strings.ToLower(f.Brand), term) {
			matches = append(matches, f)
			if len(matches) == limit {
				break
			}
		}
	}
	return matches
}

// ByName returns the first fragrance whose name equals the given name,
// optionally constrained to a brand, or nil when absent. Comparison is
// case-insensitive and exact.
func (s *Searcher) ByName(fragrances []*core.Fragrance, name, brand string) *core.Fragrance {
	name = strings.ToLower(name)
	brand = strings.ToLower(brand)
	for _, f := range fragrances {
		if strings.ToLower(f.Name) != name {
			continue
		}
		if brand == "" || strings.ToLower(f.Brand) == brand {
			return f
		}
	}
	return nil
}
