package vision

import (
	"context"
	"io"
	"log/slog"
	"math"
	"runtime"
	"sort"
	"sync"

	"github.com/olfact/sillage/core"
	"github.com/panjf2000/ants/v2"
)

// MatchThreshold is the minimum cosine similarity for a visual match.
// Below it, the matcher reports no match rather than a bad one.
const MatchThreshold = 0.7

// Candidate pairs a fragrance with its image embedding. A nil embedding
// marks a candidate whose embedding could not be fetched; it scores 0.
type Candidate struct {
	Fragrance *core.Fragrance
	Embedding []float32
}

// Match is a successful visual identification.
type Match struct {
	Fragrance  *core.Fragrance
	Similarity float64
}

// CosineSimilarity computes the cosine similarity of two equal-length
// vectors. Unequal dimensions are a programmer error and fail hard.
// Returns 0 when either vector has zero magnitude.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denominator := math.Sqrt(normA) * math.Sqrt(normB)
	if denominator == 0 {
		return 0, nil
	}
	return dot / denominator, nil
}

// Matcher identifies fragrances from photos by comparing image embeddings.
type Matcher struct {
	embedder ImageEmbedder
	pool     *ants.Pool
	logger   *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent embedding fetches.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(m *Matcher) error {
		if size < 1 {
			size = 1
		}
		if m.pool != nil {
			m.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		m.pool = pool
		return nil
	}
}

// NewMatcher creates a visual matcher backed by the given embedding provider.
func NewMatcher(embedder ImageEmbedder, opts ...Option) (*Matcher, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	pool, err := ants.NewPool(runtime.NumCPU())
	if err != nil {
		return nil, err
	}

	m := &Matcher{
		embedder: embedder,
		pool:     pool,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			m.pool.Release()
			return nil, err
		}
	}

	return m, nil
}

// Release frees the matcher's worker pool.
func (m *Matcher) Release() {
	m.pool.Release()
}

// FindMatch scores the query embedding against every candidate and returns
// the best one, or nil when nothing clears the similarity threshold.
// Candidates with a missing embedding score 0 and never win; a candidate
// embedding of the wrong dimension fails the whole call.
func (m *Matcher) FindMatch(query []float32, candidates []Candidate) (*Match, error) {
	scored := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		if len(c.Embedding) == 0 {
			scored = append(scored, Match{Fragrance: c.Fragrance, Similarity: 0})
			continue
		}
		similarity, err := CosineSimilarity(query, c.Embedding)
		if err != nil {
			return nil, err
		}
		scored = append(scored, Match{Fragrance: c.Fragrance, Similarity: similarity})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	if len(scored) == 0 || scored[0].Similarity <= MatchThreshold {
		return nil, nil
	}
	best := scored[0]
	return &best, nil
}

// ImageRef points the matcher at a candidate fragrance's product image.
type ImageRef struct {
	URL       string
	Fragrance *core.Fragrance
}

// MatchImage embeds the query photo and every candidate image concurrently
// on the worker pool, then returns the best match. A failed candidate fetch
// degrades that candidate to similarity 0 instead of aborting the
// comparison; a failed query embedding aborts.
func (m *Matcher) MatchImage(ctx context.Context, image io.Reader, refs []ImageRef) (*Match, error) {
	var (
		query    []float32
		queryErr error
		wg       sync.WaitGroup
	)

	wg.Add(1)
	if err := m.pool.Submit(func() {
		defer wg.Done()
		query, queryErr = m.embedder.EmbedImage(ctx, image)
	}); err != nil {
		wg.Done()
		return nil, err
	}

	candidates := make([]Candidate, len(refs))
	for i, ref := range refs {
		i, ref := i, ref
		candidates[i] = Candidate{Fragrance: ref.Fragrance}

		wg.Add(1)
		submitErr := m.pool.Submit(func() {
			defer wg.Done()
			embedding, err := m.embedder.EmbedImageURL(ctx, ref.URL)
			if err != nil {
				m.logger.Warn("candidate embedding failed, scoring 0",
					"name", ref.Fragrance.Name, "url", ref.URL, "err", err)
				return
			}
			candidates[i].Embedding = embedding
		})
		if submitErr != nil {
			wg.Done()
			m.logger.Warn("could not schedule candidate embedding",
				"name", ref.Fragrance.Name, "err", submitErr)
		}
	}
	wg.Wait()

	if queryErr != nil {
		m.logger.Error("failed to embed query image", "err", queryErr)
		return nil, queryErr
	}
	return m.FindMatch(query, candidates)
}
