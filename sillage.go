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

package sillage

import (
	"log/slog"

	"github.com/olfact/sillage/core"
	"github.com/olfact/sillage/dataset"
	"github.com/olfact/sillage/filters"
	"github.com/olfact/sillage/locker"
	"github.com/olfact/sillage/search"
	"github.com/olfact/sillage/vibes"
	"github.com/olfact/sillage/vision"
)

// Catalog bundles the fragrance dataset with the search engines and the
// user's locker behind one handle.
type Catalog struct {
	store       *dataset.Store
	vibeEngine  *vibes.Engine
	searcher    *search.Searcher
	lockerStore *locker.Store
	locker      *locker.Locker
	logger      *slog.Logger
}

// CatalogOption configures a Catalog.
type CatalogOption func(*catalogOptions)

type catalogOptions struct {
	lockerPath     string
	inMemoryLocker bool
	exhaustive     bool
	cache          vibes.ScoreCache
	logger         *slog.Logger
}

// WithLockerPath stores the locker collection at the given directory
// instead of in memory.
func WithLockerPath(path string) CatalogOption {
	return func(o *catalogOptions) {
		o.lockerPath = path
		o.inMemoryLocker = false
	}
}

// WithExhaustiveScan disables the bounded-scan shortcuts in both search
// engines so every record is considered.
func WithExhaustiveScan(exhaustive bool) CatalogOption {
	return func(o *catalogOptions) {
		o.exhaustive = exhaustive
	}
}

// WithVibeCache supplies the score cache used by the vibe engine.
func WithVibeCache(cache vibes.ScoreCache) CatalogOption {
	return func(o *catalogOptions) {
		o.cache = cache
	}
}

// WithLogger sets the logger shared by the catalog's components.
func WithLogger(logger *slog.Logger) CatalogOption {
	return func(o *catalogOptions) {
		o.logger = logger
	}
}

// Open builds a catalog over the given dataset source. The dataset itself
// is read lazily on first search.
func Open(source dataset.Source, opts ...CatalogOption) (*Catalog, error) {
	options := &catalogOptions{
		inMemoryLocker: true,
		cache:          vibes.NewMemoryCache(),
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	store, err := dataset.NewStore(source, dataset.WithStoreLogger(options.logger))
	if err != nil {
		return nil, err
	}

	vibeEngine, err := vibes.NewEngine(
		vibes.WithCache(options.cache),
		vibes.WithExhaustiveScan(options.exhaustive),
		vibes.WithLogger(options.logger),
	)
	if err != nil {
		return nil, err
	}

	searcher, err := search.NewSearcher(
		search.WithExhaustiveScan(options.exhaustive),
		search.WithLogger(options.logger),
	)
	if err != nil {
		return nil, err
	}

	lockerStore, err := locker.OpenStore(options.lockerPath, options.inMemoryLocker)
	if err != nil {
		return nil, err
	}

	lkr, err := locker.New(lockerStore, locker.WithLogger(options.logger))
	if err != nil {
		lockerStore.Close()
		return nil, err
	}

	return &Catalog{
		store:       store,
		vibeEngine:  vibeEngine,
		searcher:    searcher,
		lockerStore: lockerStore,
		locker:      lkr,
		logger:      options.logger,
	}, nil
}

// Close releases the catalog's storage.
func (c *Catalog) Close() error {
	return c.lockerStore.Close()
}

// Results is the outcome of a routed search. Exactly one of Matches and
// Records is populated, according to Vibe.
type Results struct {
	Vibe    bool
	Matches []core.VibeMatch
	Records []*core.SearchResult
}

// Search routes a query to the vibe engine when it reads like a mood
// description, and to the lexical searcher otherwise.
func (c *Catalog) Search(query string, limit int, fltr *filters.Filters) (*Results, error) {
	if c.vibeEngine.IsVibeQuery(query) {
		matches, err := c.VibeSearch(query, limit, fltr)
		if err != nil {
			return nil, err
		}
		return &Results{Vibe: true, Matches: matches}, nil
	}
	records, err := c.TextSearch(query, limit, fltr)
	if err != nil {
		return nil, err
	}
	return &Results{Records: records}, nil
}

// TextSearch runs the lexical searcher over the dataset.
func (c *Catalog) TextSearch(query string, limit int, fltr *filters.Filters) ([]*core.SearchResult, error) {
	all, err := c.store.All()
	if err != nil {
		return nil, err
	}
	return c.searcher.Search(all, query, limit, fltr), nil
}

// VibeSearch scores the dataset against a mood query. Filters narrow the
// candidate set before scoring.
func (c *Catalog) VibeSearch(query string, limit int, fltr *filters.Filters) ([]core.VibeMatch, error) {
	all, err := c.store.All()
	if err != nil {
		return nil, err
	}
	candidates := all
	if fltr != nil {
		candidates = filters.Apply(all, *fltr)
	}
	return c.vibeEngine.Search(candidates, query, limit), nil
}

// Locker returns the saved collection.
func (c *Catalog) Locker() *locker.Locker {
	return c.locker
}

// Dataset returns the underlying store.
func (c *Catalog) Dataset() *dataset.Store {
	return c.store
}

// VibeEngine returns the vibe scoring engine.
func (c *Catalog) VibeEngine() *vibes.Engine {
	return c.vibeEngine
}

// NewMatcher builds a visual matcher over the given embedder, sharing the
// catalog's logger.
func (c *Catalog) NewMatcher(embedder vision.ImageEmbedder, opts ...vision.Option) (*vision.Matcher, error) {
	opts = append([]vision.Option{vision.WithLogger(c.logger)}, opts...)
	return vision.NewMatcher(embedder, opts...)
}
