package dataset

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/olfact/sillage/core"
)

// Source opens the raw dataset document. The store owns closing the reader.
type Source func() (io.ReadCloser, error)

// Store holds an immutable in-memory fragrance catalog. Loading happens at
// most once; every accessor triggers it lazily and returns the same snapshot.
type Store struct {
	source Source
	logger *slog.Logger

	once       sync.Once
	fragrances []*core.Fragrance
	loadErr    error
}

// StoreOption configures a Store.
type StoreOption func(*Store) error

// WithStoreLogger sets the logger used during loading.
func WithStoreLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// NewStore builds a store over the given source. Nothing is read until the
// first accessor call.
func NewStore(source Source, opts ...StoreOption) (*Store, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}
	s := &Store{
		source: source,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// NewStoreFromRecords builds a pre-loaded store, bypassing any source. Used
// by callers that already hold converted records, and by tests.
func NewStoreFromRecords(fragrances []*core.Fragrance) *Store {
	s := &Store{logger: slog.Default()}
	s.once.Do(func() {})
	s.fragrances = fragrances
	return s
}

func (s *Store) load() {
	s.once.Do(func() {
		rc, err := s.source()
		if err != nil {
			s.loadErr = err
			return
		}
		defer rc.Close()

		fragrances, err := Parse(rc)
		if err != nil {
			s.loadErr = err
			return
		}
		s.fragrances = fragrances
		s.logger.Info("dataset loaded", "fragrances", len(fragrances))
	})
}

// All returns the full catalog snapshot. Callers must not mutate it.
func (s *Store) All() ([]*core.Fragrance, error) {
	s.load()
	return s.fragrances, s.loadErr
}

// Len reports the catalog size, loading it if necessary.
func (s *Store) Len() (int, error) {
	all, err := s.All()
	return len(all), err
}

// WithImages returns the records that carry an image reference.
func (s *Store) WithImages() ([]*core.Fragrance, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}
	withImages := make([]*core.Fragrance, 0, len(all))
	for _, f := range all {
		if f.Image != "" {
			withImages = append(withImages, f)
		}
	}
	return withImages, nil
}

// ByName finds the first record matching name, and brand when non-empty.
// Comparison is case-insensitive and exact.
func (s *Store) ByName(name, brand string) (*core.Fragrance, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}
	for _, f := range all {
		if !strings.EqualFold(f.Name, name) {
			continue
		}
		if brand != "" && !strings.EqualFold(f.Brand, brand) {
			continue
		}
		return f, nil
	}
	return nil, nil
}
