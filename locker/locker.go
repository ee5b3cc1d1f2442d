package locker

import (
	"log/slog"
	"sync"

	"github.com/olfact/sillage/core"
)

// Persister reads and writes the saved collection as a whole.
type Persister interface {
	Load() ([]*core.Fragrance, error)
	Save([]*core.Fragrance) error
}

// Locker is the user's saved fragrance collection. Membership is keyed on
// the (name, brand) pair; insertion order is preserved. Every mutation is
// written through to the persister before the in-memory state changes.
type Locker struct {
	mu         sync.RWMutex
	collection []*core.Fragrance
	persister  Persister
	logger     *slog.Logger
}

// Option configures a Locker.
type Option func(*Locker) error

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Locker) error {
		l.logger = logger
		return nil
	}
}

// New opens a locker over the given persister, loading the stored
// collection immediately.
func New(persister Persister, opts ...Option) (*Locker, error) {
	if persister == nil {
		return nil, ErrPersisterRequired
	}
	l := &Locker{
		persister: persister,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	collection, err := persister.Load()
	if err != nil {
		return nil, err
	}
	l.collection = collection
	return l, nil
}

// Add appends a fragrance to the collection. Returns true when it was
// added, false when a fragrance with the same name and brand is already
// present.
func (l *Locker) Add(fragrance *core.Fragrance) (bool, error) {
	if fragrance == nil {
		return false, ErrFragranceRequired
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.indexOf(fragrance.Name, fragrance.Brand) >= 0 {
		return false, nil
	}

	next := append(append([]*core.Fragrance{}, l.collection...), fragrance)
	if err := l.persister.Save(next); err != nil {
		return false, err
	}
	l.collection = next
	l.logger.Debug("fragrance added to locker", "name", fragrance.Name, "brand", fragrance.Brand)
	return true, nil
}

// Remove drops the fragrance matching the given name and brand. Removing
// an absent fragrance is a no-op.
func (l *Locker) Remove(name, brand string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(name, brand)
	if idx < 0 {
		return false, nil
	}

	next := make([]*core.Fragrance, 0, len(l.collection)-1)
	next = append(next, l.collection[:idx]...)
	next = append(next, l.collection[idx+1:]...)
	if err := l.persister.Save(next); err != nil {
		return false, err
	}
	l.collection = next
	l.logger.Debug("fragrance removed from locker", "name", name, "brand", brand)
	return true, nil
}

// Contains reports whether a fragrance with the given name and brand is in
// the collection.
func (l *Locker) Contains(name, brand string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.indexOf(name, brand) >= 0
}

// All returns the collection in insertion order. The returned slice is a
// copy.
func (l *Locker) All() []*core.Fragrance {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]*core.Fragrance{}, l.collection...)
}

// Len reports the collection size.
func (l *Locker) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.collection)
}

func (l *Locker) indexOf(name, brand string) int {
	probe := core.Fragrance{Name: name, Brand: brand}
	for i, f := range l.collection {
		if f.SameFragrance(&probe) {
			return i
		}
	}
	return -1
}
