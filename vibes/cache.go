package vibes

import (
	"sync"

	"github.com/olfact/sillage/core"
)

// ScoreCache stores computed vibe profiles keyed by fragrance identity.
// Implementations must be safe for concurrent use. Writes are idempotent:
// recomputing and overwriting the same key with the same value is harmless.
type ScoreCache interface {
	Get(id core.ID) ([]core.VibeScore, bool)
	Put(id core.ID, scores []core.VibeScore)
	Reset()
}

// memoryCache is the default unbounded in-memory ScoreCache. Unbounded is
// acceptable because the dataset is read-only and loaded once.
type memoryCache struct {
	mu     sync.RWMutex
	scores map[core.ID][]core.VibeScore
}

// NewMemoryCache creates an empty in-memory score cache.
func NewMemoryCache() ScoreCache {
	return &memoryCache{scores: make(map[core.ID][]core.VibeScore)}
}

func (c *memoryCache) Get(id core.ID) ([]core.VibeScore, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	scores, ok := c.scores[id]
	return scores, ok
}

func (c *memoryCache) Put(id core.ID, scores []core.VibeScore) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scores[id] = scores
}

func (c *memoryCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scores = make(map[core.ID][]core.VibeScore)
}
