package search

import "github.com/olfact/sillage/core"

// Monitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type Monitor interface {
	Start(term string)
	Scored(result *core.SearchResult)
	Ranked(results []*core.SearchResult)
	Filtered(results []*core.SearchResult)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                  {}
func (n *noopMonitor) Scored(_ *core.SearchResult)     {}
func (n *noopMonitor) Ranked(_ []*core.SearchResult)   {}
func (n *noopMonitor) Filtered(_ []*core.SearchResult) {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)   {}
