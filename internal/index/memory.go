package index

import (
	"sort"
	"sync"
	"time"

	"github.com/MrSnakeDoc/wfdscore/internal/report"
)

// ResultIndex keeps scored results in memory.
// It acts as a fallback when Redis is unavailable
type ResultIndex struct {
	mu       sync.RWMutex
	results  map[string]*report.Result // content hash -> Result
	live     *report.Result            // latest score of the watched log file
	lastLive time.Time                 // Timestamp of last live update
}

// NewResultIndex creates a new result index
func NewResultIndex() *ResultIndex {
	return &ResultIndex{
		results: make(map[string]*report.Result),
	}
}

// Put adds or replaces a result under its key
func (idx *ResultIndex) Put(result *report.Result) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.results[result.Key] = result
}

// Get retrieves a result by key
func (idx *ResultIndex) Get(key string) (*report.Result, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	result, ok := idx.results[key]
	return result, ok
}

// Count returns the number of cached results
func (idx *ResultIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.results)
}

// All returns every cached result, most recent first
func (idx *ResultIndex) All() []*report.Result {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	results := make([]*report.Result, 0, len(idx.results))
	for _, result := range idx.results {
		results = append(results, result)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].ScoredAt.After(results[j].ScoredAt)
	})
	return results
}

// Prune drops every result scored before olderThan and returns their keys
func (idx *ResultIndex) Prune(olderThan time.Time) []string {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	var pruned []string
	for key, result := range idx.results {
		if result.ScoredAt.Before(olderThan) {
			delete(idx.results, key)
			pruned = append(pruned, key)
		}
	}
	sort.Strings(pruned)
	return pruned
}

// ─────────────────────────────────────────────────────────────────
// Live result
// ─────────────────────────────────────────────────────────────────

// SetLive replaces the live result
func (idx *ResultIndex) SetLive(result *report.Result) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.live = result
	idx.lastLive = time.Now()
}

// Live returns the live result, if one was ever set
func (idx *ResultIndex) Live() (*report.Result, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.live, idx.live != nil
}

// GetLastLive returns the timestamp of the last live update
func (idx *ResultIndex) GetLastLive() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastLive
}
