package analyses

import (
	"sync"

	"placement-backend/internal/analyses/engine"
)

// Entry is one cached analysis outcome. File metadata rides along with
// the report so a hit never has to re-open the document.
type Entry struct {
	Report    engine.Report
	FileType  string
	PageCount int
}

// Cache stores finished analyses keyed by the content hash of the raw
// upload. The same bytes always score the same, so a hit skips
// extraction and scoring entirely.
type Cache interface {
	Get(contentHash string) (Entry, bool)
	Set(contentHash string, entry Entry)
}

// MemoryCache is a process-local Cache safe for concurrent use.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryCache constructs an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]Entry)}
}

// Get returns the cached entry for the hash, if any.
func (c *MemoryCache) Get(contentHash string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[contentHash]
	return entry, ok
}

// Set stores the entry under the hash, replacing any previous one.
func (c *MemoryCache) Set(contentHash string, entry Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[contentHash] = entry
}

// Len reports the number of cached entries.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var _ Cache = (*MemoryCache)(nil)
