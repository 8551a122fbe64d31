package cache

import (
	"sync"
	"time"

	"go.uber.org/atomic"

	"freight-matching-service/internal/domain"
	"freight-matching-service/internal/ports"
	"freight-matching-service/internal/roadnet"
)

// Hit/miss counts since construction.
type NetworkCacheStats struct {
	Hits   int64
	Misses int64
}

// In-memory cache of downloaded road networks keyed by bounding box.
// A lookup hits when any stored box fully contains the requested one, so a
// network fetched for a wide area serves every narrower request inside it.
// Entries are read-only after insertion; the cache is safe for concurrent use.
type NetworkCache struct {
	mu      sync.RWMutex
	entries map[string]*ports.CachedNetwork

	hits   atomic.Int64
	misses atomic.Int64
}

func NewNetworkCache() *NetworkCache {
	return &NetworkCache{
		entries: make(map[string]*ports.CachedNetwork),
	}
}

// Get returns a cached network whose box fully contains the requested box.
// When several entries qualify, the smallest one wins: it covers the request
// with the least graph to search.
func (n *NetworkCache) Get(box domain.BoundingBox) (*ports.CachedNetwork, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	var (
		best     *ports.CachedNetwork
		bestArea float64
	)
	for _, entry := range n.entries {
		if !entry.Box.Contains(box) {
			continue
		}
		area := entry.Box.AreaKm2()
		if best == nil || area < bestArea {
			best = entry
			bestArea = area
		}
	}

	if best == nil {
		n.misses.Inc()
		return nil, false
	}
	n.hits.Inc()
	return best, true
}

// Put stores the graph under its exact box and returns the new entry.
// Re-putting the same box overwrites the previous entry; overlapping but
// distinct boxes coexist (last writer wins on later containment ties).
func (n *NetworkCache) Put(box domain.BoundingBox, g *roadnet.Graph) *ports.CachedNetwork {
	entry := &ports.CachedNetwork{
		Box:       box,
		Graph:     g,
		CreatedAt: time.Now(),
	}

	n.mu.Lock()
	n.entries[box.Key()] = entry
	n.mu.Unlock()

	return entry
}

// EvictExpired removes entries created before now-maxAge and reports how many
// were dropped. Concurrent readers observe either the old or the evicted
// state, never a partially removed one.
func (n *NetworkCache) EvictExpired(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	n.mu.Lock()
	defer n.mu.Unlock()

	evicted := 0
	for key, entry := range n.entries {
		if entry.CreatedAt.Before(cutoff) {
			delete(n.entries, key)
			evicted++
		}
	}
	return evicted
}

// Len reports the number of cached networks.
func (n *NetworkCache) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.entries)
}

// Clear drops all entries. Counters are not reset.
func (n *NetworkCache) Clear() {
	n.mu.Lock()
	n.entries = make(map[string]*ports.CachedNetwork)
	n.mu.Unlock()
}

func (n *NetworkCache) Stats() NetworkCacheStats {
	return NetworkCacheStats{
		Hits:   n.hits.Load(),
		Misses: n.misses.Load(),
	}
}
