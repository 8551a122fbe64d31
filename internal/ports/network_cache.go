package ports

import (
	"time"

	"freight-matching-service/internal/domain"
	"freight-matching-service/internal/roadnet"
)

// A downloaded road network together with the box it covers.
// Entries are read-only after insertion and shared across callers.
type CachedNetwork struct {
	Box       domain.BoundingBox
	Graph     *roadnet.Graph
	CreatedAt time.Time
}

// Port: cache of downloaded road networks keyed by bounding box.
// Implementations must be safe for concurrent use.
type NetworkCache interface {
	// Get returns a cached entry whose box fully contains the requested box.
	Get(box domain.BoundingBox) (*CachedNetwork, bool)
	// Put stores the graph under its exact box, overwriting an exact-box entry.
	Put(box domain.BoundingBox, g *roadnet.Graph) *CachedNetwork
	// EvictExpired removes entries older than maxAge and reports how many.
	EvictExpired(maxAge time.Duration) int
	Len() int
}
