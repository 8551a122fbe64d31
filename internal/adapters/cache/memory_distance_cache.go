package cache

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"freight-matching-service/internal/domain"
)

// In-memory TTL cache for distance results. The default backend when no
// external cache is configured; entries expire so stale road data ages out.
type MemoryDistanceCache struct {
	c *gocache.Cache
}

func NewMemoryDistanceCache(ttl, cleanupInterval time.Duration) *MemoryDistanceCache {
	return &MemoryDistanceCache{c: gocache.New(ttl, cleanupInterval)}
}

// Fetch cached distances for one origin and multiple destinations.
// Missing or expired destinations are simply absent from the result.
func (m *MemoryDistanceCache) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (map[string]domain.DistanceResult, error) {
	if origin == "" {
		return nil, errors.New("get distance cache: origin must not be empty")
	}

	out := make(map[string]domain.DistanceResult, len(destinations))
	for _, d := range destinations {
		if d == "" {
			continue
		}
		if v, ok := m.c.Get(origin + "|" + d); ok {
			out[d] = v.(domain.DistanceResult)
		}
	}
	return out, nil
}

// Store many cached distance results for a single origin.
func (m *MemoryDistanceCache) PutMany(
	ctx context.Context,
	origin string,
	results map[string]domain.DistanceResult,
) error {
	if origin == "" {
		return errors.New("insert distance cache: origin must not be empty")
	}

	for d, r := range results {
		if d == "" {
			return errors.New("insert distance cache: empty destination key")
		}
		m.c.Set(origin+"|"+d, r, gocache.DefaultExpiration)
	}
	return nil
}

// ItemCount reports the number of live entries, for diagnostics.
func (m *MemoryDistanceCache) ItemCount() int {
	return m.c.ItemCount()
}
