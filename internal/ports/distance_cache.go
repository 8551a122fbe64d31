package ports

import (
	"context"

	"freight-matching-service/internal/domain"
)

// Port: cache of origin->destination distance results.
// Keys are canonical coordinate strings; implementations may be in-memory or
// persistent and are consulted before any road-network work.
type DistanceCache interface {
	// Fetch cached results for one origin and multiple destinations.
	GetMany(ctx context.Context, origin string, destinations []string) (map[string]domain.DistanceResult, error)
	// Store results for a single origin.
	PutMany(ctx context.Context, origin string, results map[string]domain.DistanceResult) error
}
