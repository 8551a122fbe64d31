package ports

import (
	"context"

	"freight-matching-service/internal/domain"
	"freight-matching-service/internal/roadnet"
)

// Contract for retrieving road-network graphs covering a bounding box.
// Implementations talk to an external, possibly unreliable data source.
type GraphProvider interface {
	// Available reports whether road-network retrieval can be attempted at all.
	Available() bool
	// FetchGraph downloads the drivable road network inside the box.
	FetchGraph(ctx context.Context, box domain.BoundingBox) (*roadnet.Graph, error)
}
