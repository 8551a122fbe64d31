package ports

import (
	"context"

	"freight-matching-service/internal/domain"
)

// Port: a boundary for retrieving matching entities from a data source.
type OrderRepository interface {
	// Retrieve all orders awaiting matching.
	ListOrders(ctx context.Context) ([]domain.Order, error)
	// Retrieve all contract routes available for matching.
	ListRoutes(ctx context.Context) ([]domain.Route, error)
	// Retrieve the truck fleet.
	ListTrucks(ctx context.Context) ([]*domain.Truck, error)
}
