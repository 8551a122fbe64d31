package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"freight-matching-service/internal/domain"
)

// SQLOrderRepository implements the OrderRepository port on top of
// database/sql. The read queries carry no placeholders, so the same
// implementation serves both the SQLite and Postgres schemas.
type SQLOrderRepository struct{ DB *sql.DB }

func NewSQLOrderRepository(db *sql.DB) *SQLOrderRepository {
	return &SQLOrderRepository{DB: db}
}

// Return all orders awaiting matching.
func (s *SQLOrderRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	if s.DB == nil {
		return nil, errors.New("order repository: DB is nil")
	}

	query := `
	SELECT
		order_id,
		pickup_lat, pickup_lon,
		dropoff_lat, dropoff_lon,
		volume_m3, weight_lbs, cargo_type,
		revenue
	FROM orders
	ORDER BY order_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list orders: query orders table: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0, 64)
	for rows.Next() {
		var id, cargoType string
		var pLat, pLon, dLat, dLon, volume, weight, revenue float64
		if err := rows.Scan(&id, &pLat, &pLon, &dLat, &dLon, &volume, &weight, &cargoType, &revenue); err != nil {
			return nil, fmt.Errorf("list orders: scan row: %w", err)
		}

		orders = append(orders, domain.Order{
			ID:      id,
			Pickup:  domain.Coordinate{Lat: pLat, Lon: pLon},
			Dropoff: domain.Coordinate{Lat: dLat, Lon: dLon},
			Cargo: []domain.Cargo{{
				VolumeM3:  volume,
				WeightLbs: weight,
				Type:      domain.CargoType(cargoType),
			}},
			Revenue: revenue,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: row iteration: %w", err)
	}

	return orders, nil
}

// Return all contracted routes with their stops and assigned cargo.
func (s *SQLOrderRepository) ListRoutes(ctx context.Context) ([]domain.Route, error) {
	if s.DB == nil {
		return nil, errors.New("order repository: DB is nil")
	}

	routes, err := s.listRouteHeaders(ctx)
	if err != nil {
		return nil, err
	}
	if len(routes) == 0 {
		return routes, nil
	}

	byID := make(map[string]*domain.Route, len(routes))
	for i := range routes {
		byID[routes[i].ID] = &routes[i]
	}

	if err := s.attachStops(ctx, byID); err != nil {
		return nil, err
	}
	if err := s.attachCargo(ctx, byID); err != nil {
		return nil, err
	}

	return routes, nil
}

func (s *SQLOrderRepository) listRouteHeaders(ctx context.Context) ([]domain.Route, error) {
	query := `
	SELECT route_id, truck_id, profitability
	FROM routes
	ORDER BY route_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list routes: query routes table: %w", err)
	}
	defer rows.Close()

	routes := make([]domain.Route, 0, 16)
	for rows.Next() {
		var r domain.Route
		if err := rows.Scan(&r.ID, &r.TruckID, &r.Profitability); err != nil {
			return nil, fmt.Errorf("list routes: scan row: %w", err)
		}
		routes = append(routes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list routes: row iteration: %w", err)
	}

	return routes, nil
}

func (s *SQLOrderRepository) attachStops(ctx context.Context, byID map[string]*domain.Route) error {
	query := `
	SELECT route_id, stop_id, lat, lon
	FROM route_stops
	ORDER BY route_id, seq;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("list routes: query route_stops table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var routeID, stopID string
		var lat, lon float64
		if err := rows.Scan(&routeID, &stopID, &lat, &lon); err != nil {
			return fmt.Errorf("list routes: scan stop row: %w", err)
		}

		r, ok := byID[routeID]
		if !ok {
			continue
		}
		r.Path = append(r.Path, domain.Waypoint{
			ID:         stopID,
			Coordinate: domain.Coordinate{Lat: lat, Lon: lon},
		})
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("list routes: stop row iteration: %w", err)
	}

	return nil
}

func (s *SQLOrderRepository) attachCargo(ctx context.Context, byID map[string]*domain.Route) error {
	query := `
	SELECT route_id, volume_m3, weight_lbs, cargo_type
	FROM route_cargo
	ORDER BY route_id, seq;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("list routes: query route_cargo table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var routeID, cargoType string
		var volume, weight float64
		if err := rows.Scan(&routeID, &volume, &weight, &cargoType); err != nil {
			return fmt.Errorf("list routes: scan cargo row: %w", err)
		}

		r, ok := byID[routeID]
		if !ok {
			continue
		}
		r.AssignedCargo = append(r.AssignedCargo, domain.Cargo{
			VolumeM3:  volume,
			WeightLbs: weight,
			Type:      domain.CargoType(cargoType),
		})
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("list routes: cargo row iteration: %w", err)
	}

	return nil
}

// Return the truck fleet.
func (s *SQLOrderRepository) ListTrucks(ctx context.Context) ([]*domain.Truck, error) {
	if s.DB == nil {
		return nil, errors.New("order repository: DB is nil")
	}

	query := `
	SELECT truck_id, capacity_m3, max_weight_lbs, autonomy_km
	FROM trucks
	ORDER BY truck_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list trucks: query trucks table: %w", err)
	}
	defer rows.Close()

	trucks := make([]*domain.Truck, 0, 16)
	for rows.Next() {
		var id string
		var capacity, maxWeight, autonomy float64
		if err := rows.Scan(&id, &capacity, &maxWeight, &autonomy); err != nil {
			return nil, fmt.Errorf("list trucks: scan row: %w", err)
		}

		t := domain.NewTruck(id, capacity, maxWeight)
		t.AutonomyKm = autonomy
		trucks = append(trucks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trucks: row iteration: %w", err)
	}

	return trucks, nil
}
