package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the full Postgres schema: the entity store plus the shared
// distance cache. Safe to run repeatedly.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init postgres schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createOrdersQuery := `
	CREATE TABLE IF NOT EXISTS orders (
		order_id TEXT PRIMARY KEY,
		pickup_lat DOUBLE PRECISION NOT NULL,
		pickup_lon DOUBLE PRECISION NOT NULL,
		dropoff_lat DOUBLE PRECISION NOT NULL,
		dropoff_lon DOUBLE PRECISION NOT NULL,
		volume_m3 DOUBLE PRECISION NOT NULL,
		weight_lbs DOUBLE PRECISION NOT NULL,
		cargo_type TEXT NOT NULL,
		revenue DOUBLE PRECISION NOT NULL
	);
	`

	createRoutesQuery := `
	CREATE TABLE IF NOT EXISTS routes (
		route_id TEXT PRIMARY KEY,
		truck_id TEXT NOT NULL,
		profitability DOUBLE PRECISION NOT NULL
	);
	`

	createRouteStopsQuery := `
	CREATE TABLE IF NOT EXISTS route_stops (
		route_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		stop_id TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (route_id, seq)
	);
	`

	createRouteCargoQuery := `
	CREATE TABLE IF NOT EXISTS route_cargo (
		route_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		volume_m3 DOUBLE PRECISION NOT NULL,
		weight_lbs DOUBLE PRECISION NOT NULL,
		cargo_type TEXT NOT NULL,
		PRIMARY KEY (route_id, seq)
	);
	`

	createTrucksQuery := `
	CREATE TABLE IF NOT EXISTS trucks (
		truck_id TEXT PRIMARY KEY,
		capacity_m3 DOUBLE PRECISION NOT NULL,
		max_weight_lbs DOUBLE PRECISION NOT NULL,
		autonomy_km DOUBLE PRECISION NOT NULL
	);
	`

	createDistanceCacheQuery := `
	CREATE TABLE IF NOT EXISTS distance_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance_km DOUBLE PRECISION NOT NULL,
		method TEXT NOT NULL,
		drive_time_hours DOUBLE PRECISION NOT NULL,
		used_road_network BOOLEAN NOT NULL,
		diagnostic_note TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (origin, destination)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_distance_cache_destination_origin
    ON distance_cache(destination, origin);
	`

	statements := []string{
		createOrdersQuery,
		createRoutesQuery,
		createRouteStopsQuery,
		createRouteCargoQuery,
		createTrucksQuery,
		createDistanceCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init postgres schema: commit tx: %w", err)
	}

	return nil
}
