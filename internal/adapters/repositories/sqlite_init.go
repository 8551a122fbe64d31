package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createOrdersQuery := `
	CREATE TABLE IF NOT EXISTS orders (
		order_id TEXT PRIMARY KEY,
		pickup_lat REAL NOT NULL,
		pickup_lon REAL NOT NULL,
		dropoff_lat REAL NOT NULL,
		dropoff_lon REAL NOT NULL,
		volume_m3 REAL NOT NULL,
		weight_lbs REAL NOT NULL,
		cargo_type TEXT NOT NULL,
		revenue REAL NOT NULL
	);
	`

	createRoutesQuery := `
	CREATE TABLE IF NOT EXISTS routes (
		route_id TEXT PRIMARY KEY,
		truck_id TEXT NOT NULL,
		profitability REAL NOT NULL
	);
	`

	createRouteStopsQuery := `
	CREATE TABLE IF NOT EXISTS route_stops (
		route_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		stop_id TEXT NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		PRIMARY KEY (route_id, seq)
	);
	`

	createRouteCargoQuery := `
	CREATE TABLE IF NOT EXISTS route_cargo (
		route_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		volume_m3 REAL NOT NULL,
		weight_lbs REAL NOT NULL,
		cargo_type TEXT NOT NULL,
		PRIMARY KEY (route_id, seq)
	);
	`

	createTrucksQuery := `
	CREATE TABLE IF NOT EXISTS trucks (
		truck_id TEXT PRIMARY KEY,
		capacity_m3 REAL NOT NULL,
		max_weight_lbs REAL NOT NULL,
		autonomy_km REAL NOT NULL
	);
	`

	createDistanceCacheQuery := `
	CREATE TABLE IF NOT EXISTS distance_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance_km REAL NOT NULL,
		method TEXT NOT NULL,
		drive_time_hours REAL NOT NULL,
		used_road_network INTEGER NOT NULL,
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
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
