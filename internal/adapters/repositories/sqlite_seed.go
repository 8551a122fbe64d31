package repositories

import (
	"database/sql"
	"fmt"
)

// Populate a SQLite database with order data from a JSON file.
func SeedOrdersFromJSON(db *sql.DB, jsonPath string) error {
	data, err := loadOrderSeeds(jsonPath)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed orders: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT OR REPLACE INTO orders (
		order_id,
		pickup_lat, pickup_lon,
		dropoff_lat, dropoff_lon,
		volume_m3, weight_lbs, cargo_type,
		revenue
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed orders: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range data {
		if _, err := stmt.Exec(
			o.OrderID,
			o.Pickup.Lat, o.Pickup.Lon,
			o.Dropoff.Lat, o.Dropoff.Lon,
			o.VolumeM3, o.WeightLbs, o.CargoType,
			o.Revenue,
		); err != nil {
			return fmt.Errorf("seed orders: insert order_id=%q: %w", o.OrderID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed orders: commit tx: %w", err)
	}

	return nil
}

// Populate a SQLite database with contracted routes, trucks and
// assigned cargo from a JSON file. Reseeding the same route replaces
// its stops and cargo rather than appending.
func SeedContractsFromJSON(db *sql.DB, jsonPath string) error {
	data, err := loadContractSeeds(jsonPath)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed contracts: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	truckStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO trucks (truck_id, capacity_m3, max_weight_lbs, autonomy_km)
	VALUES (?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed contracts: prepare truck insert: %w", err)
	}
	defer truckStmt.Close()

	routeStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO routes (route_id, truck_id, profitability)
	VALUES (?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed contracts: prepare route insert: %w", err)
	}
	defer routeStmt.Close()

	stopStmt, err := tx.Prepare(`
	INSERT INTO route_stops (route_id, seq, stop_id, lat, lon)
	VALUES (?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed contracts: prepare stop insert: %w", err)
	}
	defer stopStmt.Close()

	cargoStmt, err := tx.Prepare(`
	INSERT INTO route_cargo (route_id, seq, volume_m3, weight_lbs, cargo_type)
	VALUES (?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed contracts: prepare cargo insert: %w", err)
	}
	defer cargoStmt.Close()

	for _, c := range data {
		if _, err := truckStmt.Exec(c.TruckID, c.Truck.CapacityM3, c.Truck.MaxWeightLbs, c.Truck.AutonomyKm); err != nil {
			return fmt.Errorf("seed contracts: insert truck_id=%q: %w", c.TruckID, err)
		}
		if _, err := routeStmt.Exec(c.RouteID, c.TruckID, c.Profitability); err != nil {
			return fmt.Errorf("seed contracts: insert route_id=%q: %w", c.RouteID, err)
		}

		if _, err := tx.Exec(`DELETE FROM route_stops WHERE route_id = ?;`, c.RouteID); err != nil {
			return fmt.Errorf("seed contracts: clear stops route_id=%q: %w", c.RouteID, err)
		}
		if _, err := tx.Exec(`DELETE FROM route_cargo WHERE route_id = ?;`, c.RouteID); err != nil {
			return fmt.Errorf("seed contracts: clear cargo route_id=%q: %w", c.RouteID, err)
		}

		for i, s := range c.Stops {
			if _, err := stopStmt.Exec(c.RouteID, i, s.ID, s.Lat, s.Lon); err != nil {
				return fmt.Errorf("seed contracts: insert stop route_id=%q seq=%d: %w", c.RouteID, i, err)
			}
		}
		for i, cg := range c.Cargo {
			if _, err := cargoStmt.Exec(c.RouteID, i, cg.VolumeM3, cg.WeightLbs, cg.Type); err != nil {
				return fmt.Errorf("seed contracts: insert cargo route_id=%q seq=%d: %w", c.RouteID, i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed contracts: commit tx: %w", err)
	}

	return nil
}
