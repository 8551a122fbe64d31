package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"freight-matching-service/internal/domain"
)

// SQLite backed cache for origin->destination distance results.
// Keys are expected to be consistent (e.g., already canonicalized)
// by the caller.
type SqliteDistanceCache struct {
	DB *sql.DB
}

func NewSqliteDistanceCache(db *sql.DB) *SqliteDistanceCache {
	return &SqliteDistanceCache{DB: db}
}

// Fetch cached distances for one origin and multiple destinations.
func (s *SqliteDistanceCache) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (map[string]domain.DistanceResult, error) {
	if s.DB == nil {
		return nil, errors.New("distance cache: db is nil")
	}

	if origin == "" {
		return nil, errors.New("get distance cache: origin must not be empty")
	}

	if len(destinations) == 0 {
		return map[string]domain.DistanceResult{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(destinations))
	ph := make([]string, 0, len(destinations))
	for _, d := range destinations {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}

		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		uniq = append(uniq, d)
		ph = append(ph, "?")
	}

	if len(uniq) == 0 {
		return map[string]domain.DistanceResult{}, nil
	}

	placeholders := strings.Join(ph, ",")
	args := make([]any, 0, 1+len(uniq))
	args = append(args, origin)
	for _, d := range uniq {
		args = append(args, d)
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`
	SELECT
        destination,
        distance_km,
        method,
        drive_time_hours,
        used_road_network,
        diagnostic_note
    FROM distance_cache
    WHERE origin = ?
        AND destination IN (%s);
	`, placeholders)

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get distance cache: query distance_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.DistanceResult, len(uniq))
	for rows.Next() {
		var dest, method, note string
		var km, hours float64
		var usedNetwork bool
		if err := rows.Scan(&dest, &km, &method, &hours, &usedNetwork, &note); err != nil {
			return nil, fmt.Errorf("get distance cache: scan rows: %w", err)
		}
		out[dest] = domain.DistanceResult{
			DistanceKm:      km,
			Method:          domain.CalculationMethod(method),
			DriveTimeHours:  hours,
			UsedRoadNetwork: usedNetwork,
			DiagnosticNote:  note,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get distance cache: row iteration: %w", err)
	}

	return out, nil
}

// Store many cached distance results for a single origin.
func (s *SqliteDistanceCache) PutMany(
	ctx context.Context,
	origin string,
	results map[string]domain.DistanceResult,
) error {
	if s.DB == nil {
		return errors.New("distance cache: db is nil")
	}

	if origin == "" {
		return errors.New("insert distance cache: origin must not be empty")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert distance cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT OR REPLACE INTO distance_cache (
        origin,
        destination,
        distance_km,
        method,
        drive_time_hours,
        used_road_network,
        diagnostic_note
    )
    VALUES (?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("insert distance cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for dest, r := range results {
		if strings.TrimSpace(dest) == "" {
			return fmt.Errorf("insert distance cache: empty destination key")
		}

		if _, err := stmt.ExecContext(ctx, origin, dest,
			r.DistanceKm, string(r.Method), r.DriveTimeHours, r.UsedRoadNetwork, r.DiagnosticNote); err != nil {
			return fmt.Errorf("insert distance cache dest=%q: %w", dest, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert distance cache commit: %w", err)
	}

	return nil
}
