package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLite-backed cache for directed travel legs. Keys are expected to be
// consistent (already normalized) by the caller.
type SqliteLegCache struct {
	DB *sql.DB
}

func NewSqliteLegCache(db *sql.DB) *SqliteLegCache {
	return &SqliteLegCache{DB: db}
}

// Fetch cached legs for one origin and multiple destinations.
func (s *SqliteLegCache) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (map[string]Leg, error) {
	if s.DB == nil {
		return nil, errors.New("leg cache: db is nil")
	}
	if origin == "" {
		return nil, errors.New("get leg cache: origin must not be empty")
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(destinations))
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
	}
	if len(uniq) == 0 {
		return map[string]Leg{}, nil
	}

	// SQLite cannot bind a slice into IN (...); only the placeholder
	// structure is interpolated, values stay parameterized.
	args := make([]any, 0, 1+len(uniq))
	args = append(args, origin)
	ph := make([]string, len(uniq))
	for i, d := range uniq {
		ph[i] = "?"
		args = append(args, d)
	}

	q := fmt.Sprintf(`
	SELECT destination, distance_meters, duration_seconds
	FROM travel_leg_cache
	WHERE origin = ?
		AND destination IN (%s);
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get leg cache: query travel_leg_cache: %w", err)
	}
	defer rows.Close()

	out := make(map[string]Leg, len(uniq))
	for rows.Next() {
		var dest string
		var meters, seconds int
		if err := rows.Scan(&dest, &meters, &seconds); err != nil {
			return nil, fmt.Errorf("get leg cache: scan row: %w", err)
		}
		out[dest] = Leg{Meters: meters, Seconds: seconds}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get leg cache: row iteration: %w", err)
	}

	return out, nil
}

// Store many cached legs for a single origin.
func (s *SqliteLegCache) PutMany(ctx context.Context, origin string, legs map[string]Leg) error {
	if s.DB == nil {
		return errors.New("leg cache: db is nil")
	}
	if origin == "" {
		return errors.New("insert leg cache: origin must not be empty")
	}
	if len(legs) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert leg cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT OR REPLACE INTO travel_leg_cache (
		origin,
		destination,
		distance_meters,
		duration_seconds
	)
	VALUES (?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("insert leg cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for dest, leg := range legs {
		if strings.TrimSpace(dest) == "" {
			return errors.New("insert leg cache: empty destination key")
		}
		if _, err := stmt.ExecContext(ctx, origin, dest, leg.Meters, leg.Seconds); err != nil {
			return fmt.Errorf("insert leg cache dest=%q: %w", dest, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert leg cache: commit: %w", err)
	}
	return nil
}
