package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tour-planner-service/internal/platform/obs"
)

// Postgres-backed cache for directed travel legs, for deployments sharing a
// cache across instances. Same contract as SqliteLegCache.
type SQLLegCache struct {
	DB *sql.DB
}

func NewSQLLegCache(db *sql.DB) *SQLLegCache {
	return &SQLLegCache{DB: db}
}

func (s *SQLLegCache) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (_ map[string]Leg, err error) {
	defer obs.Time(ctx, "legcache.GetMany")(&err)

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

	q := `
	SELECT destination, distance_meters, duration_seconds
	FROM travel_leg_cache
	WHERE origin = $1
		AND destination = ANY($2::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, origin, uniq)
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

func (s *SQLLegCache) PutMany(ctx context.Context, origin string, legs map[string]Leg) error {
	if s.DB == nil {
		return errors.New("leg cache: db is nil")
	}
	if origin == "" {
		return errors.New("insert leg cache: origin must not be empty")
	}
	if len(legs) == 0 {
		return nil
	}

	// Batch all legs into one multi-row upsert.
	values := make([]string, 0, len(legs))
	args := make([]any, 0, 1+3*len(legs))
	args = append(args, origin)
	i := 2
	for dest, leg := range legs {
		if strings.TrimSpace(dest) == "" {
			return errors.New("insert leg cache: empty destination key")
		}
		values = append(values, fmt.Sprintf("($1, $%d, $%d, $%d)", i, i+1, i+2))
		args = append(args, dest, leg.Meters, leg.Seconds)
		i += 3
	}

	q := fmt.Sprintf(`
	INSERT INTO travel_leg_cache (origin, destination, distance_meters, duration_seconds)
	VALUES %s
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds;
	`, strings.Join(values, ", "))

	if _, err := s.DB.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("insert leg cache origin=%q: %w", origin, err)
	}
	return nil
}
