package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/platform/obs"
)

// Postgres-backed geocode cache. Same contract as SqliteGeocodeCache.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

func (s *SQLGeocodeCache) GetMany(ctx context.Context, names []string) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		uniq = append(uniq, n)
	}
	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	q := `
	SELECT location, lon, lat
	FROM geocode_cache
	WHERE location = ANY($1::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Coordinates, len(uniq))
	for rows.Next() {
		var loc string
		var lon, lat float64
		if err := rows.Scan(&loc, &lon, &lat); err != nil {
			return nil, fmt.Errorf("get geocode cache: scan row: %w", err)
		}
		out[loc] = domain.Coordinates{Lon: lon, Lat: lat}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get geocode cache: row iteration: %w", err)
	}

	return out, nil
}

func (s *SQLGeocodeCache) PutMany(ctx context.Context, coords map[string]domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}
	if len(coords) == 0 {
		return nil
	}

	values := make([]string, 0, len(coords))
	args := make([]any, 0, 3*len(coords))
	i := 1
	for loc, c := range coords {
		if strings.TrimSpace(loc) == "" {
			return errors.New("insert geocode cache: empty location key")
		}
		values = append(values, fmt.Sprintf("($%d, $%d, $%d)", i, i+1, i+2))
		args = append(args, loc, c.Lon, c.Lat)
		i += 3
	}

	q := fmt.Sprintf(`
	INSERT INTO geocode_cache (location, lon, lat)
	VALUES %s
	ON CONFLICT (location) DO UPDATE
	SET lon = EXCLUDED.lon,
		lat = EXCLUDED.lat;
	`, strings.Join(values, ", "))

	if _, err := s.DB.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("insert geocode cache: %w", err)
	}
	return nil
}
