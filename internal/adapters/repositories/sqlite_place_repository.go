package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tour-planner-service/internal/domain"
)

// SQLite-backed implementation of the PlaceCatalog port.
type SqlitePlaceRepository struct{ DB *sql.DB }

func NewSqlitePlaceRepository(db *sql.DB) *SqlitePlaceRepository {
	return &SqlitePlaceRepository{DB: db}
}

const placeColumns = `
	place_id,
	name,
	city,
	state,
	category,
	lon,
	lat,
	default_visit_minutes,
	description
`

// Match a requested name case-insensitively against canonical name or city.
// Only active places participate. Returns (nil, nil) when nothing matches.
func (s *SqlitePlaceRepository) FindActiveByNameOrCity(ctx context.Context, name string) (*domain.Place, error) {
	if s.DB == nil {
		return nil, errors.New("place repository: DB is nil")
	}

	query := `
	SELECT` + placeColumns + `
	FROM places
	WHERE active = 1
		AND (LOWER(name) = LOWER(?) OR LOWER(city) = LOWER(?))
	ORDER BY place_id
	LIMIT 1;
	`

	row := s.DB.QueryRowContext(ctx, query, name, name)
	place, err := scanPlace(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find place %q: %w", name, err)
	}
	return place, nil
}

// Return all active places ordered by name.
func (s *SqlitePlaceRepository) ListActive(ctx context.Context) ([]*domain.Place, error) {
	if s.DB == nil {
		return nil, errors.New("place repository: DB is nil")
	}

	query := `
	SELECT` + placeColumns + `
	FROM places
	WHERE active = 1
	ORDER BY name;
	`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list places: query places table: %w", err)
	}
	defer rows.Close()

	places := make([]*domain.Place, 0, 64)
	for rows.Next() {
		place, err := scanPlace(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list places: scan row: %w", err)
		}
		places = append(places, place)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list places: row iteration: %w", err)
	}

	return places, nil
}

func scanPlace(scan func(dest ...any) error) (*domain.Place, error) {
	var p domain.Place
	err := scan(
		&p.PlaceID,
		&p.Name,
		&p.City,
		&p.State,
		&p.Category,
		&p.Coordinates.Lon,
		&p.Coordinates.Lat,
		&p.DefaultVisitMinutes,
		&p.Description,
	)
	if err != nil {
		return nil, err
	}
	p.Active = true
	return &p, nil
}
