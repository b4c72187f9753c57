package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the Postgres schema for shared-database deployments. The table
// shapes mirror the SQLite schema so adapters stay interchangeable.
func InitSchemaPostgres(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init postgres schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`
		CREATE TABLE IF NOT EXISTS places (
			place_id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			city TEXT NOT NULL,
			state TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			lon DOUBLE PRECISION NOT NULL,
			lat DOUBLE PRECISION NOT NULL,
			default_visit_minutes INTEGER NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			active BOOLEAN NOT NULL DEFAULT TRUE
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS trip_plans (
			plan_id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			plan_json TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS travel_leg_cache (
			origin TEXT NOT NULL,
			destination TEXT NOT NULL,
			distance_meters INTEGER NOT NULL,
			duration_seconds INTEGER NOT NULL,
			PRIMARY KEY (origin, destination)
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS geocode_cache (
			location TEXT PRIMARY KEY,
			lon DOUBLE PRECISION NOT NULL,
			lat DOUBLE PRECISION NOT NULL
		);
		`,
		`
		CREATE INDEX IF NOT EXISTS idx_trip_plans_owner
		ON trip_plans(owner_id, created_at);
		`,
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

// Populate the Postgres place catalog from the same JSON seed file the
// SQLite path uses.
func SeedPlacesPostgresFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed places: read %q: %w", jsonPath, err)
	}

	var data []PlaceSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed places: parse json: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed places: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO places (
		place_id, name, city, state, category,
		lon, lat, default_visit_minutes, description, active
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (place_id) DO UPDATE
	SET name = EXCLUDED.name,
		city = EXCLUDED.city,
		state = EXCLUDED.state,
		category = EXCLUDED.category,
		lon = EXCLUDED.lon,
		lat = EXCLUDED.lat,
		default_visit_minutes = EXCLUDED.default_visit_minutes,
		description = EXCLUDED.description,
		active = EXCLUDED.active;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed places: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range data {
		if p.PlaceID <= 0 {
			return fmt.Errorf("seed places: invalid place_id at index %d: %d", i+1, p.PlaceID)
		}
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("seed places: item at index %d: name cannot be empty", i+1)
		}

		active := p.Active == nil || *p.Active
		_, err := stmt.Exec(
			p.PlaceID,
			strings.TrimSpace(p.Name),
			strings.TrimSpace(p.City),
			strings.TrimSpace(p.State),
			strings.TrimSpace(p.Category),
			p.Lon,
			p.Lat,
			p.DefaultVisitMinutes,
			p.Description,
			active,
		)
		if err != nil {
			return fmt.Errorf("seed places: insert place_id=%d: %w", p.PlaceID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed places: commit tx: %w", err)
	}

	return nil
}
