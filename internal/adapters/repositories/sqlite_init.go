package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
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

	createPlacesQuery := `
	CREATE TABLE IF NOT EXISTS places (
		place_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		lon REAL NOT NULL,
		lat REAL NOT NULL,
		default_visit_minutes INTEGER NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		active INTEGER NOT NULL DEFAULT 1
	);
	`

	createPlansQuery := `
	CREATE TABLE IF NOT EXISTS trip_plans (
		plan_id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		plan_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`

	createLegCacheQuery := `
	CREATE TABLE IF NOT EXISTS travel_leg_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance_meters INTEGER NOT NULL,
		duration_seconds INTEGER NOT NULL,
		PRIMARY KEY (origin, destination)
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		location TEXT PRIMARY KEY,
		lon REAL NOT NULL,
		lat REAL NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_trip_plans_owner
	ON trip_plans(owner_id, created_at);
	`

	statements := []string{
		createPlacesQuery,
		createPlansQuery,
		createLegCacheQuery,
		createGeocodeCacheQuery,
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

type PlaceSeed struct {
	PlaceID             int     `json:"place_id"`
	Name                string  `json:"name"`
	City                string  `json:"city"`
	State               string  `json:"state"`
	Category            string  `json:"category"`
	Lon                 float64 `json:"lon"`
	Lat                 float64 `json:"lat"`
	DefaultVisitMinutes int     `json:"default_visit_minutes"`
	Description         string  `json:"description"`
	Active              *bool   `json:"active"`
}

// Populate the place catalog from a JSON file. Seeding is idempotent;
// existing rows with the same place_id are replaced.
func SeedPlacesFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed places: read %q: %w", jsonPath, err)
	}

	var data []PlaceSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed places: parse json: %w", err)
	}

	for i, item := range data {
		if item.PlaceID <= 0 {
			return fmt.Errorf("seed places: invalid place_id at index %d: %d", i+1, item.PlaceID)
		}
		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("seed places: item at index %d: name cannot be empty", i+1)
		}
		if item.DefaultVisitMinutes <= 0 {
			return fmt.Errorf("seed places: item at index %d: default_visit_minutes must be > 0", i+1)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed places: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT OR REPLACE INTO places (
		place_id,
		name,
		city,
		state,
		category,
		lon,
		lat,
		default_visit_minutes,
		description,
		active
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed places: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range data {
		active := 1
		if p.Active != nil && !*p.Active {
			active = 0
		}
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
