package cache

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"tour-planner-service/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := []string{
		`CREATE TABLE travel_leg_cache (
			origin TEXT NOT NULL,
			destination TEXT NOT NULL,
			distance_meters INTEGER NOT NULL,
			duration_seconds INTEGER NOT NULL,
			PRIMARY KEY (origin, destination)
		);`,
		`CREATE TABLE geocode_cache (
			location TEXT PRIMARY KEY,
			lon REAL NOT NULL,
			lat REAL NOT NULL
		);`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}

func TestSqliteLegCacheRoundTrip(t *testing.T) {
	c := NewSqliteLegCache(openTestDB(t))
	ctx := context.Background()

	legs := map[string]Leg{
		"Chennai": {Meters: 290000, Seconds: 14400},
		"Madurai": {Meters: 240000, Seconds: 13200},
	}
	if err := c.PutMany(ctx, "Dharmapuri", legs); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := c.GetMany(ctx, "Dharmapuri", []string{"Chennai", "Madurai", "Ooty"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("hits = %d, want 2 (Ooty is a miss)", len(got))
	}
	if got["Chennai"] != (Leg{Meters: 290000, Seconds: 14400}) {
		t.Fatalf("chennai leg = %+v", got["Chennai"])
	}

	// Legs are directed; the reverse pair is not implied.
	rev, err := c.GetMany(ctx, "Chennai", []string{"Dharmapuri"})
	if err != nil {
		t.Fatalf("get reverse: %v", err)
	}
	if len(rev) != 0 {
		t.Fatalf("reverse hits = %v, want none", rev)
	}
}

func TestSqliteLegCacheReplacesExisting(t *testing.T) {
	c := NewSqliteLegCache(openTestDB(t))
	ctx := context.Background()

	if err := c.PutMany(ctx, "A", map[string]Leg{"B": {Meters: 100, Seconds: 10}}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := c.PutMany(ctx, "A", map[string]Leg{"B": {Meters: 200, Seconds: 20}}); err != nil {
		t.Fatalf("put update: %v", err)
	}

	got, err := c.GetMany(ctx, "A", []string{"B"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got["B"] != (Leg{Meters: 200, Seconds: 20}) {
		t.Fatalf("leg = %+v, want the replaced values", got["B"])
	}
}

func TestSqliteGeocodeCacheRoundTrip(t *testing.T) {
	c := NewSqliteGeocodeCache(openTestDB(t))
	ctx := context.Background()

	coords := map[string]domain.Coordinates{
		"Chennai": {Lon: 80.2707, Lat: 13.0827},
		"Madurai": {Lon: 78.1198, Lat: 9.9252},
	}
	if err := c.PutMany(ctx, coords); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := c.GetMany(ctx, []string{"Chennai", "Nowhere", "Chennai", "  "})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("hits = %d, want 1", len(got))
	}
	if got["Chennai"] != (domain.Coordinates{Lon: 80.2707, Lat: 13.0827}) {
		t.Fatalf("coords = %+v", got["Chennai"])
	}
}

func TestSqliteCacheEmptyInputs(t *testing.T) {
	db := openTestDB(t)
	legs := NewSqliteLegCache(db)
	geo := NewSqliteGeocodeCache(db)
	ctx := context.Background()

	if got, err := legs.GetMany(ctx, "A", nil); err != nil || len(got) != 0 {
		t.Fatalf("empty destinations: %v, %v", got, err)
	}
	if err := legs.PutMany(ctx, "A", nil); err != nil {
		t.Fatalf("empty put: %v", err)
	}
	if _, err := legs.GetMany(ctx, "", []string{"B"}); err == nil {
		t.Fatal("empty origin must be rejected")
	}
	if got, err := geo.GetMany(ctx, nil); err != nil || len(got) != 0 {
		t.Fatalf("empty names: %v, %v", got, err)
	}
	if err := geo.PutMany(ctx, nil); err != nil {
		t.Fatalf("empty put: %v", err)
	}
}
