package repositories

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
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

	if err := InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func seedTestPlaces(t *testing.T, db *sql.DB) {
	t.Helper()
	seed := `[
		{"place_id": 1, "name": "Marina Beach", "city": "Chennai", "state": "Tamil Nadu",
		 "category": "Beach", "lon": 80.2825, "lat": 13.05, "default_visit_minutes": 120},
		{"place_id": 2, "name": "Ooty Lake", "city": "Ooty", "state": "Tamil Nadu",
		 "category": "Hill Station", "lon": 76.6932, "lat": 11.4102, "default_visit_minutes": 240},
		{"place_id": 3, "name": "Shore Temple", "city": "Mahabalipuram", "state": "Tamil Nadu",
		 "category": "Temple", "lon": 80.1997, "lat": 12.6168, "default_visit_minutes": 90,
		 "active": false}
	]`
	path := filepath.Join(t.TempDir(), "places.json")
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	if err := SeedPlacesFromJSON(db, path); err != nil {
		t.Fatalf("seed places: %v", err)
	}
}

func TestSqlitePlaceRepositoryFindActiveByNameOrCity(t *testing.T) {
	db := openTestDB(t)
	seedTestPlaces(t, db)
	repo := NewSqlitePlaceRepository(db)
	ctx := context.Background()

	byName, err := repo.FindActiveByNameOrCity(ctx, "marina beach")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if byName == nil || byName.PlaceID != 1 {
		t.Fatalf("by name = %+v, want place 1", byName)
	}

	byCity, err := repo.FindActiveByNameOrCity(ctx, "CHENNAI")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if byCity == nil || byCity.PlaceID != 1 {
		t.Fatalf("by city = %+v, want place 1", byCity)
	}

	// Inactive places never match, by name or city.
	inactive, err := repo.FindActiveByNameOrCity(ctx, "Shore Temple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inactive != nil {
		t.Fatalf("inactive place matched: %+v", inactive)
	}

	miss, err := repo.FindActiveByNameOrCity(ctx, "Atlantis")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if miss != nil {
		t.Fatalf("expected (nil, nil) miss, got %+v", miss)
	}
}

func TestSqlitePlaceRepositoryListActive(t *testing.T) {
	db := openTestDB(t)
	seedTestPlaces(t, db)
	repo := NewSqlitePlaceRepository(db)

	places, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(places) != 2 {
		t.Fatalf("len = %d, want 2 (inactive excluded)", len(places))
	}
	// Ordered by name.
	if places[0].Name != "Marina Beach" || places[1].Name != "Ooty Lake" {
		t.Fatalf("order = [%s, %s]", places[0].Name, places[1].Name)
	}
}

func TestSeedPlacesIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	seedTestPlaces(t, db)
	seedTestPlaces(t, db)

	repo := NewSqlitePlaceRepository(db)
	places, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(places) != 2 {
		t.Fatalf("len = %d after double seed, want 2", len(places))
	}
}

func TestSqlitePlanRepositoryRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewSqlitePlanRepository(db)
	ctx := context.Background()

	plan := &domain.TripPlanResult{
		TripName:        "South loop",
		IsFeasible:      true,
		Days:            []domain.DayItinerary{{Day: 1, Summary: "1 places, 4h driving, 290km"}},
		ExcludedPlaces:  []domain.ExcludedPlace{},
		TotalDistanceKm: 290,
	}

	id, err := repo.SavePlan(ctx, "owner-1", plan)
	if err != nil {
		t.Fatalf("save plan: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated plan id")
	}

	got, owner, err := repo.GetPlan(ctx, id)
	if err != nil {
		t.Fatalf("get plan: %v", err)
	}
	if owner != "owner-1" {
		t.Fatalf("owner = %q", owner)
	}
	if got == nil || got.TripName != "South loop" || got.TotalDistanceKm != 290 {
		t.Fatalf("round trip = %+v", got)
	}
	if len(got.Days) != 1 || got.Days[0].Summary != "1 places, 4h driving, 290km" {
		t.Fatalf("days = %+v", got.Days)
	}

	missing, _, err := repo.GetPlan(ctx, "nope")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing plan, got %+v", missing)
	}

	if _, err := repo.SavePlan(ctx, "", plan); err == nil {
		t.Fatal("empty owner must be rejected")
	}
}
