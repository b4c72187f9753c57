package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"tour-planner-service/internal/adapters/cache"
	"tour-planner-service/internal/adapters/distance"
	"tour-planner-service/internal/adapters/repositories"
	"tour-planner-service/internal/api"
	"tour-planner-service/internal/config"
	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, ORS) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/places.json")
	port := config.Get("PORT", "8080")
	country := config.Get("GEOCODE_COUNTRY", "IN")

	orsKey := os.Getenv("ORS_API_KEY")
	if strings.TrimSpace(orsKey) == "" {
		log.Fatal("ORS_API_KEY is required")
	}

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Initialize schema and seed the place catalog on startup for local runs.
	if err := initAndSeed(db, seedPath); err != nil {
		log.Fatal(err)
	}

	// ORS provider uses persistent SQLite caches to avoid repeated
	// geocode/matrix calls across planning runs.
	legCache := cache.NewSqliteLegCache(db)
	geocodeCache := cache.NewSqliteGeocodeCache(db)
	provider, err := distance.NewORSMatrixProvider(orsKey, country, legCache, geocodeCache)
	if err != nil {
		log.Fatal(err)
	}

	catalog := repositories.NewSqlitePlaceRepository(db)
	plans := repositories.NewSqlitePlanRepository(db)
	planner := services.NewPlanner(catalog, provider, plannerParamsFromEnv())
	router := api.NewRouter(planner, catalog, plans)

	// Timeouts are tuned for cold-cache planning (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// plannerParamsFromEnv lets deployments tune the scheduling constants
// without a rebuild; unset variables keep the launch defaults.
func plannerParamsFromEnv() domain.PlannerParams {
	def := domain.DefaultPlannerParams()
	return domain.PlannerParams{
		DayStartHour:             config.GetInt("DAY_START_HOUR", def.DayStartHour),
		DayCutoffHour:            config.GetInt("DAY_CUTOFF_HOUR", def.DayCutoffHour),
		DefaultDeadlineHour:      config.GetInt("DEFAULT_DEADLINE_HOUR", def.DefaultDeadlineHour),
		EstTravelMinutesPerPlace: config.GetInt("EST_TRAVEL_MINUTES_PER_PLACE", def.EstTravelMinutesPerPlace),
		FuelKmPerLiter:           config.GetFloat("FUEL_KM_PER_LITER", def.FuelKmPerLiter),
		FuelPricePerLiter:        config.GetFloat("FUEL_PRICE_PER_LITER", def.FuelPricePerLiter),
	}
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedPlacesFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
