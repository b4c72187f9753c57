package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tour-planner-service/internal/api/handlers"
	"tour-planner-service/internal/metrics"
	"tour-planner-service/internal/ports"
	"tour-planner-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(planner *services.Planner, catalog ports.PlaceCatalog, plans ports.PlanRepository) http.Handler {
	metrics.RegisterDefault()

	mux := http.NewServeMux()

	placeHandler := &handlers.PlaceHandler{Catalog: catalog}
	planHandler := &handlers.PlanHandler{Planner: planner, Plans: plans}
	estimateHandler := &handlers.EstimateHandler{Planner: planner}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/places", placeHandler.List)
	mux.HandleFunc("/plans", planHandler.Plan)
	mux.HandleFunc("/plans/", planHandler.Get)
	mux.HandleFunc("/estimates", estimateHandler.Estimate)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return loggingMiddleware(mux)
}
