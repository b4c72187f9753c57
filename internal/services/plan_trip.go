package services

import (
	"context"
	"fmt"

	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/platform/obs"
	"tour-planner-service/internal/ports"
)

// Planner is the inbound boundary of the engine: validate -> match catalog
// -> resolve matrix -> build -> assemble. One call is strictly sequential
// and owns all of its state, so concurrent calls need no locking as long as
// the catalog and provider are safe for concurrent reads.
type Planner struct {
	Catalog  ports.PlaceCatalog
	Provider ports.MatrixProvider
	Params   domain.PlannerParams
}

func NewPlanner(catalog ports.PlaceCatalog, provider ports.MatrixProvider, params domain.PlannerParams) *Planner {
	return &Planner{Catalog: catalog, Provider: provider, Params: params.WithDefaults()}
}

// Plan produces a TripPlanResult for the request.
//
// Planning outcomes — nothing matched, provider failed, places excluded —
// come back inside the result, never as an error. An error return means an
// infrastructure fault outside the provider (catalog storage down) or a
// structurally invalid request.
func (p *Planner) Plan(ctx context.Context, req domain.TripRequest) (_ *domain.TripPlanResult, err error) {
	defer obs.Time(ctx, "planner.Plan")(&err)

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	valid, unmatched, err := MatchPlaces(ctx, p.Catalog, req.Places)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	if len(valid) == 0 {
		warnings := []string{WarningNoValidPlaces}
		if len(unmatched) > 0 {
			warnings = append(warnings, fmt.Sprintf("%d requested names matched no active place", len(unmatched)))
		}
		return InfeasibleResult(req, warnings...), nil
	}

	// One provider call per planning run, covering every pair up front.
	locations := make([]string, 0, len(valid)+1)
	locations = append(locations, req.StartingPoint)
	for _, v := range valid {
		locations = append(locations, v.Place.Name)
	}

	matrix, err := p.Provider.ResolveMatrix(ctx, locations)
	if err != nil {
		return InfeasibleResult(req, fmt.Sprintf("Distance provider failed: %v", err)), nil
	}
	if err := matrix.Validate(); err != nil {
		return InfeasibleResult(req, fmt.Sprintf("Distance provider returned an incomplete matrix: %v", err)), nil
	}
	if len(matrix.Locations) != len(locations) {
		return InfeasibleResult(req, fmt.Sprintf(
			"Distance provider covered %d of %d locations", len(matrix.Locations), len(locations),
		)), nil
	}

	out, err := BuildItinerary(BuildInput{
		Request: req,
		Valid:   valid,
		Matrix:  matrix,
		Params:  p.Params,
	})
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	return AssembleResult(req, len(valid), unmatched, out, p.Params), nil
}

// Estimate runs the matrix-free feasibility pre-check.
func (p *Planner) Estimate(ctx context.Context, req domain.TripRequest) (*domain.FeasibilityEstimate, error) {
	return EstimateFeasibility(ctx, p.Catalog, req, p.Params)
}
