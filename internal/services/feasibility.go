package services

import (
	"context"
	"fmt"

	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/ports"
)

// EstimateFeasibility is the cheap pre-check: no distance provider call.
// It sums each matched place's visit duration, charges a flat travel
// estimate per place, and compares against the trip's total driving budget.
// Advisory only; the full builder remains the source of truth.
func EstimateFeasibility(
	ctx context.Context,
	catalog ports.PlaceCatalog,
	req domain.TripRequest,
	params domain.PlannerParams,
) (*domain.FeasibilityEstimate, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("estimate feasibility: %w", err)
	}
	params = params.WithDefaults()

	valid, unmatched, err := MatchPlaces(ctx, catalog, req.Places)
	if err != nil {
		return nil, fmt.Errorf("estimate feasibility: %w", err)
	}

	required := 0
	for _, v := range valid {
		required += v.VisitMinutes() + params.EstTravelMinutesPerPlace
	}
	available := req.Days * req.MaxDrivingHoursPerDay * 60

	est := &domain.FeasibilityEstimate{
		MatchedPlaces:    len(valid),
		UnmatchedPlaces:  unmatched,
		RequiredMinutes:  required,
		AvailableMinutes: available,
		Feasible:         required <= available,
	}
	if available > 0 {
		est.UtilizationPct = roundOneDecimal(float64(required) / float64(available) * 100)
	}

	switch {
	case len(valid) == 0:
		est.Feasible = false
		est.Recommendation = WarningNoValidPlaces
	case est.Feasible:
		est.Recommendation = "The requested places fit the trip budget"
	default:
		// Suggest how many days the same daily budget would need.
		perDay := req.MaxDrivingHoursPerDay * 60
		needDays := (required + perDay - 1) / perDay
		est.Recommendation = fmt.Sprintf(
			"Estimated %d minutes needed against a budget of %d; consider extending the trip to %d days or dropping places",
			required, available, needDays,
		)
	}

	return est, nil
}
