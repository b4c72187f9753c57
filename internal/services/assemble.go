package services

import (
	"fmt"
	"math"
	"strings"

	"tour-planner-service/internal/domain"
)

// Warnings surfaced on assembled plans.
const (
	WarningNoValidPlaces = "No valid tourist places found in the request"
)

// AssembleResult aggregates a builder run into the fixed result schema:
// totals, fuel cost, summary counts, and warnings. Pure function over the
// builder output; it performs no scheduling of its own.
func AssembleResult(
	req domain.TripRequest,
	validCount int,
	unmatched []string,
	out *BuildOutput,
	params domain.PlannerParams,
) *domain.TripPlanResult {
	params = params.WithDefaults()

	totalMeters := 0
	totalDrivingMinutes := 0
	for _, d := range out.Days {
		totalMeters += d.DistanceMeters
		totalDrivingMinutes += d.DrivingMinutes
	}
	totalKm := totalMeters / 1000

	visited := validCount - len(out.Excluded)
	deadlineMet := !out.ReturnTime.After(out.Deadline)

	res := &domain.TripPlanResult{
		TripName:          req.TripName,
		IsFeasible:        deadlineMet,
		Days:              out.Days,
		ExcludedPlaces:    out.Excluded,
		TotalDistanceKm:   totalKm,
		TotalDrivingHours: roundOneDecimal(float64(totalDrivingMinutes) / 60),
		FuelCostEstimate:  roundOneDecimal(float64(totalKm) / params.FuelKmPerLiter * params.FuelPricePerLiter),
		Summary: domain.TripSummary{
			PlacesVisited:  visited,
			PlacesExcluded: len(out.Excluded),
			EfficiencyPct:  efficiencyPct(visited, validCount),
			ReturnTime:     out.ReturnTime,
			DeadlineMet:    deadlineMet,
		},
	}

	if len(unmatched) > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"Unknown places skipped: %s", strings.Join(unmatched, ", "),
		))
	}
	if len(out.Excluded) > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"%d of %d places could not be scheduled", len(out.Excluded), validCount,
		))
	}
	if !deadlineMet {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"Return at %s misses the deadline %s",
			out.ReturnTime.Format("Mon 15:04"), out.Deadline.Format("Mon 15:04"),
		))
	}

	return res
}

// InfeasibleResult builds the zero-day result used when the catalog matched
// nothing or the distance provider failed. Planning outcomes are values, not
// errors, so callers always receive a result to inspect.
func InfeasibleResult(req domain.TripRequest, warnings ...string) *domain.TripPlanResult {
	return &domain.TripPlanResult{
		TripName:       req.TripName,
		IsFeasible:     false,
		Days:           []domain.DayItinerary{},
		ExcludedPlaces: []domain.ExcludedPlace{},
		Warnings:       warnings,
	}
}

func efficiencyPct(visited, total int) float64 {
	if total == 0 {
		return 0
	}
	return roundOneDecimal(float64(visited) / float64(total) * 100)
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
