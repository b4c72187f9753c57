package domain

import "time"

// A requested place the builder could not schedule, with a human-readable
// reason. Exclusions never abort a planning run.
type ExcludedPlace struct {
	Name   string
	Reason string
}

// Aggregate counts and outcome flags over a finished plan.
type TripSummary struct {
	PlacesVisited  int
	PlacesExcluded int
	// EfficiencyPct is visited / total valid places * 100, one decimal.
	EfficiencyPct float64
	ReturnTime    time.Time
	DeadlineMet   bool
}

// TripPlanResult is the complete output of one planning call. It is created
// fresh per call and handed to persistence as an opaque value if the caller
// chooses to save it.
type TripPlanResult struct {
	TripName          string
	IsFeasible        bool
	Days              []DayItinerary
	ExcludedPlaces    []ExcludedPlace
	Warnings          []string
	TotalDistanceKm   int
	TotalDrivingHours float64
	FuelCostEstimate  float64
	Summary           TripSummary
}

// FeasibilityEstimate is the quick, matrix-free pre-check result. Advisory
// only; never a substitute for the full builder's output.
type FeasibilityEstimate struct {
	MatchedPlaces    int
	UnmatchedPlaces  []string
	RequiredMinutes  int
	AvailableMinutes int
	UtilizationPct   float64
	Feasible         bool
	Recommendation   string
}
