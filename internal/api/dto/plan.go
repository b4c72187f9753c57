package dto

import "time"

type PlaceRequest struct {
	Name         string `json:"name"`
	VisitMinutes int    `json:"visit_minutes"`
	Priority     int    `json:"priority"`
}

// TripRequestBody is the shared request shape for planning and estimating.
type TripRequestBody struct {
	TripName              string         `json:"trip_name"`
	StartingPoint         string         `json:"starting_point"`
	Places                []PlaceRequest `json:"places"`
	Days                  int            `json:"days"`
	MaxDrivingHoursPerDay int            `json:"max_driving_hours_per_day"`
	StartDate             string         `json:"start_date"` // YYYY-MM-DD, defaults to today
	ReturnDeadline        *time.Time     `json:"return_deadline"`
}

type PlanRequest struct {
	TripRequestBody
	Save    bool   `json:"save"`
	OwnerID string `json:"owner_id"`
}

type StopResponse struct {
	Seq     int       `json:"seq"`
	Kind    string    `json:"kind"`
	Place   string    `json:"place,omitempty"`
	From    string    `json:"from,omitempty"`
	To      string    `json:"to,omitempty"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Minutes int       `json:"minutes"`
	Meters  int       `json:"meters,omitempty"`
}

type DayResponse struct {
	Day            int            `json:"day"`
	Start          time.Time      `json:"start"`
	End            time.Time      `json:"end"`
	Stops          []StopResponse `json:"stops"`
	DrivingMinutes int            `json:"driving_minutes"`
	DistanceMeters int            `json:"distance_meters"`
	Summary        string         `json:"summary"`
}

type ExcludedPlaceResponse struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type TripSummaryResponse struct {
	PlacesVisited  int       `json:"places_visited"`
	PlacesExcluded int       `json:"places_excluded"`
	EfficiencyPct  float64   `json:"efficiency_pct"`
	ReturnTime     time.Time `json:"return_time"`
	DeadlineMet    bool      `json:"deadline_met"`
}

type PlanResponse struct {
	PlanID            string                  `json:"plan_id,omitempty"`
	TripName          string                  `json:"trip_name,omitempty"`
	IsFeasible        bool                    `json:"is_feasible"`
	Days              []DayResponse           `json:"days"`
	ExcludedPlaces    []ExcludedPlaceResponse `json:"excluded_places"`
	Warnings          []string                `json:"warnings"`
	TotalDistanceKm   int                     `json:"total_distance_km"`
	TotalDrivingHours float64                 `json:"total_driving_hours"`
	FuelCostEstimate  float64                 `json:"fuel_cost_estimate"`
	Summary           TripSummaryResponse     `json:"summary"`
}
