package dto

type EstimateRequest struct {
	TripRequestBody
}

type EstimateResponse struct {
	MatchedPlaces    int      `json:"matched_places"`
	UnmatchedPlaces  []string `json:"unmatched_places"`
	RequiredMinutes  int      `json:"required_minutes"`
	AvailableMinutes int      `json:"available_minutes"`
	UtilizationPct   float64  `json:"utilization_pct"`
	Feasible         bool     `json:"feasible"`
	Recommendation   string   `json:"recommendation"`
}
