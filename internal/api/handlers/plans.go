package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"tour-planner-service/internal/api/dto"
	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/metrics"
	"tour-planner-service/internal/ports"
	"tour-planner-service/internal/services"
)

type PlanHandler struct {
	Planner *services.Planner
	Plans   ports.PlanRepository
}

// Plan runs the full itinerary engine for a trip request and optionally
// persists the result.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	tripReq, errMsg := toTripRequest(req.TripRequestBody)
	if errMsg != "" {
		writeError(w, r, http.StatusBadRequest, errMsg)
		return
	}
	if req.Save && strings.TrimSpace(req.OwnerID) == "" {
		writeError(w, r, http.StatusBadRequest, "owner_id is required when save is set")
		return
	}

	plan, err := h.Planner.Plan(r.Context(), tripReq)
	if err != nil {
		log.Printf("plan trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	outcome := "infeasible"
	if plan.IsFeasible {
		outcome = "feasible"
	}
	metrics.PlanRuns.WithLabelValues(outcome).Inc()
	metrics.PlanExcludedPlaces.Observe(float64(len(plan.ExcludedPlaces)))

	res := toPlanResponse(plan)

	if req.Save {
		id, err := h.Plans.SavePlan(r.Context(), strings.TrimSpace(req.OwnerID), plan)
		if err != nil {
			log.Printf("save plan failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		res.PlanID = id
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get serves GET /plans/{id} for previously saved plans.
func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/plans/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "plan not found")
		return
	}

	plan, _, err := h.Plans.GetPlan(r.Context(), id)
	if err != nil {
		log.Printf("get plan failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if plan == nil {
		writeError(w, r, http.StatusNotFound, "plan not found")
		return
	}

	res := toPlanResponse(plan)
	res.PlanID = id
	writeJSON(w, r, http.StatusOK, res)
}

// toTripRequest validates and converts the wire shape. The second return is
// a user-facing message; empty means valid.
func toTripRequest(body dto.TripRequestBody) (domain.TripRequest, string) {
	start := strings.TrimSpace(body.StartingPoint)
	if start == "" {
		return domain.TripRequest{}, "starting_point is required"
	}
	if body.Days < 1 || body.Days > 30 {
		return domain.TripRequest{}, "days must be between 1 and 30"
	}
	if body.MaxDrivingHoursPerDay < 1 || body.MaxDrivingHoursPerDay > 16 {
		return domain.TripRequest{}, "max_driving_hours_per_day must be between 1 and 16"
	}

	startDate := time.Now()
	if body.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", body.StartDate)
		if err != nil {
			return domain.TripRequest{}, "start_date must be formatted YYYY-MM-DD"
		}
		startDate = parsed
	}

	places := make([]domain.PlaceRequest, 0, len(body.Places))
	for i, p := range body.Places {
		if p.VisitMinutes < 0 {
			return domain.TripRequest{}, fmt.Sprintf("places[%d].visit_minutes must not be negative", i)
		}
		places = append(places, domain.PlaceRequest{
			Name:         p.Name,
			VisitMinutes: p.VisitMinutes,
			Priority:     p.Priority,
		})
	}

	return domain.TripRequest{
		TripName:              strings.TrimSpace(body.TripName),
		StartingPoint:         start,
		Places:                places,
		Days:                  body.Days,
		MaxDrivingHoursPerDay: body.MaxDrivingHoursPerDay,
		StartDate:             startDate,
		ReturnDeadline:        body.ReturnDeadline,
	}, ""
}

func toPlanResponse(plan *domain.TripPlanResult) dto.PlanResponse {
	days := make([]dto.DayResponse, 0, len(plan.Days))
	for _, d := range plan.Days {
		stops := make([]dto.StopResponse, 0, len(d.Stops))
		for _, s := range d.Stops {
			stops = append(stops, dto.StopResponse{
				Seq:     s.Seq,
				Kind:    string(s.Kind),
				Place:   s.Place,
				From:    s.From,
				To:      s.To,
				Start:   s.Start,
				End:     s.End,
				Minutes: s.Minutes,
				Meters:  s.Meters,
			})
		}
		days = append(days, dto.DayResponse{
			Day:            d.Day,
			Start:          d.Start,
			End:            d.End,
			Stops:          stops,
			DrivingMinutes: d.DrivingMinutes,
			DistanceMeters: d.DistanceMeters,
			Summary:        d.Summary,
		})
	}

	excluded := make([]dto.ExcludedPlaceResponse, 0, len(plan.ExcludedPlaces))
	for _, e := range plan.ExcludedPlaces {
		excluded = append(excluded, dto.ExcludedPlaceResponse{Name: e.Name, Reason: e.Reason})
	}

	warnings := plan.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	return dto.PlanResponse{
		TripName:          plan.TripName,
		IsFeasible:        plan.IsFeasible,
		Days:              days,
		ExcludedPlaces:    excluded,
		Warnings:          warnings,
		TotalDistanceKm:   plan.TotalDistanceKm,
		TotalDrivingHours: plan.TotalDrivingHours,
		FuelCostEstimate:  plan.FuelCostEstimate,
		Summary: dto.TripSummaryResponse{
			PlacesVisited:  plan.Summary.PlacesVisited,
			PlacesExcluded: plan.Summary.PlacesExcluded,
			EfficiencyPct:  plan.Summary.EfficiencyPct,
			ReturnTime:     plan.Summary.ReturnTime,
			DeadlineMet:    plan.Summary.DeadlineMet,
		},
	}
}
