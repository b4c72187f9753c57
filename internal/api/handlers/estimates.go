package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"tour-planner-service/internal/api/dto"
	"tour-planner-service/internal/services"
)

type EstimateHandler struct {
	Planner *services.Planner
}

// Estimate runs the matrix-free feasibility pre-check. It gives quick
// feedback before full planning and never replaces the planner's answer.
func (h *EstimateHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.EstimateRequest

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

	est, err := h.Planner.Estimate(r.Context(), tripReq)
	if err != nil {
		log.Printf("estimate failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	unmatched := est.UnmatchedPlaces
	if unmatched == nil {
		unmatched = []string{}
	}

	writeJSON(w, r, http.StatusOK, dto.EstimateResponse{
		MatchedPlaces:    est.MatchedPlaces,
		UnmatchedPlaces:  unmatched,
		RequiredMinutes:  est.RequiredMinutes,
		AvailableMinutes: est.AvailableMinutes,
		UtilizationPct:   est.UtilizationPct,
		Feasible:         est.Feasible,
		Recommendation:   est.Recommendation,
	})
}
