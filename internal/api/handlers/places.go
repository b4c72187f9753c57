package handlers

import (
	"log"
	"net/http"

	"tour-planner-service/internal/api/dto"
	"tour-planner-service/internal/ports"
)

// PlaceHandler exposes read-only catalog endpoints.
type PlaceHandler struct {
	Catalog ports.PlaceCatalog
}

func (h *PlaceHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	places, err := h.Catalog.ListActive(r.Context())
	if err != nil {
		log.Printf("list places failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListPlacesResponse{
		Places: make([]dto.PlaceResponse, 0, len(places)),
	}
	for _, p := range places {
		res.Places = append(res.Places, dto.PlaceResponse{
			PlaceID:             p.PlaceID,
			Name:                p.Name,
			City:                p.City,
			State:               p.State,
			Category:            p.Category,
			Lon:                 p.Coordinates.Lon,
			Lat:                 p.Coordinates.Lat,
			DefaultVisitMinutes: p.DefaultVisitMinutes,
			Description:         p.Description,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
