package dto

type PlaceResponse struct {
	PlaceID             int     `json:"place_id"`
	Name                string  `json:"name"`
	City                string  `json:"city"`
	State               string  `json:"state"`
	Category            string  `json:"category"`
	Lon                 float64 `json:"lon"`
	Lat                 float64 `json:"lat"`
	DefaultVisitMinutes int     `json:"default_visit_minutes"`
	Description         string  `json:"description,omitempty"`
}

type ListPlacesResponse struct {
	Places []PlaceResponse `json:"places"`
}
