package domain

// Immutable reference data describing a tourist place known to the catalog.
// Places are created and maintained out of band (seeded from JSON); the
// planning engine only reads them.
type Place struct {
	PlaceID             int
	Name                string
	City                string
	State               string
	Category            string
	Coordinates         Coordinates
	DefaultVisitMinutes int
	Description         string
	Active              bool
}

// A caller's reference to a Place by name, with an optional visit duration
// override and a priority rank. Lower priority numbers are scheduled
// preferentially when travel durations tie. Lives only for one planning call.
type PlaceRequest struct {
	Name         string
	VisitMinutes int // 0 means use the place's default
	Priority     int
}
