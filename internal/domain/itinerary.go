package domain

import "time"

type StopKind string

const (
	StopVisit  StopKind = "visit"
	StopTravel StopKind = "travel"
)

// One scheduled entry in a day: either a visit at a place or a travel leg
// between two locations. Seq establishes day-local order. Stops are
// immutable once emitted by the builder.
type ItineraryStop struct {
	Seq     int
	Kind    StopKind
	Place   string // visit only
	From    string // travel only
	To      string // travel only
	Start   time.Time
	End     time.Time
	Minutes int
	Meters  int // travel only
}

// The schedule for a single trip day, with aggregated driving metrics.
type DayItinerary struct {
	Day            int
	Start          time.Time
	End            time.Time
	Stops          []ItineraryStop
	DrivingMinutes int
	DistanceMeters int
	Summary        string
}
