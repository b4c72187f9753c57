package domain

import (
	"errors"
	"fmt"
	"time"
)

// A single multi-day tour planning request.
// The request owns no persistent state; every planning call gets a fresh copy.
type TripRequest struct {
	TripName              string
	StartingPoint         string
	Places                []PlaceRequest
	Days                  int
	MaxDrivingHoursPerDay int
	// StartDate is the calendar day the trip begins; only the date portion
	// is used. Wall-clock arithmetic for every stop derives from it.
	StartDate time.Time
	// ReturnDeadline, when nil, defaults to DefaultDeadlineHour on the day
	// after the last trip day.
	ReturnDeadline *time.Time
}

// Validate checks structural invariants. An empty or entirely-unmatched place
// list is a planning outcome (infeasible result), not a validation error.
func (r TripRequest) Validate() error {
	if r.StartingPoint == "" {
		return errors.New("trip request: starting point must be non-empty")
	}
	if r.Days < 1 {
		return fmt.Errorf("trip request: days must be >= 1, got %d", r.Days)
	}
	if r.MaxDrivingHoursPerDay <= 0 {
		return fmt.Errorf("trip request: max driving hours per day must be > 0, got %d", r.MaxDrivingHoursPerDay)
	}
	if r.StartDate.IsZero() {
		return errors.New("trip request: start date must be set")
	}
	return nil
}

// DayDate returns midnight of the given 1-based trip day.
func (r TripRequest) DayDate(day int) time.Time {
	y, m, d := r.StartDate.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, r.StartDate.Location()).AddDate(0, 0, day-1)
}

// DeadlineOrDefault resolves the effective return deadline.
func (r TripRequest) DeadlineOrDefault(defaultHour int) time.Time {
	if r.ReturnDeadline != nil {
		return *r.ReturnDeadline
	}
	// The day after the last trip day, at defaultHour.
	return r.DayDate(r.Days + 1).Add(time.Duration(defaultHour) * time.Hour)
}
