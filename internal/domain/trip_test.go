package domain

import (
	"testing"
	"time"
)

func TestTripRequestValidate(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	valid := TripRequest{
		StartingPoint:         "Dharmapuri",
		Days:                  2,
		MaxDrivingHoursPerDay: 10,
		StartDate:             start,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name string
		mut  func(r *TripRequest)
	}{
		{"empty starting point", func(r *TripRequest) { r.StartingPoint = "" }},
		{"zero days", func(r *TripRequest) { r.Days = 0 }},
		{"zero driving hours", func(r *TripRequest) { r.MaxDrivingHoursPerDay = 0 }},
		{"zero start date", func(r *TripRequest) { r.StartDate = time.Time{} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := valid
			tc.mut(&r)
			if err := r.Validate(); err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
		})
	}
}

func TestTripRequestDeadlineOrDefault(t *testing.T) {
	req := TripRequest{
		StartingPoint:         "Dharmapuri",
		Days:                  3,
		MaxDrivingHoursPerDay: 8,
		StartDate:             time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC),
	}

	// Default: 01:00 on the day after the last trip day, regardless of the
	// time-of-day carried by StartDate.
	got := req.DeadlineOrDefault(1)
	want := time.Date(2026, 1, 8, 1, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("default deadline = %v, want %v", got, want)
	}

	explicit := time.Date(2026, 1, 7, 20, 0, 0, 0, time.UTC)
	req.ReturnDeadline = &explicit
	if got := req.DeadlineOrDefault(1); !got.Equal(explicit) {
		t.Fatalf("explicit deadline = %v, want %v", got, explicit)
	}
}

func TestTripRequestDayDate(t *testing.T) {
	req := TripRequest{StartDate: time.Date(2026, 1, 5, 14, 45, 0, 0, time.UTC)}

	if got := req.DayDate(1); !got.Equal(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("day 1 = %v", got)
	}
	if got := req.DayDate(3); !got.Equal(time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("day 3 = %v", got)
	}
}
