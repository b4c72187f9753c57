package services

import (
	"context"
	"testing"
	"time"

	"tour-planner-service/internal/adapters/distance"
	"tour-planner-service/internal/domain"
)

func testPlace(id int, name, city string, visitMinutes int) *domain.Place {
	return &domain.Place{
		PlaceID:             id,
		Name:                name,
		City:                city,
		State:               "Tamil Nadu",
		DefaultVisitMinutes: visitMinutes,
		Active:              true,
	}
}

func validPlace(p *domain.Place, priority int) ValidPlace {
	return ValidPlace{Place: p, Request: domain.PlaceRequest{Name: p.Name, Priority: priority}}
}

// southTripLegs stubs the Dharmapuri / Chennai / Kanyakumari geometry:
// Chennai 4h from the start, Kanyakumari 6h beyond Chennai and 8h from home.
func southTripLegs() []distance.MockLeg {
	return []distance.MockLeg{
		{From: "Dharmapuri", To: "Chennai", Meters: 290000, Seconds: 14400},
		{From: "Chennai", To: "Dharmapuri", Meters: 290000, Seconds: 14400},
		{From: "Dharmapuri", To: "Kanyakumari", Meters: 560000, Seconds: 36000},
		{From: "Kanyakumari", To: "Dharmapuri", Meters: 560000, Seconds: 28800},
		{From: "Chennai", To: "Kanyakumari", Meters: 430000, Seconds: 21600},
		{From: "Kanyakumari", To: "Chennai", Meters: 430000, Seconds: 21600},
	}
}

func resolveMatrix(t *testing.T, legs []distance.MockLeg, locations []string) *domain.DistanceMatrix {
	t.Helper()
	m, err := distance.NewMockMatrixProvider(legs).ResolveMatrix(context.Background(), locations)
	if err != nil {
		t.Fatalf("resolve matrix: %v", err)
	}
	return m
}

func stopPlaces(days []domain.DayItinerary) []string {
	var names []string
	for _, d := range days {
		for _, s := range d.Stops {
			if s.Kind == domain.StopVisit {
				names = append(names, s.Place)
			}
		}
	}
	return names
}

func TestBuildItineraryTwoDayTour(t *testing.T) {
	chennai := testPlace(1, "Chennai", "Chennai", 480)
	kanyakumari := testPlace(2, "Kanyakumari", "Kanyakumari", 360)
	valid := []ValidPlace{validPlace(chennai, 1), validPlace(kanyakumari, 1)}

	deadline := time.Date(2026, 1, 7, 2, 30, 0, 0, time.UTC)
	req := domain.TripRequest{
		StartingPoint:         "Dharmapuri",
		Days:                  2,
		MaxDrivingHoursPerDay: 10,
		StartDate:             time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		ReturnDeadline:        &deadline,
	}

	matrix := resolveMatrix(t, southTripLegs(), []string{"Dharmapuri", "Chennai", "Kanyakumari"})

	out, err := BuildItinerary(BuildInput{
		Request: req,
		Valid:   valid,
		Matrix:  matrix,
		Params:  domain.DefaultPlannerParams(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(out.Days))
	}
	if len(out.Excluded) != 0 {
		t.Fatalf("expected no exclusions, got %v", out.Excluded)
	}

	// Day 1: travel to Chennai, long visit, then the evening cutoff defers
	// Kanyakumari to the next morning.
	day1 := out.Days[0]
	if got := stopPlaces([]domain.DayItinerary{day1}); len(got) != 1 || got[0] != "Chennai" {
		t.Fatalf("day 1 visits = %v, want [Chennai]", got)
	}
	if day1.DrivingMinutes != 240 {
		t.Fatalf("day 1 driving = %d, want 240", day1.DrivingMinutes)
	}
	if day1.Summary != "1 places, 4h driving, 290km" {
		t.Fatalf("day 1 summary = %q", day1.Summary)
	}

	// Day 2 resumes from Chennai (no teleport home overnight), visits
	// Kanyakumari and runs the unconditional return leg.
	day2 := out.Days[1]
	if got := stopPlaces([]domain.DayItinerary{day2}); len(got) != 1 || got[0] != "Kanyakumari" {
		t.Fatalf("day 2 visits = %v, want [Kanyakumari]", got)
	}
	if len(day2.Stops) != 3 {
		t.Fatalf("day 2 stops = %d, want travel+visit+return", len(day2.Stops))
	}
	last := day2.Stops[len(day2.Stops)-1]
	if last.Kind != domain.StopTravel || last.To != "Dharmapuri" {
		t.Fatalf("day 2 must end with the return leg, got %+v", last)
	}
	if day2.DrivingMinutes != 840 {
		t.Fatalf("day 2 driving = %d, want 840 (360 out + 480 home)", day2.DrivingMinutes)
	}

	wantReturn := time.Date(2026, 1, 7, 2, 0, 0, 0, time.UTC)
	if !out.ReturnTime.Equal(wantReturn) {
		t.Fatalf("return time = %v, want %v", out.ReturnTime, wantReturn)
	}

	// Driving stays within the daily cap except for the final return leg.
	capMinutes := req.Days * req.MaxDrivingHoursPerDay * 60
	total := 0
	for _, d := range out.Days {
		total += d.DrivingMinutes
	}
	if total > capMinutes+last.Minutes {
		t.Fatalf("total driving %d exceeds cap %d + return %d", total, capMinutes, last.Minutes)
	}
}

func TestBuildItineraryDefaultDeadlineExcludesFarPlace(t *testing.T) {
	chennai := testPlace(1, "Chennai", "Chennai", 480)
	kanyakumari := testPlace(2, "Kanyakumari", "Kanyakumari", 360)
	valid := []ValidPlace{validPlace(chennai, 1), validPlace(kanyakumari, 1)}

	// No explicit deadline: 01:00 on the day after day 2. The projected
	// Kanyakumari round trip lands at 02:00, so it must be excluded and the
	// bus heads home from Chennai instead.
	req := domain.TripRequest{
		StartingPoint:         "Dharmapuri",
		Days:                  2,
		MaxDrivingHoursPerDay: 10,
		StartDate:             time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
	}

	matrix := resolveMatrix(t, southTripLegs(), []string{"Dharmapuri", "Chennai", "Kanyakumari"})

	out, err := BuildItinerary(BuildInput{
		Request: req,
		Valid:   valid,
		Matrix:  matrix,
		Params:  domain.DefaultPlannerParams(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := stopPlaces(out.Days); len(got) != 1 || got[0] != "Chennai" {
		t.Fatalf("visits = %v, want [Chennai]", got)
	}
	if len(out.Excluded) != 1 || out.Excluded[0].Name != "Kanyakumari" {
		t.Fatalf("excluded = %v, want Kanyakumari", out.Excluded)
	}
	if out.Excluded[0].Reason != ReasonDeadline {
		t.Fatalf("reason = %q, want %q", out.Excluded[0].Reason, ReasonDeadline)
	}

	day2 := out.Days[1]
	last := day2.Stops[len(day2.Stops)-1]
	if last.Kind != domain.StopTravel || last.From != "Chennai" || last.To != "Dharmapuri" {
		t.Fatalf("day 2 must end with Chennai -> Dharmapuri, got %+v", last)
	}
	wantReturn := time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC)
	if !out.ReturnTime.Equal(wantReturn) {
		t.Fatalf("return time = %v, want %v", out.ReturnTime, wantReturn)
	}
}

func TestBuildItinerarySingleDayTooFar(t *testing.T) {
	remote := testPlace(1, "Remote Falls", "Nowhere", 60)
	valid := []ValidPlace{validPlace(remote, 1)}

	legs := []distance.MockLeg{
		{From: "Base", To: "Remote Falls", Meters: 500000, Seconds: 36000},
		{From: "Remote Falls", To: "Base", Meters: 500000, Seconds: 36000},
	}
	req := domain.TripRequest{
		StartingPoint:         "Base",
		Days:                  1,
		MaxDrivingHoursPerDay: 12,
		StartDate:             time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
	}

	matrix := resolveMatrix(t, legs, []string{"Base", "Remote Falls"})

	out, err := BuildItinerary(BuildInput{
		Request: req,
		Valid:   valid,
		Matrix:  matrix,
		Params:  domain.DefaultPlannerParams(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := stopPlaces(out.Days); len(got) != 0 {
		t.Fatalf("visits = %v, want none", got)
	}
	if len(out.Excluded) != 1 || out.Excluded[0].Reason != ReasonDeadline {
		t.Fatalf("excluded = %v, want deadline exclusion", out.Excluded)
	}
	// The bus never left, so there is no return leg either.
	if len(out.Days[0].Stops) != 0 {
		t.Fatalf("day 1 stops = %v, want empty", out.Days[0].Stops)
	}
}

func TestBuildItineraryDefersToLaterDaysAndExcludesLeftovers(t *testing.T) {
	a := testPlace(1, "A", "A", 300)
	b := testPlace(2, "B", "B", 300)
	c := testPlace(3, "C", "C", 300)
	valid := []ValidPlace{validPlace(a, 1), validPlace(b, 2), validPlace(c, 3)}

	// Every leg is 3h; the 6h daily cap fits one outbound leg plus nothing
	// else, so each day visits exactly one place and the third never fits
	// inside two days (day 2 must also return home).
	legs := []distance.MockLeg{}
	names := []string{"Start", "A", "B", "C"}
	for _, f := range names {
		for _, to := range names {
			if f != to {
				legs = append(legs, distance.MockLeg{From: f, To: to, Meters: 150000, Seconds: 10800})
			}
		}
	}

	req := domain.TripRequest{
		StartingPoint:         "Start",
		Days:                  2,
		MaxDrivingHoursPerDay: 6,
		StartDate:             time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
	}

	matrix := resolveMatrix(t, legs, names)

	out, err := BuildItinerary(BuildInput{
		Request: req,
		Valid:   valid,
		Matrix:  matrix,
		Params:  domain.DefaultPlannerParams(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	visits := stopPlaces(out.Days)

	// Ties on travel duration break by priority: A first, then B.
	if len(visits) != 2 || visits[0] != "A" || visits[1] != "B" {
		t.Fatalf("visits = %v, want [A B]", visits)
	}

	// No place is ever scheduled twice, and every valid place is accounted
	// for as either visited or excluded.
	seen := map[string]int{}
	for _, v := range visits {
		seen[v]++
	}
	for name, n := range seen {
		if n > 1 {
			t.Fatalf("place %s scheduled %d times", name, n)
		}
	}
	if len(visits)+len(out.Excluded) != len(valid) {
		t.Fatalf("visited %d + excluded %d != valid %d", len(visits), len(out.Excluded), len(valid))
	}
	if out.Excluded[0].Name != "C" || out.Excluded[0].Reason != ReasonNotEnoughTime {
		t.Fatalf("excluded = %v, want C / not enough time", out.Excluded)
	}
}

func TestBuildItineraryZeroTravelOmitsLeg(t *testing.T) {
	local := testPlace(1, "Town Museum", "Base", 90)
	valid := []ValidPlace{validPlace(local, 1)}

	legs := []distance.MockLeg{
		{From: "Base", To: "Town Museum", Meters: 0, Seconds: 0},
		{From: "Town Museum", To: "Base", Meters: 0, Seconds: 0},
	}
	req := domain.TripRequest{
		StartingPoint:         "Base",
		Days:                  1,
		MaxDrivingHoursPerDay: 4,
		StartDate:             time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
	}

	matrix := resolveMatrix(t, legs, []string{"Base", "Town Museum"})

	out, err := BuildItinerary(BuildInput{
		Request: req,
		Valid:   valid,
		Matrix:  matrix,
		Params:  domain.DefaultPlannerParams(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// No outbound travel stop is emitted for a zero-duration leg; the visit
	// comes first and no driving time accrues.
	day := out.Days[0]
	if len(day.Stops) == 0 || day.Stops[0].Kind != domain.StopVisit {
		t.Fatalf("stops = %+v, want the visit first with no outbound leg", day.Stops)
	}
	if day.DrivingMinutes != 0 {
		t.Fatalf("driving minutes = %d, want 0", day.DrivingMinutes)
	}
}

func TestBuildItineraryVisitDurationOverride(t *testing.T) {
	place := testPlace(1, "Quick Stop", "Near", 240)
	valid := []ValidPlace{{
		Place:   place,
		Request: domain.PlaceRequest{Name: place.Name, VisitMinutes: 30, Priority: 1},
	}}

	legs := []distance.MockLeg{
		{From: "Base", To: "Quick Stop", Meters: 10000, Seconds: 600},
		{From: "Quick Stop", To: "Base", Meters: 10000, Seconds: 600},
	}
	req := domain.TripRequest{
		StartingPoint:         "Base",
		Days:                  1,
		MaxDrivingHoursPerDay: 2,
		StartDate:             time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
	}

	matrix := resolveMatrix(t, legs, []string{"Base", "Quick Stop"})

	out, err := BuildItinerary(BuildInput{
		Request: req,
		Valid:   valid,
		Matrix:  matrix,
		Params:  domain.DefaultPlannerParams(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var visit *domain.ItineraryStop
	for i := range out.Days[0].Stops {
		if out.Days[0].Stops[i].Kind == domain.StopVisit {
			visit = &out.Days[0].Stops[i]
		}
	}
	if visit == nil {
		t.Fatal("no visit stop emitted")
	}
	if visit.Minutes != 30 {
		t.Fatalf("visit minutes = %d, want the 30-minute override", visit.Minutes)
	}
}
