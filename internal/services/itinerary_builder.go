package services

import (
	"errors"
	"fmt"
	"time"

	"tour-planner-service/internal/domain"
)

// Exclusion reasons reported per place. These are user-facing strings.
const (
	ReasonDeadline      = "cannot return to base by deadline"
	ReasonNotEnoughTime = "not enough time"
)

// dayState models the per-day scheduling lifecycle. A day starts accepting
// candidates, transitions to dayCapped when the driving budget or evening
// cutoff blocks further stops (remaining places are deferred, not excluded),
// and is closed after the optional mandatory return leg.
type dayState int

const (
	accepting dayState = iota
	dayCapped
)

// BuildInput carries everything one builder run needs. The matrix location
// list must be [startingPoint, valid[0].Place.Name, valid[1].Place.Name, ...]
// in that exact order.
type BuildInput struct {
	Request domain.TripRequest
	Valid   []ValidPlace
	Matrix  *domain.DistanceMatrix
	Params  domain.PlannerParams
}

// BuildOutput is the raw day-wise construction before aggregation.
type BuildOutput struct {
	Days       []domain.DayItinerary
	Excluded   []domain.ExcludedPlace
	ReturnTime time.Time
	Deadline   time.Time
}

// candidate tracks one unvisited place through the run. Index is the place's
// row/column in the distance matrix; the working set is index-tracked so the
// caller's slices are never aliased or mutated.
type candidate struct {
	index  int
	place  ValidPlace
	remain bool
}

// BuildItinerary runs the greedy day-by-day scheduler.
//
// Each step commits the remaining place with the smallest travel duration
// from the current location (ties broken by ascending priority, then name).
// The heuristic is intentionally myopic: it never reorders committed stops
// and never reopens a completed day. Places that cannot fit are deferred to
// later days and only become exclusions when the trip runs out of days, or
// immediately on the final day when the return deadline would be breached.
func BuildItinerary(in BuildInput) (*BuildOutput, error) {
	params := in.Params.WithDefaults()
	req := in.Request

	if len(in.Valid) == 0 {
		return nil, errors.New("build itinerary: no valid places")
	}
	if in.Matrix == nil {
		return nil, errors.New("build itinerary: matrix is nil")
	}
	if err := in.Matrix.Validate(); err != nil {
		return nil, fmt.Errorf("build itinerary: %w", err)
	}
	if len(in.Matrix.Locations) != len(in.Valid)+1 {
		return nil, fmt.Errorf(
			"build itinerary: matrix covers %d locations, want %d",
			len(in.Matrix.Locations), len(in.Valid)+1,
		)
	}

	pool := make([]candidate, len(in.Valid))
	remaining := len(in.Valid)
	for i, v := range in.Valid {
		pool[i] = candidate{index: i + 1, place: v, remain: true}
	}

	deadline := req.DeadlineOrDefault(params.DefaultDeadlineHour)

	out := &BuildOutput{Deadline: deadline}
	clock := req.DayDate(1).Add(time.Duration(params.DayStartHour) * time.Hour)
	current := 0 // matrix index of the starting point

	for day := 1; day <= req.Days; day++ {
		dayDate := req.DayDate(day)
		if day > 1 {
			// The clock resets each morning; the physical location carries
			// over (the bus does not teleport back to the start overnight).
			clock = dayDate.Add(time.Duration(params.DayStartHour) * time.Hour)
		}
		cutoff := dayDate.Add(time.Duration(params.DayCutoffHour) * time.Hour)

		final := day == req.Days
		capMinutes := req.MaxDrivingHoursPerDay * 60
		dayStart := clock

		var stops []domain.ItineraryStop
		seq := 0
		drivingMinutes := 0
		distanceMeters := 0
		visited := 0
		state := accepting

		for state == accepting && remaining > 0 && drivingMinutes < capMinutes {
			best := nearestRemaining(pool, current, in.Matrix)
			if best < 0 {
				break
			}
			cand := &pool[best]

			travelSeconds := in.Matrix.DurationSeconds(current, cand.index)
			travelMinutes := travelSeconds / 60
			visitMinutes := cand.place.VisitMinutes()
			finish := clock.
				Add(time.Duration(travelMinutes) * time.Minute).
				Add(time.Duration(visitMinutes) * time.Minute)

			if final {
				backMinutes := in.Matrix.DurationSeconds(cand.index, 0) / 60
				projectedReturn := finish.Add(time.Duration(backMinutes) * time.Minute)
				if projectedReturn.After(deadline) {
					// Hard exclusion: committing this place would strand the
					// bus past the return deadline. Keep scanning the rest.
					out.Excluded = append(out.Excluded, domain.ExcludedPlace{
						Name:   cand.place.Place.Name,
						Reason: ReasonDeadline,
					})
					cand.remain = false
					remaining--
					continue
				}
			}

			if drivingMinutes+travelMinutes > capMinutes {
				// Defer, don't exclude: the place stays eligible tomorrow.
				state = dayCapped
				continue
			}
			if !finish.Before(cutoff) {
				state = dayCapped
				continue
			}

			// Commit the leg and the visit.
			if travelSeconds > 0 {
				legMeters := in.Matrix.DistanceMeters(current, cand.index)
				seq++
				stops = append(stops, domain.ItineraryStop{
					Seq:     seq,
					Kind:    domain.StopTravel,
					From:    in.Matrix.Locations[current],
					To:      cand.place.Place.Name,
					Start:   clock,
					End:     clock.Add(time.Duration(travelMinutes) * time.Minute),
					Minutes: travelMinutes,
					Meters:  legMeters,
				})
				clock = clock.Add(time.Duration(travelMinutes) * time.Minute)
				drivingMinutes += travelMinutes
				distanceMeters += legMeters
			}

			seq++
			stops = append(stops, domain.ItineraryStop{
				Seq:     seq,
				Kind:    domain.StopVisit,
				Place:   cand.place.Place.Name,
				Start:   clock,
				End:     clock.Add(time.Duration(visitMinutes) * time.Minute),
				Minutes: visitMinutes,
			})
			clock = clock.Add(time.Duration(visitMinutes) * time.Minute)

			current = cand.index
			cand.remain = false
			remaining--
			visited++
		}

		// The return leg on the final day is unconditional; it may run past
		// the evening cutoff and is the one tolerated cap overrun.
		if final && current != 0 {
			backMinutes := in.Matrix.DurationSeconds(current, 0) / 60
			backMeters := in.Matrix.DistanceMeters(current, 0)
			seq++
			stops = append(stops, domain.ItineraryStop{
				Seq:     seq,
				Kind:    domain.StopTravel,
				From:    in.Matrix.Locations[current],
				To:      req.StartingPoint,
				Start:   clock,
				End:     clock.Add(time.Duration(backMinutes) * time.Minute),
				Minutes: backMinutes,
				Meters:  backMeters,
			})
			clock = clock.Add(time.Duration(backMinutes) * time.Minute)
			drivingMinutes += backMinutes
			distanceMeters += backMeters
			current = 0
		}

		out.Days = append(out.Days, domain.DayItinerary{
			Day:            day,
			Start:          dayStart,
			End:            clock,
			Stops:          stops,
			DrivingMinutes: drivingMinutes,
			DistanceMeters: distanceMeters,
			Summary: fmt.Sprintf(
				"%d places, %dh driving, %dkm",
				visited, drivingMinutes/60, distanceMeters/1000,
			),
		})
	}

	for _, c := range pool {
		if c.remain {
			out.Excluded = append(out.Excluded, domain.ExcludedPlace{
				Name:   c.place.Place.Name,
				Reason: ReasonNotEnoughTime,
			})
		}
	}

	out.ReturnTime = clock
	return out, nil
}

// nearestRemaining picks the remaining place with the smallest travel
// duration from the current location. Ties go to the lower priority number,
// then the lexicographically smaller name, so selection is deterministic.
func nearestRemaining(pool []candidate, current int, m *domain.DistanceMatrix) int {
	best := -1
	for i := range pool {
		if !pool[i].remain {
			continue
		}
		if best < 0 {
			best = i
			continue
		}

		di := m.DurationSeconds(current, pool[i].index)
		db := m.DurationSeconds(current, pool[best].index)
		switch {
		case di < db:
			best = i
		case di == db:
			pi, pb := pool[i].place.Request.Priority, pool[best].place.Request.Priority
			if pi < pb || (pi == pb && pool[i].place.Place.Name < pool[best].place.Place.Name) {
				best = i
			}
		}
	}
	return best
}
