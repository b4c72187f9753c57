package domain

import (
	"errors"
	"fmt"
)

// DistanceMatrix is a travel duration/distance table indexed by a shared
// ordered location list. Durations are seconds, distances are meters, both
// row-major: Durations[from][to]. Symmetry is not assumed; directionality
// must be respected.
type DistanceMatrix struct {
	Locations []string
	Durations [][]int
	Distances [][]int
}

// Validate checks that both tables cover every ordered location pair.
func (m *DistanceMatrix) Validate() error {
	n := len(m.Locations)
	if n == 0 {
		return errors.New("distance matrix: location list is empty")
	}
	if len(m.Durations) != n || len(m.Distances) != n {
		return fmt.Errorf(
			"distance matrix: row count mismatch: locations=%d durations=%d distances=%d",
			n, len(m.Durations), len(m.Distances),
		)
	}
	for i := 0; i < n; i++ {
		if len(m.Durations[i]) != n || len(m.Distances[i]) != n {
			return fmt.Errorf(
				"distance matrix: column count mismatch at row %d: durations=%d distances=%d want %d",
				i, len(m.Durations[i]), len(m.Distances[i]), n,
			)
		}
	}
	return nil
}

// DurationSeconds returns the travel duration from one location index to another.
func (m *DistanceMatrix) DurationSeconds(from, to int) int { return m.Durations[from][to] }

// DistanceMeters returns the travel distance from one location index to another.
func (m *DistanceMatrix) DistanceMeters(from, to int) int { return m.Distances[from][to] }
