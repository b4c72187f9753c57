package distance

import (
	"context"
	"fmt"

	"tour-planner-service/internal/domain"
)

// MockLeg is one stubbed directed travel leg.
type MockLeg struct {
	From, To string
	Meters   int
	Seconds  int
}

// MockMatrixProvider serves deterministic matrices assembled from stubbed
// legs. Used in tests and local runs without an ORS key. A requested pair
// with no stubbed leg fails the lookup, mirroring a real provider that
// cannot route between two locations.
type MockMatrixProvider struct {
	legs map[string]MockLeg
	// Err, when set, is returned from every call to simulate provider outage.
	Err error
}

func NewMockMatrixProvider(legs []MockLeg) *MockMatrixProvider {
	m := make(map[string]MockLeg, len(legs))
	for _, l := range legs {
		m[l.From+"|"+l.To] = l
	}
	return &MockMatrixProvider{legs: m}
}

func (p *MockMatrixProvider) ResolveMatrix(ctx context.Context, locations []string) (*domain.DistanceMatrix, error) {
	if p.Err != nil {
		return nil, p.Err
	}

	n := len(locations)
	durations := make([][]int, n)
	distances := make([][]int, n)
	for i := 0; i < n; i++ {
		durations[i] = make([]int, n)
		distances[i] = make([]int, n)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			leg, ok := p.legs[locations[i]+"|"+locations[j]]
			if !ok {
				return nil, fmt.Errorf("missing leg %q -> %q", locations[i], locations[j])
			}
			durations[i][j] = leg.Seconds
			distances[i][j] = leg.Meters
		}
	}

	return &domain.DistanceMatrix{
		Locations: locations,
		Durations: durations,
		Distances: distances,
	}, nil
}
