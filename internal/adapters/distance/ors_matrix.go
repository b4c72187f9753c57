package distance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"

	"tour-planner-service/internal/domain"
)

type matrixRequest struct {
	Locations [][]float64 `json:"locations"`
	Metrics   []string    `json:"metrics"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// fetchMatrix retrieves the full NxN duration/distance matrix for the given
// coordinates from the OpenRouteService matrix endpoint. With no explicit
// sources/destinations ORS computes every ordered pair, which is exactly the
// shape the itinerary builder consumes.
func (o *ORSMatrixProvider) fetchMatrix(
	ctx context.Context,
	coords []domain.Coordinates,
) (durations, distances [][]int, err error) {
	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, o.profile)

	locations := make([][]float64, 0, len(coords))
	for _, c := range coords {
		locations = append(locations, c.CoordsToList())
	}

	payload, err := json.Marshal(matrixRequest{
		Locations: locations,
		Metrics:   []string{"distance", "duration"},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, nil, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, nil, fmt.Errorf("decode matrix response: %w", err)
	}

	n := len(coords)
	if len(mr.Distances) != n || len(mr.Durations) != n {
		return nil, nil, fmt.Errorf(
			"expected %d matrix rows; got distances=%d durations=%d",
			n, len(mr.Distances), len(mr.Durations),
		)
	}

	durations = make([][]int, n)
	distances = make([][]int, n)
	for i := 0; i < n; i++ {
		if len(mr.Distances[i]) != n || len(mr.Durations[i]) != n {
			return nil, nil, fmt.Errorf(
				"matrix row %d has %d distance and %d duration cells, want %d",
				i, len(mr.Distances[i]), len(mr.Durations[i]), n,
			)
		}

		durations[i] = make([]int, n)
		distances[i] = make([]int, n)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			metersPtr := mr.Distances[i][j]
			secondsPtr := mr.Durations[i][j]
			if metersPtr == nil || secondsPtr == nil {
				return nil, nil, fmt.Errorf("matrix returned no route between locations %d and %d", i, j)
			}

			// ORS returns float metrics; round to integers for domain consistency.
			distances[i][j] = int(math.Round(*metersPtr))
			durations[i][j] = int(math.Round(*secondsPtr))
		}
	}

	return durations, distances, nil
}
