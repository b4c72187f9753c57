package distance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/platform/obs"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// geocodeMany resolves place names individually via ORS /geocode/search.
// Names are deduplicated; individual calls may be retried via doWithRetry.
// A name that resolves to nothing fails the whole lookup: the engine must
// never plan against guessed coordinates.
func (o *ORSMatrixProvider) geocodeMany(
	ctx context.Context,
	names []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.geocodeMany")(&err)

	endpoint := o.baseURL + "/geocode/search"

	seen := make(map[string]struct{}, len(names))
	out := make(map[string]domain.Coordinates)
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		norm := o.normalize(name)

		resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
			req, err := o.newRequest(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return nil, err
			}
			q := req.URL.Query()
			q.Set("text", norm)
			if o.country != "" {
				q.Set("boundary.country", o.country)
			}
			q.Set("size", "1")
			req.URL.RawQuery = q.Encode()
			return req, nil
		})
		if err != nil {
			return nil, fmt.Errorf("geocode %q: %w", name, err)
		}

		var decoded geocodeResponse
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("decode geocode response for %q: %w", name, err)
		}
		resp.Body.Close()

		if len(decoded.Features) == 0 {
			return nil, fmt.Errorf("no geocode results for %q", name)
		}

		coords := decoded.Features[0].Geometry.Coordinates
		if len(coords) != 2 {
			return nil, fmt.Errorf("invalid coordinate format for %q", name)
		}

		out[norm] = domain.Coordinates{Lon: coords[0], Lat: coords[1]}
	}

	return out, nil
}
