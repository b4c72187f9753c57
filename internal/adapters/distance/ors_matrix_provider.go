package distance

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"tour-planner-service/internal/adapters/cache"
	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/platform/obs"
)

// LegCache persists directed travel legs so repeated planning runs over the
// same places skip the external matrix call.
type LegCache interface {
	GetMany(ctx context.Context, origin string, destinations []string) (map[string]cache.Leg, error)
	PutMany(ctx context.Context, origin string, legs map[string]cache.Leg) error
}

// GeocodeCache persists resolved coordinates per location name.
type GeocodeCache interface {
	GetMany(ctx context.Context, names []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, coords map[string]domain.Coordinates) error
}

// ORSMatrixProvider implements ports.MatrixProvider using OpenRouteService.
//
// It coordinates:
//   - Location name normalization
//   - Persistent geocode caching
//   - Persistent travel-leg caching
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type ORSMatrixProvider struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	profile      string
	country      string
	legCache     LegCache
	geocodeCache GeocodeCache
}

func NewORSMatrixProvider(apiKey, country string, legCache LegCache, geocodeCache GeocodeCache) (*ORSMatrixProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSMatrixProvider{
		session:      &http.Client{Timeout: 15 * time.Second},
		apiKey:       apiKey,
		baseURL:      "https://api.openrouteservice.org",
		profile:      "driving-hgv",
		country:      country,
		legCache:     legCache,
		geocodeCache: geocodeCache,
	}, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (o *ORSMatrixProvider) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ResolveMatrix returns the full duration/distance matrix over the ordered
// location list. Cached legs are reused; any miss triggers a single ORS
// matrix call covering every pair, whose legs are then cached.
func (o *ORSMatrixProvider) ResolveMatrix(ctx context.Context, locations []string) (_ *domain.DistanceMatrix, err error) {
	defer obs.Time(ctx, "ors.ResolveMatrix")(&err)

	if len(locations) < 2 {
		return nil, fmt.Errorf("resolve matrix: need at least 2 locations, got %d", len(locations))
	}

	norm := make([]string, len(locations))
	for i, l := range locations {
		n := o.normalize(l)
		if n == "" {
			return nil, fmt.Errorf("resolve matrix: location #%d is empty", i+1)
		}
		norm[i] = n
	}

	n := len(norm)
	durations := newSquare(n)
	distances := newSquare(n)

	cached, err := o.cachedLegs(ctx, norm)
	if err != nil {
		return nil, fmt.Errorf("resolve matrix: leg cache: %w", err)
	}

	complete := true
	for i := 0; i < n && complete; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			leg, ok := cached[norm[i]+"|"+norm[j]]
			if !ok {
				complete = false
				break
			}
			durations[i][j] = leg.Seconds
			distances[i][j] = leg.Meters
		}
	}

	if !complete {
		coords, err := o.resolveCoordinates(ctx, norm)
		if err != nil {
			return nil, fmt.Errorf("resolve matrix: %w", err)
		}

		durations, distances, err = o.fetchMatrix(ctx, coords)
		if err != nil {
			return nil, fmt.Errorf("resolve matrix: %w", err)
		}

		o.storeLegs(ctx, norm, durations, distances)
	}

	m := &domain.DistanceMatrix{
		Locations: locations,
		Durations: durations,
		Distances: distances,
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("resolve matrix: %w", err)
	}
	return m, nil
}

// cachedLegs collects every cached directed leg among the locations,
// keyed "origin|destination".
func (o *ORSMatrixProvider) cachedLegs(ctx context.Context, norm []string) (map[string]cache.Leg, error) {
	out := make(map[string]cache.Leg)
	if o.legCache == nil {
		return out, nil
	}

	for i, origin := range norm {
		targets := make([]string, 0, len(norm)-1)
		for j, t := range norm {
			if j != i {
				targets = append(targets, t)
			}
		}

		hits, err := o.legCache.GetMany(ctx, origin, targets)
		if err != nil {
			return nil, err
		}
		for dest, leg := range hits {
			out[origin+"|"+dest] = leg
		}
	}
	return out, nil
}

// resolveCoordinates geocodes every location, consulting the geocode cache
// first and writing fresh results back.
func (o *ORSMatrixProvider) resolveCoordinates(ctx context.Context, norm []string) ([]domain.Coordinates, error) {
	hits := make(map[string]domain.Coordinates)
	if o.geocodeCache != nil {
		var err error
		hits, err = o.geocodeCache.GetMany(ctx, norm)
		if err != nil {
			return nil, fmt.Errorf("geocode cache: %w", err)
		}
	}

	misses := make([]string, 0, len(norm))
	for _, name := range norm {
		if _, ok := hits[name]; !ok {
			misses = append(misses, name)
		}
	}

	if len(misses) > 0 {
		fresh, err := o.geocodeMany(ctx, misses)
		if err != nil {
			return nil, fmt.Errorf("geocoding locations: %w", err)
		}
		if o.geocodeCache != nil {
			if err := o.geocodeCache.PutMany(ctx, fresh); err != nil {
				log.Printf("geocode cache write failed: %v", err)
			}
		}
		for k, v := range fresh {
			hits[k] = v
		}
	}

	coords := make([]domain.Coordinates, len(norm))
	for i, name := range norm {
		c, ok := hits[name]
		if !ok {
			return nil, fmt.Errorf("missing coordinate for %q", name)
		}
		coords[i] = c
	}
	return coords, nil
}

// storeLegs writes a freshly fetched matrix back to the leg cache.
// Cache write failures are logged, never fatal.
func (o *ORSMatrixProvider) storeLegs(ctx context.Context, norm []string, durations, distances [][]int) {
	if o.legCache == nil {
		return
	}

	for i, origin := range norm {
		legs := make(map[string]cache.Leg, len(norm)-1)
		for j, dest := range norm {
			if j == i {
				continue
			}
			legs[dest] = cache.Leg{Meters: distances[i][j], Seconds: durations[i][j]}
		}
		if err := o.legCache.PutMany(ctx, origin, legs); err != nil {
			log.Printf("leg cache write failed origin=%q: %v", origin, err)
		}
	}
}

func newSquare(n int) [][]int {
	out := make([][]int, n)
	for i := range out {
		out[i] = make([]int, n)
	}
	return out
}
