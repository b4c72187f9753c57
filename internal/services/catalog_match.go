package services

import (
	"context"
	"fmt"
	"strings"

	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/ports"
)

// A requested place successfully resolved against the catalog, paired with
// the request that referenced it.
type ValidPlace struct {
	Place   *domain.Place
	Request domain.PlaceRequest
}

// VisitMinutes resolves the effective visit duration: the caller's override
// when present, the place default otherwise.
func (v ValidPlace) VisitMinutes() int {
	if v.Request.VisitMinutes > 0 {
		return v.Request.VisitMinutes
	}
	return v.Place.DefaultVisitMinutes
}

// MatchPlaces partitions the request's place list into catalog-matched pairs
// and unmatched names. Matching is case-insensitive on name or city and only
// active places participate. A place matched more than once is kept on its
// first occurrence so the working set never holds duplicates.
func MatchPlaces(
	ctx context.Context,
	catalog ports.PlaceCatalog,
	requests []domain.PlaceRequest,
) (valid []ValidPlace, unmatched []string, err error) {
	seen := make(map[int]struct{}, len(requests))

	for _, pr := range requests {
		name := strings.TrimSpace(pr.Name)
		if name == "" {
			continue
		}

		place, err := catalog.FindActiveByNameOrCity(ctx, name)
		if err != nil {
			return nil, nil, fmt.Errorf("match places: lookup %q: %w", name, err)
		}
		if place == nil {
			unmatched = append(unmatched, name)
			continue
		}
		if _, ok := seen[place.PlaceID]; ok {
			continue
		}
		seen[place.PlaceID] = struct{}{}

		pr.Name = name
		valid = append(valid, ValidPlace{Place: place, Request: pr})
	}

	return valid, unmatched, nil
}
