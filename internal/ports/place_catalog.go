package ports

import (
	"context"

	"tour-planner-service/internal/domain"
)

// Port: read-only lookup of known tourist places.
type PlaceCatalog interface {
	// Match a requested name against active places, case-insensitively, by
	// canonical name or city. Returns (nil, nil) when nothing matches.
	FindActiveByNameOrCity(ctx context.Context, name string) (*domain.Place, error)
	// Retrieve all active places.
	ListActive(ctx context.Context) ([]*domain.Place, error)
}
