package ports

import (
	"context"

	"tour-planner-service/internal/domain"
)

// Contract for resolving a full travel duration/distance matrix between an
// ordered list of named locations. The returned matrix must cover every
// ordered pair and preserve the input ordering. On any failure (provider
// unreachable, a name unresolvable, incomplete matrix) the engine marks the
// whole plan infeasible; it never guesses distances.
type MatrixProvider interface {
	ResolveMatrix(ctx context.Context, locations []string) (*domain.DistanceMatrix, error)
}
