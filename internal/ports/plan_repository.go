package ports

import (
	"context"

	"tour-planner-service/internal/domain"
)

// Port: persistence for finished plans. The engine treats a saved plan as an
// opaque value; saving is optional and caller-driven.
type PlanRepository interface {
	// Persist a plan for an owner and return the generated plan ID.
	SavePlan(ctx context.Context, ownerID string, plan *domain.TripPlanResult) (string, error)
	// Retrieve a saved plan and its owner by ID. Returns (nil, "", nil) when
	// no plan exists under the ID.
	GetPlan(ctx context.Context, id string) (*domain.TripPlanResult, string, error)
}
