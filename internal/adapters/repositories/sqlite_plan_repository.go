package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tour-planner-service/internal/domain"
)

// SQLite-backed implementation of the PlanRepository port. A plan is stored
// as an opaque JSON value; the engine never reads one back into scheduling.
type SqlitePlanRepository struct{ DB *sql.DB }

func NewSqlitePlanRepository(db *sql.DB) *SqlitePlanRepository {
	return &SqlitePlanRepository{DB: db}
}

// Persist a finished plan for an owner and return the generated plan ID.
func (s *SqlitePlanRepository) SavePlan(ctx context.Context, ownerID string, plan *domain.TripPlanResult) (string, error) {
	if s.DB == nil {
		return "", errors.New("plan repository: DB is nil")
	}
	if plan == nil {
		return "", errors.New("save plan: plan is nil")
	}
	if ownerID == "" {
		return "", errors.New("save plan: owner id must be non-empty")
	}

	payload, err := json.Marshal(plan)
	if err != nil {
		return "", fmt.Errorf("save plan: marshal plan: %w", err)
	}

	id := uuid.NewString()
	query := `
	INSERT INTO trip_plans (plan_id, owner_id, plan_json, created_at)
	VALUES (?, ?, ?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, query, id, ownerID, string(payload), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return "", fmt.Errorf("save plan: insert trip_plans: %w", err)
	}

	return id, nil
}

// Retrieve a saved plan and its owner. Returns (nil, "", nil) when no plan
// exists under the ID.
func (s *SqlitePlanRepository) GetPlan(ctx context.Context, id string) (*domain.TripPlanResult, string, error) {
	if s.DB == nil {
		return nil, "", errors.New("plan repository: DB is nil")
	}

	query := `
	SELECT owner_id, plan_json
	FROM trip_plans
	WHERE plan_id = ?;
	`

	var ownerID, payload string
	err := s.DB.QueryRowContext(ctx, query, id).Scan(&ownerID, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("get plan %q: %w", id, err)
	}

	var plan domain.TripPlanResult
	if err := json.Unmarshal([]byte(payload), &plan); err != nil {
		return nil, "", fmt.Errorf("get plan %q: unmarshal: %w", id, err)
	}

	return &plan, ownerID, nil
}
