package ports

import (
	"context"

	"leadrail/contexts/tenant-core/plan-service/domain/entities"
)

type Repository interface {
	GetSubscription(ctx context.Context, orgID string) (entities.Subscription, error)
	GetPlan(ctx context.Context, planID string) (entities.Plan, error)
}

// Decision is the outcome of a limit check: whether one more unit of the
// resource may be created, and the limit to show when it may not.
type Decision struct {
	Allowed bool
	Limit   int
}
