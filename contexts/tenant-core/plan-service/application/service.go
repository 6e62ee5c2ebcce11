package application

import (
	"context"
	"log/slog"
	"strings"

	"leadrail/contexts/tenant-core/plan-service/domain/entities"
	domainerrors "leadrail/contexts/tenant-core/plan-service/domain/errors"
	"leadrail/contexts/tenant-core/plan-service/ports"
)

type Service struct {
	Repo   ports.Repository
	Logger *slog.Logger
}

// CheckLimit reports whether the organization may create one more unit of
// the resource. Limits of zero or below are unlimited.
func (s Service) CheckLimit(ctx context.Context, orgID string, resource string, current int64) (ports.Decision, error) {
	plan, err := s.GetPlanForOrg(ctx, orgID)
	if err != nil {
		return ports.Decision{}, err
	}

	var limit int
	switch strings.TrimSpace(resource) {
	case "records":
		limit = plan.RecordLimit
	case "members":
		limit = plan.MemberLimit
	case "messages":
		limit = plan.MonthlyMessageLimit
	default:
		return ports.Decision{}, domainerrors.ErrUnknownResource
	}

	if limit <= 0 {
		return ports.Decision{Allowed: true, Limit: 0}, nil
	}
	decision := ports.Decision{Allowed: current < int64(limit), Limit: limit}
	if !decision.Allowed {
		resolveLogger(s.Logger).Info("plan limit hit",
			"event", "plan_limit_hit",
			"module", "tenant-core/plan-service",
			"layer", "application",
			"org_id", strings.TrimSpace(orgID),
			"resource", resource,
			"limit", limit,
			"current", current,
		)
	}
	return decision, nil
}

func (s Service) GetPlanForOrg(ctx context.Context, orgID string) (entities.Plan, error) {
	subscription, err := s.Repo.GetSubscription(ctx, strings.TrimSpace(orgID))
	if err != nil {
		return entities.Plan{}, err
	}
	return s.Repo.GetPlan(ctx, subscription.PlanID)
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
