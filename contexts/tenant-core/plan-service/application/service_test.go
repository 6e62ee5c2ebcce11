package application

import (
	"context"
	"errors"
	"testing"

	"leadrail/contexts/tenant-core/plan-service/adapters/memory"
	"leadrail/contexts/tenant-core/plan-service/domain/entities"
	domainerrors "leadrail/contexts/tenant-core/plan-service/domain/errors"
)

func newTestService() Service {
	store := memory.NewStore(memory.Seed{
		Plans: []entities.Plan{
			{ID: "starter", Name: "Starter", RecordLimit: 100, MemberLimit: 3, MonthlyMessageLimit: 500},
			{ID: "enterprise", Name: "Enterprise", RecordLimit: 0},
		},
		Subscriptions: []entities.Subscription{
			{OrgID: "org-1", PlanID: "starter", Status: "active"},
			{OrgID: "org-2", PlanID: "enterprise", Status: "active"},
		},
	})
	return Service{Repo: store}
}

func TestCheckLimitAllowsBelowAndDeniesAtLimit(t *testing.T) {
	service := newTestService()

	decision, err := service.CheckLimit(context.Background(), "org-1", "records", 99)
	if err != nil {
		t.Fatalf("check below limit failed: %v", err)
	}
	if !decision.Allowed || decision.Limit != 100 {
		t.Fatalf("below limit decision = %+v, want allowed with limit 100", decision)
	}

	decision, err = service.CheckLimit(context.Background(), "org-1", "records", 100)
	if err != nil {
		t.Fatalf("check at limit failed: %v", err)
	}
	if decision.Allowed || decision.Limit != 100 {
		t.Fatalf("at limit decision = %+v, want denied with limit 100", decision)
	}
}

func TestCheckLimitZeroMeansUnlimited(t *testing.T) {
	service := newTestService()

	decision, err := service.CheckLimit(context.Background(), "org-2", "records", 1_000_000)
	if err != nil {
		t.Fatalf("check unlimited failed: %v", err)
	}
	if !decision.Allowed {
		t.Fatalf("unlimited plan denied at %+v", decision)
	}
}

func TestCheckLimitUnknownResource(t *testing.T) {
	service := newTestService()

	_, err := service.CheckLimit(context.Background(), "org-1", "widgets", 0)
	if !errors.Is(err, domainerrors.ErrUnknownResource) {
		t.Fatalf("expected unknown resource error, got %v", err)
	}
}

func TestCheckLimitMissingSubscription(t *testing.T) {
	service := newTestService()

	_, err := service.CheckLimit(context.Background(), "org-404", "records", 0)
	if !errors.Is(err, domainerrors.ErrSubscriptionNotFound) {
		t.Fatalf("expected subscription not found, got %v", err)
	}
}
