package unit

import (
	"context"
	"errors"
	"fmt"
	"testing"

	recordservice "leadrail/contexts/sales-core/record-service"
	recorderrors "leadrail/contexts/sales-core/record-service/domain/errors"
	recordports "leadrail/contexts/sales-core/record-service/ports"
	recordhttp "leadrail/contexts/sales-core/record-service/transport/http"
	planservice "leadrail/contexts/tenant-core/plan-service"
	planmemory "leadrail/contexts/tenant-core/plan-service/adapters/memory"
	planapp "leadrail/contexts/tenant-core/plan-service/application"
	planentities "leadrail/contexts/tenant-core/plan-service/domain/entities"
)

// planGuard mirrors the composition-root adapter between the plan service
// and the record module's limit-check port.
type planGuard struct {
	service planapp.Service
}

func (g planGuard) CheckLimit(ctx context.Context, orgID string, resource string, current int64) (recordports.PlanDecision, error) {
	decision, err := g.service.CheckLimit(ctx, orgID, resource, current)
	if err != nil {
		return recordports.PlanDecision{}, err
	}
	return recordports.PlanDecision{Allowed: decision.Allowed, Limit: decision.Limit}, nil
}

func planModule(recordLimit int) planservice.Module {
	return planservice.NewInMemoryModule(planmemory.Seed{
		Plans: []planentities.Plan{{
			ID:          "plan-starter",
			Name:        "Starter",
			RecordLimit: recordLimit,
		}},
		Subscriptions: []planentities.Subscription{{
			OrgID:  "org-1",
			PlanID: "plan-starter",
			Status: "active",
		}},
	}, nil)
}

func TestPlanLimitBlocksRecordCreation(t *testing.T) {
	plans := planModule(2)
	records := recordservice.NewInMemoryModule(recordSeed(3, false), recordservice.Dependencies{
		Plan: planGuard{service: plans.Service},
	})

	for i := 0; i < 2; i++ {
		if _, err := records.Handler.CreateRecordHandler(context.Background(), "org-1", 10, "", recordhttp.CreateRecordRequest{
			Data: map[string]any{"name": fmt.Sprintf("lead %d", i)},
		}); err != nil {
			t.Fatalf("create record %d failed: %v", i, err)
		}
	}

	_, err := records.Handler.CreateRecordHandler(context.Background(), "org-1", 10, "", recordhttp.CreateRecordRequest{
		Data: map[string]any{"name": "one too many"},
	})
	if !errors.Is(err, recorderrors.ErrPlanLimitReached) {
		t.Fatalf("expected plan limit error, got %v", err)
	}
	var planErr *recorderrors.PlanLimitError
	if !errors.As(err, &planErr) {
		t.Fatalf("expected typed plan limit error, got %T", err)
	}
	if planErr.Limit != 2 {
		t.Fatalf("plan limit = %d, want 2", planErr.Limit)
	}
}

func TestZeroLimitPlanIsUnlimited(t *testing.T) {
	plans := planModule(0)
	records := recordservice.NewInMemoryModule(recordSeed(3, false), recordservice.Dependencies{
		Plan: planGuard{service: plans.Service},
	})

	for i := 0; i < 5; i++ {
		if _, err := records.Handler.CreateRecordHandler(context.Background(), "org-1", 10, "", recordhttp.CreateRecordRequest{
			Data: map[string]any{"name": fmt.Sprintf("lead %d", i)},
		}); err != nil {
			t.Fatalf("create record %d failed: %v", i, err)
		}
	}
}
