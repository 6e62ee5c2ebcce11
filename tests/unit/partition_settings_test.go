package unit

import (
	"context"
	"errors"
	"testing"

	partitionservice "leadrail/contexts/sales-core/partition-service"
	"leadrail/contexts/sales-core/partition-service/adapters/memory"
	"leadrail/contexts/sales-core/partition-service/domain/entities"
	domainerrors "leadrail/contexts/sales-core/partition-service/domain/errors"
	httptransport "leadrail/contexts/sales-core/partition-service/transport/http"
)

func partitionModule() partitionservice.Module {
	return partitionservice.NewInMemoryModule(memory.Seed{
		Workspaces: []entities.Workspace{{ID: 1, OrgID: "org-1", Name: "Sales HQ"}},
	}, nil)
}

func TestPartitionDistributionSetupFlow(t *testing.T) {
	module := partitionModule()

	created, err := module.Handler.CreatePartitionHandler(context.Background(), "org-1", httptransport.CreatePartitionRequest{
		WorkspaceID: 1,
		Name:        "Inbound Leads",
	})
	if err != nil {
		t.Fatalf("create partition failed: %v", err)
	}

	updated, err := module.Handler.UpdateDistributionHandler(context.Background(), "org-1", created.Data.ID, httptransport.UpdateDistributionRequest{
		Enabled:  true,
		MaxSlots: 3,
		Defaults: map[int][]httptransport.FieldDefaultDTO{
			1: {{Field: "owner", Value: "alice"}},
			2: {{Field: "owner", Value: "bob"}},
		},
	})
	if err != nil {
		t.Fatalf("update distribution failed: %v", err)
	}
	if !updated.Data.UseDistributionOrder || updated.Data.MaxDistributionOrder != 3 {
		t.Fatalf("distribution settings not applied: %+v", updated.Data)
	}
	if len(updated.Data.DistributionDefaults[1]) != 1 {
		t.Fatalf("slot 1 defaults missing: %+v", updated.Data.DistributionDefaults)
	}
}

func TestPartitionDistributionRangeRejected(t *testing.T) {
	module := partitionModule()

	created, err := module.Handler.CreatePartitionHandler(context.Background(), "org-1", httptransport.CreatePartitionRequest{
		WorkspaceID: 1,
		Name:        "Inbound Leads",
	})
	if err != nil {
		t.Fatalf("create partition failed: %v", err)
	}

	for _, maxSlots := range []int{0, -1, 100} {
		_, err := module.Handler.UpdateDistributionHandler(context.Background(), "org-1", created.Data.ID, httptransport.UpdateDistributionRequest{
			Enabled:  true,
			MaxSlots: maxSlots,
		})
		if !errors.Is(err, domainerrors.ErrDistributionRangeInvalid) {
			t.Fatalf("max slots %d: expected range error, got %v", maxSlots, err)
		}
	}
}

func TestPartitionForeignTenantCannotUpdate(t *testing.T) {
	module := partitionModule()

	created, err := module.Handler.CreatePartitionHandler(context.Background(), "org-1", httptransport.CreatePartitionRequest{
		WorkspaceID: 1,
		Name:        "Inbound Leads",
	})
	if err != nil {
		t.Fatalf("create partition failed: %v", err)
	}

	_, err = module.Handler.SetDuplicateCheckFieldHandler(context.Background(), "org-2", created.Data.ID, httptransport.SetDuplicateCheckFieldRequest{
		Field: "phone",
	})
	if !errors.Is(err, domainerrors.ErrPartitionNotFound) {
		t.Fatalf("expected partition not found for foreign tenant, got %v", err)
	}
}

func TestPartitionDuplicateCheckFieldSetAndCleared(t *testing.T) {
	module := partitionModule()

	created, err := module.Handler.CreatePartitionHandler(context.Background(), "org-1", httptransport.CreatePartitionRequest{
		WorkspaceID: 1,
		Name:        "Inbound Leads",
	})
	if err != nil {
		t.Fatalf("create partition failed: %v", err)
	}

	set, err := module.Handler.SetDuplicateCheckFieldHandler(context.Background(), "org-1", created.Data.ID, httptransport.SetDuplicateCheckFieldRequest{
		Field: "phone",
	})
	if err != nil {
		t.Fatalf("set duplicate check field failed: %v", err)
	}
	if set.Data.DuplicateCheckField != "phone" {
		t.Fatalf("duplicate check field = %q, want phone", set.Data.DuplicateCheckField)
	}

	cleared, err := module.Handler.SetDuplicateCheckFieldHandler(context.Background(), "org-1", created.Data.ID, httptransport.SetDuplicateCheckFieldRequest{})
	if err != nil {
		t.Fatalf("clear duplicate check field failed: %v", err)
	}
	if cleared.Data.DuplicateCheckField != "" {
		t.Fatalf("duplicate check field not cleared: %q", cleared.Data.DuplicateCheckField)
	}
}
