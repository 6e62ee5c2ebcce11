package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"leadrail/contexts/sales-core/partition-service/adapters/memory"
	"leadrail/contexts/sales-core/partition-service/domain/entities"
	domainerrors "leadrail/contexts/sales-core/partition-service/domain/errors"
)

func newTestService() (Service, *memory.Store) {
	store := memory.NewStore(memory.Seed{
		Workspaces: []entities.Workspace{{
			ID:        1,
			OrgID:     "org-1",
			Name:      "Sales",
			CreatedAt: time.Now().UTC(),
		}},
		Partitions: []entities.Partition{{
			ID:                   10,
			WorkspaceID:          1,
			OrgID:                "org-1",
			Name:                 "Inbound Leads",
			MaxDistributionOrder: 1,
		}},
	})
	return Service{Repo: store, Clock: store}, store
}

func TestUpdateDistributionRejectsOutOfRangeSlots(t *testing.T) {
	service, _ := newTestService()

	for _, maxSlots := range []int{0, -1, 100} {
		_, err := service.UpdateDistribution(context.Background(), UpdateDistributionCommand{
			OrgID:       "org-1",
			PartitionID: 10,
			Enabled:     true,
			MaxSlots:    maxSlots,
		})
		if !errors.Is(err, domainerrors.ErrDistributionRangeInvalid) {
			t.Fatalf("max_slots=%d: expected range error, got %v", maxSlots, err)
		}
	}
}

func TestUpdateDistributionSanitizesDefaults(t *testing.T) {
	service, _ := newTestService()

	partition, err := service.UpdateDistribution(context.Background(), UpdateDistributionCommand{
		OrgID:       "org-1",
		PartitionID: 10,
		Enabled:     true,
		MaxSlots:    3,
		Defaults: map[int][]entities.FieldDefault{
			1: {
				{Field: "status", Value: "new"},
				{Field: "", Value: "dropped"},
				{Field: "owner", Value: ""},
			},
			2: {
				{Field: "", Value: ""},
			},
			7: {
				{Field: "status", Value: "overflow"},
			},
		},
	})
	if err != nil {
		t.Fatalf("update distribution failed: %v", err)
	}

	if len(partition.DistributionDefaults) != 1 {
		t.Fatalf("defaults = %v, want only slot 1 retained", partition.DistributionDefaults)
	}
	slot1 := partition.DistributionDefaults[1]
	if len(slot1) != 1 || slot1[0].Field != "status" || slot1[0].Value != "new" {
		t.Fatalf("slot 1 defaults = %v, want single status=new pair", slot1)
	}
	if _, exists := partition.DistributionDefaults[7]; exists {
		t.Fatalf("slot 7 is outside 1..3 and must be dropped")
	}
}

func TestUpdateDistributionBoundaryValuesAccepted(t *testing.T) {
	service, _ := newTestService()

	for _, maxSlots := range []int{1, 99} {
		partition, err := service.UpdateDistribution(context.Background(), UpdateDistributionCommand{
			OrgID:       "org-1",
			PartitionID: 10,
			Enabled:     true,
			MaxSlots:    maxSlots,
		})
		if err != nil {
			t.Fatalf("max_slots=%d: unexpected error %v", maxSlots, err)
		}
		if partition.MaxDistributionOrder != maxSlots {
			t.Fatalf("max_slots persisted as %d, want %d", partition.MaxDistributionOrder, maxSlots)
		}
	}
}

func TestSetDuplicateCheckFieldClearsOnEmpty(t *testing.T) {
	service, _ := newTestService()

	partition, err := service.SetDuplicateCheckField(context.Background(), "org-1", 10, "email")
	if err != nil {
		t.Fatalf("set duplicate check field failed: %v", err)
	}
	if partition.DuplicateCheckField != "email" {
		t.Fatalf("duplicate check field = %q, want email", partition.DuplicateCheckField)
	}

	partition, err = service.SetDuplicateCheckField(context.Background(), "org-1", 10, "  ")
	if err != nil {
		t.Fatalf("clear duplicate check field failed: %v", err)
	}
	if partition.DuplicateCheckField != "" {
		t.Fatalf("duplicate check field = %q, want cleared", partition.DuplicateCheckField)
	}
}

func TestTenantIsolationOnPartitionReads(t *testing.T) {
	service, _ := newTestService()

	if _, err := service.GetPartition(context.Background(), "org-2", 10); !errors.Is(err, domainerrors.ErrPartitionNotFound) {
		t.Fatalf("foreign tenant read: expected not found, got %v", err)
	}
	if _, err := service.ListPartitions(context.Background(), "org-2", 1); !errors.Is(err, domainerrors.ErrWorkspaceNotFound) {
		t.Fatalf("foreign tenant list: expected workspace not found, got %v", err)
	}
}

func TestAddFieldDefinitionRejectsDuplicateKey(t *testing.T) {
	service, _ := newTestService()

	if _, err := service.AddFieldDefinition(context.Background(), AddFieldDefinitionCommand{
		OrgID:       "org-1",
		WorkspaceID: 1,
		Key:         "email",
		Label:       "Email",
	}); err != nil {
		t.Fatalf("first field definition failed: %v", err)
	}

	_, err := service.AddFieldDefinition(context.Background(), AddFieldDefinitionCommand{
		OrgID:       "org-1",
		WorkspaceID: 1,
		Key:         "email",
		Label:       "Email again",
	})
	if !errors.Is(err, domainerrors.ErrFieldDefinitionExists) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
}
