package unit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	recordservice "leadrail/contexts/sales-core/record-service"
	"leadrail/contexts/sales-core/record-service/adapters/memory"
	"leadrail/contexts/sales-core/record-service/domain/entities"
	domainerrors "leadrail/contexts/sales-core/record-service/domain/errors"
	httptransport "leadrail/contexts/sales-core/record-service/transport/http"
)

func recordSeed(maxSlots int, distributionEnabled bool) memory.Seed {
	return memory.Seed{
		Organizations: []entities.Organization{{
			ID:                   "org-1",
			Name:                 "Acme Sales",
			IntegratedCodePrefix: "ACME",
		}},
		Partitions: []entities.Partition{{
			ID:                   10,
			WorkspaceID:          1,
			OrgID:                "org-1",
			Name:                 "Inbound Leads",
			UseDistributionOrder: distributionEnabled,
			MaxDistributionOrder: maxSlots,
		}},
	}
}

func TestRecordCreateEndToEnd(t *testing.T) {
	module := recordservice.NewInMemoryModule(recordSeed(3, true), recordservice.Dependencies{})

	resp, err := module.Handler.CreateRecordHandler(context.Background(), "org-1", 10, "", httptransport.CreateRecordRequest{
		Data: map[string]any{"name": "Kim", "phone": "01012345678"},
	})
	if err != nil {
		t.Fatalf("create record failed: %v", err)
	}
	if !resp.Success {
		t.Fatal("expected success response")
	}
	if resp.Data.IntegratedCode != "ACME-0001" {
		t.Fatalf("integrated code = %s, want ACME-0001", resp.Data.IntegratedCode)
	}
	if resp.Data.DistributionOrder == nil || *resp.Data.DistributionOrder != 1 {
		t.Fatalf("distribution order = %v, want 1", resp.Data.DistributionOrder)
	}

	fetched, err := module.Handler.GetRecordHandler(context.Background(), "org-1", resp.Data.ID)
	if err != nil {
		t.Fatalf("get record failed: %v", err)
	}
	if fetched.Data.IntegratedCode != resp.Data.IntegratedCode {
		t.Fatalf("fetched code = %s, want %s", fetched.Data.IntegratedCode, resp.Data.IntegratedCode)
	}
}

func TestRecordCreateConcurrentKeepsSlotsBalanced(t *testing.T) {
	module := recordservice.NewInMemoryModule(recordSeed(3, true), recordservice.Dependencies{})

	const workers = 15
	var wg sync.WaitGroup
	results := make(chan httptransport.CreateRecordResponse, workers)
	failures := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			resp, err := module.Handler.CreateRecordHandler(context.Background(), "org-1", 10, "", httptransport.CreateRecordRequest{
				Data: map[string]any{"name": fmt.Sprintf("lead %d", n)},
			})
			if err != nil {
				failures <- err
				return
			}
			results <- resp
		}(i)
	}
	wg.Wait()
	close(results)
	close(failures)

	for err := range failures {
		t.Fatalf("concurrent create failed: %v", err)
	}

	codes := map[string]bool{}
	slotCounts := map[int]int{}
	for resp := range results {
		if codes[resp.Data.IntegratedCode] {
			t.Fatalf("integrated code %s assigned twice", resp.Data.IntegratedCode)
		}
		codes[resp.Data.IntegratedCode] = true
		if resp.Data.DistributionOrder == nil {
			t.Fatal("expected distribution order on every record")
		}
		slotCounts[*resp.Data.DistributionOrder]++
	}
	if len(codes) != workers {
		t.Fatalf("got %d unique codes, want %d", len(codes), workers)
	}

	minCount, maxCount := workers, 0
	for slot := 1; slot <= 3; slot++ {
		count := slotCounts[slot]
		if count < minCount {
			minCount = count
		}
		if count > maxCount {
			maxCount = count
		}
	}
	if maxCount-minCount > 1 {
		t.Fatalf("slot counts unbalanced: %v", slotCounts)
	}
}

func TestRecordCreateForeignTenantIsNotFound(t *testing.T) {
	module := recordservice.NewInMemoryModule(recordSeed(3, false), recordservice.Dependencies{})

	_, err := module.Handler.CreateRecordHandler(context.Background(), "org-2", 10, "", httptransport.CreateRecordRequest{
		Data: map[string]any{"name": "Kim"},
	})
	if !errors.Is(err, domainerrors.ErrPartitionNotFound) {
		t.Fatalf("expected partition not found, got %v", err)
	}
}

func TestRecordListIsScopedToPartition(t *testing.T) {
	seed := recordSeed(3, false)
	seed.Partitions = append(seed.Partitions, entities.Partition{
		ID:          11,
		WorkspaceID: 1,
		OrgID:       "org-1",
		Name:        "Webinar Leads",
	})
	module := recordservice.NewInMemoryModule(seed, recordservice.Dependencies{})

	for i := 0; i < 3; i++ {
		if _, err := module.Handler.CreateRecordHandler(context.Background(), "org-1", 10, "", httptransport.CreateRecordRequest{
			Data: map[string]any{"name": fmt.Sprintf("lead %d", i)},
		}); err != nil {
			t.Fatalf("create record failed: %v", err)
		}
	}
	if _, err := module.Handler.CreateRecordHandler(context.Background(), "org-1", 11, "", httptransport.CreateRecordRequest{
		Data: map[string]any{"name": "other"},
	}); err != nil {
		t.Fatalf("create record failed: %v", err)
	}

	resp, err := module.Handler.ListRecordsHandler(context.Background(), "org-1", 10, 50, 0)
	if err != nil {
		t.Fatalf("list records failed: %v", err)
	}
	if len(resp.Data) != 3 {
		t.Fatalf("listed %d records, want 3", len(resp.Data))
	}
	for _, record := range resp.Data {
		if record.PartitionID != 10 {
			t.Fatalf("record %s leaked from partition %d", record.ID, record.PartitionID)
		}
	}
}
