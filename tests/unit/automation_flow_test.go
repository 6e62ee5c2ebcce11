package unit

import (
	"context"
	"testing"

	automationservice "leadrail/contexts/engagement/automation-service"
	"leadrail/contexts/engagement/automation-service/adapters/memory"
	"leadrail/contexts/engagement/automation-service/application"
	"leadrail/contexts/engagement/automation-service/domain/entities"
	httptransport "leadrail/contexts/engagement/automation-service/transport/http"
)

type fakeSender struct {
	recipients []string
	fail       bool
}

func (s *fakeSender) SendAlimTalk(_ context.Context, recipient string, _ string) error {
	return s.record(recipient)
}

func (s *fakeSender) SendEmail(_ context.Context, recipient string, _ string, _ string) error {
	return s.record(recipient)
}

func (s *fakeSender) record(recipient string) error {
	s.recipients = append(s.recipients, recipient)
	if s.fail {
		return context.DeadlineExceeded
	}
	return nil
}

func TestTemplateToDeliveryFlow(t *testing.T) {
	module := automationservice.NewInMemoryModule(memory.Seed{}, automationservice.Dependencies{})

	created, err := module.Handler.CreateTemplateHandler(context.Background(), "org-1", httptransport.CreateTemplateRequest{
		PartitionID:    10,
		Name:           "Welcome",
		Channel:        entities.ChannelAlimTalk,
		TriggerType:    entities.TriggerOnCreate,
		RecipientField: "phone",
		Body:           "Welcome {name}",
		Enabled:        true,
	})
	if err != nil {
		t.Fatalf("create template failed: %v", err)
	}
	if created.Data.ID == 0 {
		t.Fatal("expected template id to be assigned")
	}

	err = module.Service.ProcessAutoTrigger(context.Background(), application.TriggerCommand{
		OrgID:       "org-1",
		PartitionID: 10,
		TriggerType: entities.TriggerOnCreate,
		RecordID:    "rec-1",
		Data:        map[string]any{"name": "Kim", "phone": "01012345678"},
	})
	if err != nil {
		t.Fatalf("process trigger failed: %v", err)
	}

	sender := &fakeSender{}
	worker := application.DeliveryWorker{
		Deliveries: module.Store,
		AlimTalk:   sender,
		Email:      sender,
		Clock:      module.Store,
	}
	handled, err := worker.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("worker run failed: %v", err)
	}
	if handled != 1 {
		t.Fatalf("worker handled %d deliveries, want 1", handled)
	}
	if len(sender.recipients) != 1 || sender.recipients[0] != "01012345678" {
		t.Fatalf("unexpected recipients: %v", sender.recipients)
	}

	deliveries := module.Store.Deliveries()
	if len(deliveries) != 1 {
		t.Fatalf("stored %d deliveries, want 1", len(deliveries))
	}
	if deliveries[0].Status != entities.DeliverySent {
		t.Fatalf("delivery status = %s, want sent", deliveries[0].Status)
	}
	if deliveries[0].Body != "Welcome Kim" {
		t.Fatalf("delivery body = %q, want rendered template", deliveries[0].Body)
	}
}

func TestTemplateListScopedToTenant(t *testing.T) {
	module := automationservice.NewInMemoryModule(memory.Seed{Templates: []entities.MessageTemplate{
		{ID: 1, OrgID: "org-2", PartitionID: 10, Name: "Foreign", Channel: entities.ChannelEmail, TriggerType: entities.TriggerOnCreate, RecipientField: "email", Body: "hi", Enabled: true},
	}}, automationservice.Dependencies{})

	resp, err := module.Handler.ListTemplatesHandler(context.Background(), "org-1", 10)
	if err != nil {
		t.Fatalf("list templates failed: %v", err)
	}
	if len(resp.Data) != 0 {
		t.Fatalf("foreign templates leaked: %+v", resp.Data)
	}
}

func TestFailedDeliveryKeepsQueueDraining(t *testing.T) {
	module := automationservice.NewInMemoryModule(memory.Seed{Templates: []entities.MessageTemplate{
		{ID: 1, OrgID: "org-1", PartitionID: 10, Name: "Welcome", Channel: entities.ChannelEmail, TriggerType: entities.TriggerOnCreate, RecipientField: "email", Body: "hi", Enabled: true},
	}}, automationservice.Dependencies{})

	err := module.Service.ProcessAutoTrigger(context.Background(), application.TriggerCommand{
		OrgID:       "org-1",
		PartitionID: 10,
		TriggerType: entities.TriggerOnCreate,
		RecordID:    "rec-1",
		Data:        map[string]any{"email": "kim@example.com"},
	})
	if err != nil {
		t.Fatalf("process trigger failed: %v", err)
	}

	sender := &fakeSender{fail: true}
	worker := application.DeliveryWorker{
		Deliveries: module.Store,
		AlimTalk:   sender,
		Email:      sender,
		Clock:      module.Store,
	}
	if _, err := worker.RunOnce(context.Background()); err != nil {
		t.Fatalf("worker run failed: %v", err)
	}

	deliveries := module.Store.Deliveries()
	if deliveries[0].Status != entities.DeliveryFailed {
		t.Fatalf("delivery status = %s, want failed", deliveries[0].Status)
	}
	if deliveries[0].LastError == "" {
		t.Fatal("expected failure reason to be recorded")
	}

	// Failed rows stay out of the pending queue.
	handled, err := worker.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("second worker run failed: %v", err)
	}
	if handled != 0 {
		t.Fatalf("worker re-claimed %d settled deliveries", handled)
	}
}
