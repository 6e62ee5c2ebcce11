package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"leadrail/contexts/engagement/automation-service/adapters/memory"
	"leadrail/contexts/engagement/automation-service/domain/entities"
	domainerrors "leadrail/contexts/engagement/automation-service/domain/errors"
)

func newTestService(seed memory.Seed) (Service, *memory.Store) {
	store := memory.NewStore(seed)
	return Service{
		Templates:  store,
		Deliveries: store,
		Clock:      store,
		IDGen:      store,
	}, store
}

func TestCreateTemplateRejectsUnknownChannel(t *testing.T) {
	service, _ := newTestService(memory.Seed{})

	_, err := service.CreateTemplate(context.Background(), CreateTemplateCommand{
		OrgID:          "org-1",
		PartitionID:    10,
		Name:           "Welcome",
		Channel:        "sms",
		TriggerType:    entities.TriggerOnCreate,
		RecipientField: "phone",
		Body:           "hello",
	})
	require.ErrorIs(t, err, domainerrors.ErrUnknownChannel)
}

func TestCreateTemplateRejectsUnknownTrigger(t *testing.T) {
	service, _ := newTestService(memory.Seed{})

	_, err := service.CreateTemplate(context.Background(), CreateTemplateCommand{
		OrgID:          "org-1",
		PartitionID:    10,
		Name:           "Welcome",
		Channel:        entities.ChannelEmail,
		TriggerType:    "on_delete",
		RecipientField: "email",
		Body:           "hello",
	})
	require.ErrorIs(t, err, domainerrors.ErrUnknownTriggerType)
}

func TestListTemplatesScopedToTenant(t *testing.T) {
	service, _ := newTestService(memory.Seed{Templates: []entities.MessageTemplate{
		{ID: 1, OrgID: "org-1", PartitionID: 10, Name: "Mine", Channel: entities.ChannelEmail, TriggerType: entities.TriggerOnCreate, RecipientField: "email", Body: "hi", Enabled: true},
		{ID: 2, OrgID: "org-2", PartitionID: 10, Name: "Theirs", Channel: entities.ChannelEmail, TriggerType: entities.TriggerOnCreate, RecipientField: "email", Body: "hi", Enabled: true},
	}})

	templates, err := service.ListTemplates(context.Background(), "org-1", 10)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	require.Equal(t, "Mine", templates[0].Name)
}

func TestProcessAutoTriggerQueuesRenderedDeliveries(t *testing.T) {
	service, store := newTestService(memory.Seed{Templates: []entities.MessageTemplate{
		{
			ID: 1, OrgID: "org-1", PartitionID: 10, Name: "Welcome talk",
			Channel: entities.ChannelAlimTalk, TriggerType: entities.TriggerOnCreate,
			RecipientField: "phone", Body: "Hi {name}, your code is {code}.", Enabled: true,
		},
		{
			ID: 2, OrgID: "org-1", PartitionID: 10, Name: "Welcome mail",
			Channel: entities.ChannelEmail, TriggerType: entities.TriggerOnCreate,
			RecipientField: "email", Subject: "Welcome {name}", Body: "Hello {name}", Enabled: true,
		},
	}})

	err := service.ProcessAutoTrigger(context.Background(), TriggerCommand{
		OrgID:       "org-1",
		PartitionID: 10,
		TriggerType: entities.TriggerOnCreate,
		RecordID:    "rec-1",
		Data: map[string]any{
			"name":  "Kim",
			"code":  "ACME-0001",
			"phone": "01012345678",
			"email": "kim@example.com",
		},
	})
	require.NoError(t, err)

	deliveries := store.Deliveries()
	require.Len(t, deliveries, 2)

	talk := deliveries[0]
	require.Equal(t, entities.DeliveryPending, talk.Status)
	require.Equal(t, "01012345678", talk.Recipient)
	require.Equal(t, "Hi Kim, your code is ACME-0001.", talk.Body)

	mail := deliveries[1]
	require.Equal(t, "kim@example.com", mail.Recipient)
	require.Equal(t, "Welcome Kim", mail.Subject)
	require.Equal(t, "Hello Kim", mail.Body)
}

func TestProcessAutoTriggerSkipsMissingRecipient(t *testing.T) {
	service, store := newTestService(memory.Seed{Templates: []entities.MessageTemplate{
		{
			ID: 1, OrgID: "org-1", PartitionID: 10, Name: "Welcome talk",
			Channel: entities.ChannelAlimTalk, TriggerType: entities.TriggerOnCreate,
			RecipientField: "phone", Body: "Hi", Enabled: true,
		},
	}})

	err := service.ProcessAutoTrigger(context.Background(), TriggerCommand{
		OrgID:       "org-1",
		PartitionID: 10,
		TriggerType: entities.TriggerOnCreate,
		RecordID:    "rec-1",
		Data:        map[string]any{"name": "Kim"},
	})
	require.NoError(t, err)
	require.Empty(t, store.Deliveries())
}

func TestProcessAutoTriggerIgnoresDisabledTemplates(t *testing.T) {
	service, store := newTestService(memory.Seed{Templates: []entities.MessageTemplate{
		{
			ID: 1, OrgID: "org-1", PartitionID: 10, Name: "Paused",
			Channel: entities.ChannelEmail, TriggerType: entities.TriggerOnCreate,
			RecipientField: "email", Body: "Hi", Enabled: false,
		},
	}})

	err := service.ProcessAutoTrigger(context.Background(), TriggerCommand{
		OrgID:       "org-1",
		PartitionID: 10,
		TriggerType: entities.TriggerOnCreate,
		RecordID:    "rec-1",
		Data:        map[string]any{"email": "kim@example.com"},
	})
	require.NoError(t, err)
	require.Empty(t, store.Deliveries())
}

func TestRenderPlaceholdersLeavesUnknownFields(t *testing.T) {
	rendered := renderPlaceholders("Hi {name}, slot {missing}", map[string]any{"name": "Kim"})
	require.Equal(t, "Hi Kim, slot {missing}", rendered)
}

func TestRenderPlaceholdersFormatsNonStrings(t *testing.T) {
	rendered := renderPlaceholders("slot {order}", map[string]any{"order": 3})
	require.Equal(t, "slot 3", rendered)
}

func TestProcessAutoTriggerNoTemplatesIsNoop(t *testing.T) {
	service, store := newTestService(memory.Seed{})

	start := time.Now()
	err := service.ProcessAutoTrigger(context.Background(), TriggerCommand{
		OrgID:       "org-1",
		PartitionID: 10,
		TriggerType: entities.TriggerOnCreate,
		RecordID:    "rec-1",
	})
	require.NoError(t, err)
	require.Empty(t, store.Deliveries())
	require.Less(t, time.Since(start), time.Second)
}
