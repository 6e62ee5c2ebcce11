package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"leadrail/contexts/engagement/automation-service/domain/entities"
	domainerrors "leadrail/contexts/engagement/automation-service/domain/errors"
	"leadrail/contexts/engagement/automation-service/ports"
)

type CreateTemplateCommand struct {
	OrgID          string
	PartitionID    int64
	Name           string
	Channel        string
	TriggerType    string
	RecipientField string
	Subject        string
	Body           string
	Enabled        bool
}

// TriggerCommand is what callers hand in after a record commits. Data is the
// record's field map used for recipient lookup and placeholder rendering.
type TriggerCommand struct {
	OrgID       string
	PartitionID int64
	TriggerType string
	RecordID    string
	Data        map[string]any
}

type Service struct {
	Templates  ports.TemplateRepository
	Deliveries ports.DeliveryRepository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (s Service) CreateTemplate(ctx context.Context, cmd CreateTemplateCommand) (entities.MessageTemplate, error) {
	orgID := strings.TrimSpace(cmd.OrgID)
	name := strings.TrimSpace(cmd.Name)
	recipientField := strings.TrimSpace(cmd.RecipientField)
	if orgID == "" || cmd.PartitionID <= 0 || name == "" || recipientField == "" || strings.TrimSpace(cmd.Body) == "" {
		return entities.MessageTemplate{}, domainerrors.ErrInvalidTemplateInput
	}
	switch cmd.Channel {
	case entities.ChannelAlimTalk, entities.ChannelEmail:
	default:
		return entities.MessageTemplate{}, domainerrors.ErrUnknownChannel
	}
	if cmd.TriggerType != entities.TriggerOnCreate {
		return entities.MessageTemplate{}, domainerrors.ErrUnknownTriggerType
	}

	template := entities.MessageTemplate{
		OrgID:          orgID,
		PartitionID:    cmd.PartitionID,
		Name:           name,
		Channel:        cmd.Channel,
		TriggerType:    cmd.TriggerType,
		RecipientField: recipientField,
		Subject:        strings.TrimSpace(cmd.Subject),
		Body:           cmd.Body,
		Enabled:        cmd.Enabled,
		CreatedAt:      s.now(),
	}
	created, err := s.Templates.CreateTemplate(ctx, template)
	if err != nil {
		return entities.MessageTemplate{}, err
	}
	resolveLogger(s.Logger).Info("message template created",
		"event", "automation_template_created",
		"module", "engagement/automation-service",
		"layer", "application",
		"org_id", orgID,
		"partition_id", cmd.PartitionID,
		"template_id", created.ID,
		"channel", created.Channel,
	)
	return created, nil
}

func (s Service) ListTemplates(ctx context.Context, orgID string, partitionID int64) ([]entities.MessageTemplate, error) {
	templates, err := s.Templates.ListTemplates(ctx, partitionID)
	if err != nil {
		return nil, err
	}
	orgID = strings.TrimSpace(orgID)
	owned := make([]entities.MessageTemplate, 0, len(templates))
	for _, template := range templates {
		if template.OrgID == orgID {
			owned = append(owned, template)
		}
	}
	return owned, nil
}

// ProcessAutoTrigger renders every enabled template matching the trigger and
// queues one delivery per template. Templates whose recipient field is absent
// from the record data are skipped with a warning rather than failing the
// whole trigger.
func (s Service) ProcessAutoTrigger(ctx context.Context, cmd TriggerCommand) error {
	logger := resolveLogger(s.Logger)
	templates, err := s.Templates.EnabledTemplates(ctx, cmd.PartitionID, cmd.TriggerType)
	if err != nil {
		return fmt.Errorf("load templates for partition %d: %w", cmd.PartitionID, err)
	}
	if len(templates) == 0 {
		return nil
	}

	now := s.now()
	var firstErr error
	for _, template := range templates {
		recipient, ok := stringValue(cmd.Data, template.RecipientField)
		if !ok || strings.TrimSpace(recipient) == "" {
			logger.Warn("trigger skipped, recipient field missing",
				"event", "automation_trigger_recipient_missing",
				"module", "engagement/automation-service",
				"layer", "application",
				"template_id", template.ID,
				"recipient_field", template.RecipientField,
				"record_id", cmd.RecordID,
			)
			continue
		}

		deliveryID, err := s.IDGen.NewID(ctx)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		delivery := entities.Delivery{
			ID:          deliveryID,
			OrgID:       template.OrgID,
			TemplateID:  template.ID,
			PartitionID: cmd.PartitionID,
			RecordID:    cmd.RecordID,
			Channel:     template.Channel,
			Recipient:   recipient,
			Subject:     renderPlaceholders(template.Subject, cmd.Data),
			Body:        renderPlaceholders(template.Body, cmd.Data),
			Status:      entities.DeliveryPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.Deliveries.EnqueueDelivery(ctx, delivery); err != nil {
			logger.Error("delivery enqueue failed",
				"event", "automation_delivery_enqueue_failed",
				"module", "engagement/automation-service",
				"layer", "application",
				"template_id", template.ID,
				"record_id", cmd.RecordID,
				"error", err.Error(),
			)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		logger.Info("delivery queued",
			"event", "automation_delivery_queued",
			"module", "engagement/automation-service",
			"layer", "application",
			"template_id", template.ID,
			"record_id", cmd.RecordID,
			"channel", template.Channel,
		)
	}
	return firstErr
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func stringValue(data map[string]any, field string) (string, bool) {
	if data == nil {
		return "", false
	}
	value, ok := data[field].(string)
	return value, ok
}
