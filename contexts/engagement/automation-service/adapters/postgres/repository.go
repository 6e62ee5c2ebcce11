package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"leadrail/contexts/engagement/automation-service/domain/entities"
	domainerrors "leadrail/contexts/engagement/automation-service/domain/errors"
	"leadrail/contexts/engagement/automation-service/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateTemplate(ctx context.Context, template entities.MessageTemplate) (entities.MessageTemplate, error) {
	row := templateModelFromEntity(template)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.MessageTemplate{}, r.logError("automation_repo_create_template_failed", err,
			"org_id", template.OrgID,
			"partition_id", template.PartitionID,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) GetTemplate(ctx context.Context, templateID int64) (entities.MessageTemplate, error) {
	var row templateModel
	err := r.db.WithContext(ctx).
		Where("id = ?", templateID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.MessageTemplate{}, domainerrors.ErrTemplateNotFound
		}
		return entities.MessageTemplate{}, r.logError("automation_repo_get_template_failed", err, "template_id", templateID)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListTemplates(ctx context.Context, partitionID int64) ([]entities.MessageTemplate, error) {
	var rows []templateModel
	if err := r.db.WithContext(ctx).
		Where("partition_id = ?", partitionID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("automation_repo_list_templates_failed", err, "partition_id", partitionID)
	}
	templates := make([]entities.MessageTemplate, 0, len(rows))
	for _, row := range rows {
		templates = append(templates, row.toEntity())
	}
	return templates, nil
}

func (r *Repository) EnabledTemplates(ctx context.Context, partitionID int64, triggerType string) ([]entities.MessageTemplate, error) {
	var rows []templateModel
	if err := r.db.WithContext(ctx).
		Where("partition_id = ?", partitionID).
		Where("trigger_type = ?", triggerType).
		Where("enabled = ?", true).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("automation_repo_enabled_templates_failed", err,
			"partition_id", partitionID,
			"trigger_type", triggerType,
		)
	}
	templates := make([]entities.MessageTemplate, 0, len(rows))
	for _, row := range rows {
		templates = append(templates, row.toEntity())
	}
	return templates, nil
}

func (r *Repository) EnqueueDelivery(ctx context.Context, delivery entities.Delivery) error {
	row := deliveryModelFromEntity(delivery)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("automation_repo_enqueue_delivery_failed", err,
			"delivery_id", delivery.ID,
			"template_id", delivery.TemplateID,
		)
	}
	return nil
}

// ClaimPending locks a batch of pending rows and bumps their attempt counter
// in one transaction. SKIP LOCKED keeps concurrent workers off each other's
// rows.
func (r *Repository) ClaimPending(ctx context.Context, limit int) ([]entities.Delivery, error) {
	if limit <= 0 {
		limit = 50
	}
	var claimed []entities.Delivery
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []deliveryModel
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("status = ?", entities.DeliveryPending).
			Order("created_at ASC").
			Limit(limit).
			Find(&rows).Error; err != nil {
			return err
		}
		claimed = make([]entities.Delivery, 0, len(rows))
		for _, row := range rows {
			if err := tx.Model(&deliveryModel{}).
				Where("id = ?", row.ID).
				Update("attempts", row.Attempts+1).
				Error; err != nil {
				return err
			}
			row.Attempts++
			claimed = append(claimed, row.toEntity())
		}
		return nil
	})
	if err != nil {
		return nil, r.logError("automation_repo_claim_pending_failed", err, "limit", limit)
	}
	return claimed, nil
}

func (r *Repository) MarkSent(ctx context.Context, deliveryID string, at time.Time) error {
	return r.updateStatus(ctx, deliveryID, entities.DeliverySent, "", at)
}

func (r *Repository) MarkFailed(ctx context.Context, deliveryID string, reason string, at time.Time) error {
	return r.updateStatus(ctx, deliveryID, entities.DeliveryFailed, reason, at)
}

func (r *Repository) updateStatus(ctx context.Context, deliveryID string, status string, reason string, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&deliveryModel{}).
		Where("id = ?", deliveryID).
		Updates(map[string]any{
			"status":     status,
			"last_error": reason,
			"updated_at": at.UTC(),
		})
	if result.Error != nil {
		return r.logError("automation_repo_update_delivery_failed", result.Error,
			"delivery_id", deliveryID,
			"status", status,
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrDeliveryNotFound
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "engagement/automation-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("automation repository operation failed", fields...)
	return err
}

type templateModel struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement"`
	OrgID          string    `gorm:"column:org_id"`
	PartitionID    int64     `gorm:"column:partition_id"`
	Name           string    `gorm:"column:name"`
	Channel        string    `gorm:"column:channel"`
	TriggerType    string    `gorm:"column:trigger_type"`
	RecipientField string    `gorm:"column:recipient_field"`
	Subject        string    `gorm:"column:subject"`
	Body           string    `gorm:"column:body"`
	Enabled        bool      `gorm:"column:enabled"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (templateModel) TableName() string {
	return "message_templates"
}

func templateModelFromEntity(template entities.MessageTemplate) templateModel {
	return templateModel{
		ID:             template.ID,
		OrgID:          template.OrgID,
		PartitionID:    template.PartitionID,
		Name:           template.Name,
		Channel:        template.Channel,
		TriggerType:    template.TriggerType,
		RecipientField: template.RecipientField,
		Subject:        template.Subject,
		Body:           template.Body,
		Enabled:        template.Enabled,
		CreatedAt:      template.CreatedAt.UTC(),
	}
}

func (m templateModel) toEntity() entities.MessageTemplate {
	return entities.MessageTemplate{
		ID:             m.ID,
		OrgID:          m.OrgID,
		PartitionID:    m.PartitionID,
		Name:           m.Name,
		Channel:        m.Channel,
		TriggerType:    m.TriggerType,
		RecipientField: m.RecipientField,
		Subject:        m.Subject,
		Body:           m.Body,
		Enabled:        m.Enabled,
		CreatedAt:      m.CreatedAt.UTC(),
	}
}

type deliveryModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	OrgID       string    `gorm:"column:org_id"`
	TemplateID  int64     `gorm:"column:template_id"`
	PartitionID int64     `gorm:"column:partition_id"`
	RecordID    string    `gorm:"column:record_id"`
	Channel     string    `gorm:"column:channel"`
	Recipient   string    `gorm:"column:recipient"`
	Subject     string    `gorm:"column:subject"`
	Body        string    `gorm:"column:body"`
	Status      string    `gorm:"column:status"`
	Attempts    int       `gorm:"column:attempts"`
	LastError   string    `gorm:"column:last_error"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (deliveryModel) TableName() string {
	return "deliveries"
}

func deliveryModelFromEntity(delivery entities.Delivery) deliveryModel {
	return deliveryModel{
		ID:          delivery.ID,
		OrgID:       delivery.OrgID,
		TemplateID:  delivery.TemplateID,
		PartitionID: delivery.PartitionID,
		RecordID:    delivery.RecordID,
		Channel:     delivery.Channel,
		Recipient:   delivery.Recipient,
		Subject:     delivery.Subject,
		Body:        delivery.Body,
		Status:      delivery.Status,
		Attempts:    delivery.Attempts,
		LastError:   delivery.LastError,
		CreatedAt:   delivery.CreatedAt.UTC(),
		UpdatedAt:   delivery.UpdatedAt.UTC(),
	}
}

func (m deliveryModel) toEntity() entities.Delivery {
	return entities.Delivery{
		ID:          m.ID,
		OrgID:       m.OrgID,
		TemplateID:  m.TemplateID,
		PartitionID: m.PartitionID,
		RecordID:    m.RecordID,
		Channel:     m.Channel,
		Recipient:   m.Recipient,
		Subject:     m.Subject,
		Body:        m.Body,
		Status:      m.Status,
		Attempts:    m.Attempts,
		LastError:   m.LastError,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

var _ ports.TemplateRepository = (*Repository)(nil)
var _ ports.DeliveryRepository = (*Repository)(nil)
