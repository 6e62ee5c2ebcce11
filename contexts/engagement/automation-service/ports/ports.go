package ports

import (
	"context"
	"time"

	"leadrail/contexts/engagement/automation-service/domain/entities"
)

type TemplateRepository interface {
	CreateTemplate(ctx context.Context, template entities.MessageTemplate) (entities.MessageTemplate, error)
	GetTemplate(ctx context.Context, templateID int64) (entities.MessageTemplate, error)
	ListTemplates(ctx context.Context, partitionID int64) ([]entities.MessageTemplate, error)
	EnabledTemplates(ctx context.Context, partitionID int64, triggerType string) ([]entities.MessageTemplate, error)
}

// DeliveryRepository backs the outbound queue. ClaimPending must hand each
// pending row to at most one worker pass.
type DeliveryRepository interface {
	EnqueueDelivery(ctx context.Context, delivery entities.Delivery) error
	ClaimPending(ctx context.Context, limit int) ([]entities.Delivery, error)
	MarkSent(ctx context.Context, deliveryID string, at time.Time) error
	MarkFailed(ctx context.Context, deliveryID string, reason string, at time.Time) error
}

// AlimTalkSender pushes one rendered message through the KakaoTalk
// notification channel.
type AlimTalkSender interface {
	SendAlimTalk(ctx context.Context, recipient string, body string) error
}

type EmailSender interface {
	SendEmail(ctx context.Context, recipient string, subject string, body string) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
