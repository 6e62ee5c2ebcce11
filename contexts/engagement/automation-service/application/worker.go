package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"leadrail/contexts/engagement/automation-service/domain/entities"
	domainerrors "leadrail/contexts/engagement/automation-service/domain/errors"
	"leadrail/contexts/engagement/automation-service/ports"
)

const defaultWorkerBatchSize = 50

// DeliveryWorker drains the pending delivery queue. Transport retries live
// inside the channel senders; a delivery that still fails after the sender
// gives up is marked failed, not retried by the worker.
type DeliveryWorker struct {
	Deliveries ports.DeliveryRepository
	AlimTalk   ports.AlimTalkSender
	Email      ports.EmailSender
	Clock      ports.Clock
	Logger     *slog.Logger
	BatchSize  int
}

// RunOnce processes one claimed batch and reports how many deliveries it
// handled, sent or failed.
func (w DeliveryWorker) RunOnce(ctx context.Context) (int, error) {
	batchSize := w.BatchSize
	if batchSize <= 0 {
		batchSize = defaultWorkerBatchSize
	}
	deliveries, err := w.Deliveries.ClaimPending(ctx, batchSize)
	if err != nil {
		return 0, err
	}
	logger := resolveLogger(w.Logger)
	for _, delivery := range deliveries {
		sendErr := w.send(ctx, delivery)
		now := w.now()
		if sendErr != nil {
			logger.Error("delivery send failed",
				"event", "automation_delivery_failed",
				"module", "engagement/automation-service",
				"layer", "application",
				"delivery_id", delivery.ID,
				"channel", delivery.Channel,
				"error", sendErr.Error(),
			)
			if err := w.Deliveries.MarkFailed(ctx, delivery.ID, sendErr.Error(), now); err != nil {
				logger.Error("delivery status update failed",
					"event", "automation_delivery_mark_failed",
					"module", "engagement/automation-service",
					"layer", "application",
					"delivery_id", delivery.ID,
					"error", err.Error(),
				)
			}
			continue
		}
		if err := w.Deliveries.MarkSent(ctx, delivery.ID, now); err != nil {
			logger.Error("delivery status update failed",
				"event", "automation_delivery_mark_sent",
				"module", "engagement/automation-service",
				"layer", "application",
				"delivery_id", delivery.ID,
				"error", err.Error(),
			)
			continue
		}
		logger.Info("delivery sent",
			"event", "automation_delivery_sent",
			"module", "engagement/automation-service",
			"layer", "application",
			"delivery_id", delivery.ID,
			"channel", delivery.Channel,
			"record_id", delivery.RecordID,
		)
	}
	return len(deliveries), nil
}

// Run polls until the context is cancelled.
func (w DeliveryWorker) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := w.RunOnce(ctx); err != nil {
				resolveLogger(w.Logger).Error("delivery poll failed",
					"event", "automation_worker_poll_failed",
					"module", "engagement/automation-service",
					"layer", "application",
					"error", err.Error(),
				)
			}
		}
	}
}

func (w DeliveryWorker) send(ctx context.Context, delivery entities.Delivery) error {
	switch delivery.Channel {
	case entities.ChannelAlimTalk:
		return w.AlimTalk.SendAlimTalk(ctx, delivery.Recipient, delivery.Body)
	case entities.ChannelEmail:
		return w.Email.SendEmail(ctx, delivery.Recipient, delivery.Subject, delivery.Body)
	default:
		return fmt.Errorf("%w: %s", domainerrors.ErrUnknownChannel, delivery.Channel)
	}
}

func (w DeliveryWorker) now() time.Time {
	if w.Clock != nil {
		return w.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
