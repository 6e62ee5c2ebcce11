package redisadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"leadrail/contexts/engagement/live-service/application"
	"leadrail/contexts/engagement/live-service/ports"
	"leadrail/internal/shared/events"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const channelPrefix = "live.partition."

// Bridge relays live broadcasts across API instances over Redis pub/sub.
// Local subscribers are served directly through the hub; remote instances
// receive the envelope and replay it into their own hubs. The origin ID
// keeps an instance from replaying its own messages.
type Bridge struct {
	client     *redis.Client
	hub        *application.Hub
	instanceID string
	logger     *slog.Logger
}

func NewBridge(client *redis.Client, hub *application.Hub, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{
		client:     client,
		hub:        hub,
		instanceID: uuid.NewString(),
		logger:     logger,
	}
}

func (b *Bridge) BroadcastToPartition(partitionID int64, event string, payload any, excludeSessionID string) {
	b.hub.BroadcastToPartition(partitionID, event, payload, excludeSessionID)

	data, err := json.Marshal(events.Envelope{
		Origin:           b.instanceID,
		PartitionID:      partitionID,
		Event:            event,
		Payload:          payload,
		ExcludeSessionID: excludeSessionID,
	})
	if err != nil {
		b.logger.Error("live broadcast encode failed",
			"event", "live_redis_encode_failed",
			"module", "engagement/live-service",
			"layer", "adapter",
			"partition_id", partitionID,
			"error", err.Error(),
		)
		return
	}
	channel := channelPrefix + strconv.FormatInt(partitionID, 10)
	if err := b.client.Publish(context.Background(), channel, data).Err(); err != nil {
		b.logger.Error("live broadcast publish failed",
			"event", "live_redis_publish_failed",
			"module", "engagement/live-service",
			"layer", "adapter",
			"partition_id", partitionID,
			"error", err.Error(),
		)
	}
}

// Run consumes remote broadcasts until the context is cancelled.
func (b *Bridge) Run(ctx context.Context) error {
	pubsub := b.client.PSubscribe(ctx, channelPrefix+"*")
	defer func() { _ = pubsub.Close() }()

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case message, ok := <-messages:
			if !ok {
				return nil
			}
			var env events.Envelope
			if err := json.Unmarshal([]byte(message.Payload), &env); err != nil {
				b.logger.Warn("live broadcast decode failed",
					"event", "live_redis_decode_failed",
					"module", "engagement/live-service",
					"layer", "adapter",
					"channel", message.Channel,
					"error", err.Error(),
				)
				continue
			}
			if env.Origin == b.instanceID {
				continue
			}
			b.hub.BroadcastToPartition(env.PartitionID, env.Event, env.Payload, env.ExcludeSessionID)
		}
	}
}

var _ ports.Broadcaster = (*Bridge)(nil)
