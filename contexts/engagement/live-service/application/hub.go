package application

import (
	"log/slog"
	"sync"

	"leadrail/contexts/engagement/live-service/ports"
)

const subscriberBuffer = 128

// Hub is the in-process subscriber registry for live partition updates.
// Each subscriber is one open SSE connection identified by its session ID.
// Sends are non-blocking: a subscriber that cannot keep up loses events
// rather than stalling the broadcast.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[int64]map[string]chan ports.Event
	logger      *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		subscribers: make(map[int64]map[string]chan ports.Event),
		logger:      logger,
	}
}

// Subscribe registers a session on a partition and returns its event channel
// plus a cancel func. Subscribing again with the same session ID replaces the
// previous channel.
func (h *Hub) Subscribe(partitionID int64, sessionID string) (<-chan ports.Event, func()) {
	ch := make(chan ports.Event, subscriberBuffer)

	h.mu.Lock()
	sessions, ok := h.subscribers[partitionID]
	if !ok {
		sessions = make(map[string]chan ports.Event)
		h.subscribers[partitionID] = sessions
	}
	if previous, ok := sessions[sessionID]; ok {
		close(previous)
	}
	sessions[sessionID] = ch
	h.mu.Unlock()

	cancel := func() {
		h.removeSubscriber(partitionID, sessionID, ch)
	}
	return ch, cancel
}

func (h *Hub) BroadcastToPartition(partitionID int64, event string, payload any, excludeSessionID string) {
	h.mu.RLock()
	targets := make(map[string]chan ports.Event, len(h.subscribers[partitionID]))
	for sessionID, ch := range h.subscribers[partitionID] {
		targets[sessionID] = ch
	}
	h.mu.RUnlock()

	for sessionID, ch := range targets {
		if sessionID == excludeSessionID {
			continue
		}
		select {
		case ch <- ports.Event{Name: event, Payload: payload}:
		default:
			h.logger.Warn("dropping live event for slow subscriber",
				"event", "live_broadcast_drop",
				"module", "engagement/live-service",
				"layer", "application",
				"partition_id", partitionID,
				"session_id", sessionID,
				"event_name", event,
			)
		}
	}
}

// SubscriberCount reports open subscriptions on a partition.
func (h *Hub) SubscriberCount(partitionID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[partitionID])
}

func (h *Hub) removeSubscriber(partitionID int64, sessionID string, target chan ports.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessions := h.subscribers[partitionID]
	if current, ok := sessions[sessionID]; ok && current == target {
		delete(sessions, sessionID)
		close(target)
	}
	if len(sessions) == 0 {
		delete(h.subscribers, partitionID)
	}
}

var _ ports.Broadcaster = (*Hub)(nil)
