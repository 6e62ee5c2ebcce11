package ports

// Event is one live update delivered to partition subscribers.
type Event struct {
	Name    string `json:"name"`
	Payload any    `json:"payload"`
}

// Broadcaster fans an event out to every open subscriber of a partition,
// skipping the session that caused it. Implementations must not block the
// caller.
type Broadcaster interface {
	BroadcastToPartition(partitionID int64, event string, payload any, excludeSessionID string)
}
