package application

import (
	"testing"
	"time"

	"leadrail/contexts/engagement/live-service/ports"
)

func receiveOne(t *testing.T, ch <-chan ports.Event) ports.Event {
	t.Helper()
	select {
	case event := <-ch:
		return event
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for event")
		return ports.Event{}
	}
}

func TestHubBroadcastReachesAllButOrigin(t *testing.T) {
	hub := NewHub(nil)

	author, cancelAuthor := hub.Subscribe(42, "session-author")
	defer cancelAuthor()
	other, cancelOther := hub.Subscribe(42, "session-other")
	defer cancelOther()

	hub.BroadcastToPartition(42, "record:created", map[string]any{"id": "r-1"}, "session-author")

	event := receiveOne(t, other)
	if event.Name != "record:created" {
		t.Fatalf("event name = %s, want record:created", event.Name)
	}
	select {
	case event := <-author:
		t.Fatalf("origin session received its own event: %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubScopesBroadcastToPartition(t *testing.T) {
	hub := NewHub(nil)

	ch, cancel := hub.Subscribe(1, "session-1")
	defer cancel()

	hub.BroadcastToPartition(2, "record:created", nil, "")

	select {
	case event := <-ch:
		t.Fatalf("subscriber on partition 1 received partition 2 event: %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubCancelClosesChannelAndForgetsSession(t *testing.T) {
	hub := NewHub(nil)

	ch, cancel := hub.Subscribe(7, "session-1")
	cancel()

	if _, open := <-ch; open {
		t.Fatalf("channel still open after cancel")
	}
	if count := hub.SubscriberCount(7); count != 0 {
		t.Fatalf("subscriber count = %d after cancel, want 0", count)
	}

	// Broadcasting to an empty partition must not panic.
	hub.BroadcastToPartition(7, "record:created", nil, "")
}

func TestHubDropsEventsForSlowSubscriber(t *testing.T) {
	hub := NewHub(nil)

	ch, cancel := hub.Subscribe(9, "session-slow")
	defer cancel()

	// Never drained: the buffer fills and later events are dropped without
	// blocking the broadcaster.
	for i := 0; i < subscriberBuffer+10; i++ {
		hub.BroadcastToPartition(9, "record:created", i, "")
	}
	if len(ch) != subscriberBuffer {
		t.Fatalf("buffered events = %d, want %d", len(ch), subscriberBuffer)
	}
}
