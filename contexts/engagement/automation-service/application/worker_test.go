package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"leadrail/contexts/engagement/automation-service/adapters/memory"
	"leadrail/contexts/engagement/automation-service/domain/entities"
)

type stubAlimTalk struct {
	err   error
	calls int
	last  string
}

func (s *stubAlimTalk) SendAlimTalk(_ context.Context, recipient string, _ string) error {
	s.calls++
	s.last = recipient
	return s.err
}

type stubEmail struct {
	err   error
	calls int
	last  string
}

func (s *stubEmail) SendEmail(_ context.Context, recipient string, _ string, _ string) error {
	s.calls++
	s.last = recipient
	return s.err
}

func seedDeliveries(t *testing.T, store *memory.Store, deliveries ...entities.Delivery) {
	t.Helper()
	for i, delivery := range deliveries {
		if delivery.Status == "" {
			delivery.Status = entities.DeliveryPending
		}
		if delivery.CreatedAt.IsZero() {
			delivery.CreatedAt = time.Date(2026, 8, 1, 9, 0, 0, i, time.UTC)
		}
		require.NoError(t, store.EnqueueDelivery(context.Background(), delivery))
	}
}

func TestWorkerMarksDeliveriesSent(t *testing.T) {
	store := memory.NewStore(memory.Seed{})
	seedDeliveries(t, store,
		entities.Delivery{ID: "d-1", Channel: entities.ChannelAlimTalk, Recipient: "01012345678", Body: "hi"},
		entities.Delivery{ID: "d-2", Channel: entities.ChannelEmail, Recipient: "kim@example.com", Subject: "hi", Body: "hi"},
	)
	talk := &stubAlimTalk{}
	mail := &stubEmail{}
	worker := DeliveryWorker{Deliveries: store, AlimTalk: talk, Email: mail, Clock: store}

	handled, err := worker.RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, handled)
	require.Equal(t, 1, talk.calls)
	require.Equal(t, "01012345678", talk.last)
	require.Equal(t, 1, mail.calls)
	require.Equal(t, "kim@example.com", mail.last)

	for _, id := range []string{"d-1", "d-2"} {
		delivery, ok := store.Delivery(id)
		require.True(t, ok)
		require.Equal(t, entities.DeliverySent, delivery.Status)
		require.Equal(t, 1, delivery.Attempts)
	}
}

func TestWorkerMarksFailedWithReason(t *testing.T) {
	store := memory.NewStore(memory.Seed{})
	seedDeliveries(t, store,
		entities.Delivery{ID: "d-1", Channel: entities.ChannelAlimTalk, Recipient: "01012345678", Body: "hi"},
	)
	talk := &stubAlimTalk{err: errors.New("gateway timeout")}
	worker := DeliveryWorker{Deliveries: store, AlimTalk: talk, Email: &stubEmail{}, Clock: store}

	handled, err := worker.RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, handled)

	delivery, ok := store.Delivery("d-1")
	require.True(t, ok)
	require.Equal(t, entities.DeliveryFailed, delivery.Status)
	require.Equal(t, "gateway timeout", delivery.LastError)
}

func TestWorkerFailureDoesNotBlockRemainingBatch(t *testing.T) {
	store := memory.NewStore(memory.Seed{})
	seedDeliveries(t, store,
		entities.Delivery{ID: "d-1", Channel: entities.ChannelAlimTalk, Recipient: "01012345678", Body: "hi"},
		entities.Delivery{ID: "d-2", Channel: entities.ChannelEmail, Recipient: "kim@example.com", Body: "hi"},
	)
	worker := DeliveryWorker{
		Deliveries: store,
		AlimTalk:   &stubAlimTalk{err: errors.New("gateway timeout")},
		Email:      &stubEmail{},
		Clock:      store,
	}

	handled, err := worker.RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, handled)

	failed, _ := store.Delivery("d-1")
	require.Equal(t, entities.DeliveryFailed, failed.Status)
	sent, _ := store.Delivery("d-2")
	require.Equal(t, entities.DeliverySent, sent.Status)
}

func TestWorkerProcessedRowsAreNotClaimedAgain(t *testing.T) {
	store := memory.NewStore(memory.Seed{})
	seedDeliveries(t, store,
		entities.Delivery{ID: "d-1", Channel: entities.ChannelEmail, Recipient: "kim@example.com", Body: "hi"},
	)
	mail := &stubEmail{}
	worker := DeliveryWorker{Deliveries: store, AlimTalk: &stubAlimTalk{}, Email: mail, Clock: store}

	handled, err := worker.RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, handled)

	handled, err = worker.RunOnce(context.Background())
	require.NoError(t, err)
	require.Zero(t, handled)
	require.Equal(t, 1, mail.calls)
}

func TestWorkerHonorsBatchSize(t *testing.T) {
	store := memory.NewStore(memory.Seed{})
	seedDeliveries(t, store,
		entities.Delivery{ID: "d-1", Channel: entities.ChannelEmail, Recipient: "a@example.com", Body: "hi"},
		entities.Delivery{ID: "d-2", Channel: entities.ChannelEmail, Recipient: "b@example.com", Body: "hi"},
		entities.Delivery{ID: "d-3", Channel: entities.ChannelEmail, Recipient: "c@example.com", Body: "hi"},
	)
	worker := DeliveryWorker{Deliveries: store, AlimTalk: &stubAlimTalk{}, Email: &stubEmail{}, Clock: store, BatchSize: 2}

	handled, err := worker.RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, handled)

	handled, err = worker.RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, handled)
}
