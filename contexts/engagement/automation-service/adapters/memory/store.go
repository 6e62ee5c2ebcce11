package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"leadrail/contexts/engagement/automation-service/domain/entities"
	domainerrors "leadrail/contexts/engagement/automation-service/domain/errors"
	"leadrail/contexts/engagement/automation-service/ports"

	"github.com/google/uuid"
)

type Seed struct {
	Templates []entities.MessageTemplate
}

type Store struct {
	mu         sync.RWMutex
	templates  map[int64]entities.MessageTemplate
	deliveries map[string]entities.Delivery
	nextID     int64
}

func NewStore(seed Seed) *Store {
	templates := make(map[int64]entities.MessageTemplate, len(seed.Templates))
	var nextID int64 = 1
	for _, template := range seed.Templates {
		templates[template.ID] = template
		if template.ID >= nextID {
			nextID = template.ID + 1
		}
	}
	return &Store{
		templates:  templates,
		deliveries: make(map[string]entities.Delivery),
		nextID:     nextID,
	}
}

func (s *Store) CreateTemplate(_ context.Context, template entities.MessageTemplate) (entities.MessageTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	template.ID = s.nextID
	s.nextID++
	s.templates[template.ID] = template
	return template, nil
}

func (s *Store) GetTemplate(_ context.Context, templateID int64) (entities.MessageTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	template, ok := s.templates[templateID]
	if !ok {
		return entities.MessageTemplate{}, domainerrors.ErrTemplateNotFound
	}
	return template, nil
}

func (s *Store) ListTemplates(_ context.Context, partitionID int64) ([]entities.MessageTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	templates := make([]entities.MessageTemplate, 0)
	for _, template := range s.templates {
		if template.PartitionID == partitionID {
			templates = append(templates, template)
		}
	}
	sort.Slice(templates, func(i, j int) bool {
		return templates[i].ID < templates[j].ID
	})
	return templates, nil
}

func (s *Store) EnabledTemplates(_ context.Context, partitionID int64, triggerType string) ([]entities.MessageTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	templates := make([]entities.MessageTemplate, 0)
	for _, template := range s.templates {
		if template.PartitionID == partitionID && template.TriggerType == triggerType && template.Enabled {
			templates = append(templates, template)
		}
	}
	sort.Slice(templates, func(i, j int) bool {
		return templates[i].ID < templates[j].ID
	})
	return templates, nil
}

func (s *Store) EnqueueDelivery(_ context.Context, delivery entities.Delivery) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deliveries[delivery.ID] = delivery
	return nil
}

// ClaimPending flips claimed rows out of pending while the store lock is
// held, mirroring the row-locking claim the SQL adapter does.
func (s *Store) ClaimPending(_ context.Context, limit int) ([]entities.Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := make([]entities.Delivery, 0)
	for _, delivery := range s.deliveries {
		if delivery.Status == entities.DeliveryPending {
			pending = append(pending, delivery)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		if pending[i].CreatedAt.Equal(pending[j].CreatedAt) {
			return pending[i].ID < pending[j].ID
		}
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	for i, delivery := range pending {
		delivery.Attempts++
		s.deliveries[delivery.ID] = delivery
		pending[i] = delivery
	}
	return pending, nil
}

func (s *Store) MarkSent(_ context.Context, deliveryID string, at time.Time) error {
	return s.updateStatus(deliveryID, entities.DeliverySent, "", at)
}

func (s *Store) MarkFailed(_ context.Context, deliveryID string, reason string, at time.Time) error {
	return s.updateStatus(deliveryID, entities.DeliveryFailed, reason, at)
}

func (s *Store) updateStatus(deliveryID string, status string, reason string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delivery, ok := s.deliveries[deliveryID]
	if !ok {
		return domainerrors.ErrDeliveryNotFound
	}
	delivery.Status = status
	delivery.LastError = reason
	delivery.UpdatedAt = at
	s.deliveries[deliveryID] = delivery
	return nil
}

// Delivery exposes one queued row for assertions in tests.
func (s *Store) Delivery(deliveryID string) (entities.Delivery, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	delivery, ok := s.deliveries[deliveryID]
	return delivery, ok
}

// Deliveries returns every queued row ordered by creation time.
func (s *Store) Deliveries() []entities.Delivery {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]entities.Delivery, 0, len(s.deliveries))
	for _, delivery := range s.deliveries {
		all = append(all, delivery)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	return all
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.TemplateRepository = (*Store)(nil)
var _ ports.DeliveryRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
