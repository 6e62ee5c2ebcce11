package memory

import (
	"context"
	"sync"

	"leadrail/contexts/tenant-core/plan-service/domain/entities"
	domainerrors "leadrail/contexts/tenant-core/plan-service/domain/errors"
	"leadrail/contexts/tenant-core/plan-service/ports"
)

type Seed struct {
	Plans         []entities.Plan
	Subscriptions []entities.Subscription
}

type Store struct {
	mu            sync.RWMutex
	plans         map[string]entities.Plan
	subscriptions map[string]entities.Subscription
}

func NewStore(seed Seed) *Store {
	plans := make(map[string]entities.Plan, len(seed.Plans))
	for _, plan := range seed.Plans {
		plans[plan.ID] = plan
	}
	subscriptions := make(map[string]entities.Subscription, len(seed.Subscriptions))
	for _, subscription := range seed.Subscriptions {
		subscriptions[subscription.OrgID] = subscription
	}
	return &Store{
		plans:         plans,
		subscriptions: subscriptions,
	}
}

func (s *Store) GetSubscription(_ context.Context, orgID string) (entities.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subscription, ok := s.subscriptions[orgID]
	if !ok {
		return entities.Subscription{}, domainerrors.ErrSubscriptionNotFound
	}
	return subscription, nil
}

func (s *Store) GetPlan(_ context.Context, planID string) (entities.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, ok := s.plans[planID]
	if !ok {
		return entities.Plan{}, domainerrors.ErrPlanNotFound
	}
	return plan, nil
}

var _ ports.Repository = (*Store)(nil)
