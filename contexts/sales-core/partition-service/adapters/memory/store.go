package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"leadrail/contexts/sales-core/partition-service/domain/entities"
	domainerrors "leadrail/contexts/sales-core/partition-service/domain/errors"
	"leadrail/contexts/sales-core/partition-service/ports"
)

type Seed struct {
	Workspaces []entities.Workspace
	Partitions []entities.Partition
}

type Store struct {
	mu          sync.RWMutex
	workspaces  map[int64]entities.Workspace
	partitions  map[int64]entities.Partition
	definitions map[int64]entities.FieldDefinition
	nextID      int64
}

func NewStore(seed Seed) *Store {
	workspaces := make(map[int64]entities.Workspace, len(seed.Workspaces))
	for _, workspace := range seed.Workspaces {
		workspaces[workspace.ID] = workspace
	}
	partitions := make(map[int64]entities.Partition, len(seed.Partitions))
	var nextID int64 = 1
	for _, partition := range seed.Partitions {
		partitions[partition.ID] = partition
		if partition.ID >= nextID {
			nextID = partition.ID + 1
		}
	}
	return &Store{
		workspaces:  workspaces,
		partitions:  partitions,
		definitions: make(map[int64]entities.FieldDefinition),
		nextID:      nextID,
	}
}

func (s *Store) GetWorkspace(_ context.Context, workspaceID int64) (entities.Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	workspace, ok := s.workspaces[workspaceID]
	if !ok {
		return entities.Workspace{}, domainerrors.ErrWorkspaceNotFound
	}
	return workspace, nil
}

func (s *Store) CreatePartition(_ context.Context, partition entities.Partition) (entities.Partition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	partition.ID = s.nextID
	s.nextID++
	s.partitions[partition.ID] = partition
	return partition, nil
}

func (s *Store) GetPartition(_ context.Context, partitionID int64) (entities.Partition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	partition, ok := s.partitions[partitionID]
	if !ok {
		return entities.Partition{}, domainerrors.ErrPartitionNotFound
	}
	return partition, nil
}

func (s *Store) ListPartitions(_ context.Context, workspaceID int64) ([]entities.Partition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	partitions := make([]entities.Partition, 0)
	for _, partition := range s.partitions {
		if partition.WorkspaceID == workspaceID {
			partitions = append(partitions, partition)
		}
	}
	sort.Slice(partitions, func(i, j int) bool {
		return partitions[i].ID < partitions[j].ID
	})
	return partitions, nil
}

func (s *Store) UpdatePartitionSettings(_ context.Context, partition entities.Partition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.partitions[partition.ID]; !ok {
		return domainerrors.ErrPartitionNotFound
	}
	s.partitions[partition.ID] = partition
	return nil
}

func (s *Store) CreateFieldDefinition(_ context.Context, definition entities.FieldDefinition) (entities.FieldDefinition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.definitions {
		if existing.WorkspaceID == definition.WorkspaceID && existing.Key == definition.Key {
			return entities.FieldDefinition{}, domainerrors.ErrFieldDefinitionExists
		}
	}
	definition.ID = s.nextID
	s.nextID++
	s.definitions[definition.ID] = definition
	return definition, nil
}

func (s *Store) ListFieldDefinitions(_ context.Context, workspaceID int64) ([]entities.FieldDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	definitions := make([]entities.FieldDefinition, 0)
	for _, definition := range s.definitions {
		if definition.WorkspaceID == workspaceID {
			definitions = append(definitions, definition)
		}
	}
	sort.Slice(definitions, func(i, j int) bool {
		return definitions[i].ID < definitions[j].ID
	})
	return definitions, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

var _ ports.Repository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
