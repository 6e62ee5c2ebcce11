package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"leadrail/contexts/sales-core/record-service/domain/entities"
	domainerrors "leadrail/contexts/sales-core/record-service/domain/errors"
	"leadrail/contexts/sales-core/record-service/ports"

	"github.com/google/uuid"
)

// Seed is the initial tenant state for an in-memory record store.
type Seed struct {
	Organizations []entities.Organization
	Partitions    []entities.Partition
	Records       []entities.Record
}

// Store is the in-memory repository used by tests and local wiring. InTx
// holds the store lock for the whole transaction and restores a snapshot on
// error, mirroring the rollback semantics of the Postgres adapter.
type Store struct {
	mu            sync.RWMutex
	organizations map[string]entities.Organization
	partitions    map[int64]entities.Partition
	records       []entities.Record
}

func NewStore(seed Seed) *Store {
	organizations := make(map[string]entities.Organization, len(seed.Organizations))
	for _, org := range seed.Organizations {
		organizations[org.ID] = org
	}
	partitions := make(map[int64]entities.Partition, len(seed.Partitions))
	for _, partition := range seed.Partitions {
		partitions[partition.ID] = partition
	}
	return &Store{
		organizations: organizations,
		partitions:    partitions,
		records:       append([]entities.Record(nil), seed.Records...),
	}
}

func (s *Store) GetPartition(_ context.Context, partitionID int64) (entities.Partition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.partitionLocked(partitionID)
}

func (s *Store) CountOrganizationRecords(_ context.Context, orgID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, record := range s.records {
		if record.OrgID == orgID {
			count++
		}
	}
	return count, nil
}

func (s *Store) FindDuplicate(_ context.Context, partitionID int64, field string, value string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, record := range s.records {
		if record.PartitionID != partitionID {
			continue
		}
		if stored, ok := record.Data[field].(string); ok && stored == value {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) GetRecord(_ context.Context, recordID string) (entities.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, record := range s.records {
		if record.ID == recordID {
			return copyRecord(record), nil
		}
	}
	return entities.Record{}, domainerrors.ErrRecordNotFound
}

func (s *Store) ListRecords(_ context.Context, partitionID int64, limit int, offset int) ([]entities.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]entities.Record, 0)
	for _, record := range s.records {
		if record.PartitionID == partitionID {
			matched = append(matched, copyRecord(record))
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if offset >= len(matched) {
		return []entities.Record{}, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

// InTx serializes transactions on the store lock. On error the organization
// table and record log are restored to their pre-transaction snapshot.
func (s *Store) InTx(_ context.Context, fn func(tx ports.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[string]entities.Organization, len(s.organizations))
	for id, org := range s.organizations {
		snapshot[id] = org
	}
	recordCount := len(s.records)

	if err := fn(&storeTx{store: s}); err != nil {
		s.organizations = snapshot
		s.records = s.records[:recordCount]
		return err
	}
	return nil
}

// Organization returns the current persisted organization row; tests use it
// to assert sequence state after rollbacks.
func (s *Store) Organization(orgID string) (entities.Organization, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	org, ok := s.organizations[orgID]
	return org, ok
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) partitionLocked(partitionID int64) (entities.Partition, error) {
	partition, ok := s.partitions[partitionID]
	if !ok {
		return entities.Partition{}, domainerrors.ErrPartitionNotFound
	}
	return copyPartition(partition), nil
}

type storeTx struct {
	store *Store
}

func (tx *storeTx) OrganizationForUpdate(_ context.Context, orgID string) (entities.Organization, error) {
	org, ok := tx.store.organizations[orgID]
	if !ok {
		return entities.Organization{}, domainerrors.ErrOrganizationNotFound
	}
	return org, nil
}

func (tx *storeTx) SetOrganizationSequence(_ context.Context, orgID string, seq int) error {
	org, ok := tx.store.organizations[orgID]
	if !ok {
		return domainerrors.ErrOrganizationNotFound
	}
	org.IntegratedCodeSeq = seq
	org.UpdatedAt = time.Now().UTC()
	tx.store.organizations[orgID] = org
	return nil
}

func (tx *storeTx) PartitionForUpdate(_ context.Context, partitionID int64) (entities.Partition, error) {
	return tx.store.partitionLocked(partitionID)
}

func (tx *storeTx) CountPartitionRecords(_ context.Context, partitionID int64) (int64, error) {
	var count int64
	for _, record := range tx.store.records {
		if record.PartitionID == partitionID {
			count++
		}
	}
	return count, nil
}

func (tx *storeTx) InsertRecord(_ context.Context, record entities.Record) error {
	for _, existing := range tx.store.records {
		if existing.OrgID == record.OrgID && existing.IntegratedCode == record.IntegratedCode {
			return fmt.Errorf("unique violation: integrated code %s already exists in organization %s",
				record.IntegratedCode, record.OrgID)
		}
		if existing.ID == record.ID {
			return fmt.Errorf("unique violation: record id %s already exists", record.ID)
		}
	}
	tx.store.records = append(tx.store.records, copyRecord(record))
	return nil
}

func copyRecord(record entities.Record) entities.Record {
	out := record
	if record.DistributionOrder != nil {
		slot := *record.DistributionOrder
		out.DistributionOrder = &slot
	}
	if record.Data != nil {
		data := make(map[string]any, len(record.Data))
		for field, value := range record.Data {
			data[field] = value
		}
		out.Data = data
	}
	return out
}

func copyPartition(partition entities.Partition) entities.Partition {
	out := partition
	if partition.DistributionDefaults != nil {
		defaults := make(map[int][]entities.FieldDefault, len(partition.DistributionDefaults))
		for slot, pairs := range partition.DistributionDefaults {
			defaults[slot] = append([]entities.FieldDefault(nil), pairs...)
		}
		out.DistributionDefaults = defaults
	}
	out.DuplicateCheckField = strings.TrimSpace(partition.DuplicateCheckField)
	return out
}

var _ ports.Repository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
