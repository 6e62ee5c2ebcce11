package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"leadrail/contexts/sales-core/partition-service/domain/entities"
	domainerrors "leadrail/contexts/sales-core/partition-service/domain/errors"
	"leadrail/contexts/sales-core/partition-service/ports"
)

const (
	minDistributionOrder = 1
	maxDistributionOrder = 99
)

type CreatePartitionCommand struct {
	OrgID       string
	WorkspaceID int64
	Name        string
}

type UpdateDistributionCommand struct {
	OrgID       string
	PartitionID int64
	Enabled     bool
	MaxSlots    int
	Defaults    map[int][]entities.FieldDefault
}

type AddFieldDefinitionCommand struct {
	OrgID       string
	WorkspaceID int64
	Key         string
	Label       string
	FieldType   string
}

type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (s Service) CreatePartition(ctx context.Context, cmd CreatePartitionCommand) (entities.Partition, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" || cmd.WorkspaceID <= 0 {
		return entities.Partition{}, domainerrors.ErrInvalidPartitionInput
	}
	workspace, err := s.ownedWorkspace(ctx, cmd.OrgID, cmd.WorkspaceID)
	if err != nil {
		return entities.Partition{}, err
	}

	now := s.now()
	partition, err := s.Repo.CreatePartition(ctx, entities.Partition{
		WorkspaceID:          workspace.ID,
		OrgID:                workspace.OrgID,
		Name:                 name,
		UseDistributionOrder: false,
		MaxDistributionOrder: minDistributionOrder,
		CreatedAt:            now,
		UpdatedAt:            now,
	})
	if err != nil {
		return entities.Partition{}, err
	}
	resolveLogger(s.Logger).Info("partition created",
		"event", "partition_created",
		"module", "sales-core/partition-service",
		"layer", "application",
		"org_id", workspace.OrgID,
		"workspace_id", workspace.ID,
		"partition_id", partition.ID,
	)
	return partition, nil
}

func (s Service) GetPartition(ctx context.Context, orgID string, partitionID int64) (entities.Partition, error) {
	partition, err := s.Repo.GetPartition(ctx, partitionID)
	if err != nil {
		return entities.Partition{}, err
	}
	if partition.OrgID != strings.TrimSpace(orgID) {
		return entities.Partition{}, domainerrors.ErrPartitionNotFound
	}
	return partition, nil
}

func (s Service) ListPartitions(ctx context.Context, orgID string, workspaceID int64) ([]entities.Partition, error) {
	if _, err := s.ownedWorkspace(ctx, orgID, workspaceID); err != nil {
		return nil, err
	}
	return s.Repo.ListPartitions(ctx, workspaceID)
}

// UpdateDistribution rewrites the partition's round-robin settings. The slot
// range is validated here so the record creation path may assume it; defaults
// are sanitized to valid slots with at least one non-empty field/value pair.
func (s Service) UpdateDistribution(ctx context.Context, cmd UpdateDistributionCommand) (entities.Partition, error) {
	partition, err := s.GetPartition(ctx, cmd.OrgID, cmd.PartitionID)
	if err != nil {
		return entities.Partition{}, err
	}
	if cmd.MaxSlots < minDistributionOrder || cmd.MaxSlots > maxDistributionOrder {
		resolveLogger(s.Logger).Warn("distribution settings rejected",
			"event", "partition_distribution_range_rejected",
			"module", "sales-core/partition-service",
			"layer", "application",
			"partition_id", cmd.PartitionID,
			"max_slots", cmd.MaxSlots,
		)
		return entities.Partition{}, domainerrors.ErrDistributionRangeInvalid
	}

	partition.UseDistributionOrder = cmd.Enabled
	partition.MaxDistributionOrder = cmd.MaxSlots
	partition.DistributionDefaults = sanitizeDefaults(cmd.Defaults, cmd.MaxSlots)
	partition.UpdatedAt = s.now()

	if err := s.Repo.UpdatePartitionSettings(ctx, partition); err != nil {
		return entities.Partition{}, err
	}
	return partition, nil
}

// SetDuplicateCheckField sets the field used for pre-insert duplicate
// detection; an empty key clears it.
func (s Service) SetDuplicateCheckField(ctx context.Context, orgID string, partitionID int64, field string) (entities.Partition, error) {
	partition, err := s.GetPartition(ctx, orgID, partitionID)
	if err != nil {
		return entities.Partition{}, err
	}
	field = strings.TrimSpace(field)
	if strings.ContainsAny(field, " \t\n") {
		return entities.Partition{}, domainerrors.ErrDuplicateCheckFieldInvalid
	}
	partition.DuplicateCheckField = field
	partition.UpdatedAt = s.now()
	if err := s.Repo.UpdatePartitionSettings(ctx, partition); err != nil {
		return entities.Partition{}, err
	}
	return partition, nil
}

func (s Service) AddFieldDefinition(ctx context.Context, cmd AddFieldDefinitionCommand) (entities.FieldDefinition, error) {
	key := strings.TrimSpace(cmd.Key)
	if key == "" || strings.ContainsAny(key, " \t\n") {
		return entities.FieldDefinition{}, domainerrors.ErrInvalidFieldDefinition
	}
	workspace, err := s.ownedWorkspace(ctx, cmd.OrgID, cmd.WorkspaceID)
	if err != nil {
		return entities.FieldDefinition{}, err
	}
	fieldType := strings.TrimSpace(cmd.FieldType)
	if fieldType == "" {
		fieldType = "text"
	}
	return s.Repo.CreateFieldDefinition(ctx, entities.FieldDefinition{
		WorkspaceID: workspace.ID,
		Key:         key,
		Label:       strings.TrimSpace(cmd.Label),
		FieldType:   fieldType,
		CreatedAt:   s.now(),
	})
}

func (s Service) ListFieldDefinitions(ctx context.Context, orgID string, workspaceID int64) ([]entities.FieldDefinition, error) {
	if _, err := s.ownedWorkspace(ctx, orgID, workspaceID); err != nil {
		return nil, err
	}
	return s.Repo.ListFieldDefinitions(ctx, workspaceID)
}

func (s Service) ownedWorkspace(ctx context.Context, orgID string, workspaceID int64) (entities.Workspace, error) {
	workspace, err := s.Repo.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return entities.Workspace{}, err
	}
	if workspace.OrgID != strings.TrimSpace(orgID) {
		return entities.Workspace{}, domainerrors.ErrWorkspaceNotFound
	}
	return workspace, nil
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

// sanitizeDefaults keeps only slots inside 1..maxSlots whose pair list has at
// least one entry with both a non-empty field and a non-empty value; invalid
// pairs inside a kept slot are dropped.
func sanitizeDefaults(defaults map[int][]entities.FieldDefault, maxSlots int) map[int][]entities.FieldDefault {
	if len(defaults) == 0 {
		return nil
	}
	sanitized := make(map[int][]entities.FieldDefault)
	for slot, pairs := range defaults {
		if slot < minDistributionOrder || slot > maxSlots {
			continue
		}
		kept := make([]entities.FieldDefault, 0, len(pairs))
		for _, pair := range pairs {
			field := strings.TrimSpace(pair.Field)
			if field == "" || pair.Value == "" {
				continue
			}
			kept = append(kept, entities.FieldDefault{Field: field, Value: pair.Value})
		}
		if len(kept) > 0 {
			sanitized[slot] = kept
		}
	}
	if len(sanitized) == 0 {
		return nil
	}
	return sanitized
}
