package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"leadrail/contexts/sales-core/partition-service/domain/entities"
	domainerrors "leadrail/contexts/sales-core/partition-service/domain/errors"
	"leadrail/contexts/sales-core/partition-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) GetWorkspace(ctx context.Context, workspaceID int64) (entities.Workspace, error) {
	var row workspaceModel
	err := r.db.WithContext(ctx).
		Where("id = ?", workspaceID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Workspace{}, domainerrors.ErrWorkspaceNotFound
		}
		return entities.Workspace{}, r.logError("partition_repo_get_workspace_failed", err,
			"workspace_id", workspaceID,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) CreatePartition(ctx context.Context, partition entities.Partition) (entities.Partition, error) {
	row, err := partitionModelFromEntity(partition)
	if err != nil {
		return entities.Partition{}, r.logError("partition_repo_encode_partition_failed", err,
			"workspace_id", partition.WorkspaceID,
		)
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.Partition{}, r.logError("partition_repo_create_partition_failed", err,
			"workspace_id", partition.WorkspaceID,
		)
	}
	partition.ID = row.ID
	return partition, nil
}

func (r *Repository) GetPartition(ctx context.Context, partitionID int64) (entities.Partition, error) {
	var row partitionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", partitionID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Partition{}, domainerrors.ErrPartitionNotFound
		}
		return entities.Partition{}, r.logError("partition_repo_get_partition_failed", err,
			"partition_id", partitionID,
		)
	}

	var workspace workspaceModel
	err = r.db.WithContext(ctx).
		Where("id = ?", row.WorkspaceID).
		First(&workspace).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Partition{}, domainerrors.ErrPartitionNotFound
		}
		return entities.Partition{}, r.logError("partition_repo_get_partition_workspace_failed", err,
			"partition_id", partitionID,
		)
	}
	return row.toEntity(workspace.OrgID)
}

func (r *Repository) ListPartitions(ctx context.Context, workspaceID int64) ([]entities.Partition, error) {
	var workspace workspaceModel
	if err := r.db.WithContext(ctx).
		Where("id = ?", workspaceID).
		First(&workspace).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrWorkspaceNotFound
		}
		return nil, r.logError("partition_repo_list_workspace_failed", err, "workspace_id", workspaceID)
	}

	var rows []partitionModel
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("partition_repo_list_partitions_failed", err, "workspace_id", workspaceID)
	}
	partitions := make([]entities.Partition, 0, len(rows))
	for _, row := range rows {
		partition, err := row.toEntity(workspace.OrgID)
		if err != nil {
			return nil, r.logError("partition_repo_decode_partition_failed", err, "partition_id", row.ID)
		}
		partitions = append(partitions, partition)
	}
	return partitions, nil
}

func (r *Repository) UpdatePartitionSettings(ctx context.Context, partition entities.Partition) error {
	defaults, err := encodeDefaults(partition.DistributionDefaults)
	if err != nil {
		return r.logError("partition_repo_encode_defaults_failed", err, "partition_id", partition.ID)
	}
	result := r.db.WithContext(ctx).
		Model(&partitionModel{}).
		Where("id = ?", partition.ID).
		Updates(map[string]any{
			"use_distribution_order": partition.UseDistributionOrder,
			"max_distribution_order": partition.MaxDistributionOrder,
			"distribution_defaults":  defaults,
			"duplicate_check_field":  partition.DuplicateCheckField,
			"updated_at":             partition.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("partition_repo_update_settings_failed", result.Error, "partition_id", partition.ID)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPartitionNotFound
	}
	return nil
}

func (r *Repository) CreateFieldDefinition(ctx context.Context, definition entities.FieldDefinition) (entities.FieldDefinition, error) {
	row := fieldDefinitionModel{
		WorkspaceID: definition.WorkspaceID,
		Key:         definition.Key,
		Label:       definition.Label,
		FieldType:   definition.FieldType,
		CreatedAt:   definition.CreatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return entities.FieldDefinition{}, domainerrors.ErrFieldDefinitionExists
		}
		return entities.FieldDefinition{}, r.logError("partition_repo_create_field_failed", err,
			"workspace_id", definition.WorkspaceID,
			"key", definition.Key,
		)
	}
	definition.ID = row.ID
	return definition, nil
}

func (r *Repository) ListFieldDefinitions(ctx context.Context, workspaceID int64) ([]entities.FieldDefinition, error) {
	var rows []fieldDefinitionModel
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("partition_repo_list_fields_failed", err, "workspace_id", workspaceID)
	}
	definitions := make([]entities.FieldDefinition, 0, len(rows))
	for _, row := range rows {
		definitions = append(definitions, row.toEntity())
	}
	return definitions, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "sales-core/partition-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("partition repository operation failed", fields...)
	return err
}

type workspaceModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	OrgID     string    `gorm:"column:org_id"`
	Name      string    `gorm:"column:name"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (workspaceModel) TableName() string {
	return "workspaces"
}

func (m workspaceModel) toEntity() entities.Workspace {
	return entities.Workspace{
		ID:        m.ID,
		OrgID:     m.OrgID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

type partitionModel struct {
	ID                   int64     `gorm:"column:id;primaryKey;autoIncrement"`
	WorkspaceID          int64     `gorm:"column:workspace_id"`
	Name                 string    `gorm:"column:name"`
	UseDistributionOrder bool      `gorm:"column:use_distribution_order"`
	MaxDistributionOrder int       `gorm:"column:max_distribution_order"`
	DistributionDefaults []byte    `gorm:"column:distribution_defaults;type:jsonb"`
	DuplicateCheckField  string    `gorm:"column:duplicate_check_field"`
	CreatedAt            time.Time `gorm:"column:created_at"`
	UpdatedAt            time.Time `gorm:"column:updated_at"`
}

func (partitionModel) TableName() string {
	return "partitions"
}

func partitionModelFromEntity(partition entities.Partition) (partitionModel, error) {
	defaults, err := encodeDefaults(partition.DistributionDefaults)
	if err != nil {
		return partitionModel{}, err
	}
	return partitionModel{
		ID:                   partition.ID,
		WorkspaceID:          partition.WorkspaceID,
		Name:                 partition.Name,
		UseDistributionOrder: partition.UseDistributionOrder,
		MaxDistributionOrder: partition.MaxDistributionOrder,
		DistributionDefaults: defaults,
		DuplicateCheckField:  partition.DuplicateCheckField,
		CreatedAt:            partition.CreatedAt.UTC(),
		UpdatedAt:            partition.UpdatedAt.UTC(),
	}, nil
}

func (m partitionModel) toEntity(orgID string) (entities.Partition, error) {
	partition := entities.Partition{
		ID:                   m.ID,
		WorkspaceID:          m.WorkspaceID,
		OrgID:                orgID,
		Name:                 m.Name,
		UseDistributionOrder: m.UseDistributionOrder,
		MaxDistributionOrder: m.MaxDistributionOrder,
		DuplicateCheckField:  m.DuplicateCheckField,
		CreatedAt:            m.CreatedAt.UTC(),
		UpdatedAt:            m.UpdatedAt.UTC(),
	}
	if len(m.DistributionDefaults) > 0 {
		defaults := make(map[int][]entities.FieldDefault)
		if err := json.Unmarshal(m.DistributionDefaults, &defaults); err != nil {
			return entities.Partition{}, err
		}
		if len(defaults) > 0 {
			partition.DistributionDefaults = defaults
		}
	}
	return partition, nil
}

type fieldDefinitionModel struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	WorkspaceID int64     `gorm:"column:workspace_id"`
	Key         string    `gorm:"column:key"`
	Label       string    `gorm:"column:label"`
	FieldType   string    `gorm:"column:field_type"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (fieldDefinitionModel) TableName() string {
	return "field_definitions"
}

func (m fieldDefinitionModel) toEntity() entities.FieldDefinition {
	return entities.FieldDefinition{
		ID:          m.ID,
		WorkspaceID: m.WorkspaceID,
		Key:         m.Key,
		Label:       m.Label,
		FieldType:   m.FieldType,
		CreatedAt:   m.CreatedAt.UTC(),
	}
}

func encodeDefaults(defaults map[int][]entities.FieldDefault) ([]byte, error) {
	if len(defaults) == 0 {
		return nil, nil
	}
	return json.Marshal(defaults)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.Repository = (*Repository)(nil)
