package ports

import (
	"context"
	"time"

	"leadrail/contexts/sales-core/partition-service/domain/entities"
)

type Repository interface {
	GetWorkspace(ctx context.Context, workspaceID int64) (entities.Workspace, error)
	CreatePartition(ctx context.Context, partition entities.Partition) (entities.Partition, error)
	GetPartition(ctx context.Context, partitionID int64) (entities.Partition, error)
	ListPartitions(ctx context.Context, workspaceID int64) ([]entities.Partition, error)
	UpdatePartitionSettings(ctx context.Context, partition entities.Partition) error
	CreateFieldDefinition(ctx context.Context, definition entities.FieldDefinition) (entities.FieldDefinition, error)
	ListFieldDefinitions(ctx context.Context, workspaceID int64) ([]entities.FieldDefinition, error)
}

type Clock interface {
	Now() time.Time
}
