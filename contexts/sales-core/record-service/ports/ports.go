package ports

import (
	"context"
	"time"

	"leadrail/contexts/sales-core/record-service/domain/entities"
)

// Repository covers the reads that run before the creation transaction plus
// the transaction entry point itself.
type Repository interface {
	GetPartition(ctx context.Context, partitionID int64) (entities.Partition, error)
	CountOrganizationRecords(ctx context.Context, orgID string) (int64, error)
	FindDuplicate(ctx context.Context, partitionID int64, field string, value string) (bool, error)
	GetRecord(ctx context.Context, recordID string) (entities.Record, error)
	ListRecords(ctx context.Context, partitionID int64, limit int, offset int) ([]entities.Record, error)
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the transactional handle the creation flow runs against. The
// *ForUpdate reads hold row locks until the surrounding transaction ends;
// callers never commit or roll back through it.
type Tx interface {
	OrganizationForUpdate(ctx context.Context, orgID string) (entities.Organization, error)
	SetOrganizationSequence(ctx context.Context, orgID string, seq int) error
	PartitionForUpdate(ctx context.Context, partitionID int64) (entities.Partition, error)
	CountPartitionRecords(ctx context.Context, partitionID int64) (int64, error)
	InsertRecord(ctx context.Context, record entities.Record) error
}

type PlanDecision struct {
	Allowed bool
	Limit   int
}

// PlanGuard answers whether the tenant may add one more of a resource.
type PlanGuard interface {
	CheckLimit(ctx context.Context, orgID string, resource string, current int64) (PlanDecision, error)
}

// TriggerEvent is handed to the automation dispatcher after a record commits.
type TriggerEvent struct {
	OrgID       string
	PartitionID int64
	TriggerType string
	Record      entities.Record
}

// AutomationDispatcher and Broadcaster run detached after commit. Their
// failures are logged and swallowed; they never affect the creation result.
type AutomationDispatcher interface {
	ProcessAutoTrigger(ctx context.Context, trigger TriggerEvent) error
}

type Broadcaster interface {
	BroadcastToPartition(partitionID int64, event string, payload any, excludeSessionID string)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
