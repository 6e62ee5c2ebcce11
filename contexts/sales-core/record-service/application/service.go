package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"leadrail/contexts/sales-core/record-service/domain/entities"
	domainerrors "leadrail/contexts/sales-core/record-service/domain/errors"
	"leadrail/contexts/sales-core/record-service/ports"
)

const triggerOnCreate = "on_create"

type CreateRecordCommand struct {
	OrgID       string
	PartitionID int64
	SessionID   string
	Data        map[string]any
}

type ListRecordsQuery struct {
	OrgID       string
	PartitionID int64
	Limit       int
	Offset      int
}

type Service struct {
	Repo       ports.Repository
	Plan       ports.PlanGuard
	Automation ports.AutomationDispatcher
	Broadcast  ports.Broadcaster
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger

	// Spawn runs post-commit side effects. Nil means a plain goroutine;
	// tests inject a synchronous runner.
	Spawn func(fn func())
}

// CreateRecord runs the creation flow: ownership check, plan-limit check,
// duplicate check, then one transaction covering the organization sequence
// increment, the distribution slot assignment, and the insert. Side effects
// are dispatched detached after commit.
func (s Service) CreateRecord(ctx context.Context, cmd CreateRecordCommand) (entities.Record, error) {
	logger := resolveLogger(s.Logger)
	orgID := strings.TrimSpace(cmd.OrgID)
	if orgID == "" || cmd.PartitionID <= 0 {
		return entities.Record{}, domainerrors.ErrInvalidRecordInput
	}

	partition, err := s.Repo.GetPartition(ctx, cmd.PartitionID)
	if err != nil {
		return entities.Record{}, err
	}
	if partition.OrgID != orgID {
		logger.Warn("record create partition outside tenant",
			"event", "record_create_tenant_mismatch",
			"module", "sales-core/record-service",
			"layer", "application",
			"org_id", orgID,
			"partition_id", cmd.PartitionID,
		)
		return entities.Record{}, domainerrors.ErrPartitionNotFound
	}

	current, err := s.Repo.CountOrganizationRecords(ctx, orgID)
	if err != nil {
		return entities.Record{}, err
	}
	decision, err := s.Plan.CheckLimit(ctx, orgID, "records", current)
	if err != nil {
		return entities.Record{}, err
	}
	if !decision.Allowed {
		logger.Warn("record create blocked by plan limit",
			"event", "record_create_plan_limit",
			"module", "sales-core/record-service",
			"layer", "application",
			"org_id", orgID,
			"limit", decision.Limit,
			"current", current,
		)
		return entities.Record{}, &domainerrors.PlanLimitError{Resource: "records", Limit: decision.Limit}
	}

	if field := strings.TrimSpace(partition.DuplicateCheckField); field != "" {
		// Comparison is exact-string against the stored field value; no
		// case, whitespace, or type normalization.
		if value, ok := stringField(cmd.Data, field); ok {
			exists, err := s.Repo.FindDuplicate(ctx, cmd.PartitionID, field, value)
			if err != nil {
				return entities.Record{}, err
			}
			if exists {
				return entities.Record{}, &domainerrors.DuplicateError{Field: field, Value: value}
			}
		}
	}

	recordID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Record{}, err
	}
	now := s.now()

	var created entities.Record
	err = s.Repo.InTx(ctx, func(tx ports.Tx) error {
		org, err := tx.OrganizationForUpdate(ctx, orgID)
		if err != nil {
			return err
		}
		seq := org.IntegratedCodeSeq + 1
		if err := tx.SetOrganizationSequence(ctx, orgID, seq); err != nil {
			return err
		}

		assignment, err := assignDistributionOrder(ctx, tx, cmd.PartitionID)
		if err != nil {
			return err
		}

		record := entities.Record{
			ID:             recordID,
			OrgID:          orgID,
			WorkspaceID:    partition.WorkspaceID,
			PartitionID:    cmd.PartitionID,
			IntegratedCode: fmt.Sprintf("%s-%04d", org.IntegratedCodePrefix, seq),
			Data:           cmd.Data,
			RegisteredAt:   now,
			CreatedAt:      now,
		}
		if assignment != nil {
			slot := assignment.Slot
			record.DistributionOrder = &slot
			record.Data = mergeDefaults(assignment.Defaults, cmd.Data)
		}

		if err := tx.InsertRecord(ctx, record); err != nil {
			return err
		}
		created = record
		return nil
	})
	if err != nil {
		logger.Error("record create transaction failed",
			"event", "record_create_tx_failed",
			"module", "sales-core/record-service",
			"layer", "application",
			"org_id", orgID,
			"partition_id", cmd.PartitionID,
			"error", err.Error(),
		)
		return entities.Record{}, err
	}

	logger.Info("record created",
		"event", "record_created",
		"module", "sales-core/record-service",
		"layer", "application",
		"org_id", orgID,
		"partition_id", cmd.PartitionID,
		"record_id", created.ID,
		"integrated_code", created.IntegratedCode,
	)
	s.dispatchSideEffects(created, cmd.SessionID)
	return created, nil
}

func (s Service) GetRecord(ctx context.Context, orgID string, recordID string) (entities.Record, error) {
	record, err := s.Repo.GetRecord(ctx, strings.TrimSpace(recordID))
	if err != nil {
		return entities.Record{}, err
	}
	if record.OrgID != strings.TrimSpace(orgID) {
		return entities.Record{}, domainerrors.ErrRecordNotFound
	}
	return record, nil
}

func (s Service) ListRecords(ctx context.Context, query ListRecordsQuery) ([]entities.Record, error) {
	partition, err := s.Repo.GetPartition(ctx, query.PartitionID)
	if err != nil {
		return nil, err
	}
	if partition.OrgID != strings.TrimSpace(query.OrgID) {
		return nil, domainerrors.ErrPartitionNotFound
	}
	limit := query.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}
	return s.Repo.ListRecords(ctx, query.PartitionID, limit, offset)
}

// dispatchSideEffects runs the post-commit notifications detached from the
// request. Failures here are logged and swallowed; the record is already
// durably committed.
func (s Service) dispatchSideEffects(record entities.Record, sessionID string) {
	logger := resolveLogger(s.Logger)
	s.spawn(func() {
		if s.Automation != nil {
			trigger := ports.TriggerEvent{
				OrgID:       record.OrgID,
				PartitionID: record.PartitionID,
				TriggerType: triggerOnCreate,
				Record:      record,
			}
			if err := s.Automation.ProcessAutoTrigger(context.Background(), trigger); err != nil {
				logger.Error("automation trigger dispatch failed",
					"event", "record_create_trigger_dispatch_failed",
					"module", "sales-core/record-service",
					"layer", "application",
					"record_id", record.ID,
					"partition_id", record.PartitionID,
					"error", err.Error(),
				)
			}
		}
	})
	s.spawn(func() {
		if s.Broadcast == nil {
			return
		}
		defer func() {
			if r := recover(); r != nil {
				logger.Error("record created broadcast panicked",
					"event", "record_create_broadcast_panic",
					"module", "sales-core/record-service",
					"layer", "application",
					"record_id", record.ID,
					"partition_id", record.PartitionID,
					"panic", fmt.Sprint(r),
				)
			}
		}()
		s.Broadcast.BroadcastToPartition(record.PartitionID, "record:created", record, sessionID)
	})
}

func (s Service) spawn(fn func()) {
	if s.Spawn != nil {
		s.Spawn(fn)
		return
	}
	go fn()
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
