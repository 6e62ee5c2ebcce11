package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"leadrail/contexts/sales-core/record-service/domain/entities"
	domainerrors "leadrail/contexts/sales-core/record-service/domain/errors"
	"leadrail/contexts/sales-core/record-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
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

func (r *Repository) GetPartition(ctx context.Context, partitionID int64) (entities.Partition, error) {
	return loadPartition(ctx, r.db, r.logger, partitionID, false)
}

func (r *Repository) CountOrganizationRecords(ctx context.Context, orgID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&recordModel{}).
		Where("org_id = ?", orgID).
		Count(&count).
		Error; err != nil {
		return 0, r.logError("record_repo_count_org_records_failed", err, "org_id", orgID)
	}
	return count, nil
}

func (r *Repository) FindDuplicate(ctx context.Context, partitionID int64, field string, value string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&recordModel{}).
		Where("partition_id = ?", partitionID).
		Where("data ->> ? = ?", field, value).
		Count(&count).
		Error; err != nil {
		return false, r.logError("record_repo_duplicate_check_failed", err,
			"partition_id", partitionID,
			"field", field,
		)
	}
	return count > 0, nil
}

func (r *Repository) GetRecord(ctx context.Context, recordID string) (entities.Record, error) {
	var row recordModel
	err := r.db.WithContext(ctx).
		Where("id = ?", recordID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Record{}, domainerrors.ErrRecordNotFound
		}
		return entities.Record{}, r.logError("record_repo_get_record_failed", err, "record_id", recordID)
	}
	return row.toEntity()
}

func (r *Repository) ListRecords(ctx context.Context, partitionID int64, limit int, offset int) ([]entities.Record, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []recordModel
	if err := r.db.WithContext(ctx).
		Where("partition_id = ?", partitionID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, r.logError("record_repo_list_records_failed", err,
			"partition_id", partitionID,
			"limit", limit,
		)
	}
	records := make([]entities.Record, 0, len(rows))
	for _, row := range rows {
		record, err := row.toEntity()
		if err != nil {
			return nil, r.logError("record_repo_decode_record_failed", err, "record_id", row.ID)
		}
		records = append(records, record)
	}
	return records, nil
}

// InTx runs fn inside one database transaction. The row locks taken by the
// *ForUpdate reads are held until commit or rollback.
func (r *Repository) InTx(ctx context.Context, fn func(tx ports.Tx) error) error {
	return r.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		return fn(&gormTx{db: gtx, logger: r.logger})
	})
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	return logRepoError(r.logger, event, err, attrs...)
}

type gormTx struct {
	db     *gorm.DB
	logger *slog.Logger
}

func (tx *gormTx) OrganizationForUpdate(ctx context.Context, orgID string) (entities.Organization, error) {
	var row organizationModel
	err := tx.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", orgID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Organization{}, domainerrors.ErrOrganizationNotFound
		}
		return entities.Organization{}, logRepoError(tx.logger, "record_repo_lock_org_failed", err, "org_id", orgID)
	}
	return row.toEntity(), nil
}

func (tx *gormTx) SetOrganizationSequence(ctx context.Context, orgID string, seq int) error {
	result := tx.db.WithContext(ctx).
		Model(&organizationModel{}).
		Where("id = ?", orgID).
		Updates(map[string]any{
			"integrated_code_seq": seq,
			"updated_at":          time.Now().UTC(),
		})
	if result.Error != nil {
		return logRepoError(tx.logger, "record_repo_set_org_sequence_failed", result.Error, "org_id", orgID)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrOrganizationNotFound
	}
	return nil
}

func (tx *gormTx) PartitionForUpdate(ctx context.Context, partitionID int64) (entities.Partition, error) {
	return loadPartition(ctx, tx.db, tx.logger, partitionID, true)
}

func (tx *gormTx) CountPartitionRecords(ctx context.Context, partitionID int64) (int64, error) {
	var count int64
	if err := tx.db.WithContext(ctx).
		Model(&recordModel{}).
		Where("partition_id = ?", partitionID).
		Count(&count).
		Error; err != nil {
		return 0, logRepoError(tx.logger, "record_repo_count_partition_records_failed", err,
			"partition_id", partitionID,
		)
	}
	return count, nil
}

func (tx *gormTx) InsertRecord(ctx context.Context, record entities.Record) error {
	row, err := recordModelFromEntity(record)
	if err != nil {
		return logRepoError(tx.logger, "record_repo_encode_record_failed", err, "record_id", record.ID)
	}
	if err := tx.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return logRepoError(tx.logger, "record_repo_insert_unique_conflict", err,
				"record_id", record.ID,
				"integrated_code", record.IntegratedCode,
			)
		}
		return logRepoError(tx.logger, "record_repo_insert_record_failed", err, "record_id", record.ID)
	}
	return nil
}

func loadPartition(ctx context.Context, db *gorm.DB, logger *slog.Logger, partitionID int64, forUpdate bool) (entities.Partition, error) {
	query := db.WithContext(ctx)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var row partitionModel
	err := query.Where("id = ?", partitionID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Partition{}, domainerrors.ErrPartitionNotFound
		}
		return entities.Partition{}, logRepoError(logger, "record_repo_load_partition_failed", err,
			"partition_id", partitionID,
		)
	}

	var workspace workspaceModel
	err = db.WithContext(ctx).Where("id = ?", row.WorkspaceID).First(&workspace).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Partition{}, domainerrors.ErrPartitionNotFound
		}
		return entities.Partition{}, logRepoError(logger, "record_repo_load_workspace_failed", err,
			"partition_id", partitionID,
			"workspace_id", row.WorkspaceID,
		)
	}
	return row.toEntity(workspace.OrgID)
}

func logRepoError(logger *slog.Logger, event string, err error, attrs ...any) error {
	if logger == nil {
		logger = slog.Default()
	}
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "sales-core/record-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	logger.Error("record repository operation failed", fields...)
	return err
}

type organizationModel struct {
	ID                   string    `gorm:"column:id;primaryKey"`
	Name                 string    `gorm:"column:name"`
	IntegratedCodePrefix string    `gorm:"column:integrated_code_prefix"`
	IntegratedCodeSeq    int       `gorm:"column:integrated_code_seq"`
	CreatedAt            time.Time `gorm:"column:created_at"`
	UpdatedAt            time.Time `gorm:"column:updated_at"`
}

func (organizationModel) TableName() string {
	return "organizations"
}

func (m organizationModel) toEntity() entities.Organization {
	return entities.Organization{
		ID:                   m.ID,
		Name:                 m.Name,
		IntegratedCodePrefix: m.IntegratedCodePrefix,
		IntegratedCodeSeq:    m.IntegratedCodeSeq,
		CreatedAt:            m.CreatedAt.UTC(),
		UpdatedAt:            m.UpdatedAt.UTC(),
	}
}

// workspaceModel is a read-only projection of the partition-service owned
// workspaces table, used to resolve tenant ownership.
type workspaceModel struct {
	ID    int64  `gorm:"column:id;primaryKey"`
	OrgID string `gorm:"column:org_id"`
}

func (workspaceModel) TableName() string {
	return "workspaces"
}

// partitionModel is a read-only projection of the partition-service owned
// partitions table. Record-service never writes it; the FOR UPDATE lock on
// the row is what serializes distribution slot assignment.
type partitionModel struct {
	ID                   int64  `gorm:"column:id;primaryKey"`
	WorkspaceID          int64  `gorm:"column:workspace_id"`
	Name                 string `gorm:"column:name"`
	UseDistributionOrder bool   `gorm:"column:use_distribution_order"`
	MaxDistributionOrder int    `gorm:"column:max_distribution_order"`
	DistributionDefaults []byte `gorm:"column:distribution_defaults"`
	DuplicateCheckField  string `gorm:"column:duplicate_check_field"`
}

func (partitionModel) TableName() string {
	return "partitions"
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
	}
	if len(m.DistributionDefaults) > 0 {
		defaults := make(map[int][]entities.FieldDefault)
		if err := json.Unmarshal(m.DistributionDefaults, &defaults); err != nil {
			return entities.Partition{}, err
		}
		partition.DistributionDefaults = defaults
	}
	return partition, nil
}

type recordModel struct {
	ID                string    `gorm:"column:id;primaryKey"`
	OrgID             string    `gorm:"column:org_id"`
	WorkspaceID       int64     `gorm:"column:workspace_id"`
	PartitionID       int64     `gorm:"column:partition_id"`
	IntegratedCode    string    `gorm:"column:integrated_code"`
	DistributionOrder *int      `gorm:"column:distribution_order"`
	Data              []byte    `gorm:"column:data;type:jsonb"`
	RegisteredAt      time.Time `gorm:"column:registered_at"`
	CreatedAt         time.Time `gorm:"column:created_at"`
}

func (recordModel) TableName() string {
	return "records"
}

func recordModelFromEntity(record entities.Record) (recordModel, error) {
	data, err := json.Marshal(record.Data)
	if err != nil {
		return recordModel{}, err
	}
	return recordModel{
		ID:                record.ID,
		OrgID:             record.OrgID,
		WorkspaceID:       record.WorkspaceID,
		PartitionID:       record.PartitionID,
		IntegratedCode:    record.IntegratedCode,
		DistributionOrder: record.DistributionOrder,
		Data:              data,
		RegisteredAt:      record.RegisteredAt.UTC(),
		CreatedAt:         record.CreatedAt.UTC(),
	}, nil
}

func (m recordModel) toEntity() (entities.Record, error) {
	record := entities.Record{
		ID:                m.ID,
		OrgID:             m.OrgID,
		WorkspaceID:       m.WorkspaceID,
		PartitionID:       m.PartitionID,
		IntegratedCode:    m.IntegratedCode,
		DistributionOrder: m.DistributionOrder,
		RegisteredAt:      m.RegisteredAt.UTC(),
		CreatedAt:         m.CreatedAt.UTC(),
	}
	if len(m.Data) > 0 {
		data := make(map[string]any)
		if err := json.Unmarshal(m.Data, &data); err != nil {
			return entities.Record{}, err
		}
		record.Data = data
	}
	return record, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.Repository = (*Repository)(nil)
var _ ports.Tx = (*gormTx)(nil)
