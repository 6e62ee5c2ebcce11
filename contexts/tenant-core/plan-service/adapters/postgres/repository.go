package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"leadrail/contexts/tenant-core/plan-service/domain/entities"
	domainerrors "leadrail/contexts/tenant-core/plan-service/domain/errors"
	"leadrail/contexts/tenant-core/plan-service/ports"

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

func (r *Repository) GetSubscription(ctx context.Context, orgID string) (entities.Subscription, error) {
	var row subscriptionModel
	err := r.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Subscription{}, domainerrors.ErrSubscriptionNotFound
		}
		return entities.Subscription{}, r.logError("plan_repo_get_subscription_failed", err, "org_id", orgID)
	}
	return row.toEntity(), nil
}

func (r *Repository) GetPlan(ctx context.Context, planID string) (entities.Plan, error) {
	var row planModel
	err := r.db.WithContext(ctx).
		Where("id = ?", planID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Plan{}, domainerrors.ErrPlanNotFound
		}
		return entities.Plan{}, r.logError("plan_repo_get_plan_failed", err, "plan_id", planID)
	}
	return row.toEntity(), nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "tenant-core/plan-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("plan repository operation failed", fields...)
	return err
}

type planModel struct {
	ID                  string `gorm:"column:id;primaryKey"`
	Name                string `gorm:"column:name"`
	RecordLimit         int    `gorm:"column:record_limit"`
	MemberLimit         int    `gorm:"column:member_limit"`
	MonthlyMessageLimit int    `gorm:"column:monthly_message_limit"`
}

func (planModel) TableName() string {
	return "plans"
}

func (m planModel) toEntity() entities.Plan {
	return entities.Plan{
		ID:                  m.ID,
		Name:                m.Name,
		RecordLimit:         m.RecordLimit,
		MemberLimit:         m.MemberLimit,
		MonthlyMessageLimit: m.MonthlyMessageLimit,
	}
}

type subscriptionModel struct {
	OrgID     string    `gorm:"column:org_id;primaryKey"`
	PlanID    string    `gorm:"column:plan_id"`
	Status    string    `gorm:"column:status"`
	RenewsAt  time.Time `gorm:"column:renews_at"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (subscriptionModel) TableName() string {
	return "subscriptions"
}

func (m subscriptionModel) toEntity() entities.Subscription {
	return entities.Subscription{
		OrgID:     m.OrgID,
		PlanID:    m.PlanID,
		Status:    m.Status,
		RenewsAt:  m.RenewsAt.UTC(),
		CreatedAt: m.CreatedAt.UTC(),
	}
}

var _ ports.Repository = (*Repository)(nil)
