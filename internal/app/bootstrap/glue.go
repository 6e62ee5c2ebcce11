package bootstrap

import (
	"context"

	automationapp "leadrail/contexts/engagement/automation-service/application"
	recordports "leadrail/contexts/sales-core/record-service/ports"
	planapp "leadrail/contexts/tenant-core/plan-service/application"
)

// planGuard adapts the plan service to the record module's limit check port.
type planGuard struct {
	service planapp.Service
}

func (g planGuard) CheckLimit(ctx context.Context, orgID string, resource string, current int64) (recordports.PlanDecision, error) {
	decision, err := g.service.CheckLimit(ctx, orgID, resource, current)
	if err != nil {
		return recordports.PlanDecision{}, err
	}
	return recordports.PlanDecision{Allowed: decision.Allowed, Limit: decision.Limit}, nil
}

// automationTrigger feeds committed records into the automation pipeline.
type automationTrigger struct {
	service automationapp.Service
}

func (t automationTrigger) ProcessAutoTrigger(ctx context.Context, trigger recordports.TriggerEvent) error {
	return t.service.ProcessAutoTrigger(ctx, automationapp.TriggerCommand{
		OrgID:       trigger.OrgID,
		PartitionID: trigger.PartitionID,
		TriggerType: trigger.TriggerType,
		RecordID:    trigger.Record.ID,
		Data:        trigger.Record.Data,
	})
}
