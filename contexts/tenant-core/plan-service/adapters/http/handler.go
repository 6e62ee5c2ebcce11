package httpadapter

import (
	"context"
	"log/slog"

	"leadrail/contexts/tenant-core/plan-service/application"
	httptransport "leadrail/contexts/tenant-core/plan-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) GetPlanHandler(ctx context.Context, orgID string) (httptransport.PlanResponse, error) {
	plan, err := h.Service.GetPlanForOrg(ctx, orgID)
	if err != nil {
		return httptransport.PlanResponse{}, err
	}
	return httptransport.PlanResponse{
		Success: true,
		Data: httptransport.PlanDTO{
			ID:                  plan.ID,
			Name:                plan.Name,
			RecordLimit:         plan.RecordLimit,
			MemberLimit:         plan.MemberLimit,
			MonthlyMessageLimit: plan.MonthlyMessageLimit,
		},
	}, nil
}
