package httpadapter

import (
	"context"
	"log/slog"

	"leadrail/contexts/engagement/automation-service/application"
	"leadrail/contexts/engagement/automation-service/domain/entities"
	httptransport "leadrail/contexts/engagement/automation-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateTemplateHandler(
	ctx context.Context,
	orgID string,
	req httptransport.CreateTemplateRequest,
) (httptransport.TemplateResponse, error) {
	template, err := h.Service.CreateTemplate(ctx, application.CreateTemplateCommand{
		OrgID:          orgID,
		PartitionID:    req.PartitionID,
		Name:           req.Name,
		Channel:        req.Channel,
		TriggerType:    req.TriggerType,
		RecipientField: req.RecipientField,
		Subject:        req.Subject,
		Body:           req.Body,
		Enabled:        req.Enabled,
	})
	if err != nil {
		return httptransport.TemplateResponse{}, err
	}
	return httptransport.TemplateResponse{Success: true, Data: toDTO(template)}, nil
}

func (h Handler) ListTemplatesHandler(
	ctx context.Context,
	orgID string,
	partitionID int64,
) (httptransport.ListTemplatesResponse, error) {
	templates, err := h.Service.ListTemplates(ctx, orgID, partitionID)
	if err != nil {
		return httptransport.ListTemplatesResponse{}, err
	}
	resp := httptransport.ListTemplatesResponse{
		Success: true,
		Data:    make([]httptransport.TemplateDTO, 0, len(templates)),
	}
	for _, template := range templates {
		resp.Data = append(resp.Data, toDTO(template))
	}
	return resp, nil
}

func toDTO(template entities.MessageTemplate) httptransport.TemplateDTO {
	return httptransport.TemplateDTO{
		ID:             template.ID,
		PartitionID:    template.PartitionID,
		Name:           template.Name,
		Channel:        template.Channel,
		TriggerType:    template.TriggerType,
		RecipientField: template.RecipientField,
		Subject:        template.Subject,
		Body:           template.Body,
		Enabled:        template.Enabled,
		CreatedAt:      template.CreatedAt,
	}
}
