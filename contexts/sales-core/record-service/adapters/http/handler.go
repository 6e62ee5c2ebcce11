package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"leadrail/contexts/sales-core/record-service/application"
	"leadrail/contexts/sales-core/record-service/domain/entities"
	httptransport "leadrail/contexts/sales-core/record-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateRecordHandler(
	ctx context.Context,
	orgID string,
	partitionID int64,
	sessionID string,
	req httptransport.CreateRecordRequest,
) (httptransport.CreateRecordResponse, error) {
	record, err := h.Service.CreateRecord(ctx, application.CreateRecordCommand{
		OrgID:       orgID,
		PartitionID: partitionID,
		SessionID:   sessionID,
		Data:        req.Data,
	})
	if err != nil {
		return httptransport.CreateRecordResponse{}, err
	}
	return httptransport.CreateRecordResponse{
		Success: true,
		Data:    toDTO(record),
	}, nil
}

func (h Handler) GetRecordHandler(
	ctx context.Context,
	orgID string,
	recordID string,
) (httptransport.GetRecordResponse, error) {
	record, err := h.Service.GetRecord(ctx, orgID, recordID)
	if err != nil {
		return httptransport.GetRecordResponse{}, err
	}
	return httptransport.GetRecordResponse{
		Success: true,
		Data:    toDTO(record),
	}, nil
}

func (h Handler) ListRecordsHandler(
	ctx context.Context,
	orgID string,
	partitionID int64,
	limit int,
	offset int,
) (httptransport.ListRecordsResponse, error) {
	records, err := h.Service.ListRecords(ctx, application.ListRecordsQuery{
		OrgID:       orgID,
		PartitionID: partitionID,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return httptransport.ListRecordsResponse{}, err
	}
	resp := httptransport.ListRecordsResponse{
		Success: true,
		Data:    make([]httptransport.RecordDTO, 0, len(records)),
	}
	for _, record := range records {
		resp.Data = append(resp.Data, toDTO(record))
	}
	return resp, nil
}

func toDTO(record entities.Record) httptransport.RecordDTO {
	return httptransport.RecordDTO{
		ID:                record.ID,
		OrgID:             record.OrgID,
		WorkspaceID:       record.WorkspaceID,
		PartitionID:       record.PartitionID,
		IntegratedCode:    record.IntegratedCode,
		DistributionOrder: record.DistributionOrder,
		Data:              record.Data,
		RegisteredAt:      record.RegisteredAt.Format(time.RFC3339),
		CreatedAt:         record.CreatedAt.Format(time.RFC3339),
	}
}
