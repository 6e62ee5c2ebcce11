package httpadapter

import (
	"context"
	"log/slog"

	"leadrail/contexts/sales-core/partition-service/application"
	"leadrail/contexts/sales-core/partition-service/domain/entities"
	httptransport "leadrail/contexts/sales-core/partition-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreatePartitionHandler(
	ctx context.Context,
	orgID string,
	req httptransport.CreatePartitionRequest,
) (httptransport.PartitionResponse, error) {
	partition, err := h.Service.CreatePartition(ctx, application.CreatePartitionCommand{
		OrgID:       orgID,
		WorkspaceID: req.WorkspaceID,
		Name:        req.Name,
	})
	if err != nil {
		return httptransport.PartitionResponse{}, err
	}
	return httptransport.PartitionResponse{Success: true, Data: toDTO(partition)}, nil
}

func (h Handler) GetPartitionHandler(
	ctx context.Context,
	orgID string,
	partitionID int64,
) (httptransport.PartitionResponse, error) {
	partition, err := h.Service.GetPartition(ctx, orgID, partitionID)
	if err != nil {
		return httptransport.PartitionResponse{}, err
	}
	return httptransport.PartitionResponse{Success: true, Data: toDTO(partition)}, nil
}

func (h Handler) ListPartitionsHandler(
	ctx context.Context,
	orgID string,
	workspaceID int64,
) (httptransport.ListPartitionsResponse, error) {
	partitions, err := h.Service.ListPartitions(ctx, orgID, workspaceID)
	if err != nil {
		return httptransport.ListPartitionsResponse{}, err
	}
	resp := httptransport.ListPartitionsResponse{
		Success: true,
		Data:    make([]httptransport.PartitionDTO, 0, len(partitions)),
	}
	for _, partition := range partitions {
		resp.Data = append(resp.Data, toDTO(partition))
	}
	return resp, nil
}

func (h Handler) UpdateDistributionHandler(
	ctx context.Context,
	orgID string,
	partitionID int64,
	req httptransport.UpdateDistributionRequest,
) (httptransport.PartitionResponse, error) {
	partition, err := h.Service.UpdateDistribution(ctx, application.UpdateDistributionCommand{
		OrgID:       orgID,
		PartitionID: partitionID,
		Enabled:     req.Enabled,
		MaxSlots:    req.MaxSlots,
		Defaults:    defaultsFromDTO(req.Defaults),
	})
	if err != nil {
		return httptransport.PartitionResponse{}, err
	}
	return httptransport.PartitionResponse{Success: true, Data: toDTO(partition)}, nil
}

func (h Handler) SetDuplicateCheckFieldHandler(
	ctx context.Context,
	orgID string,
	partitionID int64,
	req httptransport.SetDuplicateCheckFieldRequest,
) (httptransport.PartitionResponse, error) {
	partition, err := h.Service.SetDuplicateCheckField(ctx, orgID, partitionID, req.Field)
	if err != nil {
		return httptransport.PartitionResponse{}, err
	}
	return httptransport.PartitionResponse{Success: true, Data: toDTO(partition)}, nil
}

func (h Handler) AddFieldDefinitionHandler(
	ctx context.Context,
	orgID string,
	req httptransport.AddFieldDefinitionRequest,
) (httptransport.FieldDefinitionResponse, error) {
	definition, err := h.Service.AddFieldDefinition(ctx, application.AddFieldDefinitionCommand{
		OrgID:       orgID,
		WorkspaceID: req.WorkspaceID,
		Key:         req.Key,
		Label:       req.Label,
		FieldType:   req.FieldType,
	})
	if err != nil {
		return httptransport.FieldDefinitionResponse{}, err
	}
	return httptransport.FieldDefinitionResponse{Success: true, Data: definitionToDTO(definition)}, nil
}

func (h Handler) ListFieldDefinitionsHandler(
	ctx context.Context,
	orgID string,
	workspaceID int64,
) (httptransport.ListFieldDefinitionsResponse, error) {
	definitions, err := h.Service.ListFieldDefinitions(ctx, orgID, workspaceID)
	if err != nil {
		return httptransport.ListFieldDefinitionsResponse{}, err
	}
	resp := httptransport.ListFieldDefinitionsResponse{
		Success: true,
		Data:    make([]httptransport.FieldDefinitionDTO, 0, len(definitions)),
	}
	for _, definition := range definitions {
		resp.Data = append(resp.Data, definitionToDTO(definition))
	}
	return resp, nil
}

func toDTO(partition entities.Partition) httptransport.PartitionDTO {
	dto := httptransport.PartitionDTO{
		ID:                   partition.ID,
		WorkspaceID:          partition.WorkspaceID,
		Name:                 partition.Name,
		UseDistributionOrder: partition.UseDistributionOrder,
		MaxDistributionOrder: partition.MaxDistributionOrder,
		DuplicateCheckField:  partition.DuplicateCheckField,
	}
	if len(partition.DistributionDefaults) > 0 {
		dto.DistributionDefaults = make(map[int][]httptransport.FieldDefaultDTO, len(partition.DistributionDefaults))
		for slot, pairs := range partition.DistributionDefaults {
			converted := make([]httptransport.FieldDefaultDTO, 0, len(pairs))
			for _, pair := range pairs {
				converted = append(converted, httptransport.FieldDefaultDTO{Field: pair.Field, Value: pair.Value})
			}
			dto.DistributionDefaults[slot] = converted
		}
	}
	return dto
}

func defaultsFromDTO(defaults map[int][]httptransport.FieldDefaultDTO) map[int][]entities.FieldDefault {
	if len(defaults) == 0 {
		return nil
	}
	converted := make(map[int][]entities.FieldDefault, len(defaults))
	for slot, pairs := range defaults {
		entries := make([]entities.FieldDefault, 0, len(pairs))
		for _, pair := range pairs {
			entries = append(entries, entities.FieldDefault{Field: pair.Field, Value: pair.Value})
		}
		converted[slot] = entries
	}
	return converted
}

func definitionToDTO(definition entities.FieldDefinition) httptransport.FieldDefinitionDTO {
	return httptransport.FieldDefinitionDTO{
		ID:          definition.ID,
		WorkspaceID: definition.WorkspaceID,
		Key:         definition.Key,
		Label:       definition.Label,
		FieldType:   definition.FieldType,
	}
}
