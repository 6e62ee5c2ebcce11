package http

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type CreatePartitionRequest struct {
	WorkspaceID int64  `json:"workspace_id"`
	Name        string `json:"name"`
}

type FieldDefaultDTO struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type UpdateDistributionRequest struct {
	Enabled  bool                      `json:"enabled"`
	MaxSlots int                       `json:"max_slots"`
	Defaults map[int][]FieldDefaultDTO `json:"defaults,omitempty"`
}

type SetDuplicateCheckFieldRequest struct {
	Field string `json:"field"`
}

type AddFieldDefinitionRequest struct {
	WorkspaceID int64  `json:"workspace_id"`
	Key         string `json:"key"`
	Label       string `json:"label"`
	FieldType   string `json:"field_type"`
}

type PartitionDTO struct {
	ID                   int64                     `json:"id"`
	WorkspaceID          int64                     `json:"workspace_id"`
	Name                 string                    `json:"name"`
	UseDistributionOrder bool                      `json:"use_distribution_order"`
	MaxDistributionOrder int                       `json:"max_distribution_order"`
	DistributionDefaults map[int][]FieldDefaultDTO `json:"distribution_defaults,omitempty"`
	DuplicateCheckField  string                    `json:"duplicate_check_field,omitempty"`
}

type FieldDefinitionDTO struct {
	ID          int64  `json:"id"`
	WorkspaceID int64  `json:"workspace_id"`
	Key         string `json:"key"`
	Label       string `json:"label"`
	FieldType   string `json:"field_type"`
}

type PartitionResponse struct {
	Success bool         `json:"success"`
	Data    PartitionDTO `json:"data"`
}

type ListPartitionsResponse struct {
	Success bool           `json:"success"`
	Data    []PartitionDTO `json:"data"`
}

type FieldDefinitionResponse struct {
	Success bool               `json:"success"`
	Data    FieldDefinitionDTO `json:"data"`
}

type ListFieldDefinitionsResponse struct {
	Success bool                 `json:"success"`
	Data    []FieldDefinitionDTO `json:"data"`
}
