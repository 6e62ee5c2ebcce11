package http

// ErrorResponse is the failure envelope every record endpoint returns.
// UpgradeRequired and Limit are only set for plan-limit failures.
type ErrorResponse struct {
	Success         bool   `json:"success"`
	Error           string `json:"error"`
	UpgradeRequired bool   `json:"upgrade_required,omitempty"`
	Limit           int    `json:"limit,omitempty"`
	Field           string `json:"field,omitempty"`
	Value           string `json:"value,omitempty"`
}

type CreateRecordRequest struct {
	Data map[string]any `json:"data"`
}

type RecordDTO struct {
	ID                string         `json:"id"`
	OrgID             string         `json:"org_id"`
	WorkspaceID       int64          `json:"workspace_id"`
	PartitionID       int64          `json:"partition_id"`
	IntegratedCode    string         `json:"integrated_code"`
	DistributionOrder *int           `json:"distribution_order"`
	Data              map[string]any `json:"data"`
	RegisteredAt      string         `json:"registered_at"`
	CreatedAt         string         `json:"created_at"`
}

type CreateRecordResponse struct {
	Success bool      `json:"success"`
	Data    RecordDTO `json:"data"`
}

type GetRecordResponse struct {
	Success bool      `json:"success"`
	Data    RecordDTO `json:"data"`
}

type ListRecordsResponse struct {
	Success bool        `json:"success"`
	Data    []RecordDTO `json:"data"`
}
