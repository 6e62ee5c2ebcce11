package entities

import "time"

// Workspace groups partitions and field definitions for one tenant.
type Workspace struct {
	ID        int64
	OrgID     string
	Name      string
	CreatedAt time.Time
}

// FieldDefinition declares a data key available to records in a workspace.
type FieldDefinition struct {
	ID          int64
	WorkspaceID int64
	Key         string
	Label       string
	FieldType   string
	CreatedAt   time.Time
}

// FieldDefault is one default value a distribution slot applies to new records.
type FieldDefault struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// Partition is a named record bucket with its distribution and duplicate
// check configuration. This module is the only writer of these settings.
type Partition struct {
	ID                   int64
	WorkspaceID          int64
	OrgID                string
	Name                 string
	UseDistributionOrder bool
	MaxDistributionOrder int
	DistributionDefaults map[int][]FieldDefault
	DuplicateCheckField  string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
