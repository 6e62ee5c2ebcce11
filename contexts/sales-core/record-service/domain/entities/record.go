package entities

import "time"

// Record is a single row inside a partition. Data holds free-form field
// values keyed by the workspace field definition key.
type Record struct {
	ID                string
	OrgID             string
	WorkspaceID       int64
	PartitionID       int64
	IntegratedCode    string
	DistributionOrder *int
	Data              map[string]any
	RegisteredAt      time.Time
	CreatedAt         time.Time
}

// Organization carries the per-tenant integrated-code counter. The sequence
// only moves forward and only inside the record creation transaction.
type Organization struct {
	ID                   string
	Name                 string
	IntegratedCodePrefix string
	IntegratedCodeSeq    int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// FieldDefault is one default field value attached to a distribution slot.
type FieldDefault struct {
	Field string
	Value string
}

// Partition is the record-service view of a partition: distribution settings
// plus the owning workspace/organization resolved for tenant checks.
type Partition struct {
	ID                   int64
	WorkspaceID          int64
	OrgID                string
	Name                 string
	UseDistributionOrder bool
	MaxDistributionOrder int
	DistributionDefaults map[int][]FieldDefault
	DuplicateCheckField  string
}
