package errors

import "errors"

var (
	ErrWorkspaceNotFound          = errors.New("workspace not found")
	ErrPartitionNotFound          = errors.New("partition not found")
	ErrInvalidPartitionInput      = errors.New("invalid partition input")
	ErrDistributionRangeInvalid   = errors.New("max distribution order must be between 1 and 99")
	ErrFieldDefinitionExists      = errors.New("field definition key already exists in workspace")
	ErrInvalidFieldDefinition     = errors.New("invalid field definition")
	ErrDuplicateCheckFieldInvalid = errors.New("duplicate check field must be a plain field key")
)
