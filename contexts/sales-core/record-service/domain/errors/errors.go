package errors

import (
	"errors"
	"fmt"
)

var (
	ErrPartitionNotFound    = errors.New("partition not found")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrRecordNotFound       = errors.New("record not found")
	ErrInvalidRecordInput   = errors.New("invalid record input")
	ErrPlanLimitReached     = errors.New("plan record limit reached")
	ErrDuplicateRecord      = errors.New("duplicate record")
	ErrDistributionConfig   = errors.New("distribution configuration out of range")
)

// PlanLimitError carries the numeric limit so the client can surface an
// upgrade prompt. Unwraps to ErrPlanLimitReached for errors.Is mapping.
type PlanLimitError struct {
	Resource string
	Limit    int
}

func (e *PlanLimitError) Error() string {
	return fmt.Sprintf("plan limit reached for %s (limit %d)", e.Resource, e.Limit)
}

func (e *PlanLimitError) Unwrap() error {
	return ErrPlanLimitReached
}

// DuplicateError names the duplicate-check field and the colliding value.
// Unwraps to ErrDuplicateRecord for errors.Is mapping.
type DuplicateError struct {
	Field string
	Value string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate record: %s=%q already exists in partition", e.Field, e.Value)
}

func (e *DuplicateError) Unwrap() error {
	return ErrDuplicateRecord
}
