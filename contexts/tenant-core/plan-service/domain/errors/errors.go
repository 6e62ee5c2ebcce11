package errors

import "errors"

var (
	ErrPlanNotFound         = errors.New("plan not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrUnknownResource      = errors.New("unknown plan resource")
)
