package errors

import "errors"

var (
	ErrTemplateNotFound     = errors.New("message template not found")
	ErrInvalidTemplateInput = errors.New("invalid message template input")
	ErrUnknownChannel       = errors.New("unknown message channel")
	ErrUnknownTriggerType   = errors.New("unknown trigger type")
	ErrDeliveryNotFound     = errors.New("delivery not found")
)
