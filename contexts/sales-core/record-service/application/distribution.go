package application

import (
	"context"

	domainerrors "leadrail/contexts/sales-core/record-service/domain/errors"
	"leadrail/contexts/sales-core/record-service/ports"
)

// Assignment is the outcome of one distribution slot reservation.
type Assignment struct {
	Slot     int
	Defaults map[string]string
}

// assignDistributionOrder reserves the next round-robin slot for a new record
// in the partition. It must run inside the caller's transaction: the
// PartitionForUpdate read holds the partition row lock, so concurrent
// creations in the same partition serialize here and the count-derived slot
// stays consistent. Returns nil when distribution is disabled.
func assignDistributionOrder(ctx context.Context, tx ports.Tx, partitionID int64) (*Assignment, error) {
	partition, err := tx.PartitionForUpdate(ctx, partitionID)
	if err != nil {
		return nil, err
	}
	if !partition.UseDistributionOrder {
		return nil, nil
	}
	if partition.MaxDistributionOrder < 1 || partition.MaxDistributionOrder > 99 {
		return nil, domainerrors.ErrDistributionConfig
	}

	count, err := tx.CountPartitionRecords(ctx, partitionID)
	if err != nil {
		return nil, err
	}
	slot := int(count%int64(partition.MaxDistributionOrder)) + 1

	defaults := make(map[string]string)
	for _, pair := range partition.DistributionDefaults[slot] {
		if pair.Field == "" || pair.Value == "" {
			continue
		}
		defaults[pair.Field] = pair.Value
	}
	return &Assignment{Slot: slot, Defaults: defaults}, nil
}

// mergeDefaults starts from the slot defaults and overlays every submitted
// key with a non-empty value. Submitted values win; defaults only fill fields
// the submitter left blank.
func mergeDefaults(defaults map[string]string, submitted map[string]any) map[string]any {
	merged := make(map[string]any, len(defaults)+len(submitted))
	for field, value := range defaults {
		merged[field] = value
	}
	for field, value := range submitted {
		if value == nil {
			continue
		}
		if text, ok := value.(string); ok && text == "" {
			continue
		}
		merged[field] = value
	}
	return merged
}

// stringField extracts a string-typed value from submitted data. Non-string
// values are treated as absent so the duplicate check stays exact-string.
func stringField(data map[string]any, field string) (string, bool) {
	value, ok := data[field]
	if !ok {
		return "", false
	}
	text, ok := value.(string)
	if !ok || text == "" {
		return "", false
	}
	return text, true
}
