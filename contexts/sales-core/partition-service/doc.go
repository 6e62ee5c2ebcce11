// Package partitionservice manages partitions, their distribution settings,
// and workspace field definitions. It is the only writer of partition
// settings, so the record creation path can assume a validated slot range.
package partitionservice
