package entities

import "time"

const (
	ChannelAlimTalk = "alimtalk"
	ChannelEmail    = "email"

	TriggerOnCreate = "on_create"
)

// MessageTemplate is an org-authored outbound message bound to a partition
// and a trigger. Body text may reference record fields as {field} placeholders.
type MessageTemplate struct {
	ID             int64
	OrgID          string
	PartitionID    int64
	Name           string
	Channel        string
	TriggerType    string
	RecipientField string
	Subject        string
	Body           string
	Enabled        bool
	CreatedAt      time.Time
}

const (
	DeliveryPending = "pending"
	DeliverySent    = "sent"
	DeliveryFailed  = "failed"
)

// Delivery is one rendered message queued for a channel sender. The worker
// owns the pending -> sent/failed transition.
type Delivery struct {
	ID          string
	OrgID       string
	TemplateID  int64
	PartitionID int64
	RecordID    string
	Channel     string
	Recipient   string
	Subject     string
	Body        string
	Status      string
	Attempts    int
	LastError   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
