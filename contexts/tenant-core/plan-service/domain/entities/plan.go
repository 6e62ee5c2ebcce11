package entities

import "time"

// Plan is a subscription tier. A limit of zero or below means unlimited.
type Plan struct {
	ID                  string
	Name                string
	RecordLimit         int
	MemberLimit         int
	MonthlyMessageLimit int
}

// Subscription binds an organization to a plan.
type Subscription struct {
	OrgID     string
	PlanID    string
	Status    string
	RenewsAt  time.Time
	CreatedAt time.Time
}
