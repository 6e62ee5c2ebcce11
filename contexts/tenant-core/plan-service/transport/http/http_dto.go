package http

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type PlanDTO struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	RecordLimit         int    `json:"record_limit"`
	MemberLimit         int    `json:"member_limit"`
	MonthlyMessageLimit int    `json:"monthly_message_limit"`
}

type PlanResponse struct {
	Success bool    `json:"success"`
	Data    PlanDTO `json:"data"`
}
