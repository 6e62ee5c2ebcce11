package http

import "time"

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type CreateTemplateRequest struct {
	PartitionID    int64  `json:"partition_id"`
	Name           string `json:"name"`
	Channel        string `json:"channel"`
	TriggerType    string `json:"trigger_type"`
	RecipientField string `json:"recipient_field"`
	Subject        string `json:"subject,omitempty"`
	Body           string `json:"body"`
	Enabled        bool   `json:"enabled"`
}

type TemplateDTO struct {
	ID             int64     `json:"id"`
	PartitionID    int64     `json:"partition_id"`
	Name           string    `json:"name"`
	Channel        string    `json:"channel"`
	TriggerType    string    `json:"trigger_type"`
	RecipientField string    `json:"recipient_field"`
	Subject        string    `json:"subject,omitempty"`
	Body           string    `json:"body"`
	Enabled        bool      `json:"enabled"`
	CreatedAt      time.Time `json:"created_at"`
}

type TemplateResponse struct {
	Success bool        `json:"success"`
	Data    TemplateDTO `json:"data"`
}

type ListTemplatesResponse struct {
	Success bool          `json:"success"`
	Data    []TemplateDTO `json:"data"`
}
