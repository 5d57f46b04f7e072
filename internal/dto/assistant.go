package dto

type CreateAssistantRequest struct {
	Name      string  `json:"name" example:"Reception Bot"`
	ModelType string  `json:"model_type" example:"gpt-4o"`
	VapiID    *string `json:"vapi_id,omitempty" example:"asst_8f1c2d"`
	// UserID is honored on the admin endpoint only; the user-facing
	// endpoint always assigns the caller.
	UserID *uint `json:"user_id,omitempty" example:"1"`
}

type UpdateAssistantRequest struct {
	Name      *string `json:"name,omitempty" example:"Reception Bot"`
	ModelType *string `json:"model_type,omitempty" example:"gpt-4o"`
	VapiID    *string `json:"vapi_id,omitempty" example:"asst_8f1c2d"`
	UserID    *uint   `json:"user_id,omitempty" example:"1"`
}

type AssistantResponse struct {
	ID          uint          `json:"id" example:"1"`
	Name        string        `json:"name" example:"Reception Bot"`
	ModelType   string        `json:"model_type" example:"gpt-4o"`
	VapiID      *string       `json:"vapi_id,omitempty" example:"asst_8f1c2d"`
	UserID      *uint         `json:"user_id,omitempty" example:"1"`
	User        *UserResponse `json:"user,omitempty"`
	MetricCount *int64        `json:"metric_count,omitempty" example:"42"`
	CreatedAt   string        `json:"created_at" example:"2024-01-15T10:30:00Z"`
}

type AssistantListResponse struct {
	Assistants []AssistantResponse `json:"assistants"`
}

type LinkAssistantRequest struct {
	UserID uint `json:"user_id" example:"1"`
}
