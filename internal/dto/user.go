package dto

type UserResponse struct {
	ID             uint   `json:"id" example:"1"`
	Name           string `json:"name" example:"Jane Smith"`
	Email          string `json:"email" example:"jane@example.com"`
	Role           string `json:"role" example:"customer"`
	CreatedAt      string `json:"created_at" example:"2024-01-15T10:30:00Z"`
	AssistantCount *int64 `json:"assistant_count,omitempty" example:"3"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

type CreateUserRequest struct {
	Name     string `json:"name" example:"Jane Smith"`
	Email    string `json:"email" example:"jane@example.com"`
	Password string `json:"password" example:"hunter2hunter2"`
	Role     string `json:"role,omitempty" example:"customer"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty" example:"Jane Smith"`
	Email *string `json:"email,omitempty" example:"jane@example.com"`
	Role  *string `json:"role,omitempty" example:"admin"`
}
