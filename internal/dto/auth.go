package dto

type RegisterRequest struct {
	Name     string `json:"name" example:"Jane Smith"`
	Email    string `json:"email" example:"jane@example.com"`
	Password string `json:"password" example:"hunter2hunter2"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"jane@example.com"`
	Password string `json:"password" example:"hunter2hunter2"`
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token" example:"eyJhbGciOiJIUzI1NiJ9..."`
}
