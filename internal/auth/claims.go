package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/callboard/callboard-backend/internal/shared"
)

type Claims struct {
	jwt.RegisteredClaims
	UserID uint        `json:"uid"`
	Email  string      `json:"email,omitempty"`
	Role   shared.Role `json:"role,omitempty"`
}
