package user

import (
	"time"

	"github.com/callboard/callboard-backend/internal/shared"
)

type User struct {
	ID       uint        `gorm:"primaryKey" json:"id"`
	Name     string      `gorm:"not null" json:"name"`
	Email    string      `gorm:"not null;uniqueIndex" json:"email"`
	Password string      `gorm:"not null" json:"-"`
	Role     shared.Role `gorm:"not null;default:'customer'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == shared.RoleAdmin
}
