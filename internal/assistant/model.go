package assistant

import (
	"time"

	"github.com/callboard/callboard-backend/internal/user"
)

// Assistant is a voice assistant registered on the dashboard. VapiID is
// the external identifier the analytics exporter reports under; it is
// how bulk-ingested rows find their way back to an internal record.
type Assistant struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Name      string  `gorm:"not null" json:"name"`
	ModelType string  `gorm:"not null" json:"model_type"`
	VapiID    *string `gorm:"uniqueIndex" json:"vapi_id,omitempty"`

	UserID *uint      `gorm:"index" json:"user_id,omitempty"`
	User   *user.User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
