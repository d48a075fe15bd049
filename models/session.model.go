package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Session is the persisted admin session: the bearer token issued by
// the platform API plus the user record it returned on OTP
// verification. Loaded on every authenticated request, deleted on
// logout.
type Session struct {
	gorm.Model
	SessionID       string         `gorm:"size:36;uniqueIndex;not null" json:"session_id"`
	Mobile          string         `gorm:"size:15;index" json:"mobile"`
	Token           string         `gorm:"size:2048;not null" json:"-"` // platform bearer token, never rendered
	IsAuthenticated bool           `gorm:"default:false" json:"is_authenticated"`
	User            datatypes.JSON `json:"user"` // user record as returned by the platform
	ExpiresAt       time.Time      `gorm:"not null" json:"expires_at"`
}
