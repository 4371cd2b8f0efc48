package models

import (
	"time"

	"gorm.io/gorm"
)

// APIKey lets other services (a second desk instance, scripts) reach the
// staff routes with an X-API-KEY header instead of a staff session.
type APIKey struct {
	gorm.Model
	Name       string     `json:"name"`
	Key        string     `json:"key" gorm:"uniqueIndex"`
	CreatedBy  string     `json:"created_by" gorm:"index"`
	ExpiresAt  *time.Time `json:"expires_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
}
