package models

import "time"

// AccessKey is a revocable API key tied to a user. Validation bumps
// LastUsed; a key that is missing or inactive never resolves to a user.
type AccessKey struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"user_id" gorm:"index;not null"`
	Key       string     `json:"key" gorm:"uniqueIndex;size:64;not null"`
	Active    bool       `json:"active" gorm:"not null;default:true"`
	LastUsed  *time.Time `json:"last_used"`
	CreatedAt time.Time  `json:"created_at"`
}
