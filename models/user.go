package models

import "time"

// User is a portal account. Email is the synthetic login handle built from
// the registration number (<reg>@temp.com); the remaining profile fields are
// the session metadata shown on the welcome and admin pages.
type User struct {
	ID                 uint       `json:"id" gorm:"primaryKey"`
	Email              string     `json:"email" gorm:"uniqueIndex;size:120;not null"`
	PasswordHash       string     `json:"-" gorm:"not null"`
	Name               string     `json:"name" gorm:"size:120;not null"`
	RegistrationNumber string     `json:"registration_number" gorm:"uniqueIndex;size:30;not null"`
	ParentPhone        string     `json:"parent_phone" gorm:"size:20;not null"`
	Section            string     `json:"section" gorm:"size:5"`
	Year               string     `json:"year" gorm:"size:5"`
	Department         string     `json:"department,omitempty" gorm:"size:60"`
	Admin              bool       `json:"admin" gorm:"not null;default:false"`
	LastSignInAt       *time.Time `json:"last_sign_in_at"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
