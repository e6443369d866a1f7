package model

import "time"

// Intern represents a registered intern in the system.
type Intern struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	InternID     string    `json:"internID" gorm:"size:64;not null;index"`
	FirstName    string    `json:"firstName" gorm:"size:255;not null"`
	LastName     string    `json:"lastName" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255"` // empty for Google-only accounts, never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
