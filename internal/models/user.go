package models

import "time"

// User is an account record. UID is the canonical identifier issued by the
// auth layer and is the value every relationship edge refers to.
type User struct {
	UID          string `gorm:"primaryKey;size:128"`
	DisplayName  string `gorm:"size:255;not null"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255"`
	PhotoURL     string `gorm:"size:1024"`

	CreatedAt   time.Time
	UpdatedAt   time.Time
	LastLoginAt time.Time
}
