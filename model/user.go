package model

import "time"

type User struct {
	ID        string `gorm:"primaryKey;type:text;not null"`
	Email     string `gorm:"uniqueIndex;not null;size:255"`
	Name      string `gorm:"not null;size:255"`
	Password  string `gorm:"not null"`
	Role      string `gorm:"not null;size:20;index"`
	Status    string `gorm:"not null;size:20;default:ACTIVE"`
	LastLogin *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type PasswordResetCode struct {
	ID        string    `gorm:"primaryKey;type:text;not null"`
	UserID    string    `gorm:"not null;index"`
	Code      string    `gorm:"not null;size:6"`
	ExpiresAt time.Time `gorm:"not null;index"`
	Used      bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
}
