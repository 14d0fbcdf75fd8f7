package model

import "time"

type Dealer struct {
	ID          string `gorm:"primaryKey;type:text;not null"`
	UserID      string `gorm:"uniqueIndex;not null"`
	CompanyName string `gorm:"not null;size:255"`
	Phone       string `gorm:"size:50"`
	Address     string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
