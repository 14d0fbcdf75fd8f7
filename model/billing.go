package model

import "time"

type Invoice struct {
	ID          string `gorm:"primaryKey;type:text;not null"`
	DealerID    string `gorm:"not null;index"`
	Number      string `gorm:"uniqueIndex;not null;size:50"`
	AmountCents int64  `gorm:"not null"`
	Status      string `gorm:"not null;size:20;default:open;index"`
	DueDate     time.Time
	PaidAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BalanceTransaction is the dealer balance ledger. Amounts are signed:
// top-ups positive, invoice payments negative.
type BalanceTransaction struct {
	ID          string `gorm:"primaryKey;type:text;not null"`
	DealerID    string `gorm:"not null;index"`
	AmountCents int64  `gorm:"not null"`
	Kind        string `gorm:"not null;size:30"`
	Reference   string `gorm:"size:255"`
	CreatedAt   time.Time
}
