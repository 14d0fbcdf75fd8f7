package model

import "time"

type Vehicle struct {
	ID        string `gorm:"primaryKey;type:text;not null"`
	DealerID  string `gorm:"not null;index"`
	VIN       string `gorm:"uniqueIndex;not null;size:17"`
	Make      string `gorm:"not null;size:100"`
	Model     string `gorm:"not null;size:100"`
	Year      int    `gorm:"not null"`
	Status    string `gorm:"not null;size:20;default:available;index"`
	PhotoKey  string `gorm:"size:512"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VehicleLocation is an append-only tracking ledger; the latest row per
// vehicle is the current position.
type VehicleLocation struct {
	ID         string    `gorm:"primaryKey;type:text;not null"`
	VehicleID  string    `gorm:"not null;index:idx_vehicle_recorded"`
	Lat        float64   `gorm:"not null"`
	Lon        float64   `gorm:"not null"`
	RecordedAt time.Time `gorm:"not null;index:idx_vehicle_recorded"`
	CreatedAt  time.Time
}
