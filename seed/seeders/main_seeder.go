package seeders

import (
	"log"

	"gorm.io/gorm"
)

// MainSeeder orchestrates the individual demo-data seeders.
type MainSeeder struct {
	db *gorm.DB

	dealerSeeder  *DealerSeeder
	vehicleSeeder *VehicleSeeder
	billingSeeder *BillingSeeder
}

func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{
		db:            db,
		dealerSeeder:  NewDealerSeeder(db),
		vehicleSeeder: NewVehicleSeeder(db),
		billingSeeder: NewBillingSeeder(db),
	}
}

func (s *MainSeeder) SeedAll() error {
	log.Println("Running complete database seeding...")

	if err := s.SeedDealers(); err != nil {
		return err
	}
	if err := s.SeedVehicles(); err != nil {
		return err
	}
	return s.SeedBilling()
}

func (s *MainSeeder) SeedDealers() error {
	return s.dealerSeeder.Seed()
}

func (s *MainSeeder) SeedVehicles() error {
	return s.vehicleSeeder.Seed()
}

func (s *MainSeeder) SeedBilling() error {
	return s.billingSeeder.Seed()
}
