package seeders

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/autolane-tms/autolane_api/model"
	"github.com/autolane-tms/autolane_api/shared"
)

// VehicleSeeder assigns demo vehicles with location history to the seeded
// dealers.
type VehicleSeeder struct {
	db *gorm.DB
}

func NewVehicleSeeder(db *gorm.DB) *VehicleSeeder {
	return &VehicleSeeder{db: db}
}

type demoVehicle struct {
	vin    string
	make   string
	model  string
	year   int
	status string
	lat    float64
	lon    float64
}

var demoVehicles = []demoVehicle{
	{"1HGCM82633A004352", "Honda", "Accord", 2021, shared.VehicleStatusInTransit, 39.74, -104.99},
	{"2FTRX18W1XCA01212", "Ford", "F-150", 2022, shared.VehicleStatusAvailable, 0, 0},
	{"JH4KA7561PC008941", "Acura", "Legend", 2019, shared.VehicleStatusDelivered, 38.84, -104.82},
	{"5YJ3E1EA7KF317001", "Tesla", "Model 3", 2023, shared.VehicleStatusInTransit, 40.76, -111.89},
}

func (s *VehicleSeeder) Seed() error {
	var dealers []model.Dealer
	if err := s.db.Order("created_at").Find(&dealers).Error; err != nil {
		return err
	}
	if len(dealers) == 0 {
		log.Println("No dealers found, skipping vehicle seeding")
		return nil
	}

	for i, v := range demoVehicles {
		var count int64
		if err := s.db.Model(&model.Vehicle{}).Where("vin = ?", v.vin).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		vehicleID := newID()
		dealer := dealers[i%len(dealers)]

		if err := s.db.Create(&model.Vehicle{
			ID:       vehicleID,
			DealerID: dealer.ID,
			VIN:      v.vin,
			Make:     v.make,
			Model:    v.model,
			Year:     v.year,
			Status:   v.status,
		}).Error; err != nil {
			return err
		}

		if v.lat != 0 || v.lon != 0 {
			if err := s.db.Create(&model.VehicleLocation{
				ID:         newID(),
				VehicleID:  vehicleID,
				Lat:        v.lat,
				Lon:        v.lon,
				RecordedAt: time.Now().Add(-2 * time.Hour),
			}).Error; err != nil {
				return err
			}
		}

		log.Printf("Created vehicle %s %s (%s)", v.make, v.model, v.vin)
	}

	return nil
}
