package seeders

import (
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/autolane-tms/autolane_api/model"
	"github.com/autolane-tms/autolane_api/shared"
)

// DealerSeeder creates demo dealer accounts with their login users.
type DealerSeeder struct {
	db *gorm.DB
}

func NewDealerSeeder(db *gorm.DB) *DealerSeeder {
	return &DealerSeeder{db: db}
}

type demoDealer struct {
	email   string
	name    string
	company string
	phone   string
	address string
}

var demoDealers = []demoDealer{
	{"jane@acmetransport.test", "Jane Miller", "Acme Transport", "+1 555 0100", "1 Main St, Springfield"},
	{"omar@rapidhaul.test", "Omar Haddad", "Rapid Haul Logistics", "+1 555 0101", "42 Dock Rd, Portsmouth"},
	{"li@sunriseauto.test", "Li Chen", "Sunrise Auto Group", "+1 555 0102", "9 Market Ave, Denver"},
}

func (s *DealerSeeder) Seed() error {
	hash, err := bcrypt.GenerateFromPassword([]byte("DemoPass123"), 12)
	if err != nil {
		return err
	}

	for _, d := range demoDealers {
		var count int64
		if err := s.db.Model(&model.User{}).Where("email = ?", d.email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			log.Printf("Dealer %s already exists, skipping", d.email)
			continue
		}

		userID := newID()
		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&model.User{
				ID:       userID,
				Email:    d.email,
				Name:     d.name,
				Password: string(hash),
				Role:     shared.RoleDealer,
				Status:   shared.StatusActive,
			}).Error; err != nil {
				return err
			}

			return tx.Create(&model.Dealer{
				ID:          newID(),
				UserID:      userID,
				CompanyName: d.company,
				Phone:       d.phone,
				Address:     d.address,
			}).Error
		})
		if err != nil {
			return err
		}

		log.Printf("Created dealer %s (password: DemoPass123)", d.email)
	}

	return nil
}

func newID() string {
	id, _ := uuid.NewV7()
	return id.String()
}
