package seeders

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/autolane-tms/autolane_api/model"
	"github.com/autolane-tms/autolane_api/shared"
)

// BillingSeeder gives each seeded dealer an opening balance and an open
// invoice so the payment flow can be exercised immediately.
type BillingSeeder struct {
	db *gorm.DB
}

func NewBillingSeeder(db *gorm.DB) *BillingSeeder {
	return &BillingSeeder{db: db}
}

const (
	openingBalanceCents = 150000
	demoInvoiceCents    = 25000
)

func (s *BillingSeeder) Seed() error {
	var dealers []model.Dealer
	if err := s.db.Order("created_at").Find(&dealers).Error; err != nil {
		return err
	}

	for i, dealer := range dealers {
		var count int64
		if err := s.db.Model(&model.BalanceTransaction{}).
			Where("dealer_id = ?", dealer.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		if err := s.db.Create(&model.BalanceTransaction{
			ID:          newID(),
			DealerID:    dealer.ID,
			AmountCents: openingBalanceCents,
			Kind:        shared.TxKindTopUp,
			Reference:   "opening-balance",
		}).Error; err != nil {
			return err
		}

		invoiceID := newID()
		if err := s.db.Create(&model.Invoice{
			ID:          invoiceID,
			DealerID:    dealer.ID,
			Number:      fmt.Sprintf("INV-%d-%04d", time.Now().Year(), i+1),
			AmountCents: demoInvoiceCents,
			Status:      shared.InvoiceStatusOpen,
			DueDate:     time.Now().AddDate(0, 0, 14),
		}).Error; err != nil {
			return err
		}

		log.Printf("Seeded balance and invoice for dealer %s", dealer.CompanyName)
	}

	return nil
}
