package services

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/autolane-tms/autolane_api/dto"
	"github.com/autolane-tms/autolane_api/model"
	"github.com/autolane-tms/autolane_api/shared"
)

type PostgresService struct {
	context.DefaultService
	db *gorm.DB

	database string
}

const POSTGRES_SVC = "postgres_svc"

func (ds PostgresService) Id() string {
	return POSTGRES_SVC
}

func (ds PostgresService) Db() *gorm.DB {
	return ds.db
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (ds *PostgresService) Configure(ctx *context.Context) error {
	ds.database = os.Getenv("DATABASE_URL")
	if ds.database == "" {
		ds.database = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			envOr("DB_HOST", "localhost"),
			envOr("DB_USER", "postgres"),
			envOr("DB_PASSWORD", "postgres"),
			envOr("DB_NAME", "autolane_api"),
			envOr("DB_PORT", "5432"),
			envOr("DB_SSLMODE", "disable"),
			envOr("DB_TIMEZONE", "UTC"),
		)
	}

	return ds.DefaultService.Configure(ctx)
}

func (ds *PostgresService) Start() (err error) {
	maxRetries := 10
	retryDelay := time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		ds.db, err = gorm.Open(postgres.Open(ds.database), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Error),
		})

		if err == nil {
			sqlDB, dbErr := ds.db.DB()
			if dbErr == nil {
				if pingErr := sqlDB.Ping(); pingErr == nil {
					break
				} else {
					err = pingErr
				}
			} else {
				err = dbErr
			}
		}

		if attempt == maxRetries {
			log.Errorf("Failed to connect to database after %d attempts: %v", maxRetries, err)
			return err
		}

		log.Warnf("Database connection failed: %v. Retrying in %v...", err, retryDelay)
		time.Sleep(retryDelay)

		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}

	if err := ds.db.AutoMigrate(
		&model.User{},
		&model.PasswordResetCode{},
		&model.Dealer{},
		&model.Vehicle{},
		&model.VehicleLocation{},
		&model.Invoice{},
		&model.BalanceTransaction{},
	); err != nil {
		log.Errorf("Failed to migrate database: %v", err)
		return err
	}

	if err := ds.seedAdminUser(); err != nil {
		return err
	}

	go ds.startCleanupJob()

	log.Info("Database connected and migrated successfully")
	return nil
}

func newID() string {
	id, _ := uuid.NewV7()
	return id.String()
}

func (ds *PostgresService) HandleError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NewNotFoundError(err, "Not Found")
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.NewBadRequestError(err, "Duplicate record")
	}
	return shared.NewInternalError(err, "Internal Server Error")
}

// ==================== SEED ====================

func (ds *PostgresService) seedAdminUser() error {
	var count int64
	if err := ds.db.Model(&model.User{}).Where("role = ?", shared.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := envOr("ADMIN_PASSWORD", "ChangeMe123")
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	admin := &model.User{
		ID:       newID(),
		Email:    envOr("ADMIN_EMAIL", "admin@autolane.local"),
		Name:     "Administrator",
		Password: hash,
		Role:     shared.RoleAdmin,
		Status:   shared.StatusActive,
	}

	if err := ds.db.Create(admin).Error; err != nil {
		return err
	}

	log.Infof("Seeded admin user %s", admin.Email)
	return nil
}

// ==================== USERS ====================

func (ds *PostgresService) GetUser(userID string) (*model.User, error) {
	var user model.User
	if err := ds.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (ds *PostgresService) GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	if err := ds.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (ds *PostgresService) UpdateLastLogin(userID string) error {
	now := time.Now()
	return ds.db.Model(&model.User{}).Where("id = ?", userID).
		Update("last_login", &now).Error
}

func (ds *PostgresService) UpdateUserPassword(userID, passwordHash string) error {
	return ds.db.Model(&model.User{}).Where("id = ?", userID).
		Update("password", passwordHash).Error
}

func (ds *PostgresService) UpdateUserStatus(userID, status string) error {
	return ds.db.Model(&model.User{}).Where("id = ?", userID).
		Update("status", status).Error
}

// ==================== PASSWORD RESET CODES ====================

func (ds *PostgresService) CreatePasswordResetCode(code *model.PasswordResetCode) error {
	if code.ID == "" {
		code.ID = newID()
	}
	code.CreatedAt = time.Now()
	return ds.db.Create(code).Error
}

func (ds *PostgresService) GetActivePasswordResetCode(userID, code string) (*model.PasswordResetCode, error) {
	var resetCode model.PasswordResetCode
	err := ds.db.Where("user_id = ? AND code = ? AND used = false AND expires_at > ?",
		userID, code, time.Now()).First(&resetCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &resetCode, nil
}

func (ds *PostgresService) MarkResetCodeUsed(codeID string) error {
	return ds.db.Model(&model.PasswordResetCode{}).Where("id = ?", codeID).
		Update("used", true).Error
}

func (ds *PostgresService) CleanupExpiredResetCodes() error {
	return ds.db.Where("expires_at < ? OR used = true", time.Now().Add(-24*time.Hour)).
		Delete(&model.PasswordResetCode{}).Error
}

// ==================== DEALERS ====================

// CreateDealer creates the login user and the dealer record in one
// transaction.
func (ds *PostgresService) CreateDealer(user *model.User, dealer *model.Dealer) error {
	user.ID = newID()
	user.Role = shared.RoleDealer
	user.Status = shared.StatusActive

	dealer.ID = newID()
	dealer.UserID = user.ID

	return ds.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(dealer).Error
	})
}

func (ds *PostgresService) GetDealer(dealerID string) (*model.Dealer, error) {
	var dealer model.Dealer
	if err := ds.db.First(&dealer, "id = ?", dealerID).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &dealer, nil
}

func (ds *PostgresService) GetDealerByUserID(userID string) (*model.Dealer, error) {
	var dealer model.Dealer
	if err := ds.db.First(&dealer, "user_id = ?", userID).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &dealer, nil
}

func (ds *PostgresService) ListDealers(page, limit int, search string) ([]model.Dealer, int64, error) {
	var dealers []model.Dealer
	var total int64

	query := ds.db.Model(&model.Dealer{})
	if search != "" {
		query = query.Where("company_name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&dealers).Error
	return dealers, total, err
}

func (ds *PostgresService) UpdateDealer(dealer *model.Dealer) error {
	dealer.UpdatedAt = time.Now()
	return ds.db.Save(dealer).Error
}

// DealerBalance derives the balance from the transaction ledger.
func (ds *PostgresService) DealerBalance(dealerID string) (int64, error) {
	var balance int64
	err := ds.db.Model(&model.BalanceTransaction{}).
		Where("dealer_id = ?", dealerID).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&balance).Error
	return balance, err
}

// ==================== VEHICLES ====================

func (ds *PostgresService) CreateVehicle(vehicle *model.Vehicle) error {
	vehicle.ID = newID()
	if vehicle.Status == "" {
		vehicle.Status = shared.VehicleStatusAvailable
	}
	return ds.db.Create(vehicle).Error
}

func (ds *PostgresService) GetVehicle(vehicleID string) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := ds.db.First(&vehicle, "id = ?", vehicleID).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &vehicle, nil
}

func (ds *PostgresService) ListVehicles(dealerID, status string, page, limit int) ([]model.Vehicle, int64, error) {
	var vehicles []model.Vehicle
	var total int64

	query := ds.db.Model(&model.Vehicle{})
	if dealerID != "" {
		query = query.Where("dealer_id = ?", dealerID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&vehicles).Error
	return vehicles, total, err
}

func (ds *PostgresService) UpdateVehicleStatus(vehicleID, status string) error {
	return ds.db.Model(&model.Vehicle{}).Where("id = ?", vehicleID).
		Update("status", status).Error
}

func (ds *PostgresService) SetVehiclePhotoKey(vehicleID, photoKey string) error {
	return ds.db.Model(&model.Vehicle{}).Where("id = ?", vehicleID).
		Update("photo_key", photoKey).Error
}

func (ds *PostgresService) AddVehicleLocation(location *model.VehicleLocation) error {
	location.ID = newID()
	if location.RecordedAt.IsZero() {
		location.RecordedAt = time.Now()
	}
	return ds.db.Create(location).Error
}

func (ds *PostgresService) LatestVehicleLocation(vehicleID string) (*model.VehicleLocation, error) {
	var location model.VehicleLocation
	err := ds.db.Where("vehicle_id = ?", vehicleID).
		Order("recorded_at DESC").First(&location).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &location, nil
}

// ==================== BILLING ====================

func (ds *PostgresService) CreateInvoice(invoice *model.Invoice) error {
	invoice.ID = newID()
	invoice.Status = shared.InvoiceStatusOpen
	if invoice.Number == "" {
		invoice.Number = fmt.Sprintf("INV-%d-%s", time.Now().Year(), invoice.ID[len(invoice.ID)-8:])
	}
	return ds.db.Create(invoice).Error
}

func (ds *PostgresService) GetInvoice(invoiceID string) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := ds.db.First(&invoice, "id = ?", invoiceID).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &invoice, nil
}

func (ds *PostgresService) ListInvoices(dealerID, status string, page, limit int) ([]model.Invoice, int64, error) {
	var invoices []model.Invoice
	var total int64

	query := ds.db.Model(&model.Invoice{})
	if dealerID != "" {
		query = query.Where("dealer_id = ?", dealerID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&invoices).Error
	return invoices, total, err
}

func (ds *PostgresService) VoidInvoice(invoiceID string) error {
	return ds.db.Model(&model.Invoice{}).
		Where("id = ? AND status = ?", invoiceID, shared.InvoiceStatusOpen).
		Update("status", shared.InvoiceStatusVoid).Error
}

func (ds *PostgresService) CreateTopUp(tx *model.BalanceTransaction) error {
	tx.ID = newID()
	tx.Kind = shared.TxKindTopUp
	return ds.db.Create(tx).Error
}

// PayInvoiceFromBalance debits the dealer ledger and marks the invoice paid
// atomically. Insufficient funds roll the whole thing back.
func (ds *PostgresService) PayInvoiceFromBalance(dealerID, invoiceID string) error {
	return ds.db.Transaction(func(tx *gorm.DB) error {
		var invoice model.Invoice
		if err := tx.First(&invoice, "id = ? AND dealer_id = ?", invoiceID, dealerID).Error; err != nil {
			return shared.NewNotFoundError(err, "Invoice not found")
		}

		if invoice.Status != shared.InvoiceStatusOpen {
			return shared.NewBadRequestError(nil, "Invoice is not open")
		}

		var balance int64
		if err := tx.Model(&model.BalanceTransaction{}).
			Where("dealer_id = ?", dealerID).
			Select("COALESCE(SUM(amount_cents), 0)").
			Scan(&balance).Error; err != nil {
			return err
		}

		if balance < invoice.AmountCents {
			return shared.NewBadRequestError(nil, "Insufficient balance")
		}

		if err := tx.Create(&model.BalanceTransaction{
			ID:          newID(),
			DealerID:    dealerID,
			AmountCents: -invoice.AmountCents,
			Kind:        shared.TxKindInvoicePayment,
			Reference:   invoice.Number,
		}).Error; err != nil {
			return err
		}

		now := time.Now()
		return tx.Model(&model.Invoice{}).Where("id = ?", invoice.ID).
			Updates(map[string]interface{}{
				"status":  shared.InvoiceStatusPaid,
				"paid_at": &now,
			}).Error
	})
}

func (ds *PostgresService) ListTransactions(dealerID string, limit int) ([]model.BalanceTransaction, error) {
	var transactions []model.BalanceTransaction
	err := ds.db.Where("dealer_id = ?", dealerID).
		Order("created_at DESC").Limit(limit).
		Find(&transactions).Error
	return transactions, err
}

// ==================== REPORTS ====================

func (ds *PostgresService) CountDealers() (int64, error) {
	var count int64
	err := ds.db.Model(&model.Dealer{}).Count(&count).Error
	return count, err
}

func (ds *PostgresService) VehiclesByStatus() (map[string]int64, int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row

	err := ds.db.Model(&model.Vehicle{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	byStatus := make(map[string]int64, len(rows))
	var total int64
	for _, r := range rows {
		byStatus[r.Status] = r.Count
		total += r.Count
	}
	return byStatus, total, nil
}

func (ds *PostgresService) OpenInvoiceStats() (count int64, outstandingCents int64, err error) {
	type row struct {
		Count       int64
		Outstanding int64
	}
	var r row

	err = ds.db.Model(&model.Invoice{}).
		Where("status = ?", shared.InvoiceStatusOpen).
		Select("COUNT(*) AS count, COALESCE(SUM(amount_cents), 0) AS outstanding").
		Scan(&r).Error
	return r.Count, r.Outstanding, err
}

func (ds *PostgresService) RevenueByMonth(months int) ([]dto.MonthlyRevenue, error) {
	type row struct {
		Month   string
		Revenue int64
	}
	var rows []row

	since := time.Now().AddDate(0, -months, 0)
	err := ds.db.Model(&model.Invoice{}).
		Where("status = ? AND paid_at >= ?", shared.InvoiceStatusPaid, since).
		Select("to_char(paid_at, 'YYYY-MM') AS month, COALESCE(SUM(amount_cents), 0) AS revenue").
		Group("month").
		Order("month").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	revenue := make([]dto.MonthlyRevenue, 0, len(rows))
	for _, r := range rows {
		revenue = append(revenue, dto.MonthlyRevenue{Month: r.Month, RevenueCents: r.Revenue})
	}
	return revenue, nil
}

// ==================== BACKGROUND CLEANUP ====================

func (ds *PostgresService) startCleanupJob() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := ds.CleanupExpiredResetCodes(); err != nil {
			log.Errorf("Reset code cleanup error: %v", err)
		}
	}
}
