package handlers

import (
	"github.com/autolane-tms/autolane_api/dto"
)

type AuthServiceInterface interface {
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
	LoginStatus(email string) dto.LoginStatusResponse
	ChangePassword(userID string, req dto.ChangePasswordRequest) error
	ForgotPassword(email string) error
	ResetPassword(req dto.ResetPasswordRequest) error
}

type FleetServiceInterface interface {
	CreateDealer(req dto.CreateDealerRequest) (*dto.DealerResponse, error)
	GetDealer(dealerID string) (*dto.DealerResponse, error)
	GetDealerByUserID(userID string) (*dto.DealerResponse, error)
	ListDealers(page, limit int, search string) (*dto.DealerListResponse, error)
	UpdateDealerProfile(userID string, req dto.UpdateDealerProfileRequest) (*dto.DealerResponse, error)
	SetDealerStatus(dealerID, status string) error

	CreateVehicle(req dto.CreateVehicleRequest) (*dto.VehicleResponse, error)
	GetVehicle(vehicleID string) (*dto.VehicleResponse, error)
	GetDealerVehicle(userID, vehicleID string) (*dto.VehicleResponse, error)
	ListVehicles(dealerID, status string, page, limit int) (*dto.VehicleListResponse, error)
	ListDealerVehicles(userID, status string, page, limit int) (*dto.VehicleListResponse, error)
	UpdateVehicleStatus(vehicleID, status string) (*dto.VehicleResponse, error)
	RecordLocation(vehicleID string, req dto.RecordLocationRequest) error
}

type BillingServiceInterface interface {
	CreateInvoice(req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(invoiceID string) (*dto.InvoiceResponse, error)
	ListInvoices(dealerID, status string, page, limit int) (*dto.InvoiceListResponse, error)
	ListDealerInvoices(userID, status string, page, limit int) (*dto.InvoiceListResponse, error)
	VoidInvoice(invoiceID string) error
	PayInvoice(userID, invoiceID string) (*dto.InvoiceResponse, error)
	TopUp(req dto.TopUpRequest) (*dto.BalanceResponse, error)
	Balance(dealerID string, withTransactions bool) (*dto.BalanceResponse, error)
	DealerBalanceByUserID(userID string, withTransactions bool) (*dto.BalanceResponse, error)
}

type MediaServiceInterface interface {
	RequestPhotoUpload(vehicleID, filename string) (*dto.PhotoUploadResponse, error)
	DeletePhoto(vehicleID string) error
}

type ReportServiceInterface interface {
	Dashboard() (*dto.DashboardReportResponse, error)
}

type CalculatorServiceInterface interface {
	Quote(req dto.QuoteRequest) *dto.QuoteResponse
}
