package dto

import "time"

type CreateInvoiceRequest struct {
	DealerID    string    `json:"dealer_id" validate:"required" example:"dlr_0190b2c4"`
	AmountCents int64     `json:"amount_cents" validate:"required,min=1" example:"25000"`
	DueDate     time.Time `json:"due_date" validate:"required"`
}

func (r CreateInvoiceRequest) Validate() error {
	return GetValidator().Struct(r)
}

type TopUpRequest struct {
	DealerID    string `json:"dealer_id" validate:"required" example:"dlr_0190b2c4"`
	AmountCents int64  `json:"amount_cents" validate:"required,min=1" example:"100000"`
	Reference   string `json:"reference,omitempty" validate:"omitempty,max=255" example:"wire-2024-0042"`
}

func (r TopUpRequest) Validate() error {
	return GetValidator().Struct(r)
}

type InvoiceResponse struct {
	ID          string     `json:"id" example:"inv_0190b2c4"`
	DealerID    string     `json:"dealer_id" example:"dlr_0190b2c4"`
	Number      string     `json:"number" example:"INV-2024-0042"`
	AmountCents int64      `json:"amount_cents" example:"25000"`
	Status      string     `json:"status" example:"open"`
	DueDate     time.Time  `json:"due_date"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
	Total    int64             `json:"total" example:"8"`
	Page     int               `json:"page" example:"1"`
	Limit    int               `json:"limit" example:"20"`
}

type BalanceResponse struct {
	DealerID     string                `json:"dealer_id" example:"dlr_0190b2c4"`
	BalanceCents int64                 `json:"balance_cents" example:"75000"`
	Transactions []TransactionResponse `json:"transactions,omitempty"`
}

type TransactionResponse struct {
	ID          string    `json:"id" example:"txn_0190b2c4"`
	AmountCents int64     `json:"amount_cents" example:"-25000"`
	Kind        string    `json:"kind" example:"invoice_payment"`
	Reference   string    `json:"reference,omitempty" example:"INV-2024-0042"`
	CreatedAt   time.Time `json:"created_at"`
}

// ==================== REPORTS ====================

type MonthlyRevenue struct {
	Month        string `json:"month" example:"2024-06"`
	RevenueCents int64  `json:"revenue_cents" example:"1250000"`
}

type DashboardReportResponse struct {
	TotalDealers     int64            `json:"total_dealers" example:"42"`
	TotalVehicles    int64            `json:"total_vehicles" example:"317"`
	VehiclesByStatus map[string]int64 `json:"vehicles_by_status"`
	OpenInvoices     int64            `json:"open_invoices" example:"12"`
	OutstandingCents int64            `json:"outstanding_cents" example:"480000"`
	RevenueByMonth   []MonthlyRevenue `json:"revenue_by_month"`
	GeneratedAt      time.Time        `json:"generated_at"`
}
