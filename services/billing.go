package services

import (
	"fmt"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/autolane-tms/autolane_api/dto"
	"github.com/autolane-tms/autolane_api/model"
	"github.com/autolane-tms/autolane_api/shared"
)

// BillingService issues invoices, records top-ups and settles invoices from
// the dealer balance ledger.
type BillingService struct {
	context.DefaultService

	sqlSvc   *PostgresService
	emailSvc *EmailService
}

const BILLING_SVC = "billing_svc"

func (svc BillingService) Id() string {
	return BILLING_SVC
}

func (svc *BillingService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.emailSvc = svc.Service(EMAIL_SVC).(*EmailService)
	return nil
}

// ==================== INVOICES ====================

func (svc *BillingService) CreateInvoice(req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	dealer, err := svc.sqlSvc.GetDealer(req.DealerID)
	if err != nil {
		return nil, err
	}

	invoice := &model.Invoice{
		DealerID:    dealer.ID,
		AmountCents: req.AmountCents,
		DueDate:     req.DueDate,
	}

	if err := svc.sqlSvc.CreateInvoice(invoice); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	svc.notifyInvoice(dealer, invoice)

	return invoiceResponse(invoice), nil
}

func (svc *BillingService) GetInvoice(invoiceID string) (*dto.InvoiceResponse, error) {
	invoice, err := svc.sqlSvc.GetInvoice(invoiceID)
	if err != nil {
		return nil, err
	}
	return invoiceResponse(invoice), nil
}

func (svc *BillingService) ListInvoices(dealerID, status string, page, limit int) (*dto.InvoiceListResponse, error) {
	page, limit = normalizePage(page, limit)

	invoices, total, err := svc.sqlSvc.ListInvoices(dealerID, status, page, limit)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to list invoices")
	}

	resp := &dto.InvoiceListResponse{
		Invoices: make([]dto.InvoiceResponse, 0, len(invoices)),
		Total:    total,
		Page:     page,
		Limit:    limit,
	}
	for i := range invoices {
		resp.Invoices = append(resp.Invoices, *invoiceResponse(&invoices[i]))
	}
	return resp, nil
}

func (svc *BillingService) ListDealerInvoices(userID, status string, page, limit int) (*dto.InvoiceListResponse, error) {
	dealer, err := svc.sqlSvc.GetDealerByUserID(userID)
	if err != nil {
		return nil, err
	}
	return svc.ListInvoices(dealer.ID, status, page, limit)
}

func (svc *BillingService) VoidInvoice(invoiceID string) error {
	invoice, err := svc.sqlSvc.GetInvoice(invoiceID)
	if err != nil {
		return err
	}

	if invoice.Status != shared.InvoiceStatusOpen {
		return shared.NewBadRequestError(nil, "Only open invoices can be voided")
	}

	return svc.sqlSvc.VoidInvoice(invoiceID)
}

// PayInvoice settles an invoice from the balance of the dealer owning
// userID. Ownership and funds are both enforced inside the transaction.
func (svc *BillingService) PayInvoice(userID, invoiceID string) (*dto.InvoiceResponse, error) {
	dealer, err := svc.sqlSvc.GetDealerByUserID(userID)
	if err != nil {
		return nil, err
	}

	if err := svc.sqlSvc.PayInvoiceFromBalance(dealer.ID, invoiceID); err != nil {
		return nil, err
	}

	return svc.GetInvoice(invoiceID)
}

// ==================== BALANCE ====================

func (svc *BillingService) TopUp(req dto.TopUpRequest) (*dto.BalanceResponse, error) {
	dealer, err := svc.sqlSvc.GetDealer(req.DealerID)
	if err != nil {
		return nil, err
	}

	tx := &model.BalanceTransaction{
		DealerID:    dealer.ID,
		AmountCents: req.AmountCents,
		Reference:   req.Reference,
	}
	if err := svc.sqlSvc.CreateTopUp(tx); err != nil {
		return nil, shared.NewInternalError(err, "Failed to record top-up")
	}

	return svc.Balance(dealer.ID, false)
}

func (svc *BillingService) Balance(dealerID string, withTransactions bool) (*dto.BalanceResponse, error) {
	balance, err := svc.sqlSvc.DealerBalance(dealerID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load balance")
	}

	resp := &dto.BalanceResponse{
		DealerID:     dealerID,
		BalanceCents: balance,
	}

	if withTransactions {
		transactions, err := svc.sqlSvc.ListTransactions(dealerID, 50)
		if err != nil {
			return nil, shared.NewInternalError(err, "Failed to load transactions")
		}
		resp.Transactions = make([]dto.TransactionResponse, 0, len(transactions))
		for _, tx := range transactions {
			resp.Transactions = append(resp.Transactions, dto.TransactionResponse{
				ID:          tx.ID,
				AmountCents: tx.AmountCents,
				Kind:        tx.Kind,
				Reference:   tx.Reference,
				CreatedAt:   tx.CreatedAt,
			})
		}
	}

	return resp, nil
}

func (svc *BillingService) DealerBalanceByUserID(userID string, withTransactions bool) (*dto.BalanceResponse, error) {
	dealer, err := svc.sqlSvc.GetDealerByUserID(userID)
	if err != nil {
		return nil, err
	}
	return svc.Balance(dealer.ID, withTransactions)
}

func (svc *BillingService) notifyInvoice(dealer *model.Dealer, invoice *model.Invoice) {
	user, err := svc.sqlSvc.GetUser(dealer.UserID)
	if err != nil || user == nil {
		return
	}

	amount := fmt.Sprintf("$%.2f", float64(invoice.AmountCents)/100)
	due := invoice.DueDate.Format("2006-01-02")
	if err := svc.emailSvc.SendInvoiceEmail(user.Email, user.Name, invoice.Number, amount, due); err != nil {
		log.Errorf("Failed to send invoice email to %s: %v", user.Email, err)
	}
}

func invoiceResponse(invoice *model.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:          invoice.ID,
		DealerID:    invoice.DealerID,
		Number:      invoice.Number,
		AmountCents: invoice.AmountCents,
		Status:      invoice.Status,
		DueDate:     invoice.DueDate,
		PaidAt:      invoice.PaidAt,
		CreatedAt:   invoice.CreatedAt,
	}
}
