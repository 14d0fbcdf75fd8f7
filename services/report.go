package services

import (
	"time"

	"github.com/alphabatem/common/context"

	"github.com/autolane-tms/autolane_api/dto"
	"github.com/autolane-tms/autolane_api/shared"
)

// ReportService aggregates the admin dashboard numbers.
type ReportService struct {
	context.DefaultService

	sqlSvc *PostgresService
}

const REPORT_SVC = "report_svc"

const revenueMonths = 6

func (svc ReportService) Id() string {
	return REPORT_SVC
}

func (svc *ReportService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

func (svc *ReportService) Dashboard() (*dto.DashboardReportResponse, error) {
	totalDealers, err := svc.sqlSvc.CountDealers()
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to build report")
	}

	vehiclesByStatus, totalVehicles, err := svc.sqlSvc.VehiclesByStatus()
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to build report")
	}

	openInvoices, outstandingCents, err := svc.sqlSvc.OpenInvoiceStats()
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to build report")
	}

	revenueByMonth, err := svc.sqlSvc.RevenueByMonth(revenueMonths)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to build report")
	}

	return &dto.DashboardReportResponse{
		TotalDealers:     totalDealers,
		TotalVehicles:    totalVehicles,
		VehiclesByStatus: vehiclesByStatus,
		OpenInvoices:     openInvoices,
		OutstandingCents: outstandingCents,
		RevenueByMonth:   revenueByMonth,
		GeneratedAt:      time.Now(),
	}, nil
}
