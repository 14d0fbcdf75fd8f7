package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/autolane-tms/autolane_api/dto"
	"github.com/autolane-tms/autolane_api/shared"
)

type AdminHandler struct {
	fleetSvc   FleetServiceInterface
	billingSvc BillingServiceInterface
	mediaSvc   MediaServiceInterface
	reportSvc  ReportServiceInterface
}

func NewAdminHandler(fleetSvc FleetServiceInterface, billingSvc BillingServiceInterface, mediaSvc MediaServiceInterface, reportSvc ReportServiceInterface) *AdminHandler {
	return &AdminHandler{
		fleetSvc:   fleetSvc,
		billingSvc: billingSvc,
		mediaSvc:   mediaSvc,
		reportSvc:  reportSvc,
	}
}

// ==================== DEALERS ====================

// @Summary Create dealer
// @Description Create a dealer account with its login user
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param dealerRequest body dto.CreateDealerRequest true "Dealer details"
// @Success 201 {object} shared.Response{data=dto.DealerResponse}
// @Router /api/v1/admin/dealers [post]
func (h *AdminHandler) CreateDealer(c *fiber.Ctx) error {
	var req dto.CreateDealerRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.fleetSvc.CreateDealer(req)
	if err != nil {
		return err
	}

	return shared.ResponseCreated(c, resp)
}

// @Summary List dealers
// @Tags admin
// @Produce json
// @Security Bearer
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Company name filter"
// @Success 200 {object} shared.Response{data=dto.DealerListResponse}
// @Router /api/v1/admin/dealers [get]
func (h *AdminHandler) ListDealers(c *fiber.Ctx) error {
	resp, err := h.fleetSvc.ListDealers(c.QueryInt("page", 1), c.QueryInt("limit", 20), c.Query("search"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Get dealer
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path string true "Dealer ID"
// @Success 200 {object} shared.Response{data=dto.DealerResponse}
// @Router /api/v1/admin/dealers/{id} [get]
func (h *AdminHandler) GetDealer(c *fiber.Ctx) error {
	resp, err := h.fleetSvc.GetDealer(c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Block or unblock dealer
// @Description Set the dealer account status. Blocked dealers cannot log in; live sessions carry the old status until renewal.
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Dealer ID"
// @Param statusRequest body dto.SetDealerStatusRequest true "New status"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/admin/dealers/{id}/status [put]
func (h *AdminHandler) SetDealerStatus(c *fiber.Ctx) error {
	var req dto.SetDealerStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	if err := h.fleetSvc.SetDealerStatus(c.Params("id"), req.Status); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Dealer status updated", nil)
}

// @Summary Dealer balance
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path string true "Dealer ID"
// @Success 200 {object} shared.Response{data=dto.BalanceResponse}
// @Router /api/v1/admin/dealers/{id}/balance [get]
func (h *AdminHandler) DealerBalance(c *fiber.Ctx) error {
	resp, err := h.billingSvc.Balance(c.Params("id"), true)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// ==================== VEHICLES ====================

// @Summary Create vehicle
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param vehicleRequest body dto.CreateVehicleRequest true "Vehicle details"
// @Success 201 {object} shared.Response{data=dto.VehicleResponse}
// @Router /api/v1/admin/vehicles [post]
func (h *AdminHandler) CreateVehicle(c *fiber.Ctx) error {
	var req dto.CreateVehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.fleetSvc.CreateVehicle(req)
	if err != nil {
		return err
	}

	return shared.ResponseCreated(c, resp)
}

// @Summary List vehicles
// @Tags admin
// @Produce json
// @Security Bearer
// @Param dealer_id query string false "Filter by dealer"
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} shared.Response{data=dto.VehicleListResponse}
// @Router /api/v1/admin/vehicles [get]
func (h *AdminHandler) ListVehicles(c *fiber.Ctx) error {
	resp, err := h.fleetSvc.ListVehicles(c.Query("dealer_id"), c.Query("status"),
		c.QueryInt("page", 1), c.QueryInt("limit", 20))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Get vehicle
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path string true "Vehicle ID"
// @Success 200 {object} shared.Response{data=dto.VehicleResponse}
// @Router /api/v1/admin/vehicles/{id} [get]
func (h *AdminHandler) GetVehicle(c *fiber.Ctx) error {
	resp, err := h.fleetSvc.GetVehicle(c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Update vehicle status
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Vehicle ID"
// @Param statusRequest body dto.UpdateVehicleStatusRequest true "New status"
// @Success 200 {object} shared.Response{data=dto.VehicleResponse}
// @Router /api/v1/admin/vehicles/{id}/status [put]
func (h *AdminHandler) UpdateVehicleStatus(c *fiber.Ctx) error {
	var req dto.UpdateVehicleStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.fleetSvc.UpdateVehicleStatus(c.Params("id"), req.Status)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Record vehicle location
// @Description Append a GPS fix to the vehicle's tracking history
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Vehicle ID"
// @Param locationRequest body dto.RecordLocationRequest true "Coordinates"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/admin/vehicles/{id}/location [post]
func (h *AdminHandler) RecordLocation(c *fiber.Ctx) error {
	var req dto.RecordLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	if err := h.fleetSvc.RecordLocation(c.Params("id"), req); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Location recorded", nil)
}

// @Summary Request vehicle photo upload
// @Description Issue a presigned upload URL for a vehicle photo
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path string true "Vehicle ID"
// @Param filename query string true "Original filename"
// @Success 200 {object} shared.Response{data=dto.PhotoUploadResponse}
// @Router /api/v1/admin/vehicles/{id}/photo [post]
func (h *AdminHandler) RequestPhotoUpload(c *fiber.Ctx) error {
	filename := c.Query("filename")
	if filename == "" {
		return shared.NewBadRequestError(nil, "filename is required")
	}

	resp, err := h.mediaSvc.RequestPhotoUpload(c.Params("id"), filename)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Delete vehicle photo
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path string true "Vehicle ID"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/admin/vehicles/{id}/photo [delete]
func (h *AdminHandler) DeletePhoto(c *fiber.Ctx) error {
	if err := h.mediaSvc.DeletePhoto(c.Params("id")); err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Photo deleted", nil)
}

// ==================== BILLING ====================

// @Summary Create invoice
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param invoiceRequest body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} shared.Response{data=dto.InvoiceResponse}
// @Router /api/v1/admin/invoices [post]
func (h *AdminHandler) CreateInvoice(c *fiber.Ctx) error {
	var req dto.CreateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.billingSvc.CreateInvoice(req)
	if err != nil {
		return err
	}

	return shared.ResponseCreated(c, resp)
}

// @Summary List invoices
// @Tags admin
// @Produce json
// @Security Bearer
// @Param dealer_id query string false "Filter by dealer"
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} shared.Response{data=dto.InvoiceListResponse}
// @Router /api/v1/admin/invoices [get]
func (h *AdminHandler) ListInvoices(c *fiber.Ctx) error {
	resp, err := h.billingSvc.ListInvoices(c.Query("dealer_id"), c.Query("status"),
		c.QueryInt("page", 1), c.QueryInt("limit", 20))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Get invoice
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path string true "Invoice ID"
// @Success 200 {object} shared.Response{data=dto.InvoiceResponse}
// @Router /api/v1/admin/invoices/{id} [get]
func (h *AdminHandler) GetInvoice(c *fiber.Ctx) error {
	resp, err := h.billingSvc.GetInvoice(c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Void invoice
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path string true "Invoice ID"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/admin/invoices/{id}/void [put]
func (h *AdminHandler) VoidInvoice(c *fiber.Ctx) error {
	if err := h.billingSvc.VoidInvoice(c.Params("id")); err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Invoice voided", nil)
}

// @Summary Record balance top-up
// @Description Credit a dealer's balance ledger
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param topUpRequest body dto.TopUpRequest true "Top-up details"
// @Success 201 {object} shared.Response{data=dto.BalanceResponse}
// @Router /api/v1/admin/topups [post]
func (h *AdminHandler) TopUp(c *fiber.Ctx) error {
	var req dto.TopUpRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.billingSvc.TopUp(req)
	if err != nil {
		return err
	}

	return shared.ResponseCreated(c, resp)
}

// ==================== REPORTS ====================

// @Summary Dashboard report
// @Description Aggregated fleet and billing numbers for the admin dashboard
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.DashboardReportResponse}
// @Router /api/v1/admin/reports/dashboard [get]
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	resp, err := h.reportSvc.Dashboard()
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}
