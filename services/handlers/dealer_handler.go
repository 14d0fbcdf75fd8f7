package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/autolane-tms/autolane_api/dto"
	"github.com/autolane-tms/autolane_api/shared"
)

type DealerHandler struct {
	fleetSvc   FleetServiceInterface
	billingSvc BillingServiceInterface
}

func NewDealerHandler(fleetSvc FleetServiceInterface, billingSvc BillingServiceInterface) *DealerHandler {
	return &DealerHandler{
		fleetSvc:   fleetSvc,
		billingSvc: billingSvc,
	}
}

func currentUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals(shared.UserID).(string)
	return userID
}

// @Summary Dealer profile
// @Tags dealer
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.DealerResponse}
// @Router /api/v1/dealer/profile [get]
func (h *DealerHandler) GetProfile(c *fiber.Ctx) error {
	resp, err := h.fleetSvc.GetDealerByUserID(currentUserID(c))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Update dealer profile
// @Tags dealer
// @Accept json
// @Produce json
// @Security Bearer
// @Param profileRequest body dto.UpdateDealerProfileRequest true "Profile fields"
// @Success 200 {object} shared.Response{data=dto.DealerResponse}
// @Router /api/v1/dealer/profile [put]
func (h *DealerHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.UpdateDealerProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.fleetSvc.UpdateDealerProfile(currentUserID(c), req)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary List own vehicles
// @Tags dealer
// @Produce json
// @Security Bearer
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} shared.Response{data=dto.VehicleListResponse}
// @Router /api/v1/dealer/vehicles [get]
func (h *DealerHandler) ListVehicles(c *fiber.Ctx) error {
	resp, err := h.fleetSvc.ListDealerVehicles(currentUserID(c), c.Query("status"),
		c.QueryInt("page", 1), c.QueryInt("limit", 20))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Get own vehicle
// @Description Vehicles of other dealers read as not found
// @Tags dealer
// @Produce json
// @Security Bearer
// @Param id path string true "Vehicle ID"
// @Success 200 {object} shared.Response{data=dto.VehicleResponse}
// @Router /api/v1/dealer/vehicles/{id} [get]
func (h *DealerHandler) GetVehicle(c *fiber.Ctx) error {
	resp, err := h.fleetSvc.GetDealerVehicle(currentUserID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary List own invoices
// @Tags dealer
// @Produce json
// @Security Bearer
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} shared.Response{data=dto.InvoiceListResponse}
// @Router /api/v1/dealer/invoices [get]
func (h *DealerHandler) ListInvoices(c *fiber.Ctx) error {
	resp, err := h.billingSvc.ListDealerInvoices(currentUserID(c), c.Query("status"),
		c.QueryInt("page", 1), c.QueryInt("limit", 20))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Pay invoice from balance
// @Description Settle an open invoice from the dealer balance. Fails with 400 on insufficient funds.
// @Tags dealer
// @Produce json
// @Security Bearer
// @Param id path string true "Invoice ID"
// @Success 200 {object} shared.Response{data=dto.InvoiceResponse}
// @Router /api/v1/dealer/invoices/{id}/pay [post]
func (h *DealerHandler) PayInvoice(c *fiber.Ctx) error {
	resp, err := h.billingSvc.PayInvoice(currentUserID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Balance and recent transactions
// @Tags dealer
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.BalanceResponse}
// @Router /api/v1/dealer/balance [get]
func (h *DealerHandler) Balance(c *fiber.Ctx) error {
	resp, err := h.billingSvc.DealerBalanceByUserID(currentUserID(c), true)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}
