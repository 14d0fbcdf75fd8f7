package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/autolane-tms/autolane_api/dto"
	"github.com/autolane-tms/autolane_api/shared"
)

type CalculatorHandler struct {
	calculatorSvc CalculatorServiceInterface
}

func NewCalculatorHandler(calculatorSvc CalculatorServiceInterface) *CalculatorHandler {
	return &CalculatorHandler{calculatorSvc: calculatorSvc}
}

// @Summary Transportation quote
// @Description Price a transport by distance and vehicle class. Public, rate limited by client IP.
// @Tags calculator
// @Produce json
// @Param distance_km query number true "Distance in kilometers"
// @Param vehicle_type query string true "sedan, suv, van or truck"
// @Param enclosed query bool false "Enclosed transport"
// @Success 200 {object} shared.Response{data=dto.QuoteResponse}
// @Router /api/v1/calculator/quote [get]
func (h *CalculatorHandler) Quote(c *fiber.Ctx) error {
	var req dto.QuoteRequest
	if err := c.QueryParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	return shared.ResponseOK(c, h.calculatorSvc.Quote(req))
}
