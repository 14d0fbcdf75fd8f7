package services

import (
	"math"

	"github.com/alphabatem/common/context"

	"github.com/autolane-tms/autolane_api/dto"
)

// CalculatorService prices transportation quotes. Pure arithmetic, no
// storage; exposed publicly behind the calculator rate limit.
type CalculatorService struct {
	context.DefaultService
}

const CALCULATOR_SVC = "calculator_svc"

// Pricing table in cents. Base fee plus a per-km rate by vehicle class;
// enclosed transport carries a 40% premium.
const (
	quoteBaseCents     = 7500
	enclosedMultiplier = 1.4
	quoteCurrency      = "USD"
)

var perKmCents = map[string]float64{
	"sedan": 120,
	"suv":   140,
	"van":   160,
	"truck": 210,
}

func (svc CalculatorService) Id() string {
	return CALCULATOR_SVC
}

func (svc *CalculatorService) Start() error {
	return nil
}

func (svc *CalculatorService) Quote(req dto.QuoteRequest) *dto.QuoteResponse {
	rate, ok := perKmCents[req.VehicleType]
	if !ok {
		rate = perKmCents["sedan"]
	}

	price := quoteBaseCents + rate*req.DistanceKm
	if req.Enclosed {
		price *= enclosedMultiplier
	}

	return &dto.QuoteResponse{
		DistanceKm:  req.DistanceKm,
		VehicleType: req.VehicleType,
		Enclosed:    req.Enclosed,
		PriceCents:  int64(math.Round(price)),
		Currency:    quoteCurrency,
	}
}
