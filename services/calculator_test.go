package services

import (
	"testing"

	"github.com/autolane-tms/autolane_api/dto"
)

func TestQuoteSedan(t *testing.T) {
	svc := &CalculatorService{}

	resp := svc.Quote(dto.QuoteRequest{DistanceKm: 450, VehicleType: "sedan"})
	if resp.PriceCents != 61500 {
		t.Fatalf("expected 61500, got %d", resp.PriceCents)
	}
	if resp.Currency != "USD" {
		t.Fatalf("expected USD, got %s", resp.Currency)
	}
}

func TestQuoteEnclosedPremium(t *testing.T) {
	svc := &CalculatorService{}

	open := svc.Quote(dto.QuoteRequest{DistanceKm: 100, VehicleType: "truck"})
	enclosed := svc.Quote(dto.QuoteRequest{DistanceKm: 100, VehicleType: "truck", Enclosed: true})

	if open.PriceCents != 28500 {
		t.Fatalf("expected 28500 open, got %d", open.PriceCents)
	}
	if enclosed.PriceCents != 39900 {
		t.Fatalf("expected 39900 enclosed, got %d", enclosed.PriceCents)
	}
}

func TestQuoteVehicleClassOrdering(t *testing.T) {
	svc := &CalculatorService{}

	prev := int64(0)
	for _, vt := range []string{"sedan", "suv", "van", "truck"} {
		resp := svc.Quote(dto.QuoteRequest{DistanceKm: 500, VehicleType: vt})
		if resp.PriceCents <= prev {
			t.Fatalf("%s should cost more than the previous class (%d <= %d)", vt, resp.PriceCents, prev)
		}
		prev = resp.PriceCents
	}
}

func TestQuoteUnknownTypeFallsBack(t *testing.T) {
	svc := &CalculatorService{}

	sedan := svc.Quote(dto.QuoteRequest{DistanceKm: 200, VehicleType: "sedan"})
	unknown := svc.Quote(dto.QuoteRequest{DistanceKm: 200, VehicleType: "hovercraft"})

	if unknown.PriceCents != sedan.PriceCents {
		t.Fatalf("unknown type should price as sedan: %d vs %d", unknown.PriceCents, sedan.PriceCents)
	}
}
