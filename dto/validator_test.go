package dto

import (
	"testing"
	"time"
)

func TestStrongPasswordRule(t *testing.T) {
	cases := []struct {
		password string
		valid    bool
	}{
		{"SecurePass123", true},
		{"Aa1bcdef", true},
		{"short1A", false},
		{"alllowercase1", false},
		{"ALLUPPERCASE1", false},
		{"NoNumbersHere", false},
		{"", false},
	}

	for _, tc := range cases {
		cp := ChangePasswordRequest{CurrentPassword: "old", NewPassword: tc.password}
		err := cp.Validate()
		if tc.valid && err != nil {
			t.Fatalf("%q should be accepted: %v", tc.password, err)
		}
		if !tc.valid && err == nil {
			t.Fatalf("%q should be rejected", tc.password)
		}
	}
}

func TestLoginRequestValidation(t *testing.T) {
	if err := (LoginRequest{Email: "not-an-email", Password: "x"}).Validate(); err == nil {
		t.Fatalf("expected invalid email rejected")
	}
	if err := (LoginRequest{Email: "a@b.test"}).Validate(); err == nil {
		t.Fatalf("expected missing password rejected")
	}
	if err := (LoginRequest{Email: "a@b.test", Password: "anything"}).Validate(); err != nil {
		t.Fatalf("valid login rejected: %v", err)
	}
}

func TestCreateVehicleRequestValidation(t *testing.T) {
	valid := CreateVehicleRequest{
		DealerID: "dlr_1",
		VIN:      "1HGCM82633A004352",
		Make:     "Honda",
		Model:    "Accord",
		Year:     2021,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid vehicle rejected: %v", err)
	}

	shortVIN := valid
	shortVIN.VIN = "1HGCM"
	if err := shortVIN.Validate(); err == nil {
		t.Fatalf("expected short VIN rejected")
	}

	badYear := valid
	badYear.Year = 1800
	if err := badYear.Validate(); err == nil {
		t.Fatalf("expected implausible year rejected")
	}
}

func TestUpdateVehicleStatusValidation(t *testing.T) {
	for _, status := range []string{"available", "in_transit", "delivered", "inactive"} {
		if err := (UpdateVehicleStatusRequest{Status: status}).Validate(); err != nil {
			t.Fatalf("%q should be accepted: %v", status, err)
		}
	}
	if err := (UpdateVehicleStatusRequest{Status: "scrapped"}).Validate(); err == nil {
		t.Fatalf("expected unknown status rejected")
	}
}

func TestQuoteRequestValidation(t *testing.T) {
	if err := (QuoteRequest{DistanceKm: 450, VehicleType: "sedan"}).Validate(); err != nil {
		t.Fatalf("valid quote rejected: %v", err)
	}
	if err := (QuoteRequest{DistanceKm: 450, VehicleType: "bicycle"}).Validate(); err == nil {
		t.Fatalf("expected unknown vehicle type rejected")
	}
	if err := (QuoteRequest{DistanceKm: 0, VehicleType: "sedan"}).Validate(); err == nil {
		t.Fatalf("expected zero distance rejected")
	}
}

func TestCreateInvoiceRequestValidation(t *testing.T) {
	valid := CreateInvoiceRequest{
		DealerID:    "dlr_1",
		AmountCents: 25000,
		DueDate:     time.Now().AddDate(0, 0, 14),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid invoice rejected: %v", err)
	}

	zeroAmount := valid
	zeroAmount.AmountCents = 0
	if err := zeroAmount.Validate(); err == nil {
		t.Fatalf("expected zero amount rejected")
	}
}

func TestFormatValidationErrors(t *testing.T) {
	err := (LoginRequest{Email: "nope", Password: ""}).Validate()
	if err == nil {
		t.Fatalf("expected validation failure")
	}

	resp := CreateValidationErrorResponse(err)
	if resp.Code != 400 || len(resp.Errors) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
