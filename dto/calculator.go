package dto

type QuoteRequest struct {
	DistanceKm  float64 `json:"distance_km" query:"distance_km" validate:"required,min=1,max=20000" example:"450"`
	VehicleType string  `json:"vehicle_type" query:"vehicle_type" validate:"required,oneof=sedan suv van truck" example:"sedan"`
	Enclosed    bool    `json:"enclosed" query:"enclosed" example:"false"`
}

func (r QuoteRequest) Validate() error {
	return GetValidator().Struct(r)
}

type QuoteResponse struct {
	DistanceKm  float64 `json:"distance_km" example:"450"`
	VehicleType string  `json:"vehicle_type" example:"sedan"`
	Enclosed    bool    `json:"enclosed" example:"false"`
	PriceCents  int64   `json:"price_cents" example:"61500"`
	Currency    string  `json:"currency" example:"USD"`
}
