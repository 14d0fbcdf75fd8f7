package dto

import "time"

type CreateVehicleRequest struct {
	DealerID string `json:"dealer_id" validate:"required" example:"dlr_0190b2c4"`
	VIN      string `json:"vin" validate:"required,len=17,alphanum" example:"1HGCM82633A004352"`
	Make     string `json:"make" validate:"required,max=100" example:"Honda"`
	Model    string `json:"model" validate:"required,max=100" example:"Accord"`
	Year     int    `json:"year" validate:"required,min=1950,max=2100" example:"2021"`
}

func (r CreateVehicleRequest) Validate() error {
	return GetValidator().Struct(r)
}

type UpdateVehicleStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available in_transit delivered inactive" example:"in_transit"`
}

func (r UpdateVehicleStatusRequest) Validate() error {
	return GetValidator().Struct(r)
}

type RecordLocationRequest struct {
	Lat float64 `json:"lat" validate:"required,min=-90,max=90" example:"52.52"`
	Lon float64 `json:"lon" validate:"required,min=-180,max=180" example:"13.405"`
}

func (r RecordLocationRequest) Validate() error {
	return GetValidator().Struct(r)
}

type LocationResponse struct {
	Lat        float64   `json:"lat" example:"52.52"`
	Lon        float64   `json:"lon" example:"13.405"`
	RecordedAt time.Time `json:"recorded_at"`
}

type VehicleResponse struct {
	ID        string            `json:"id" example:"veh_0190b2c4"`
	DealerID  string            `json:"dealer_id" example:"dlr_0190b2c4"`
	VIN       string            `json:"vin" example:"1HGCM82633A004352"`
	Make      string            `json:"make" example:"Honda"`
	Model     string            `json:"model" example:"Accord"`
	Year      int               `json:"year" example:"2021"`
	Status    string            `json:"status" example:"in_transit"`
	PhotoURL  string            `json:"photo_url,omitempty"`
	Location  *LocationResponse `json:"location,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

type VehicleListResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
	Total    int64             `json:"total" example:"17"`
	Page     int               `json:"page" example:"1"`
	Limit    int               `json:"limit" example:"20"`
}

type PhotoUploadResponse struct {
	UploadURL string `json:"upload_url"`
	ObjectKey string `json:"object_key" example:"vehicles/veh_0190b2c4/photo.jpg"`
	ExpiresIn int64  `json:"expires_in" example:"900"`
}
