package dto

import "time"

type CreateDealerRequest struct {
	Email       string `json:"email" validate:"required,email" example:"dealer@example.com"`
	Name        string `json:"name" validate:"required,min=2,max=100" example:"Jane Dealer"`
	Password    string `json:"password" validate:"required,strong_password" example:"SecurePass123"`
	CompanyName string `json:"company_name" validate:"required,min=2,max=100" example:"Acme Transport"`
	Phone       string `json:"phone,omitempty" validate:"omitempty,max=50" example:"+1 555 0100"`
	Address     string `json:"address,omitempty" example:"1 Main St"`
}

func (r CreateDealerRequest) Validate() error {
	return GetValidator().Struct(r)
}

type UpdateDealerProfileRequest struct {
	Name        string `json:"name,omitempty" validate:"omitempty,min=2,max=100" example:"Jane Dealer"`
	CompanyName string `json:"company_name,omitempty" validate:"omitempty,min=2,max=100" example:"Acme Transport"`
	Phone       string `json:"phone,omitempty" validate:"omitempty,max=50" example:"+1 555 0100"`
	Address     string `json:"address,omitempty" example:"1 Main St"`
}

func (r UpdateDealerProfileRequest) Validate() error {
	return GetValidator().Struct(r)
}

type SetDealerStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ACTIVE BLOCKED" example:"BLOCKED"`
}

func (r SetDealerStatusRequest) Validate() error {
	return GetValidator().Struct(r)
}

type DealerResponse struct {
	ID           string    `json:"id" example:"dlr_0190b2c4"`
	Email        string    `json:"email" example:"dealer@example.com"`
	Name         string    `json:"name" example:"Jane Dealer"`
	CompanyName  string    `json:"company_name" example:"Acme Transport"`
	Phone        string    `json:"phone,omitempty" example:"+1 555 0100"`
	Address      string    `json:"address,omitempty" example:"1 Main St"`
	Status       string    `json:"status" example:"ACTIVE"`
	BalanceCents int64     `json:"balance_cents" example:"150000"`
	CreatedAt    time.Time `json:"created_at"`
}

type DealerListResponse struct {
	Dealers []DealerResponse `json:"dealers"`
	Total   int64            `json:"total" example:"42"`
	Page    int              `json:"page" example:"1"`
	Limit   int              `json:"limit" example:"20"`
}
