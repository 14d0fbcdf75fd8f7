package dto

import "time"

// ==================== SESSION ====================

// Session is the payload embedded in the signed token at login. Role and
// status are a snapshot taken from the user record at issuance; they are not
// re-checked against the database on every request.
type Session struct {
	UserID string `json:"user_id" example:"usr_0190b2c4"`
	Email  string `json:"email" example:"dealer@example.com"`
	Name   string `json:"name" example:"Jane Dealer"`
	Role   string `json:"role" example:"DEALER"`
	Status string `json:"status" example:"ACTIVE"`
}

// ==================== REQUESTS ====================

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"dealer@example.com"`
	Password string `json:"password" validate:"required" example:"SecurePass123"`
}

func (l LoginRequest) Validate() error {
	return GetValidator().Struct(l)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required" example:"OldPass123"`
	NewPassword     string `json:"new_password" validate:"required,strong_password" example:"NewPass123"`
}

func (c ChangePasswordRequest) Validate() error {
	return GetValidator().Struct(c)
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email" example:"dealer@example.com"`
}

func (f ForgotPasswordRequest) Validate() error {
	return GetValidator().Struct(f)
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email" example:"dealer@example.com"`
	Code        string `json:"code" validate:"required,len=6,numeric" example:"123456"`
	NewPassword string `json:"new_password" validate:"required,strong_password" example:"NewPass123"`
}

func (r ResetPasswordRequest) Validate() error {
	return GetValidator().Struct(r)
}

// ==================== RESPONSES ====================

type LoginResponse struct {
	AccessToken string  `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresIn   int64   `json:"expires_in" example:"2592000"`
	Session     Session `json:"session"`
	RedirectTo  string  `json:"redirect_to" example:"/dealer"`
}

type LoginStatusResponse struct {
	RemainingAttempts int        `json:"remaining_attempts" example:"4"`
	ResetAt           *time.Time `json:"reset_at,omitempty"`
}
