package dto

import "time"

// RateLimitConfig is a recognized limiter option set, passed per call; the
// limiter itself hardcodes nothing.
type RateLimitConfig struct {
	Limit  int           `json:"limit" example:"5"`
	Window time.Duration `json:"window" swaggertype:"primitive,integer" example:"300000000000"`
}

type RateLimitResult struct {
	Allowed           bool      `json:"allowed" example:"true"`
	Remaining         int       `json:"remaining" example:"4"`
	ResetAt           time.Time `json:"reset_at"`
	RetryAfterSeconds int       `json:"retry_after_seconds,omitempty" example:"42"`
}
