package shared

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the error type the fiber error handler knows how to render.
// Anything else becomes a generic 500 with no internal detail leaked.
type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(statusCode int, err error, message string) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Err: err}
}

func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func NewBadRequestError(err error, message string) *AppError {
	return NewAppError(http.StatusBadRequest, err, message)
}

func NewUnauthorizedError(err error, message string) *AppError {
	return NewAppError(http.StatusUnauthorized, err, message)
}

func NewForbiddenError(err error, message string) *AppError {
	return NewAppError(http.StatusForbidden, err, message)
}

func NewNotFoundError(err error, message string) *AppError {
	return NewAppError(http.StatusNotFound, err, message)
}

func NewInternalError(err error, message string) *AppError {
	return NewAppError(http.StatusInternalServerError, err, message)
}

// ==================== AUTHENTICATION ERRORS ====================

// ErrInvalidCredentials covers both unknown-email and wrong-password so the
// login response cannot be used to enumerate accounts.
var ErrInvalidCredentials = NewUnauthorizedError(nil, "Invalid email or password")

// ErrAccountBlocked is shown distinctly; a blocked account is not a secret
// to its owner.
var ErrAccountBlocked = NewForbiddenError(nil, "Account is blocked")

// RateLimitedError carries the retry hint surfaced to the login form and to
// 429 responses.
type RateLimitedError struct {
	*AppError
	RetryAfterSeconds int
}

func NewRateLimitedError(retryAfterSeconds int, message string) *RateLimitedError {
	if message == "" {
		message = "Too many requests. Please try again later."
	}
	return &RateLimitedError{
		AppError:          NewAppError(http.StatusTooManyRequests, nil, message),
		RetryAfterSeconds: retryAfterSeconds,
	}
}

func GetRateLimitedError(err error) (*RateLimitedError, bool) {
	var rlErr *RateLimitedError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}
