package shared

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHomeForRole(t *testing.T) {
	if got := HomeForRole(RoleAdmin); got != AdminHome {
		t.Fatalf("admin home: got %q", got)
	}
	if got := HomeForRole(RoleDealer); got != DealerHome {
		t.Fatalf("dealer home: got %q", got)
	}
	// Unknown roles never land on the admin area.
	if got := HomeForRole("superuser"); got != DealerHome {
		t.Fatalf("unknown role: got %q", got)
	}
}

func TestGetAppErrorUnwrapsChain(t *testing.T) {
	inner := NewNotFoundError(nil, "Not Found")
	wrapped := fmt.Errorf("loading dealer: %w", inner)

	appErr, ok := GetAppError(wrapped)
	if !ok {
		t.Fatalf("expected AppError found in chain")
	}
	if appErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", appErr.StatusCode)
	}

	if _, ok := GetAppError(errors.New("plain")); ok {
		t.Fatalf("plain error must not match")
	}
}

func TestRateLimitedError(t *testing.T) {
	err := NewRateLimitedError(42, "")
	if err.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", err.StatusCode)
	}
	if err.Message == "" {
		t.Fatalf("expected default message")
	}

	rlErr, ok := GetRateLimitedError(fmt.Errorf("login: %w", err))
	if !ok || rlErr.RetryAfterSeconds != 42 {
		t.Fatalf("expected retry-after 42, got %+v (ok=%v)", rlErr, ok)
	}

	// A RateLimitedError is also an AppError for the generic handler path.
	if appErr, ok := GetAppError(err); !ok || appErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected AppError view, got %+v (ok=%v)", appErr, ok)
	}
}
