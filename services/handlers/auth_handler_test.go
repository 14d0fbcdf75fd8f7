package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/autolane-tms/autolane_api/dto"
	"github.com/autolane-tms/autolane_api/shared"
)

type fakeAuthService struct {
	loginResp   *dto.LoginResponse
	loginErr    error
	forgotCalls []string
}

func (f *fakeAuthService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	return f.loginResp, f.loginErr
}

func (f *fakeAuthService) LoginStatus(email string) dto.LoginStatusResponse {
	return dto.LoginStatusResponse{RemainingAttempts: 4}
}

func (f *fakeAuthService) ChangePassword(userID string, req dto.ChangePasswordRequest) error {
	return nil
}

func (f *fakeAuthService) ForgotPassword(email string) error {
	f.forgotCalls = append(f.forgotCalls, email)
	return nil
}

func (f *fakeAuthService) ResetPassword(req dto.ResetPasswordRequest) error {
	return nil
}

func newAuthApp(svc AuthServiceInterface) (*fiber.App, *string) {
	var cookieSet string
	handler := NewAuthHandler(svc,
		func(c *fiber.Ctx, token string) { cookieSet = token },
		func(c *fiber.Ctx) { cookieSet = "" })

	app := fiber.New()
	app.Post("/api/v1/login", handler.Login)
	app.Get("/api/v1/login/status", handler.LoginStatus)
	app.Post("/api/v1/auth/forgot-password", handler.ForgotPassword)
	return app, &cookieSet
}

func TestLoginHandlerSetsCookie(t *testing.T) {
	svc := &fakeAuthService{
		loginResp: &dto.LoginResponse{
			AccessToken: "tok-1",
			RedirectTo:  shared.DealerHome,
		},
	}
	app, cookie := newAuthApp(svc)

	req := httptest.NewRequest("POST", "/api/v1/login",
		strings.NewReader(`{"email":"jane@acme.test","password":"GoodPass123"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if *cookie != "tok-1" {
		t.Fatalf("expected session cookie written, got %q", *cookie)
	}
}

func TestLoginHandlerValidation(t *testing.T) {
	app, cookie := newAuthApp(&fakeAuthService{})

	req := httptest.NewRequest("POST", "/api/v1/login",
		strings.NewReader(`{"email":"not-an-email","password":""}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if *cookie != "" {
		t.Fatalf("cookie must not be set on validation failure")
	}
}

func TestLoginStatusHandlerRequiresEmail(t *testing.T) {
	app, _ := newAuthApp(&fakeAuthService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/login/status", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	// Missing email surfaces as an error through the app error handler; with
	// the default handler that is a 500, anything but 200 is acceptable here.
	if resp.StatusCode == fiber.StatusOK {
		t.Fatalf("expected failure without email")
	}
}

func TestForgotPasswordHandlerAlwaysSucceeds(t *testing.T) {
	svc := &fakeAuthService{}
	app, _ := newAuthApp(svc)

	req := httptest.NewRequest("POST", "/api/v1/auth/forgot-password",
		strings.NewReader(`{"email":"nobody@acme.test"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if len(svc.forgotCalls) != 1 || svc.forgotCalls[0] != "nobody@acme.test" {
		t.Fatalf("expected service call, got %v", svc.forgotCalls)
	}
}
