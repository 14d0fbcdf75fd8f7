package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/autolane-tms/autolane_api/dto"
	"github.com/autolane-tms/autolane_api/shared"
)

type fakeTokens struct {
	sessions map[string]*dto.Session
	renew    bool
}

func (f fakeTokens) ToJWT(session dto.Session) (string, error) {
	return "tok-" + session.UserID, nil
}

func (f fakeTokens) VerifyJWTToken(token string) (*dto.Session, bool, error) {
	if session, ok := f.sessions[token]; ok {
		return session, f.renew, nil
	}
	return nil, false, errors.New("invalid session token")
}

func (f fakeTokens) ExtractTokenFromHeader(authHeader string) (string, error) {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", errors.New("invalid authorization header format")
	}
	return authHeader[7:], nil
}

func (f fakeTokens) SessionTTL() time.Duration {
	return time.Hour
}

func adminSession() *dto.Session {
	return &dto.Session{UserID: "usr_a", Email: "a@x.test", Name: "Admin", Role: shared.RoleAdmin, Status: shared.StatusActive}
}

func dealerSession() *dto.Session {
	return &dto.Session{UserID: "usr_d", Email: "d@x.test", Name: "Dealer", Role: shared.RoleDealer, Status: shared.StatusActive}
}

func TestEdgeRouteTable(t *testing.T) {
	svc := &EdgeRouter{}

	anon := sessionInfo{}
	admin := sessionInfo{loggedIn: true, role: shared.RoleAdmin}
	dealer := sessionInfo{loggedIn: true, role: shared.RoleDealer}

	cases := []struct {
		name    string
		path    string
		session sessionInfo
		want    string
	}{
		{"public anon allowed", "/login", anon, ""},
		{"public api anon allowed", "/api/v1/login", anon, ""},
		{"calculator anon allowed", "/api/v1/calculator/quote", anon, ""},
		{"login page bounces admin home", "/login", admin, shared.AdminHome},
		{"login page bounces dealer home", "/login", dealer, shared.DealerHome},
		{"public api bounces logged in", "/api/v1/auth/forgot-password", dealer, shared.DealerHome},
		{"private anon to login", "/admin", anon, "/login?callbackUrl=%2Fadmin"},
		{"deep private anon keeps path", "/admin/vehicles", anon, "/login?callbackUrl=%2Fadmin%2Fvehicles"},
		{"admin area wrong role", "/admin", dealer, shared.DealerHome},
		{"admin subpath wrong role", "/admin/invoices", dealer, shared.DealerHome},
		{"dealer area wrong role", "/dealer", admin, shared.AdminHome},
		{"dealer subpath wrong role", "/dealer/vehicles", admin, shared.AdminHome},
		{"admin area right role", "/admin", admin, ""},
		{"dealer area right role", "/dealer/invoices", dealer, ""},
		{"neutral private path admin", "/api/v1/admin/dealers", admin, ""},
		{"neutral private path dealer", "/api/v1/dealer/profile", dealer, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := svc.route(tc.path, tc.session); got != tc.want {
				t.Fatalf("route(%q) = %q, want %q", tc.path, got, tc.want)
			}
		})
	}
}

func newEdgeApp(tokens fakeTokens) *fiber.App {
	svc := &EdgeRouter{jwtSvc: tokens}

	app := fiber.New()
	app.Use(svc.Handler())
	app.All("/*", func(c *fiber.Ctx) error {
		return c.SendString("through")
	})
	return app
}

func TestEdgeHandlerAnonymousRedirect(t *testing.T) {
	app := newEdgeApp(fakeTokens{})

	resp, err := app.Test(httptest.NewRequest("GET", "/admin/vehicles", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login?callbackUrl=%2Fadmin%2Fvehicles" {
		t.Fatalf("unexpected location: %q", loc)
	}
}

func TestEdgeHandlerCookieSession(t *testing.T) {
	tokens := fakeTokens{sessions: map[string]*dto.Session{"tok-usr_d": dealerSession()}}
	app := newEdgeApp(tokens)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.AddCookie(&http.Cookie{Name: shared.SessionCookie, Value: "tok-usr_d"})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != shared.DealerHome {
		t.Fatalf("expected redirect to dealer home, got %q", loc)
	}
}

func TestEdgeHandlerBearerSession(t *testing.T) {
	tokens := fakeTokens{sessions: map[string]*dto.Session{"tok-usr_a": adminSession()}}
	app := newEdgeApp(tokens)

	req := httptest.NewRequest("GET", "/api/v1/admin/dealers", nil)
	req.Header.Set("Authorization", "Bearer tok-usr_a")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected pass-through, got %d", resp.StatusCode)
	}
}

func TestEdgeHandlerInvalidTokenIsAnonymous(t *testing.T) {
	app := newEdgeApp(fakeTokens{})

	req := httptest.NewRequest("GET", "/dealer", nil)
	req.AddCookie(&http.Cookie{Name: shared.SessionCookie, Value: "garbage"})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); !strings.HasPrefix(loc, "/login?callbackUrl=") {
		t.Fatalf("expected login redirect, got %q", loc)
	}
}

func TestEdgeHandlerBlockedSessionIsAnonymous(t *testing.T) {
	blocked := dealerSession()
	blocked.Status = shared.StatusBlocked
	tokens := fakeTokens{sessions: map[string]*dto.Session{"tok-usr_d": blocked}}
	app := newEdgeApp(tokens)

	// Private paths bounce to login, not to a role home.
	req := httptest.NewRequest("GET", "/dealer", nil)
	req.AddCookie(&http.Cookie{Name: shared.SessionCookie, Value: "tok-usr_d"})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login?callbackUrl=%2Fdealer" {
		t.Fatalf("expected login redirect, got %q", loc)
	}

	// The blocked login page itself must pass through, or the blocked
	// redirect from the guard would loop forever.
	req = httptest.NewRequest("GET", "/login?blocked=1", nil)
	req.AddCookie(&http.Cookie{Name: shared.SessionCookie, Value: "tok-usr_d"})

	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected blocked login page reachable, got %d", resp.StatusCode)
	}
}

func TestEdgeHandlerBypassPaths(t *testing.T) {
	app := newEdgeApp(fakeTokens{})

	for _, path := range []string{"/ping", "/health", "/metrics", "/swagger/index.html"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("%s: expected bypass, got %d", path, resp.StatusCode)
		}
	}
}
