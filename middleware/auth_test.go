package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/autolane-tms/autolane_api/dto"
	"github.com/autolane-tms/autolane_api/shared"
)

type fakeRefresher struct {
	sessions map[string]*dto.Session
}

func (f fakeRefresher) RefreshSession(userID string) (*dto.Session, error) {
	if session, ok := f.sessions[userID]; ok {
		return session, nil
	}
	return nil, errors.New("user not found")
}

func newGuardApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/protected", handler, func(c *fiber.Ctx) error {
		session := SessionFromLocals(c)
		if session == nil {
			return c.Status(fiber.StatusInternalServerError).SendString("no session in locals")
		}
		return c.SendString(session.UserID)
	})
	return app
}

func TestRequireAuthenticatedRedirectsAnonymous(t *testing.T) {
	svc := &AuthMiddleware{jwtSvc: fakeTokens{}}
	app := newGuardApp(svc.RequireAuthenticated())

	resp, err := app.Test(httptest.NewRequest("GET", "/protected?tab=2", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	loc := resp.Header.Get("Location")
	if loc != "/login?callbackUrl=%2Fprotected%3Ftab%3D2" {
		t.Fatalf("expected callback with query string, got %q", loc)
	}
}

func TestRequireAuthenticatedAllowsSession(t *testing.T) {
	tokens := fakeTokens{sessions: map[string]*dto.Session{"tok-usr_d": dealerSession()}}
	svc := &AuthMiddleware{jwtSvc: tokens}
	app := newGuardApp(svc.RequireAuthenticated())

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: shared.SessionCookie, Value: "tok-usr_d"})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestRequireAuthenticatedBlockedSession(t *testing.T) {
	blocked := dealerSession()
	blocked.Status = shared.StatusBlocked
	tokens := fakeTokens{sessions: map[string]*dto.Session{"tok-usr_d": blocked}}
	svc := &AuthMiddleware{jwtSvc: tokens}
	app := newGuardApp(svc.RequireAuthenticated())

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: shared.SessionCookie, Value: "tok-usr_d"})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login?blocked=1" {
		t.Fatalf("expected blocked redirect, got %q", loc)
	}
}

func TestRequireRoleWrongRoleGoesHome(t *testing.T) {
	tokens := fakeTokens{sessions: map[string]*dto.Session{"tok-usr_d": dealerSession()}}
	svc := &AuthMiddleware{jwtSvc: tokens}
	app := newGuardApp(svc.RequireRole(shared.RoleAdmin))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: shared.SessionCookie, Value: "tok-usr_d"})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	// A dealer hitting an admin route lands on the dealer home, not an error.
	if loc := resp.Header.Get("Location"); loc != shared.DealerHome {
		t.Fatalf("expected dealer home, got %q", loc)
	}
}

func TestRequireRoleAcceptsBearerToken(t *testing.T) {
	tokens := fakeTokens{sessions: map[string]*dto.Session{"tok-usr_a": adminSession()}}
	svc := &AuthMiddleware{jwtSvc: tokens}
	app := newGuardApp(svc.RequireRole(shared.RoleAdmin))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer tok-usr_a")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestRenewalReissuesCookie(t *testing.T) {
	tokens := fakeTokens{
		sessions: map[string]*dto.Session{"tok-usr_d": dealerSession()},
		renew:    true,
	}
	svc := &AuthMiddleware{
		jwtSvc:    tokens,
		refresher: fakeRefresher{sessions: map[string]*dto.Session{"usr_d": dealerSession()}},
	}
	app := newGuardApp(svc.RequireAuthenticated())

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: shared.SessionCookie, Value: "tok-usr_d"})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	setCookie := resp.Header.Get("Set-Cookie")
	if !strings.Contains(setCookie, shared.SessionCookie+"=tok-usr_d") {
		t.Fatalf("expected re-issued session cookie, got %q", setCookie)
	}
}

func TestRenewalPicksUpRoleChange(t *testing.T) {
	// Token still carries DEALER, but the user has been promoted since. The
	// renewal re-read must let the current role through the admin guard.
	promoted := dealerSession()
	promoted.Role = shared.RoleAdmin

	tokens := fakeTokens{
		sessions: map[string]*dto.Session{"tok-usr_d": dealerSession()},
		renew:    true,
	}
	svc := &AuthMiddleware{
		jwtSvc:    tokens,
		refresher: fakeRefresher{sessions: map[string]*dto.Session{"usr_d": promoted}},
	}
	app := newGuardApp(svc.RequireRole(shared.RoleAdmin))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: shared.SessionCookie, Value: "tok-usr_d"})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected refreshed role accepted, got %d", resp.StatusCode)
	}
}

func TestRenewalPicksUpBlock(t *testing.T) {
	// Token snapshot says ACTIVE, the user row says BLOCKED: the block must
	// take effect at renewal time, not at token expiry.
	blocked := dealerSession()
	blocked.Status = shared.StatusBlocked

	tokens := fakeTokens{
		sessions: map[string]*dto.Session{"tok-usr_d": dealerSession()},
		renew:    true,
	}
	svc := &AuthMiddleware{
		jwtSvc:    tokens,
		refresher: fakeRefresher{sessions: map[string]*dto.Session{"usr_d": blocked}},
	}
	app := newGuardApp(svc.RequireAuthenticated())

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: shared.SessionCookie, Value: "tok-usr_d"})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login?blocked=1" {
		t.Fatalf("expected blocked redirect, got %q", loc)
	}
}

func TestRenewalStoreErrorKeepsSession(t *testing.T) {
	tokens := fakeTokens{
		sessions: map[string]*dto.Session{"tok-usr_d": dealerSession()},
		renew:    true,
	}
	svc := &AuthMiddleware{
		jwtSvc:    tokens,
		refresher: fakeRefresher{},
	}
	app := newGuardApp(svc.RequireAuthenticated())

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: shared.SessionCookie, Value: "tok-usr_d"})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected old snapshot kept on refresh failure, got %d", resp.StatusCode)
	}
}

func TestAuthzResultHelpers(t *testing.T) {
	session := dealerSession()

	allowed := allow(session)
	if !allowed.Allowed() || allowed.Session != session {
		t.Fatalf("allow() broken: %+v", allowed)
	}

	bounced := redirect("/login")
	if bounced.Allowed() || bounced.Redirect != "/login" {
		t.Fatalf("redirect() broken: %+v", bounced)
	}
}

func TestLoginRedirectEscapesCallback(t *testing.T) {
	got := LoginRedirect("/admin/vehicles?page=2&status=in_transit")
	want := "/login?callbackUrl=%2Fadmin%2Fvehicles%3Fpage%3D2%26status%3Din_transit"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
