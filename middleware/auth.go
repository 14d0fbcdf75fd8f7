package middleware

import (
	"net/url"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/autolane-tms/autolane_api/dto"
	"github.com/autolane-tms/autolane_api/services"
	"github.com/autolane-tms/autolane_api/shared"
)

// TokenService is the slice of the JWT service the guards need.
type TokenService interface {
	ToJWT(session dto.Session) (string, error)
	VerifyJWTToken(token string) (session *dto.Session, shouldRenew bool, err error)
	ExtractTokenFromHeader(authHeader string) (string, error)
	SessionTTL() time.Duration
}

// SessionRefresher re-reads the user record when a session is renewed, so
// role and status changes propagate without waiting out the token TTL.
type SessionRefresher interface {
	RefreshSession(userID string) (*dto.Session, error)
}

// AuthzResult makes the guard decision an explicit value instead of a thrown
// redirect: either a session is allowed through or the caller must be sent
// to Redirect. This keeps the guard testable without an HTTP stack.
type AuthzResult struct {
	Session  *dto.Session
	Redirect string
}

func (r AuthzResult) Allowed() bool {
	return r.Session != nil
}

func allow(session *dto.Session) AuthzResult {
	return AuthzResult{Session: session}
}

func redirect(path string) AuthzResult {
	return AuthzResult{Redirect: path}
}

func LoginRedirect(callbackURL string) string {
	return shared.LoginRoute + "?callbackUrl=" + url.QueryEscape(callbackURL)
}

func BlockedRedirect() string {
	return shared.LoginRoute + "?blocked=1"
}

type AuthMiddleware struct {
	context.DefaultService

	jwtSvc    TokenService
	refresher SessionRefresher
}

const AUTH_MIDDLEWARE_SVC = "auth"

func (svc AuthMiddleware) Id() string {
	return AUTH_MIDDLEWARE_SVC
}

func (svc *AuthMiddleware) Configure(ctx *context.Context) error {
	svc.jwtSvc = ctx.Service(services.JWT_SVC).(TokenService)
	svc.refresher = ctx.Service(services.AUTH_SVC).(SessionRefresher)
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthMiddleware) Start() error {
	return nil
}

// sessionFromRequest accepts the session cookie or a bearer header.
func (svc *AuthMiddleware) sessionFromRequest(c *fiber.Ctx) (*dto.Session, bool) {
	token := c.Cookies(shared.SessionCookie)
	if token == "" {
		var err error
		token, err = svc.jwtSvc.ExtractTokenFromHeader(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return nil, false
		}
	}

	session, shouldRenew, err := svc.jwtSvc.VerifyJWTToken(token)
	if err != nil {
		return nil, false
	}

	return session, shouldRenew
}

// Authenticate implements requireAuthenticated: no valid session redirects
// to login with a callbackUrl back to the attempted path; a BLOCKED session
// goes to the blocked variant of the login route.
func (svc *AuthMiddleware) Authenticate(c *fiber.Ctx) AuthzResult {
	session, shouldRenew := svc.sessionFromRequest(c)
	if session == nil {
		return redirect(LoginRedirect(c.OriginalURL()))
	}

	// Renew before the blocked check so a block applied after the token was
	// issued is picked up as soon as the token is due for renewal.
	if shouldRenew {
		session = svc.renewSession(c, session)
	}

	if session.Status == shared.StatusBlocked {
		return redirect(BlockedRedirect())
	}

	return allow(session)
}

// AuthorizeRole checks authentication first, then sends a wrong-role caller
// to its own home area. A soft redirect, not an error page.
func (svc *AuthMiddleware) AuthorizeRole(c *fiber.Ctx, role string) AuthzResult {
	result := svc.Authenticate(c)
	if !result.Allowed() {
		return result
	}

	if result.Session.Role != role {
		return redirect(shared.HomeForRole(result.Session.Role))
	}

	return result
}

func (svc *AuthMiddleware) apply(c *fiber.Ctx, result AuthzResult) error {
	if !result.Allowed() {
		return c.Redirect(result.Redirect, fiber.StatusFound)
	}

	c.Locals(shared.UserID, result.Session.UserID)
	c.Locals(shared.SessionKey, result.Session)
	return c.Next()
}

func (svc *AuthMiddleware) RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return svc.apply(c, svc.Authenticate(c))
	}
}

func (svc *AuthMiddleware) RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return svc.apply(c, svc.AuthorizeRole(c, role))
	}
}

// renewSession re-reads the user and re-issues the cookie so active
// sessions slide forward carrying current role and status. A store error
// keeps the old snapshot and leaves renewal to a later request.
func (svc *AuthMiddleware) renewSession(c *fiber.Ctx, session *dto.Session) *dto.Session {
	fresh, err := svc.refresher.RefreshSession(session.UserID)
	if err != nil {
		log.Errorf("Failed to refresh session for %s: %v", session.UserID, err)
		return session
	}

	token, err := svc.jwtSvc.ToJWT(*fresh)
	if err != nil {
		log.Errorf("Failed to renew session for %s: %v", session.UserID, err)
		return fresh
	}

	SetSessionCookie(c, token, svc.jwtSvc.SessionTTL())
	return fresh
}

// WriteSessionCookie issues the session cookie with the full session TTL.
func (svc *AuthMiddleware) WriteSessionCookie(c *fiber.Ctx, token string) {
	SetSessionCookie(c, token, svc.jwtSvc.SessionTTL())
}

func (svc *AuthMiddleware) ClearSessionCookie(c *fiber.Ctx) {
	ClearSessionCookie(c)
}

// SessionFromLocals returns the session placed by the guard middleware.
func SessionFromLocals(c *fiber.Ctx) *dto.Session {
	session, _ := c.Locals(shared.SessionKey).(*dto.Session)
	return session
}

func SetSessionCookie(c *fiber.Ctx, token string, maxAge time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     shared.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(maxAge),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

func ClearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     shared.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
