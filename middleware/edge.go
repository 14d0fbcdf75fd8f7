package middleware

import (
	"strings"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"

	"github.com/autolane-tms/autolane_api/services"
	"github.com/autolane-tms/autolane_api/shared"
)

// EdgeRouter is the single interception point in front of every route. It
// classifies the path against a static prefix list and applies the
// public/private and role routing policy before any handler runs.
type EdgeRouter struct {
	context.DefaultService

	jwtSvc TokenService
}

const EDGE_ROUTER_SVC = "edge_router"

// Public routes are reachable without a session. Everything else is
// protected. Order of evaluation matters: public-route checks come before
// any role check, so a logged-in user on /login is bounced home without a
// role lookup.
var publicRoutePrefixes = []string{
	shared.LoginRoute,
	"/api/v1/login",
	"/api/v1/auth/",
	"/api/v1/calculator",
}

// Paths the edge policy never touches: health, metrics, docs, assets.
var bypassPrefixes = []string{
	"/ping",
	"/health",
	"/metrics",
	"/swagger",
	"/static/",
	"/favicon.ico",
}

func (svc EdgeRouter) Id() string {
	return EDGE_ROUTER_SVC
}

func (svc *EdgeRouter) Configure(ctx *context.Context) error {
	svc.jwtSvc = ctx.Service(services.JWT_SVC).(TokenService)
	return svc.DefaultService.Configure(ctx)
}

func (svc *EdgeRouter) Start() error {
	return nil
}

func isPublicRoute(path string) bool {
	return hasAnyPrefix(path, publicRoutePrefixes)
}

func isBypassed(path string) bool {
	return hasAnyPrefix(path, bypassPrefixes)
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// route decides what to do with one request. Empty string means allow.
func (svc *EdgeRouter) route(path string, session sessionInfo) string {
	if isPublicRoute(path) {
		if session.loggedIn {
			return shared.HomeForRole(session.role)
		}
		return ""
	}

	if !session.loggedIn {
		return LoginRedirect(path)
	}

	if strings.HasPrefix(path, shared.AdminHome) && session.role != shared.RoleAdmin {
		return shared.DealerHome
	}

	if strings.HasPrefix(path, shared.DealerHome) && session.role != shared.RoleDealer {
		return shared.AdminHome
	}

	return ""
}

type sessionInfo struct {
	loggedIn bool
	role     string
}

func (svc *EdgeRouter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if isBypassed(path) {
			return c.Next()
		}

		info := sessionInfo{}
		token := c.Cookies(shared.SessionCookie)
		if token == "" {
			token, _ = svc.jwtSvc.ExtractTokenFromHeader(c.Get(fiber.HeaderAuthorization))
		}
		if token != "" {
			// A blocked session counts as anonymous here; otherwise a public
			// route like /login?blocked=1 would bounce it back to the role
			// home and the guard there would bounce it out again.
			if session, _, err := svc.jwtSvc.VerifyJWTToken(token); err == nil &&
				session.Status != shared.StatusBlocked {
				info.loggedIn = true
				info.role = session.Role
			}
		}

		if target := svc.route(path, info); target != "" {
			return c.Redirect(target, fiber.StatusFound)
		}

		return c.Next()
	}
}
