package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	log "github.com/sirupsen/logrus"

	"github.com/autolane-tms/autolane_api/services/handlers"
	"github.com/autolane-tms/autolane_api/shared"
)

// EdgeGuard sits in front of every route and applies the public/private and
// role routing policy.
type EdgeGuard interface {
	Handler() fiber.Handler
}

// RouteGuard protects individual route groups.
type RouteGuard interface {
	RequireAuthenticated() fiber.Handler
	RequireRole(role string) fiber.Handler
}

// SessionCookieWriter lets the login handler manage the session cookie
// without the HTTP service knowing the cookie details.
type SessionCookieWriter interface {
	WriteSessionCookie(c *fiber.Ctx, token string)
	ClearSessionCookie(c *fiber.Ctx)
}

type HttpService struct {
	context.DefaultService

	jwtSvc        *JWTService
	authSvc       *AuthService
	fleetSvc      *FleetService
	billingSvc    *BillingService
	mediaSvc      *MediaService
	reportSvc     *ReportService
	calculatorSvc *CalculatorService
	rateLimitSvc  *RateLimitService
	monitoringSvc *MonitoringService

	edge    EdgeGuard
	guard   RouteGuard
	cookies SessionCookieWriter

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

// SetGuards injects the edge router and route guards. Called from main
// before the service context starts, since the guards live outside this
// package.
func (svc *HttpService) SetGuards(edge EdgeGuard, guard RouteGuard, cookies SessionCookieWriter) {
	svc.edge = edge
	svc.guard = guard
	svc.cookies = cookies
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.fleetSvc = svc.Service(FLEET_SVC).(*FleetService)
	svc.billingSvc = svc.Service(BILLING_SVC).(*BillingService)
	svc.mediaSvc = svc.Service(MEDIA_SVC).(*MediaService)
	svc.reportSvc = svc.Service(REPORT_SVC).(*ReportService)
	svc.calculatorSvc = svc.Service(CALCULATOR_SVC).(*CalculatorService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	app := fiber.New(fiber.Config{
		AppName:      SERVICE_NAME,
		JSONEncoder:  shared.JSONAPI.Marshal,
		JSONDecoder:  shared.JSONAPI.Unmarshal,
		ErrorHandler: svc.errorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool { return true },
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(MonitoringMiddleware(svc.monitoringSvc))
	app.Use(svc.edge.Handler())

	svc.registerRoutes(app)

	app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseNotFound(c)
	})

	svc.server = app

	log.Infof("HTTP server starting on port %d", svc.port)
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

func (svc *HttpService) registerRoutes(app *fiber.App) {
	authHandler := handlers.NewAuthHandler(svc.authSvc,
		svc.cookies.WriteSessionCookie, svc.cookies.ClearSessionCookie)
	adminHandler := handlers.NewAdminHandler(svc.fleetSvc, svc.billingSvc, svc.mediaSvc, svc.reportSvc)
	dealerHandler := handlers.NewDealerHandler(svc.fleetSvc, svc.billingSvc)
	calculatorHandler := handlers.NewCalculatorHandler(svc.calculatorSvc)

	app.Get("/ping", svc.ping)
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Page entry points. The edge router has already bounced wrong-role and
	// anonymous callers before these run.
	app.Get(shared.LoginRoute, svc.loginPage)
	app.Get(shared.AdminHome, svc.guard.RequireRole(shared.RoleAdmin), svc.adminHome)
	app.Get(shared.DealerHome, svc.guard.RequireRole(shared.RoleDealer), svc.dealerHome)

	v1 := app.Group("/api/v1")

	// Public auth surface. The login limiter keys by email inside the
	// service; the password-reset endpoints get an IP limit on top.
	v1.Post("/login", authHandler.Login)
	v1.Get("/login/status", authHandler.LoginStatus)

	auth := v1.Group("/auth")
	auth.Post("/logout", authHandler.Logout)
	auth.Post("/forgot-password", svc.rateLimitSvc.RateLimit("api_general"), authHandler.ForgotPassword)
	auth.Post("/reset-password", svc.rateLimitSvc.RateLimit("api_general"), authHandler.ResetPassword)

	calculator := v1.Group("/calculator", svc.rateLimitSvc.RateLimit("api_calculator"))
	calculator.Get("/quote", calculatorHandler.Quote)

	admin := v1.Group("/admin",
		svc.guard.RequireRole(shared.RoleAdmin),
		svc.rateLimitSvc.RateLimit("api_general"))

	admin.Post("/dealers", adminHandler.CreateDealer)
	admin.Get("/dealers", adminHandler.ListDealers)
	admin.Get("/dealers/:id", adminHandler.GetDealer)
	admin.Put("/dealers/:id/status", adminHandler.SetDealerStatus)
	admin.Get("/dealers/:id/balance", adminHandler.DealerBalance)

	admin.Post("/vehicles", adminHandler.CreateVehicle)
	admin.Get("/vehicles", adminHandler.ListVehicles)
	admin.Get("/vehicles/:id", adminHandler.GetVehicle)
	admin.Put("/vehicles/:id/status", adminHandler.UpdateVehicleStatus)
	admin.Post("/vehicles/:id/location", adminHandler.RecordLocation)
	admin.Post("/vehicles/:id/photo", adminHandler.RequestPhotoUpload)
	admin.Delete("/vehicles/:id/photo", adminHandler.DeletePhoto)

	admin.Post("/invoices", adminHandler.CreateInvoice)
	admin.Get("/invoices", adminHandler.ListInvoices)
	admin.Get("/invoices/:id", adminHandler.GetInvoice)
	admin.Put("/invoices/:id/void", adminHandler.VoidInvoice)
	admin.Post("/topups", adminHandler.TopUp)

	admin.Get("/reports/dashboard", adminHandler.Dashboard)

	dealer := v1.Group("/dealer",
		svc.guard.RequireRole(shared.RoleDealer),
		svc.rateLimitSvc.RateLimit("api_general"))

	dealer.Get("/profile", dealerHandler.GetProfile)
	dealer.Put("/profile", dealerHandler.UpdateProfile)
	dealer.Put("/password", authHandler.ChangePassword)
	dealer.Get("/vehicles", dealerHandler.ListVehicles)
	dealer.Get("/vehicles/:id", dealerHandler.GetVehicle)
	dealer.Get("/invoices", dealerHandler.ListInvoices)
	dealer.Post("/invoices/:id/pay", dealerHandler.PayInvoice)
	dealer.Get("/balance", dealerHandler.Balance)
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")
	return shared.ResponseOK(c, "pong")
}

func (svc *HttpService) loginPage(c *fiber.Ctx) error {
	return shared.ResponseOK(c, fiber.Map{
		"page":         "login",
		"callback_url": c.Query("callbackUrl"),
		"blocked":      c.Query("blocked") == "1",
	})
}

func (svc *HttpService) adminHome(c *fiber.Ctx) error {
	return shared.ResponseOK(c, fiber.Map{"page": "admin"})
}

func (svc *HttpService) dealerHome(c *fiber.Ctx) error {
	return shared.ResponseOK(c, fiber.Map{"page": "dealer"})
}

// errorHandler renders AppError with its status and hides everything else
// behind a generic 500.
func (svc *HttpService) errorHandler(c *fiber.Ctx, err error) error {
	if rlErr, ok := shared.GetRateLimitedError(err); ok {
		if rlErr.RetryAfterSeconds > 0 {
			c.Set("Retry-After", strconv.Itoa(rlErr.RetryAfterSeconds))
		}
		return shared.ResponseJSON(c, rlErr.StatusCode, rlErr.Message, map[string]interface{}{
			"retry_after": rlErr.RetryAfterSeconds,
		})
	}

	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	// fiber's own errors (bad body, method not allowed) keep their code.
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.Errorf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return shared.ResponseInternalError(c, err)
}
