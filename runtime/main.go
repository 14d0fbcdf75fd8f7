package main

import (
	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/autolane-tms/autolane_api/middleware"
	"github.com/autolane-tms/autolane_api/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	edgeSvc := &middleware.EdgeRouter{}
	authMw := &middleware.AuthMiddleware{}

	httpSvc := &services.HttpService{}
	httpSvc.SetGuards(edgeSvc, authMw, authMw)

	ctx, err := context.NewCtx(
		&services.MonitoringService{},
		&services.PostgresService{},
		&services.RedisService{},
		&services.MinIOService{},
		&services.EmailService{},

		&services.JWTService{},
		&services.RateLimitService{},
		&services.AuthService{},
		edgeSvc,
		authMw,

		&services.MediaService{},
		&services.FleetService{},
		&services.BillingService{},
		&services.CalculatorService{},
		&services.ReportService{},

		httpSvc,
	)
	if err != nil {
		log.Fatal().Err(err)
		return
	}

	if err = ctx.Run(); err != nil {
		log.Fatal().Err(err)
		return
	}
}
