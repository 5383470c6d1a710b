package main

import (
	"villa/config"
	"villa/di"
	"villa/helper"
	"villa/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Villa API
// @version 1.0
// @description Bookings, content and guest services for a single rental villa.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg := config.Get()

	logger.Init(cfg, "app")

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
