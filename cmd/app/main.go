package main

import (
	"chappbooking/config"
	"chappbooking/di"
	"chappbooking/helper"
	"chappbooking/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Chapp Booking API
// @version 1.0
// @description Room types, availability and bookings for a small hotel.
// @BasePath /
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
