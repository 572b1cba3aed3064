package main

import (
	"chappbooking/config"
	"chappbooking/helper"
	"chappbooking/shared/logger"
	"os"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)
	logger.SetLogLevel(cfg)

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down/drop/step-up) is required")
	}

	if err := helper.Run(cfg, helper.Direction(os.Args[1])); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}
}
