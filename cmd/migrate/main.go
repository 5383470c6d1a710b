package main

import (
	"os"
	"villa/config"
	"villa/helper"
	"villa/shared/logger"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	cfg := config.Get()

	logger.Init(cfg, "migrate")

	if len(os.Args) < argLength {
		log.Fatal().Msg("migration action is required: up, down, step-up, drop or version")
	}

	if err := helper.Migrate(cfg, helper.Action(os.Args[1])); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
}
