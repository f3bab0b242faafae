package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/i474232898/weathertracker/internal/cli"
	"github.com/i474232898/weathertracker/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Err(err).Msg("no .env file found or error loading it")
	}

	if err := cli.New(config.Load).ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("weathertracker failed")
		os.Exit(1)
	}
}
