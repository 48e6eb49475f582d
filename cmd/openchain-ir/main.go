package main

import (
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/openchain-labs/openchain-ir/internal"
	"github.com/openchain-labs/openchain-ir/internal/config"
)

func main() {
	cfg := config.App{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatal().Err(err).Msg("unable to parse config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.SentryDSN != "" {
		err = sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Environment,
		})
		if err != nil {
			log.Warn().Err(err).Msg("unable to init sentry")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	app, err := internal.NewApplication(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to create application")
	}

	log.Info().Msg("openchain-ir is started")
	app.Run()
	log.Info().Msg("openchain-ir is stopped")
}
