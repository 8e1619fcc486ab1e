package main

import (
	"os"

	"github.com/iamvkosarev/karaoke-server/internal/app"
	"github.com/iamvkosarev/karaoke-server/internal/config"
	"github.com/iamvkosarev/karaoke-server/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(logger.Config{
		Level:  cfg.App.LogLevel,
		Pretty: cfg.App.LogPretty,
		Output: os.Stdout,
	})

	application := app.New(cfg)
	if err := application.Run(); err != nil {
		logger.Get().Fatal().Err(err).Msg("server failed")
	}
}
