// Package main starts the marketplace API server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/souqhub/marketplace/internal/logging"
	"github.com/souqhub/marketplace/internal/runtime"
)

func main() {
	app, err := runtime.NewApplication()
	if err != nil {
		logging.NewDefault("marketplace").Fatal().Err(err).Msg("startup failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		logging.NewDefault("marketplace").Fatal().Err(err).Msg("server failed")
	}

	if err := app.Shutdown(context.Background()); err != nil {
		logging.NewDefault("marketplace").Error().Err(err).Msg("shutdown failed")
	}
}
