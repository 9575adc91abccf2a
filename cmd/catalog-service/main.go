package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"skincare-advisor/internal/api"
	"skincare-advisor/internal/catalog"
	"skincare-advisor/internal/config"
	"skincare-advisor/internal/logging"
)

func main() {
	cfg, err := config.Load(config.WithDefaultPort(8083))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Service: "catalog-service"})
	logging.Info().Int("port", cfg.Server.Port).Msg("Starting catalog service")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store catalog.Store
	if cfg.Database.DSN != "" {
		pg, err := catalog.OpenPostgres(ctx, cfg.Database.DSN)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to open catalog database")
		}
		defer pg.Close()
		store = pg
	} else {
		logging.Warn().Msg("DATABASE_URL not set, using in-memory catalog")
		store = catalog.NewMemoryStore()
	}

	if cfg.Database.Seed {
		if err := catalog.Seed(ctx, store); err != nil {
			logging.Fatal().Err(err).Msg("Failed to seed catalog")
		}
	}

	if err := api.Serve(ctx, cfg.Server, api.NewCatalogHandler(store).Routes()); err != nil {
		logging.Error().Err(err).Msg("Server error")
		os.Exit(1)
	}
}
