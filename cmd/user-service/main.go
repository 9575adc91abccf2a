package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"skincare-advisor/internal/accounts"
	"skincare-advisor/internal/api"
	"skincare-advisor/internal/auth"
	"skincare-advisor/internal/config"
	"skincare-advisor/internal/logging"
)

func main() {
	cfg, err := config.Load(config.WithDefaultPort(8081))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Service: "user-service"})
	logging.Info().Int("port", cfg.Server.Port).Msg("Starting user service")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store accounts.Store
	if cfg.Database.DSN != "" {
		pg, err := accounts.OpenPostgres(ctx, cfg.Database.DSN)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to open accounts database")
		}
		defer pg.Close()
		store = pg
	} else {
		logging.Warn().Msg("DATABASE_URL not set, accounts are kept in memory")
		store = accounts.NewMemoryStore()
	}

	svc := accounts.NewService(store, auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL))
	if err := api.Serve(ctx, cfg.Server, api.NewUserHandler(svc).Routes()); err != nil {
		logging.Error().Err(err).Msg("Server error")
		os.Exit(1)
	}
}
