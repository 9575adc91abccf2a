package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"skincare-advisor/internal/analysis"
	"skincare-advisor/internal/api"
	"skincare-advisor/internal/auth"
	"skincare-advisor/internal/cache"
	"skincare-advisor/internal/chat"
	"skincare-advisor/internal/config"
	"skincare-advisor/internal/logging"
	"skincare-advisor/internal/recommend"
	"skincare-advisor/internal/services"
)

func main() {
	cfg, err := config.Load(config.WithDefaultPort(8080))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Service: "api-gateway"})
	logging.Info().Int("port", cfg.Server.Port).Msg("Starting API Gateway")

	catalogClient := services.NewCatalogClient(cfg.Services)
	userClient := services.NewUserClient(cfg.Services)

	deps := api.GatewayDeps{
		Engine: recommend.NewEngine(catalogClient, catalogClient, recommend.Config{
			DefaultLimit: cfg.Recommend.DefaultLimit,
			MaxNeighbors: cfg.Recommend.MaxNeighbors,
		}),
		DefaultLimit:    cfg.Recommend.DefaultLimit,
		Analyzer:        analysis.NewAnalyzer(analysis.WithMaxImageBytes(cfg.Server.MaxUploadBytes)),
		Assistant:       chat.NewAssistant(catalogClient, userClient),
		Products:        catalogClient,
		Feedback:        catalogClient,
		Accounts:        userClient,
		Auth:            auth.NewMiddleware(cfg.Auth.JWTSecret),
		CORSOrigins:     cfg.Server.CORSOrigins,
		RateLimit:       cfg.Redis.RateLimit,
		RateLimitWindow: cfg.Redis.RateLimitWindow,
		MaxUploadBytes:  cfg.Server.MaxUploadBytes,
		TrustProxy:      cfg.Server.TrustProxy,
	}

	if cfg.Redis.Enabled {
		redisClient, err := cache.NewClient(cfg.Redis.Addr)
		if err != nil {
			logging.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()
		logging.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to Redis")

		deps.RateLimiter = redisClient
		if cfg.Redis.CacheTTL > 0 {
			deps.Cache = cache.NewRecommendations(redisClient, cfg.Redis.CacheTTL)
		}
	} else {
		logging.Info().Msg("Redis disabled, using in-process rate limiting and no response cache")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := api.Serve(ctx, cfg.Server, api.NewGateway(deps).Routes()); err != nil {
		logging.Error().Err(err).Msg("Server error")
		os.Exit(1)
	}
}
