package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/omarvaldez/shopstock-backend/api/routes"
	"github.com/omarvaldez/shopstock-backend/internal/analytics"
	"github.com/omarvaldez/shopstock-backend/internal/inventory"
	"github.com/omarvaldez/shopstock-backend/pkg/config"
	"github.com/omarvaldez/shopstock-backend/pkg/db"
	"github.com/omarvaldez/shopstock-backend/pkg/logger"
	"github.com/omarvaldez/shopstock-backend/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	inventoryService, err := inventory.NewService(inventory.NewRepository(dbClient.DB()), cfg.FeatureFlags)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	analyticsService, err := analytics.NewService(inventoryService)
	if err != nil {
		logg.Error(context.Background(), "failed to create analytics service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, httpMetrics, registry, inventoryService, analyticsService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
