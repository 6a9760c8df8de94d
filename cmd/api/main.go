package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nishantzaveri/jewelbooks-backend/api/routes"
	"github.com/nishantzaveri/jewelbooks-backend/internal/estimates"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/config"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/db"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/logger"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/metrics"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/migrate"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/redis"
	"github.com/nishantzaveri/jewelbooks-backend/pkg/renderer"
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

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	var documentRenderer estimates.DocumentRenderer
	if cfg.Renderer.Enabled() {
		renderClient, err := renderer.NewClient(cfg.Renderer, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create render client", err)
			os.Exit(1)
		}
		documentRenderer, err = estimates.NewHTTPRenderer(renderClient)
		if err != nil {
			logg.Error(context.Background(), "failed to wire document renderer", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "document renderer disabled, invoices will carry no document ref")
	}

	estimatesService, err := estimates.NewService(
		estimates.NewRepository(dbClient.DB()),
		dbClient,
		documentRenderer,
		cfg.Invoice.DefaultPrefix,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create estimates service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	invoiceMetrics := metrics.NewInvoiceMetrics(registry)

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
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:           cfg,
			Logger:           logg,
			DB:               dbClient,
			Redis:            redisClient,
			EstimatesService: estimatesService,
			Registry:         registry,
			HTTPMetrics:      httpMetrics,
			InvoiceMetrics:   invoiceMetrics,
		}),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-shutdownCtx.Done()
		logg.Info(ctx, "shutting down api server")
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
