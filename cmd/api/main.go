package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/partsdesk/partsdesk-backend/api/routes"
	"github.com/partsdesk/partsdesk-backend/internal/assignments"
	"github.com/partsdesk/partsdesk-backend/internal/badges"
	"github.com/partsdesk/partsdesk-backend/internal/suppliers"
	"github.com/partsdesk/partsdesk-backend/pkg/config"
	"github.com/partsdesk/partsdesk-backend/pkg/db"
	"github.com/partsdesk/partsdesk-backend/pkg/logger"
	"github.com/partsdesk/partsdesk-backend/pkg/metrics"
	"github.com/partsdesk/partsdesk-backend/pkg/migrate"
	"github.com/partsdesk/partsdesk-backend/pkg/redis"
)

const shutdownGrace = 10 * time.Second

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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	workflowMetrics := metrics.NewWorkflowMetrics(prometheus.DefaultRegisterer)
	pollerMetrics := metrics.NewPollerMetrics(prometheus.DefaultRegisterer)

	assignmentRepo := assignments.NewRepository(dbClient.DB())
	supplierService, err := suppliers.NewService(suppliers.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create supplier service", err)
		os.Exit(1)
	}

	assignmentService, err := assignments.NewService(assignments.ServiceParams{
		Repo:      assignmentRepo,
		Tx:        dbClient,
		Suppliers: supplierService,
		Observers: []assignments.TransitionObserver{assignments.NewMetricsObserver(workflowMetrics)},
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create assignment service", err)
		os.Exit(1)
	}

	watermarks, err := badges.NewWatermarkStore(redisClient, cfg.Badge.SessionTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create badge watermark store", err)
		os.Exit(1)
	}
	badgeService, err := badges.NewService(badges.ServiceParams{
		Counters:   assignmentRepo,
		Watermarks: watermarks,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create badge service", err)
		os.Exit(1)
	}

	poller, err := badges.NewPoller(badges.PollerParams{
		Logger:   logg,
		Counters: assignmentRepo,
		Metrics:  pollerMetrics,
		Interval: cfg.Badge.PollInterval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create badge poller", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logg.Error(ctx, "badge poller stopped unexpectedly", err)
		}
	}()

	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			metricsServer := &http.Server{Addr: ":" + cfg.Metrics.Port, Handler: mux}
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logg.Error(ctx, "metrics server stopped unexpectedly", err)
			}
		}()
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, assignmentService, supplierService, badgeService),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "error shutting down api server", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "api server shut down gracefully")
}
