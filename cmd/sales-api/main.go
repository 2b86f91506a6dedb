package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jcmexdev/threewheels-sales/internal/api/httpx"
	"github.com/jcmexdev/threewheels-sales/internal/config"
	"github.com/jcmexdev/threewheels-sales/internal/pkg/cache"
	"github.com/jcmexdev/threewheels-sales/internal/pkg/messaging"
	"github.com/jcmexdev/threewheels-sales/internal/pkg/telemetry"
	"github.com/jcmexdev/threewheels-sales/internal/seed"
	"github.com/jcmexdev/threewheels-sales/internal/shop"
)

const serviceName = "sales-api"

func main() {
	// Load .env if present; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	telemetry.InitLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.OTelEnabled {
		shutdown, err := telemetry.SetupTracer(ctx, telemetry.TracerConfig{
			ServiceName: serviceName,
			Endpoint:    cfg.OTelEndpoint,
			Environment: cfg.OTelEnvironment,
		})
		if err != nil {
			slog.Error("failed to initialise tracer", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				slog.Error("tracer shutdown failed", "error", err)
			}
		}()
	}

	file, err := seed.Load(cfg.SeedFile)
	if err != nil {
		slog.Error("failed to load seed", "path", cfg.SeedFile, "error", err)
		os.Exit(1)
	}

	publisher := newPublisher(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			slog.Error("publisher close failed", "error", err)
		}
	}()

	svc := shop.New(
		firstNonEmpty(cfg.StockName, file.Stock, "ThreeWheels"),
		firstNonEmpty(cfg.DirectoryName, file.Directory, "ThreeWheels"),
		shop.WithCache(newCache(ctx, cfg)),
		shop.WithCacheTimeout(cfg.CacheTimeout),
		shop.WithPublisher(publisher),
	)
	if err := seed.Apply(ctx, svc, file); err != nil {
		slog.Error("failed to apply seed", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpx.NewRouter(httpx.NewHandler(svc)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("sales API listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}

// newCache uses Redis when configured and reachable, the in-process cache otherwise.
func newCache(ctx context.Context, cfg config.Config) cache.Cache {
	if cfg.RedisAddr == "" {
		return cache.NewMemoryCache(serviceName)
	}
	rc := cache.NewRedisCache(cfg.RedisAddr, serviceName)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		slog.Warn("redis unreachable, using in-process idempotency cache", "addr", cfg.RedisAddr, "error", err)
		_ = rc.Close()
		return cache.NewMemoryCache(serviceName)
	}
	slog.Info("idempotency cache on redis", "addr", cfg.RedisAddr)
	return rc
}

func newPublisher(cfg config.Config) messaging.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		return messaging.NewLogPublisher(slog.Default())
	}
	slog.Info("publishing order events to kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	return messaging.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
