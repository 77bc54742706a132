package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/surf-forecast-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/surf-forecast-service/internal/adapter/kafka"
	"github.com/couchcryptid/surf-forecast-service/internal/adapter/store"
	"github.com/couchcryptid/surf-forecast-service/internal/adapter/stormglass"
	"github.com/couchcryptid/surf-forecast-service/internal/config"
	"github.com/couchcryptid/surf-forecast-service/internal/domain"
	"github.com/couchcryptid/surf-forecast-service/internal/forecast"
	"github.com/couchcryptid/surf-forecast-service/internal/observability"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	beaches, err := store.NewBeachRepository(cfg.DatabasePath, logger.With("component", "store"))
	if err != nil {
		logger.Error("failed to open beach store", "error", err)
		os.Exit(1)
	}

	client := stormglass.NewClient(cfg.StormGlassAPIURL, cfg.StormGlassAPIToken, cfg.StormGlassTimeout,
		clock, metrics, logger.With("component", "stormglass"))
	fetcher := stormglass.NewCachedClient(client, cfg.ForecastCacheTTL, clock, metrics, logger.With("component", "stormglass"))
	svc := forecast.NewService(fetcher, domain.Rating{}, metrics, logger.With("component", "forecast"))

	// Forecast publishing is feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS.
	var publisher httpadapter.ForecastPublisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, clock, metrics, logger.With("component", "kafka"))
		publisher = writer
		metrics.PublisherEnabled.Set(1)
		logger.Info("forecast publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaForecastTopic)
	} else {
		logger.Info("forecast publishing disabled")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, beaches, beaches, svc, publisher, logger.With("component", "http"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}
	if err := beaches.Close(); err != nil {
		logger.Error("beach store close error", "error", err)
	}

	logger.Info("shutdown complete")
}
