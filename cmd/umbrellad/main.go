package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	httpadapter "github.com/couchcryptid/umbrella-gate/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/umbrella-gate/internal/adapter/kafka"
	"github.com/couchcryptid/umbrella-gate/internal/adapter/openmeteo"
	"github.com/couchcryptid/umbrella-gate/internal/config"
	"github.com/couchcryptid/umbrella-gate/internal/domain"
	"github.com/couchcryptid/umbrella-gate/internal/feed"
	"github.com/couchcryptid/umbrella-gate/internal/observability"
	"github.com/couchcryptid/umbrella-gate/internal/panel"
	"github.com/couchcryptid/umbrella-gate/internal/pipeline"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	pnl := panel.New(
		panel.WithLogger(logger),
		panel.WithObserver(metrics.ObserveEvaluation),
	)
	logger.Info("panel ready", "reminder", domain.ReminderLabel(pnl.Snapshot().Result.ReminderOn))

	srv := httpadapter.NewServer(cfg.HTTPAddr, pnl, pnl, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start command pipeline (feature-flagged via KAFKA_ENABLED).
	var reader *kafkaadapter.Reader
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		reader = kafkaadapter.NewReader(cfg, logger)
		writer = kafkaadapter.NewWriter(cfg, logger)
		transformer := pipeline.NewTransformer(pnl, logger)
		p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := p.Run(ctx); err != nil {
				logger.Error("pipeline error", "error", err)
			}
		}()
	} else {
		logger.Info("kafka command pipeline disabled")
	}

	// Start weather feed (feature-flagged via WEATHER_ENABLED / coordinates).
	if cfg.WeatherEnabled {
		metrics.WeatherEnabled.Set(1)
		client := openmeteo.NewClient(cfg.WeatherTimeout, metrics, logger)
		th := domain.Thresholds{RainMM: cfg.WeatherRainThreshold, WindKMH: cfg.WeatherWindThreshold}
		poller := feed.NewPoller(client, pnl, cfg.WeatherLatitude, cfg.WeatherLongitude, th, cfg.WeatherPollInterval, logger)

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := poller.Run(ctx); err != nil {
				logger.Error("weather feed error", "error", err)
			}
		}()
	} else {
		logger.Info("weather feed disabled")
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		logger.Warn("workers did not stop before shutdown timeout")
	}

	if reader != nil {
		if err := reader.Close(); err != nil {
			logger.Error("kafka reader close error", "error", err)
		}
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
