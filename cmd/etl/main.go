package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/air-scene-etl/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/air-scene-etl/internal/adapter/kafka"
	"github.com/couchcryptid/air-scene-etl/internal/adapter/mapbox"
	"github.com/couchcryptid/air-scene-etl/internal/config"
	"github.com/couchcryptid/air-scene-etl/internal/domain"
	"github.com/couchcryptid/air-scene-etl/internal/observability"
	"github.com/couchcryptid/air-scene-etl/internal/pipeline"
	"github.com/couchcryptid/air-scene-etl/internal/scenestore"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := loadDotEnv(".env"); err != nil {
		slog.Error("failed to read .env", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat).With("service", "air-scene-etl")
	metrics := observability.NewMetrics()

	view, err := cfg.View()
	if err != nil {
		logger.Error("failed to build view", "error", err)
		os.Exit(1)
	}
	logger.Info("scene view configured",
		"parameter", view.Parameter,
		"origin_lat", view.Frame.OriginLatitude,
		"origin_lon", view.Frame.OriginLongitude,
		"pick_max_distance", cfg.PickMaxDistance,
	)

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, logger, metrics)
		cached, err := mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		if err != nil {
			logger.Error("failed to create geocoder", "error", err)
			os.Exit(1)
		}
		geocoder = cached
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	store := scenestore.New(scenestore.WithLabelGauge(metrics.SceneLabels))
	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(view, geocoder, logger)

	p := pipeline.New(reader, transformer, pipeline.MultiLoader{writer, store}, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, httpadapter.SceneOptions{
		Source:          store,
		View:            view,
		PickMaxDistance: cfg.PickMaxDistance,
		Metrics:         metrics,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := p.Run(gctx); err != nil {
			return fmt.Errorf("pipeline: %w", err)
		}
		return nil
	})

	// Either a signal or a failed component starts shutdown.
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
		if err := reader.Close(); err != nil {
			logger.Error("kafka reader close error", "error", err)
		}
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("service stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

// loadDotEnv applies path to the environment without overriding variables that
// are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
