package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/couchcryptid/air-scene-etl/internal/domain"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// Scene configuration.
	Parameter       domain.Parameter
	FrameOriginLat  float64
	FrameOriginLon  float64
	PickMaxDistance float64

	// Mapbox reverse geocoding configuration.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	mapboxTimeoutStr := sharedcfg.EnvOrDefault("MAPBOX_TIMEOUT", "5s")
	mapboxTimeout, err := time.ParseDuration(mapboxTimeoutStr)
	if err != nil || mapboxTimeout <= 0 {
		return nil, errors.New("invalid MAPBOX_TIMEOUT")
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	parameter, err := domain.ParseParameter(sharedcfg.EnvOrDefault("VIEW_PARAMETER", "aqi"))
	if err != nil {
		return nil, fmt.Errorf("invalid VIEW_PARAMETER: %w", err)
	}

	originLat, err := parseFloatEnv("FRAME_ORIGIN_LAT", domain.ParisLatitude)
	if err != nil {
		return nil, err
	}
	originLon, err := parseFloatEnv("FRAME_ORIGIN_LON", domain.ParisLongitude)
	if err != nil {
		return nil, err
	}
	if originLat < -90 || originLat > 90 {
		return nil, errors.New("FRAME_ORIGIN_LAT must be within [-90, 90]")
	}
	if originLon < -180 || originLon > 180 {
		return nil, errors.New("FRAME_ORIGIN_LON must be within [-180, 180]")
	}

	pickMax, err := parseFloatEnv("PICK_MAX_DISTANCE", 2)
	if err != nil {
		return nil, err
	}
	if pickMax <= 0 {
		return nil, errors.New("PICK_MAX_DISTANCE must be positive")
	}

	mapboxCacheSize := parseMapboxCacheSize()

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	cfg := &Config{
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "raw-air-measurements"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "air-scene-points"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "air-scene-etl"),
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		Parameter:       parameter,
		FrameOriginLat:  originLat,
		FrameOriginLon:  originLon,
		PickMaxDistance: pickMax,

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: mapboxCacheSize,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}

	return cfg, nil
}

// View returns the stock view for the configured parameter with the
// configured frame origin.
func (c *Config) View() (domain.View, error) {
	view, err := domain.ViewFor(c.Parameter)
	if err != nil {
		return domain.View{}, err
	}
	view.Frame.OriginLatitude = c.FrameOriginLat
	view.Frame.OriginLongitude = c.FrameOriginLon
	return view, nil
}

func parseFloatEnv(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return v, nil
}

func parseMapboxCacheSize() int {
	if s := os.Getenv("MAPBOX_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
