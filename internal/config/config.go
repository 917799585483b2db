package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Kafka command pipeline configuration.
	KafkaEnabled     bool
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string

	BatchSize          int
	BatchFlushInterval time.Duration

	// Weather feed configuration.
	WeatherEnabled       bool
	WeatherLatitude      float64
	WeatherLongitude     float64
	WeatherPollInterval  time.Duration
	WeatherTimeout       time.Duration
	WeatherRainThreshold float64 // millimetres
	WeatherWindThreshold float64 // km/h
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	pollInterval, err := parsePositiveDuration("WEATHER_POLL_INTERVAL", "5m")
	if err != nil {
		return nil, err
	}

	weatherTimeout, err := parsePositiveDuration("WEATHER_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	rainThreshold, err := parseNonNegativeFloat("WEATHER_RAIN_THRESHOLD_MM", 0.5)
	if err != nil {
		return nil, err
	}

	windThreshold, err := parseNonNegativeFloat("WEATHER_WIND_THRESHOLD_KMH", 30)
	if err != nil {
		return nil, err
	}

	lat, lon, hasCoords, err := parseCoordinates()
	if err != nil {
		return nil, err
	}
	weatherEnabled := hasCoords
	if v := os.Getenv("WEATHER_ENABLED"); v != "" {
		weatherEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		KafkaEnabled:       os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "umbrella-input-commands"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "umbrella-evaluations"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "umbrella-gate"),
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		WeatherEnabled:       weatherEnabled,
		WeatherLatitude:      lat,
		WeatherLongitude:     lon,
		WeatherPollInterval:  pollInterval,
		WeatherTimeout:       weatherTimeout,
		WeatherRainThreshold: rainThreshold,
		WeatherWindThreshold: windThreshold,
	}

	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required")
		}
		if cfg.KafkaSourceTopic == "" {
			return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
		}
		if cfg.KafkaSinkTopic == "" {
			return nil, errors.New("KAFKA_SINK_TOPIC is required")
		}
	}
	if cfg.WeatherEnabled && !hasCoords {
		return nil, errors.New("WEATHER_ENABLED is true but WEATHER_LATITUDE and WEATHER_LONGITUDE are not set")
	}

	return cfg, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parseNonNegativeFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, errors.New("invalid " + key)
	}
	return v, nil
}

// parseCoordinates reads WEATHER_LATITUDE and WEATHER_LONGITUDE. Both must be
// set together.
func parseCoordinates() (lat, lon float64, ok bool, err error) {
	latStr, lonStr := os.Getenv("WEATHER_LATITUDE"), os.Getenv("WEATHER_LONGITUDE")
	if latStr == "" && lonStr == "" {
		return 0, 0, false, nil
	}
	if latStr == "" || lonStr == "" {
		return 0, 0, false, errors.New("WEATHER_LATITUDE and WEATHER_LONGITUDE must be set together")
	}
	lat, err = strconv.ParseFloat(latStr, 64)
	if err != nil || lat < -90 || lat > 90 {
		return 0, 0, false, errors.New("invalid WEATHER_LATITUDE")
	}
	lon, err = strconv.ParseFloat(lonStr, 64)
	if err != nil || lon < -180 || lon > 180 {
		return 0, 0, false, errors.New("invalid WEATHER_LONGITUDE")
	}
	return lat, lon, true, nil
}
