package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// StormGlass point forecast API.
	StormGlassAPIURL   string
	StormGlassAPIToken string
	StormGlassTimeout  time.Duration
	ForecastCacheTTL   time.Duration

	DatabasePath string

	// Optional Kafka sink for served forecasts.
	KafkaBrokers       []string
	KafkaForecastTopic string
	KafkaEnabled       bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	stormGlassTimeout, err := parsePositiveDuration("STORMGLASS_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	cacheTTL, err := parsePositiveDuration("FORECAST_CACHE_TTL", "1h")
	if err != nil {
		return nil, err
	}

	brokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))
	topic := envOrDefault("KAFKA_FORECAST_TOPIC", "surf-forecasts")
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		StormGlassAPIURL:   strings.TrimRight(envOrDefault("STORMGLASS_API_URL", "https://api.stormglass.io/v2"), "/"),
		StormGlassAPIToken: os.Getenv("STORMGLASS_API_TOKEN"),
		StormGlassTimeout:  stormGlassTimeout,
		ForecastCacheTTL:   cacheTTL,

		DatabasePath: envOrDefault("DATABASE_PATH", "surf-forecast.db"),

		KafkaBrokers:       brokers,
		KafkaForecastTopic: topic,
		KafkaEnabled:       kafkaEnabled,
	}

	if cfg.StormGlassAPIToken == "" {
		return nil, errors.New("STORMGLASS_API_TOKEN is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
