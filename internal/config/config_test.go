package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "sg-test-token"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORMGLASS_API_TOKEN", testToken)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "https://api.stormglass.io/v2", cfg.StormGlassAPIURL)
	assert.Equal(t, testToken, cfg.StormGlassAPIToken)
	assert.Equal(t, 10*time.Second, cfg.StormGlassTimeout)
	assert.Equal(t, time.Hour, cfg.ForecastCacheTTL)
	assert.Equal(t, "surf-forecast.db", cfg.DatabasePath)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "surf-forecasts", cfg.KafkaForecastTopic)
	assert.False(t, cfg.KafkaEnabled)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("STORMGLASS_API_TOKEN", testToken)
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("STORMGLASS_API_URL", "http://localhost:4000/v2/")
	t.Setenv("STORMGLASS_TIMEOUT", "3s")
	t.Setenv("FORECAST_CACHE_TTL", "15m")
	t.Setenv("DATABASE_PATH", "/tmp/beaches.db")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_FORECAST_TOPIC", "custom-forecasts")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "http://localhost:4000/v2", cfg.StormGlassAPIURL)
	assert.Equal(t, 3*time.Second, cfg.StormGlassTimeout)
	assert.Equal(t, 15*time.Minute, cfg.ForecastCacheTTL)
	assert.Equal(t, "/tmp/beaches.db", cfg.DatabasePath)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-forecasts", cfg.KafkaForecastTopic)
	assert.True(t, cfg.KafkaEnabled)
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("STORMGLASS_API_TOKEN", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORMGLASS_API_TOKEN")
}

func TestLoad_InvalidDurations(t *testing.T) {
	for _, key := range []string{"SHUTDOWN_TIMEOUT", "STORMGLASS_TIMEOUT", "FORECAST_CACHE_TTL"} {
		t.Run(key, func(t *testing.T) {
			t.Setenv("STORMGLASS_API_TOKEN", testToken)
			t.Setenv(key, "not-a-duration")
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoad_NegativeCacheTTL(t *testing.T) {
	t.Setenv("STORMGLASS_API_TOKEN", testToken)
	t.Setenv("FORECAST_CACHE_TTL", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FORECAST_CACHE_TTL")
}

func TestLoad_KafkaEnabledWithoutBrokers(t *testing.T) {
	t.Setenv("STORMGLASS_API_TOKEN", testToken)
	t.Setenv("KAFKA_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}

func TestLoad_KafkaExplicitlyDisabled(t *testing.T) {
	t.Setenv("STORMGLASS_API_TOKEN", testToken)
	t.Setenv("KAFKA_BROKERS", "localhost:9092")
	t.Setenv("KAFKA_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.KafkaEnabled)
}

func TestLoad_KafkaTopicDefaultsWhenEnabled(t *testing.T) {
	t.Setenv("STORMGLASS_API_TOKEN", testToken)
	t.Setenv("KAFKA_BROKERS", "broker1:9092")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_FORECAST_TOPIC", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "surf-forecasts", cfg.KafkaForecastTopic)
}
