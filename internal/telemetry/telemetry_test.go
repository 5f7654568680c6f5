package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modeshift/modeshift/internal/telemetry"
)

func TestInit_Disabled(t *testing.T) {
	ctx := context.Background()

	provider, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    "test-service",
		ServiceVersion: "1.0.0",
		Environment:    "test",
		OTLPEndpoint:   "localhost:4317",
		Enabled:        false,
	})

	require.NoError(t, err)
	assert.NotNil(t, provider)
	assert.NotNil(t, provider.Tracer)
	assert.NotNil(t, provider.Meter)

	// A disabled provider carries no SDK providers to shut down.
	assert.Nil(t, provider.TracerProvider)
	assert.Nil(t, provider.MeterProvider)

	err = provider.Shutdown(ctx)
	assert.NoError(t, err)
}

func TestProvider_Shutdown_NilProviders(t *testing.T) {
	provider := &telemetry.Provider{}
	err := provider.Shutdown(context.Background())
	assert.NoError(t, err)
}

func TestConfigFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("OTEL_ENABLED", "")
		t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
		t.Setenv("APP_ENV", "")

		cfg := telemetry.ConfigFromEnv("modeshift-api", "dev")
		assert.Equal(t, "modeshift-api", cfg.ServiceName)
		assert.Equal(t, "dev", cfg.ServiceVersion)
		assert.Equal(t, "development", cfg.Environment)
		assert.Equal(t, "localhost:4317", cfg.OTLPEndpoint)
		assert.False(t, cfg.Enabled)
	})

	t.Run("from environment", func(t *testing.T) {
		t.Setenv("OTEL_ENABLED", "true")
		t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")
		t.Setenv("APP_ENV", "production")

		cfg := telemetry.ConfigFromEnv("modeshift-api", "1.2.3")
		assert.True(t, cfg.Enabled)
		assert.Equal(t, "collector:4317", cfg.OTLPEndpoint)
		assert.Equal(t, "production", cfg.Environment)
	})
}
