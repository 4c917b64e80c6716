package telemetry

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shutdown(t *testing.T, telem *Telemetry) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, telem.Shutdown(ctx))
}

func newOrSkip(t *testing.T, cfg Config) *Telemetry {
	t.Helper()
	telem, err := New(cfg)
	if err != nil && strings.Contains(err.Error(), "conflicting Schema URL") {
		t.Skipf("Skipping due to OpenTelemetry schema version conflict: %v", err)
	}
	require.NoError(t, err)
	require.NotNil(t, telem)
	return telem
}

func TestNewTelemetryDisabled(t *testing.T) {
	telem := newOrSkip(t, Config{Enabled: false})
	assert.False(t, telem.IsEnabled())

	_, _, ok := telem.MetricsHandler()
	assert.False(t, ok, "disabled telemetry must not expose a scrape handler")

	shutdown(t, telem)
}

func TestNewTelemetryEnabled(t *testing.T) {
	telem := newOrSkip(t, Config{
		Enabled:     true,
		ServiceName: "test-service",
	})
	defer shutdown(t, telem)

	assert.True(t, telem.IsEnabled())
	assert.Equal(t, defaultMetricsPath, telem.config.Prometheus.Path)
}

func TestNew_DefaultServiceName(t *testing.T) {
	telem := newOrSkip(t, Config{Enabled: true})
	defer shutdown(t, telem)

	assert.Equal(t, "shiori", telem.config.ServiceName)
}

func TestMetricsHandler(t *testing.T) {
	t.Run("mounted on the application router", func(t *testing.T) {
		telem := newOrSkip(t, Config{
			Enabled:    true,
			Prometheus: PrometheusConfig{Enabled: true},
		})
		defer shutdown(t, telem)

		path, h, ok := telem.MetricsHandler()
		require.True(t, ok)
		assert.Equal(t, "/metrics", path)
		assert.NotNil(t, h)
	})

	t.Run("custom path", func(t *testing.T) {
		telem := &Telemetry{config: Config{
			Enabled:    true,
			Prometheus: PrometheusConfig{Enabled: true, Path: "/internal/metrics"},
		}}
		path, _, ok := telem.MetricsHandler()
		require.True(t, ok)
		assert.Equal(t, "/internal/metrics", path)
	})

	t.Run("dedicated server", func(t *testing.T) {
		telem := &Telemetry{config: Config{
			Enabled:    true,
			Prometheus: PrometheusConfig{Enabled: true, Port: 9464},
		}}
		_, _, ok := telem.MetricsHandler()
		assert.False(t, ok)
	})

	t.Run("nil receiver", func(t *testing.T) {
		var telem *Telemetry
		_, _, ok := telem.MetricsHandler()
		assert.False(t, ok)
	})
}
