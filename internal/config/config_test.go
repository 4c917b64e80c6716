package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tabi-shiori/shiori/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shiori.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Server.Cache)
	assert.Empty(t, cfg.Maps.APIKey, "the API key never has a default")
	assert.Equal(t, "ja", cfg.Maps.Language)
	assert.Equal(t, "jp", cfg.Maps.Region)
	assert.Equal(t, "ehime", cfg.Render.DefaultTrip)
	assert.Equal(t, "html", cfg.Render.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "shiori", cfg.Telemetry.ServiceName)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 9000
  debug: true
maps:
  api_key: "literal-key"
  region: "JP"
render:
  default_trip: ehime-route
  format: markdown
  pdf:
    paper: letter
    timeout_seconds: 30
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Address())
	assert.True(t, cfg.Server.Debug)
	assert.Equal(t, "literal-key", cfg.Maps.APIKey)
	assert.Equal(t, "JP", cfg.Maps.Region)
	assert.Equal(t, "ja", cfg.Maps.Language, "unset fields keep their defaults")
	assert.Equal(t, "ehime-route", cfg.Render.DefaultTrip)
	assert.Equal(t, "markdown", cfg.Render.Format)
	assert.Equal(t, 30*time.Second, cfg.Render.PDF.Timeout())
	assert.Equal(t, "debug", cfg.Logging.Level)

	w, h := cfg.Render.PDF.PaperSize()
	assert.Equal(t, 8.5, w)
	assert.Equal(t, 11.0, h)
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_SHIORI_MAP_KEY", "from-env")

	path := writeConfig(t, `
maps:
  api_key: "${TEST_SHIORI_MAP_KEY}"
  base_url: "${TEST_SHIORI_UNSET:-https://maps.example.com/embed}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Maps.APIKey)
	assert.Equal(t, "https://maps.example.com/embed", cfg.Maps.BaseURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SHIORI_MAPS_API_KEY", "override-key")
	t.Setenv("SHIORI_SERVER_PORT", "9999")
	t.Setenv("SHIORI_SERVER_CACHE", "off")
	t.Setenv("SHIORI_LOG_LEVEL", "warn")
	t.Setenv("SHIORI_PROMETHEUS_ENABLED", "yes")

	path := writeConfig(t, `
maps:
  api_key: "file-key"
server:
  port: 8000
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "override-key", cfg.Maps.APIKey)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.False(t, cfg.Server.Cache)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.True(t, cfg.Telemetry.Prometheus.Enabled)
}

func TestLoad_InvalidPortOverrideIgnored(t *testing.T) {
	t.Setenv("SHIORI_SERVER_PORT", "not-a-number")

	cfg, err := Parse([]byte("server:\n  port: 8000\n"))
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Server.Port)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeConfigNotFound, appErr.Code)
		assert.Equal(t, apperrors.ExitCodeConfigValidation, appErr.ExitCode())
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server: [unclosed"))
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeConfigParse, appErr.Code)
	})
}

func TestLoadOrDefault(t *testing.T) {
	t.Run("missing file falls back", func(t *testing.T) {
		t.Setenv("SHIORI_MAPS_API_KEY", "env-only")

		cfg, found, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, "env-only", cfg.Maps.APIKey)
	})

	t.Run("existing file", func(t *testing.T) {
		cfg, found, err := LoadOrDefault(writeConfig(t, "server:\n  port: 7000\n"))
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, 7000, cfg.Server.Port)
	})

	t.Run("parse errors are not swallowed", func(t *testing.T) {
		_, _, err := LoadOrDefault(writeConfig(t, "server: [unclosed"))
		assert.Error(t, err)
	})
}

func TestExists(t *testing.T) {
	assert.True(t, Exists(writeConfig(t, "")))
	assert.False(t, Exists(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_EXPAND_A", "alpha")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "key: value", "key: value"},
		{"braced", "key: ${TEST_EXPAND_A}", "key: alpha"},
		{"default used", "key: ${TEST_EXPAND_MISSING:-fallback}", "key: fallback"},
		{"default ignored", "key: ${TEST_EXPAND_A:-fallback}", "key: alpha"},
		{"unset without default", "key: ${TEST_EXPAND_MISSING}", "key: "},
		{"bare dollar kept", "key: $TEST_EXPAND_A", "key: $TEST_EXPAND_A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandEnvVars(tt.input))
		})
	}
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"true", "TRUE", "1", "yes", " on "} {
		assert.True(t, parseBool(v), v)
	}
	for _, v := range []string{"false", "0", "no", "off", ""} {
		assert.False(t, parseBool(v), v)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TEST_DOTENV_KEY=from-dotenv\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("TEST_DOTENV_KEY") })

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), envFile))
	assert.Equal(t, "from-dotenv", os.Getenv("TEST_DOTENV_KEY"))
}

func TestLoadDotEnv_ExistingVarWins(t *testing.T) {
	t.Setenv("TEST_DOTENV_KEEP", "process")
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TEST_DOTENV_KEEP=file\n"), 0644))

	require.NoError(t, LoadDotEnv(envFile))
	assert.Equal(t, "process", os.Getenv("TEST_DOTENV_KEEP"))
}
