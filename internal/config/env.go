package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "SHIORI_"

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment. Missing files are skipped; variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// applyEnvOverrides applies SHIORI_* environment variable overrides:
//   - SHIORI_SERVER_HOST, SHIORI_SERVER_PORT, SHIORI_SERVER_DEBUG, SHIORI_SERVER_CACHE
//   - SHIORI_MAPS_API_KEY, SHIORI_MAPS_LANGUAGE, SHIORI_MAPS_REGION
//   - SHIORI_RENDER_TRIP, SHIORI_RENDER_TRIP_FILE, SHIORI_RENDER_FORMAT, SHIORI_CHROME_PATH
//   - SHIORI_LOG_LEVEL, SHIORI_LOG_FORMAT, SHIORI_LOG_FILE
//   - SHIORI_TELEMETRY_ENABLED, SHIORI_OTLP_ENABLED, SHIORI_OTLP_ENDPOINT
//   - SHIORI_PROMETHEUS_ENABLED, SHIORI_PROMETHEUS_PORT
func applyEnvOverrides(cfg *Config) {
	// Server overrides
	if v := getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := getenv("SERVER_DEBUG"); v != "" {
		cfg.Server.Debug = parseBool(v)
	}
	if v := getenv("SERVER_CACHE"); v != "" {
		cfg.Server.Cache = parseBool(v)
	}

	// Maps overrides
	if v := getenv("MAPS_API_KEY"); v != "" {
		cfg.Maps.APIKey = v
	}
	if v := getenv("MAPS_LANGUAGE"); v != "" {
		cfg.Maps.Language = v
	}
	if v := getenv("MAPS_REGION"); v != "" {
		cfg.Maps.Region = v
	}

	// Render overrides
	if v := getenv("RENDER_TRIP"); v != "" {
		cfg.Render.DefaultTrip = v
	}
	if v := getenv("RENDER_TRIP_FILE"); v != "" {
		cfg.Render.TripFile = v
	}
	if v := getenv("RENDER_FORMAT"); v != "" {
		cfg.Render.Format = v
	}
	if v := getenv("CHROME_PATH"); v != "" {
		cfg.Render.PDF.ChromePath = v
	}

	// Logging overrides
	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := getenv("LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}

	// Telemetry overrides
	if v := getenv("TELEMETRY_ENABLED"); v != "" {
		cfg.Telemetry.Enabled = parseBool(v)
	}
	if v := getenv("OTLP_ENABLED"); v != "" {
		cfg.Telemetry.OTLP.Enabled = parseBool(v)
	}
	if v := getenv("OTLP_ENDPOINT"); v != "" {
		cfg.Telemetry.OTLP.Endpoint = v
	}
	if v := getenv("PROMETHEUS_ENABLED"); v != "" {
		cfg.Telemetry.Prometheus.Enabled = parseBool(v)
	}
	if v := getenv("PROMETHEUS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Telemetry.Prometheus.Port = port
		}
	}
}

func getenv(key string) string {
	return os.Getenv(EnvPrefix + key)
}

// parseBool parses a boolean string value
func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes" || v == "on"
}
