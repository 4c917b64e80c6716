// Package config provides configuration management for the application.
// It supports YAML configuration files with environment variable overrides.
package config

import (
	"errors"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tabi-shiori/shiori/consts"
	apperrors "github.com/tabi-shiori/shiori/pkg/errors"
	"github.com/tabi-shiori/shiori/pkg/logger"
	"github.com/tabi-shiori/shiori/pkg/telemetry"
)

// DefaultPath is where the CLI looks for configuration when --config is not given
const DefaultPath = "config/shiori.yaml"

// Default configuration values
const (
	defaultHost           = "0.0.0.0"
	defaultPort           = 8080
	defaultMapLanguage    = "ja"
	defaultMapRegion      = "jp"
	defaultTrip           = "ehime"
	defaultFormat         = "html"
	defaultDocumentLang   = "ja"
	defaultPaper          = PaperA4
	defaultMargin         = 0.4
	defaultPDFScale       = 1.0
	defaultPDFTimeout     = 60
	defaultSettleDelayMS  = 1000
	defaultTextWidth      = 80
	defaultOTLPEndpoint   = "localhost:4317"
	defaultPrometheusPort = 9090
)

// Paper sizes accepted by render.pdf.paper
const (
	PaperA4     = "a4"
	PaperLetter = "letter"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig     `yaml:"server"`
	Maps      MapsConfig       `yaml:"maps"`
	Render    RenderConfig     `yaml:"render"`
	Logging   logger.Config    `yaml:"logging"`
	Telemetry telemetry.Config `yaml:"telemetry"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host        string   `yaml:"host"`
	Port        int      `yaml:"port"`
	Debug       bool     `yaml:"debug"`
	CORSOrigins []string `yaml:"cors_origins"` // Allowed CORS origins whitelist
	// Cache keeps the first successful export per format in memory
	Cache bool `yaml:"cache"`
}

// MapsConfig holds the route map embed settings.
// APIKey is injected at deploy time, usually as ${GOOGLE_MAPS_API_KEY}.
type MapsConfig struct {
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	Language string `yaml:"language"` // default for routes that omit language
	Region   string `yaml:"region"`   // default for routes that omit region
}

// RenderConfig holds document rendering configuration
type RenderConfig struct {
	DefaultTrip string     `yaml:"default_trip"` // built-in trip name
	TripFile    string     `yaml:"trip_file"`    // YAML trip, takes precedence over DefaultTrip
	Format      string     `yaml:"format"`
	Lang        string     `yaml:"lang"` // html lang attribute
	PDF         PDFConfig  `yaml:"pdf"`
	Text        TextConfig `yaml:"text"`
}

// PDFConfig holds headless Chrome print settings
type PDFConfig struct {
	Paper           string  `yaml:"paper"`  // a4, letter
	Margin          float64 `yaml:"margin"` // inches, all sides
	HeaderFooter    bool    `yaml:"header_footer"`
	PrintBackground bool    `yaml:"print_background"`
	Scale           float64 `yaml:"scale"`
	TimeoutSeconds  int     `yaml:"timeout_seconds"`
	SettleDelayMS   int     `yaml:"settle_delay_ms"`
	ChromePath      string  `yaml:"chrome_path"`
}

// TextConfig holds terminal rendering settings
type TextConfig struct {
	Color bool `yaml:"color"`
	Width int  `yaml:"width"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:  defaultHost,
			Port:  defaultPort,
			Debug: false,
			Cache: true,
		},
		Maps: MapsConfig{
			APIKey:   "", // Must come from the environment at deploy time
			Language: defaultMapLanguage,
			Region:   defaultMapRegion,
		},
		Render: RenderConfig{
			DefaultTrip: defaultTrip,
			Format:      defaultFormat,
			Lang:        defaultDocumentLang,
			PDF: PDFConfig{
				Paper:           defaultPaper,
				Margin:          defaultMargin,
				HeaderFooter:    false,
				PrintBackground: true,
				Scale:           defaultPDFScale,
				TimeoutSeconds:  defaultPDFTimeout,
				SettleDelayMS:   defaultSettleDelayMS,
			},
			Text: TextConfig{
				Color: true,
				Width: defaultTextWidth,
			},
		},
		Logging: logger.Config{
			Level:      "info",
			Format:     "text",
			Output:     logger.OutputStdout,
			File:       "",
			MaxSize:    100, // Max 100MB per log file
			MaxAge:     7,   // Retain logs for 7 days
			MaxBackups: 5,   // Keep 5 backup files
			Compress:   false,
			AccessLog:  true,
		},
		Telemetry: telemetry.Config{
			Enabled:     false,
			ServiceName: consts.ServiceName,
			OTLP: telemetry.OTLPConfig{
				Enabled:  false,
				Endpoint: defaultOTLPEndpoint,
				Insecure: true,
			},
			Prometheus: telemetry.PrometheusConfig{
				Enabled: false,
				Port:    defaultPrometheusPort,
			},
		},
	}
}

// Load loads configuration from a YAML file with environment variable expansion.
// SHIORI_* environment overrides are applied after parsing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrap(apperrors.ErrCodeConfigNotFound, "config file not found: "+path, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeConfigParse, "failed to read config file", err)
	}
	return Parse(data)
}

// LoadOrDefault loads path when it exists, otherwise falls back to defaults.
// The returned bool reports whether the file was found.
func LoadOrDefault(path string) (*Config, bool, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, true, nil
	}
	if appErr, ok := apperrors.AsAppError(err); ok && appErr.Code == apperrors.ErrCodeConfigNotFound {
		cfg = Default()
		applyEnvOverrides(cfg)
		return cfg, false, nil
	}
	return nil, false, err
}

// Parse decodes configuration YAML on top of the defaults
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	// Expand environment variables in the configuration
	expanded := expandEnvVars(string(data))

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeConfigParse, "failed to parse config file", err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// Exists checks if a configuration file exists at path
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable values.
// Only the braced form is expanded so a bare $ in a value survives.
func expandEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1]

		// Support default values: ${VAR_NAME:-default}
		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]

		if value := os.Getenv(varName); value != "" {
			return value
		}

		if len(parts) > 1 {
			return parts[1]
		}

		return ""
	})
}

// Address returns the server address string
func (c *ServerConfig) Address() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// Timeout returns the Chrome session timeout
func (c *PDFConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SettleDelay returns the pause before printing
func (c *PDFConfig) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelayMS) * time.Millisecond
}

// PaperSize returns the paper width and height in inches
func (c *PDFConfig) PaperSize() (width, height float64) {
	if strings.EqualFold(c.Paper, PaperLetter) {
		return 8.5, 11
	}
	return 8.27, 11.69
}
