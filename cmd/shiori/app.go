package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tabi-shiori/shiori/internal/config"
	"github.com/tabi-shiori/shiori/internal/itinerary"
	"github.com/tabi-shiori/shiori/internal/mapembed"
	"github.com/tabi-shiori/shiori/internal/model"
	"github.com/tabi-shiori/shiori/internal/render"
	"github.com/tabi-shiori/shiori/pkg/errors"
	"github.com/tabi-shiori/shiori/pkg/logger"
	"github.com/tabi-shiori/shiori/pkg/telemetry"
)

const defaultConfigHint = config.DefaultPath

// telemetryShutdownTimeout bounds exporter flushing on exit
const telemetryShutdownTimeout = 10 * time.Second

// loadEnv loads the dotenv file so ${VAR} references in the config resolve
func loadEnv(opts *globalOptions) error {
	var envFiles []string
	if opts.envFile != "" {
		envFiles = append(envFiles, opts.envFile)
	}
	if err := config.LoadDotEnv(envFiles...); err != nil {
		return errors.Wrap(errors.ErrCodeConfigParse, "failed to load env file", err)
	}
	return nil
}

// loadConfig loads the dotenv file and the YAML config, falling back to
// defaults when the config file does not exist
func loadConfig(opts *globalOptions) (*config.Config, error) {
	if err := loadEnv(opts); err != nil {
		return nil, err
	}

	path := opts.configPath
	explicit := path != ""
	if !explicit {
		path = config.DefaultPath
	}

	// An explicit --config must exist
	if explicit {
		return config.Load(path)
	}
	cfg, _, err := config.LoadOrDefault(path)
	return cfg, err
}

// initLogger initializes the global logger from cfg
func initLogger(cfg *config.Config) error {
	if err := logger.Init(cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// initTelemetry starts telemetry and returns its shutdown func
func initTelemetry(cfg *config.Config) (*telemetry.Telemetry, func(), error) {
	tel, err := telemetry.New(cfg.Telemetry)
	if err != nil {
		return nil, nil, errors.ErrInternal("failed to initialize telemetry", err)
	}
	shutdown := func() {
		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
		defer cancel()
		if err := tel.Shutdown(ctx); err != nil {
			logger.Error("Failed to shutdown telemetry", zap.Error(err))
		}
	}
	return tel, shutdown, nil
}

// renderOptions maps the render section of cfg onto exporter options
func renderOptions(cfg *config.Config) render.Options {
	pdfCfg := cfg.Render.PDF
	width, height := pdfCfg.PaperSize()

	pdf := render.DefaultPDFOptions()
	pdf.PaperWidth = width
	pdf.PaperHeight = height
	pdf.MarginTop = pdfCfg.Margin
	pdf.MarginBottom = pdfCfg.Margin
	pdf.MarginLeft = pdfCfg.Margin
	pdf.MarginRight = pdfCfg.Margin
	pdf.DisplayHeaderFooter = pdfCfg.HeaderFooter
	pdf.PrintBackground = pdfCfg.PrintBackground
	pdf.Scale = pdfCfg.Scale
	pdf.Timeout = pdfCfg.Timeout()
	pdf.SettleDelay = pdfCfg.SettleDelay()
	pdf.ChromePath = pdfCfg.ChromePath

	return render.Options{
		Lang: cfg.Render.Lang,
		PDF:  pdf,
		Text: render.TextOptions{
			Color: cfg.Render.Text.Color,
			Width: cfg.Render.Text.Width,
		},
	}
}

// newMapBuilder injects the configured API key into the embed URL builder
func newMapBuilder(cfg *config.Config) *mapembed.Builder {
	maps := mapembed.New(cfg.Maps.APIKey, cfg.Maps.Language, cfg.Maps.Region)
	if cfg.Maps.BaseURL != "" {
		maps.BaseURL = cfg.Maps.BaseURL
	}
	return maps
}

// newRenderer builds a renderer with every exporter registered
func newRenderer(cfg *config.Config) *render.Renderer {
	return render.NewRenderer(render.NewDefaultManager(renderOptions(cfg)), newMapBuilder(cfg))
}

// resolveTrip returns the trip selected by cfg and a label for logs and metrics.
// A trip file takes precedence over a built-in name.
func resolveTrip(cfg *config.Config) (string, *model.Trip, error) {
	name := cfg.Render.DefaultTrip
	if name == "" {
		name = itinerary.DefaultTrip
	}
	if path := cfg.Render.TripFile; path != "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	trip, err := itinerary.Resolve(cfg.Render.DefaultTrip, cfg.Render.TripFile)
	if err != nil {
		return "", nil, err
	}
	return name, trip, nil
}
