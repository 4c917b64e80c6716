// Package router sets up the HTTP routes for serve mode.
package router

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/tabi-shiori/shiori/consts"
	"github.com/tabi-shiori/shiori/internal/api/handler"
	"github.com/tabi-shiori/shiori/internal/api/middleware"
	"github.com/tabi-shiori/shiori/internal/config"
	"github.com/tabi-shiori/shiori/pkg/logger"
	"github.com/tabi-shiori/shiori/pkg/telemetry"

	"go.uber.org/zap"
)

// Setup configures all routes. tel may be nil.
func Setup(r *gin.Engine, h *handler.ItineraryHandler, cfg *config.Config, tel *telemetry.Telemetry) {
	// Apply global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(&middleware.LoggerConfig{
		AccessLog: cfg.Logging.AccessLog,
	}))
	r.Use(middleware.CORS(cfg.Server.CORSOrigins))
	r.Use(middleware.ErrorHandler(cfg.Server.Debug))
	r.Use(middleware.Metrics())

	serviceName := cfg.Telemetry.ServiceName
	if serviceName == "" {
		serviceName = consts.ServiceName
	}
	r.Use(otelgin.Middleware(serviceName))

	r.GET("/health", h.Health)

	r.GET("/", h.Page)
	r.GET("/export", h.Formats)
	r.GET("/export/:format", h.Export)

	// Prometheus scrape endpoint when no dedicated metrics port is configured
	if path, metrics, ok := tel.MetricsHandler(); ok {
		r.GET(path, gin.WrapH(metrics))
		logger.Info("Metrics endpoint mounted on main server", zap.String("path", path))
	}
}
