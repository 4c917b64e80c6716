package main

import (
	"fmt"
	"io"
	"net"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tabi-shiori/shiori/consts"
	"github.com/tabi-shiori/shiori/internal/api/handler"
	"github.com/tabi-shiori/shiori/internal/check"
	"github.com/tabi-shiori/shiori/internal/server"
	"github.com/tabi-shiori/shiori/pkg/errors"
	"github.com/tabi-shiori/shiori/pkg/logger"
)

type serveFlags struct {
	host  string
	port  int
	debug bool
}

func newServeCmd(global *globalOptions) *cobra.Command {
	opts := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rendered itinerary over HTTP",
		Long: `Start the HTTP server. The itinerary page is served at / and the other
formats under /export/:format (markdown, json, text, pdf).

Run 'shiori check' first to create a configuration file and verify the
map API key and trip data.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, global, opts)
		},
	}

	// Serve command flags
	cmd.Flags().StringVar(&opts.host, "host", "", "server host (overrides config)")
	cmd.Flags().IntVar(&opts.port, "port", 0, "server port (overrides config)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "enable debug mode")
	return cmd
}

func runServe(cmd *cobra.Command, global *globalOptions, opts *serveFlags) error {
	// Record server start time
	consts.SetStartedAt(time.Now())

	cfg, err := loadConfig(global)
	if err != nil {
		return err
	}

	// Run non-interactive basic check
	checker := check.NewChecker(check.Options{ConfigPath: global.configPath, Out: cmd.ErrOrStderr()})
	result := checker.RunNonInteractive()
	if !result.Success {
		check.PrintCheckResult(cmd.ErrOrStderr(), result)
		if err := result.Err(); err != nil {
			return err
		}
		return errors.ErrValidation("environment check failed")
	}
	// Print warnings if any (but don't block startup)
	printWarnings(cmd.ErrOrStderr(), result.Warnings)

	// Override config with command line flags
	if opts.host != "" {
		cfg.Server.Host = opts.host
	}
	if opts.port != 0 {
		cfg.Server.Port = opts.port
	}
	if opts.debug {
		cfg.Server.Debug = true
		cfg.Logging.Level = "debug"
		cfg.Logging.Format = "text"
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := initLogger(cfg); err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("Starting "+consts.ProjectName,
		zap.String("version", consts.Version),
	)

	tel, shutdown, err := initTelemetry(cfg)
	if err != nil {
		return err
	}
	defer shutdown()

	name, trip, err := resolveTrip(cfg)
	if err != nil {
		return err
	}

	h := handler.NewItineraryHandler(newRenderer(cfg), name, trip, cfg.Server.Cache)

	// Create and configure server
	srv := server.New(cfg, h, tel)
	srv.SetupRoutes()

	if err := srv.Start(); err != nil {
		return errors.ErrInternal("failed to start server", err)
	}

	logger.Info(consts.ProjectName+" server is running",
		zap.String("address", srv.Addr()),
		zap.String("trip", name),
	)

	// Log access URLs for user convenience
	port := cfg.Server.Port
	logger.Info(fmt.Sprintf("  Local:   http://localhost:%d/", port))
	if lanIP := getLocalIP(); lanIP != "" {
		logger.Info(fmt.Sprintf("  Network: http://%s:%d/", lanIP, port))
	}

	// Wait for shutdown
	srv.WaitForShutdown()

	logger.Info(consts.ProjectName + " stopped")
	return nil
}

func printWarnings(w io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	for _, warn := range warnings {
		fmt.Fprintf(w, "[WARNING] %s\n", warn)
	}
	fmt.Fprintln(w)
}

// getLocalIP returns the first non-loopback IPv4 address
func getLocalIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ""
	}
	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipnet.IP.To4() != nil {
				return ipnet.IP.String()
			}
		}
	}
	return ""
}
