package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tabi-shiori/shiori/internal/render"
	"github.com/tabi-shiori/shiori/pkg/logger"
)

// stdoutPath selects standard output for --output
const stdoutPath = "-"

type renderFlags struct {
	trip     string
	tripFile string
	format   string
	output   string
}

func newRenderCmd(global *globalOptions) *cobra.Command {
	opts := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the itinerary to a document",
		Long: `Render the itinerary once and write the document.

Formats: html (default), markdown, json, text, pdf. PDF output needs a local
Chrome or Chromium; set render.pdf.chrome_path or CHROME_PATH to point at it.

Without --output the document is written to the current directory under a
name derived from the trip title. Use --output - to write to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, global, opts)
		},
	}

	cmd.Flags().StringVar(&opts.trip, "trip", "", "built-in trip name (overrides config)")
	cmd.Flags().StringVar(&opts.tripFile, "trip-file", "", "YAML trip file (overrides --trip)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: html, markdown, json, text, pdf")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output path, - for stdout")
	return cmd
}

func runRender(cmd *cobra.Command, global *globalOptions, opts *renderFlags) error {
	cfg, err := loadConfig(global)
	if err != nil {
		return err
	}

	// Override config with command line flags
	if opts.trip != "" {
		cfg.Render.DefaultTrip = opts.trip
		cfg.Render.TripFile = ""
	}
	if opts.tripFile != "" {
		cfg.Render.TripFile = opts.tripFile
	}
	if opts.format != "" {
		cfg.Render.Format = opts.format
	}
	toStdout := opts.output == stdoutPath
	if toStdout {
		// Keep the document alone on stdout
		cfg.Logging.Output = logger.OutputStderr
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := initLogger(cfg); err != nil {
		return err
	}
	defer logger.Sync()

	_, shutdown, err := initTelemetry(cfg)
	if err != nil {
		return err
	}
	defer shutdown()

	format, err := render.ParseFormat(cfg.Render.Format)
	if err != nil {
		return err
	}

	name, trip, err := resolveTrip(cfg)
	if err != nil {
		return err
	}

	renderer := newRenderer(cfg)
	if !renderer.Maps().HasKey() && trip.HasRoutes() {
		logger.Warn("Map API key is not configured, route maps will not load",
			zap.String("trip", name))
	}

	res, err := renderer.Render(cmd.Context(), name, trip, format)
	if err != nil {
		return err
	}

	if toStdout {
		_, err := cmd.OutOrStdout().Write(res.Content)
		return err
	}

	path := opts.output
	if path == "" {
		path = res.Filename
	}
	if err := render.WriteFile(path, res.Content); err != nil {
		return err
	}

	logger.Info("Wrote document",
		zap.String("path", path),
		zap.String(logger.FieldFormat, string(format)),
		zap.Int("bytes", len(res.Content)),
	)
	fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", path)
	return nil
}
