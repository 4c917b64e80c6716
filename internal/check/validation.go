package check

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/tabi-shiori/shiori/internal/config"
	"github.com/tabi-shiori/shiori/internal/itinerary"
	"github.com/tabi-shiori/shiori/internal/mapembed"
	"github.com/tabi-shiori/shiori/internal/model"
	"github.com/tabi-shiori/shiori/internal/render"
	"github.com/tabi-shiori/shiori/pkg/errors"
)

// ResultKind groups validation results by the exit code their failure maps to
type ResultKind int

const (
	KindConfig ResultKind = iota
	KindTrip
	KindEnvironment
)

// ValidationResult represents the result of one check
type ValidationResult struct {
	Name  string
	Path  string
	Kind  ResultKind
	Valid bool
	// Info is a short summary shown next to a passing check
	Info        string
	Error       error
	Details     []string
	Warnings    []string
	Suggestions []string
}

// chromeCandidates are looked up on PATH when no Chrome path is configured
var chromeCandidates = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"chrome",
	"headless-shell",
}

// validateConfig loads and validates the configuration, falling back to
// defaults when the file is absent
func (c *Checker) validateConfig() ValidationResult {
	result := ValidationResult{Name: "configuration", Path: c.configPath, Kind: KindConfig}

	cfg, found, err := config.LoadOrDefault(c.configPath)
	if err != nil {
		result.Error = err
		c.cfg = config.Default()
		return result
	}
	c.cfg = cfg

	if err := cfg.Validate(); err != nil {
		result.Error = err
		result.Details = detailsOf(err)
		return result
	}

	result.Valid = true
	if !found {
		result.Info = "defaults"
	}
	return result
}

// checkMapKey warns when no map API key is configured. Maps still render,
// but the embedded frame shows an error.
func (c *Checker) checkMapKey() ValidationResult {
	result := ValidationResult{Name: "map embed", Kind: KindEnvironment, Valid: true}
	cfg := c.config()

	if strings.TrimSpace(cfg.Maps.APIKey) == "" {
		result.Warnings = append(result.Warnings, "maps.api_key is empty; route maps will not load")
		result.Suggestions = append(result.Suggestions,
			"Set GOOGLE_MAPS_API_KEY (or SHIORI_MAPS_API_KEY) in the environment or a .env file")
		return result
	}

	result.Info = "key " + config.MaskSecret(cfg.Maps.APIKey)
	return result
}

// validateTrips validates every built-in trip plus the configured trip file,
// composing each one so map URLs are exercised too
func (c *Checker) validateTrips() []ValidationResult {
	cfg := c.config()
	maps := mapembed.New(cfg.Maps.APIKey, cfg.Maps.Language, cfg.Maps.Region)
	if cfg.Maps.BaseURL != "" {
		maps.BaseURL = cfg.Maps.BaseURL
	}

	var results []ValidationResult
	for _, name := range itinerary.Names() {
		trip, err := itinerary.Lookup(name)
		results = append(results, validateTrip(name, "", trip, err, maps))
	}

	switch {
	case cfg.Render.TripFile != "":
		trip, err := itinerary.Load(cfg.Render.TripFile)
		results = append(results, validateTrip(cfg.Render.TripFile, cfg.Render.TripFile, trip, err, maps))
	case cfg.Render.DefaultTrip != "":
		if _, err := itinerary.Lookup(cfg.Render.DefaultTrip); err != nil {
			results = append(results, ValidationResult{
				Name:    "render.default_trip",
				Kind:    KindTrip,
				Error:   err,
				Details: detailsOf(err),
			})
		}
	}

	return results
}

func validateTrip(name, path string, trip *model.Trip, loadErr error, maps *mapembed.Builder) ValidationResult {
	result := ValidationResult{Name: name, Path: path, Kind: KindTrip}

	if loadErr != nil {
		result.Error = loadErr
		result.Details = detailsOf(loadErr)
		return result
	}
	if err := trip.Validate(); err != nil {
		result.Error = err
		result.Details = detailsOf(err)
		return result
	}
	if _, err := render.Compose(trip, maps); err != nil {
		result.Error = err
		return result
	}

	result.Valid = true
	result.Info = fmt.Sprintf("%d day(s), %d entries", len(trip.Days), trip.EntryCount())
	return result
}

// checkChrome looks for a Chrome binary for PDF export. A missing browser
// only disables the pdf format.
func (c *Checker) checkChrome() ValidationResult {
	result := ValidationResult{Name: "chrome", Kind: KindEnvironment, Valid: true}
	cfg := c.config()

	for _, explicit := range []string{cfg.Render.PDF.ChromePath, os.Getenv("CHROME_PATH")} {
		if explicit == "" {
			continue
		}
		if fileExists(explicit) {
			result.Info = explicit
			return result
		}
		result.Warnings = append(result.Warnings, fmt.Sprintf("configured Chrome path %s does not exist", explicit))
	}

	for _, name := range chromeCandidates {
		if path, err := c.lookPath(name); err == nil {
			result.Info = path
			return result
		}
	}

	result.Warnings = append(result.Warnings, "no Chrome or Chromium binary found; pdf export is unavailable")
	result.Suggestions = append(result.Suggestions, "Install Chrome or set render.pdf.chrome_path / CHROME_PATH")
	return result
}

func (c *Checker) config() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

// detailsOf extracts the individual violations carried by an AppError
func detailsOf(err error) []string {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return nil
	}
	switch d := appErr.Details.(type) {
	case []string:
		return d
	case string:
		return []string{d}
	default:
		return nil
	}
}

// printValidationResult prints a single validation result
func printValidationResult(w io.Writer, result ValidationResult) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	switch {
	case !result.Valid:
		red.Fprintf(w, "  ✗ %s: %v\n", result.Name, result.Error)
		for _, d := range result.Details {
			red.Fprintf(w, "    └─ %s\n", d)
		}
	case result.Info != "":
		green.Fprintf(w, "  ✓ %s (%s)\n", result.Name, result.Info)
	case len(result.Warnings) == 0:
		green.Fprintf(w, "  ✓ %s\n", result.Name)
	}

	for _, warning := range result.Warnings {
		yellow.Fprintf(w, "  ⚠ %s: %s\n", result.Name, warning)
	}
}
