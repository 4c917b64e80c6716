// Package check provides interactive environment checking and initialization.
// It helps users set up a local Shiori configuration and verifies their itineraries.
package check

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/tabi-shiori/shiori/internal/config"
)

// DefaultTripsDir receives the example trip files
const DefaultTripsDir = "trips"

// CheckResult represents the result of a non-interactive environment check
type CheckResult struct {
	// Success indicates whether all required checks passed
	Success bool
	// Errors contains problems that make rendering fail
	Errors []string
	// Warnings contains non-critical issues, e.g. a missing map API key
	Warnings []string
	// Suggestions contains helpful tips for fixing issues
	Suggestions []string

	report *Report
}

// Err returns the AppError matching the most severe failure, or nil
func (r *CheckResult) Err() error {
	if r.report == nil {
		return nil
	}
	return r.report.Err()
}

// Options configures a Checker
type Options struct {
	// ConfigPath is the configuration file to check, config.DefaultPath when empty
	ConfigPath string
	// TripsDir is where example trips are created, DefaultTripsDir when empty
	TripsDir string
	// Out receives all output, os.Stdout when nil
	Out io.Writer
}

// Checker handles environment checking and initialization
type Checker struct {
	configPath string
	tripsDir   string
	out        io.Writer
	// report collects check results for final output
	report *Report
	// cfg is the configuration under test, defaults when the file is absent
	cfg *config.Config

	// confirm and lookPath are replaced in tests
	confirm  func(title string) (bool, error)
	lookPath func(file string) (string, error)
}

// NewChecker creates a new environment checker
func NewChecker(opts Options) *Checker {
	if opts.ConfigPath == "" {
		opts.ConfigPath = config.DefaultPath
	}
	if opts.TripsDir == "" {
		opts.TripsDir = DefaultTripsDir
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Checker{
		configPath: opts.ConfigPath,
		tripsDir:   opts.TripsDir,
		out:        opts.Out,
		report:     NewReport(),
		confirm:    confirmCreate,
		lookPath:   exec.LookPath,
	}
}

// Run executes the full interactive check. Missing files are offered for
// creation from the embedded examples. The returned error carries the exit
// code of the most severe failure.
func (c *Checker) Run() error {
	c.printHeader()

	fmt.Fprintln(c.out)
	c.printSection("Checking configuration files")
	if err := c.checkFiles(); err != nil {
		return fmt.Errorf("file check failed: %w", err)
	}

	fmt.Fprintln(c.out)
	c.printSection("Validating configuration")
	c.record(c.validateConfig())

	fmt.Fprintln(c.out)
	c.printSection("Checking map embed")
	c.record(c.checkMapKey())

	fmt.Fprintln(c.out)
	c.printSection("Validating itineraries")
	for _, result := range c.validateTrips() {
		c.record(result)
	}

	fmt.Fprintln(c.out)
	c.printSection("Checking PDF support")
	c.record(c.checkChrome())

	fmt.Fprintln(c.out)
	c.report.Print(c.out)

	return c.report.Err()
}

// RunNonInteractive performs the same checks without prompting or creating files
func (c *Checker) RunNonInteractive() *CheckResult {
	result := &CheckResult{
		Success:     true,
		Errors:      make([]string, 0),
		Warnings:    make([]string, 0),
		Suggestions: make([]string, 0),
		report:      c.report,
	}

	if !fileExists(c.configPath) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Configuration not found: %s (built-in defaults apply)", c.configPath))
		result.Suggestions = append(result.Suggestions,
			"Run 'shiori check' to create "+c.configPath+" from the example")
	}

	results := []ValidationResult{c.validateConfig(), c.checkMapKey()}
	results = append(results, c.validateTrips()...)
	results = append(results, c.checkChrome())

	for _, r := range results {
		c.report.AddValidationResult(r)
		if !r.Valid {
			result.Success = false
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", r.Name, r.Error))
			for _, d := range r.Details {
				result.Errors = append(result.Errors, "  "+d)
			}
		}
		for _, w := range r.Warnings {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", r.Name, w))
		}
		result.Suggestions = append(result.Suggestions, r.Suggestions...)
	}

	return result
}

// record stores and prints one validation result
func (c *Checker) record(result ValidationResult) {
	c.report.AddValidationResult(result)
	printValidationResult(c.out, result)
}

// printHeader prints the welcome header
func (c *Checker) printHeader() {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginBottom(1)

	fmt.Fprintln(c.out, titleStyle.Render("🔍 Shiori Environment Check"))
}

// printSection prints a section header
func (c *Checker) printSection(title string) {
	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15"))
	fmt.Fprintln(c.out, style.Render(title+"..."))
}

// ConfigPath returns the path to the configuration file under check
func (c *Checker) ConfigPath() string {
	return c.configPath
}

// confirmCreate asks user to confirm file creation
func confirmCreate(title string) (bool, error) {
	var confirm bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&confirm).
		Run()
	if err != nil {
		return false, err
	}
	return confirm, nil
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// dirHasYAML reports whether dir contains at least one .yaml file
func dirHasYAML(dir string) bool {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	return err == nil && len(matches) > 0
}

// PrintCheckResult prints the check result in a formatted way
func PrintCheckResult(w io.Writer, result *CheckResult) {
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	if len(result.Errors) > 0 {
		fmt.Fprintln(w)
		red.Fprintln(w, "[ERROR] Environment check failed")
		fmt.Fprintln(w)
		for _, err := range result.Errors {
			red.Fprintf(w, "  ✗ %s\n", err)
		}
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintln(w)
		yellow.Fprintln(w, "[WARNING] Configuration warnings:")
		fmt.Fprintln(w)
		for _, warn := range result.Warnings {
			yellow.Fprintf(w, "  ⚠ %s\n", warn)
		}
	}

	if len(result.Suggestions) > 0 {
		cyan.Fprintln(w, "\nTo fix these issues:")
		for _, suggestion := range result.Suggestions {
			fmt.Fprintf(w, "  → %s\n", suggestion)
		}
	}

	if result.Success && len(result.Warnings) == 0 {
		color.New(color.FgGreen).Fprintln(w, "✓ All checks passed")
	}

	fmt.Fprintln(w)
}
