package check

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/tabi-shiori/shiori/pkg/errors"
)

// Report collects and displays check results
type Report struct {
	FileResults       []FileCheckResult
	ValidationResults []ValidationResult
}

// NewReport creates a new report
func NewReport() *Report {
	return &Report{
		FileResults:       make([]FileCheckResult, 0),
		ValidationResults: make([]ValidationResult, 0),
	}
}

// AddFileResult adds a file check result
func (r *Report) AddFileResult(result FileCheckResult) {
	r.FileResults = append(r.FileResults, result)
}

// AddValidationResult adds a validation result
func (r *Report) AddValidationResult(result ValidationResult) {
	r.ValidationResults = append(r.ValidationResults, result)
}

// ReportSummary holds the summary statistics
type ReportSummary struct {
	FilesCreated     int
	FilesMissing     int
	ValidationsValid int
	ValidationErrors int
	Warnings         int
	HasErrors        bool
}

// Summary calculates the summary from all results
func (r *Report) Summary() ReportSummary {
	summary := ReportSummary{}

	for _, result := range r.FileResults {
		if result.Created {
			summary.FilesCreated++
		}
		if !result.Exists {
			summary.FilesMissing++
		}
		if result.Error != nil {
			summary.HasErrors = true
		}
	}

	for _, result := range r.ValidationResults {
		if result.Valid {
			summary.ValidationsValid++
		} else {
			summary.ValidationErrors++
			summary.HasErrors = true
		}
		summary.Warnings += len(result.Warnings)
	}

	return summary
}

// Err maps failed validations to an AppError. Configuration failures win
// over itinerary failures so the exit code points at the first thing to fix.
func (r *Report) Err() error {
	var configErr, tripErr []string
	for _, result := range r.ValidationResults {
		if result.Valid {
			continue
		}
		line := fmt.Sprintf("%s: %v", result.Name, result.Error)
		switch result.Kind {
		case KindConfig:
			configErr = append(configErr, line)
		default:
			tripErr = append(tripErr, line)
		}
	}

	switch {
	case len(configErr) > 0:
		return errors.New(errors.ErrCodeConfigInvalid, "configuration check failed").WithDetails(configErr)
	case len(tripErr) > 0:
		return errors.New(errors.ErrCodeTripInvalid, "itinerary check failed").WithDetails(tripErr)
	default:
		return nil
	}
}

// Print prints the final summary report
func (r *Report) Print(w io.Writer) {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))
	fmt.Fprintln(w, style.Render(strings.Repeat("─", 50)))

	summary := r.Summary()

	green := color.New(color.FgGreen, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	red := color.New(color.FgRed, color.Bold)

	switch {
	case summary.HasErrors:
		red.Fprint(w, "✗ Check completed")
	case summary.Warnings > 0 || summary.FilesMissing > 0:
		yellow.Fprint(w, "⚠ Check completed")
	default:
		green.Fprint(w, "✓ Check completed")
	}

	var details []string
	if summary.FilesCreated > 0 {
		details = append(details, fmt.Sprintf("%d file(s) created", summary.FilesCreated))
	}
	if summary.FilesMissing > 0 {
		details = append(details, fmt.Sprintf("%d file(s) missing", summary.FilesMissing))
	}
	if summary.ValidationErrors > 0 {
		details = append(details, fmt.Sprintf("%d validation error(s)", summary.ValidationErrors))
	}
	if summary.Warnings > 0 {
		details = append(details, fmt.Sprintf("%d warning(s)", summary.Warnings))
	}

	if len(details) > 0 {
		fmt.Fprintf(w, " (%s)\n", strings.Join(details, ", "))
	} else {
		fmt.Fprintln(w, " - All checks passed")
	}
}
