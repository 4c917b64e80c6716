package check

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/tabi-shiori/shiori/internal/configfiles"
)

// FileCheckResult represents the result of a file check
type FileCheckResult struct {
	Path        string
	Exists      bool
	Created     bool
	Description string
	Error       error
}

// checkFiles checks the configuration file and the example trips directory
func (c *Checker) checkFiles() error {
	for _, result := range []FileCheckResult{c.checkConfigFile(), c.checkTripsDir()} {
		c.report.AddFileResult(result)
		if result.Error != nil {
			return result.Error
		}
	}
	return nil
}

// checkConfigFile prompts to create the configuration from the embedded example
func (c *Checker) checkConfigFile() FileCheckResult {
	result := FileCheckResult{
		Path:        c.configPath,
		Description: "Configuration file (server, maps, rendering, logging)",
	}

	if fileExists(c.configPath) {
		result.Exists = true
		printFileStatus(c.out, c.configPath, true)
		return result
	}
	printFileStatus(c.out, c.configPath, false)

	confirm, err := c.confirm(fmt.Sprintf("Create %s from template?", c.configPath))
	if err != nil {
		result.Error = fmt.Errorf("failed to get user confirmation: %w", err)
		return result
	}
	if !confirm {
		return result
	}

	if err := configfiles.WriteConfigExample(c.configPath); err != nil {
		result.Error = fmt.Errorf("failed to create file %s: %w", c.configPath, err)
		return result
	}

	result.Exists = true
	result.Created = true
	printFileCreated(c.out, c.configPath)
	return result
}

// checkTripsDir offers to copy the example trips when the directory has none
func (c *Checker) checkTripsDir() FileCheckResult {
	result := FileCheckResult{
		Path:        c.tripsDir,
		Description: "Example itinerary files",
	}

	if dirHasYAML(c.tripsDir) {
		result.Exists = true
		printFileStatus(c.out, c.tripsDir, true)
		return result
	}
	printFileStatus(c.out, c.tripsDir, false)

	confirm, err := c.confirm(fmt.Sprintf("Create example trips in %s?", c.tripsDir))
	if err != nil {
		result.Error = fmt.Errorf("failed to get user confirmation: %w", err)
		return result
	}
	if !confirm {
		return result
	}

	created, err := configfiles.InitTripExamples(c.tripsDir)
	if err != nil {
		result.Error = fmt.Errorf("failed to initialize example trips: %w", err)
		return result
	}

	result.Exists = true
	result.Created = created > 0
	color.New(color.FgGreen).Fprintf(c.out, "  ✓ Created %d example trip(s) in %s\n", created, c.tripsDir)
	return result
}

// printFileStatus prints the status of a file check
func printFileStatus(w io.Writer, path string, exists bool) {
	if exists {
		color.New(color.FgGreen).Fprintf(w, "  ✓ %s\n", path)
	} else {
		color.New(color.FgYellow).Fprintf(w, "  ⚠ %s does not exist\n", path)
	}
}

// printFileCreated prints a message when a file is created
func printFileCreated(w io.Writer, path string) {
	color.New(color.FgGreen).Fprintf(w, "  ✓ Created %s\n", path)
}
