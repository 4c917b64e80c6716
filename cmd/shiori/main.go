// Package main is the entry point for the Shiori application.
// Shiori renders a static travel itinerary as HTML, Markdown, JSON, text or PDF.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tabi-shiori/shiori/consts"
	"github.com/tabi-shiori/shiori/pkg/errors"
)

// Build information - set via ldflags during build
// These variables are linked to consts package for global access
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// init synchronizes build info to consts package for global access
func init() {
	consts.Version = Version
	consts.BuildTime = BuildTime
	consts.GitCommit = GitCommit
}

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	configPath string
	envFile    string
}

// newRootCmd builds the command tree
func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "shiori",
		Short: "Shiori - static travel itinerary renderer",
		Long: `Shiori renders a travel itinerary (day cards with a timeline and an optional
route map, a budget breakdown and notes) as a self-contained document.

Render a document:
  shiori render --format html
  shiori render --trip ehime-route --format pdf --output plan.pdf

Serve the page over HTTP:
  shiori serve`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Disable auto-generated completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Global flags
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file path (default: "+defaultConfigHint+")")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "dotenv file loaded before the config (default: .env)")

	rootCmd.AddCommand(
		newRenderCmd(opts),
		newServeCmd(opts),
		newCheckCmd(opts),
		newTripsCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", consts.ProjectName, consts.Version)
			fmt.Fprintf(out, "  Build Time: %s\n", consts.BuildTime)
			fmt.Fprintf(out, "  Git Commit: %s\n", consts.GitCommit)
		},
	}
}

func main() {
	os.Exit(execute(newRootCmd(), os.Stderr))
}

// execute runs cmd and returns the process exit code
func execute(cmd *cobra.Command, stderr io.Writer) int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitCode(err)
}

// exitCode maps an error to the process exit code
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr.ExitCode()
	}
	return 1
}
