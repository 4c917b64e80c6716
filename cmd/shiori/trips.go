package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tabi-shiori/shiori/internal/configfiles"
	"github.com/tabi-shiori/shiori/internal/itinerary"
)

func newTripsCmd(global *globalOptions) *cobra.Command {
	var examples bool

	cmd := &cobra.Command{
		Use:   "trips",
		Short: "List built-in trips",
		Long: `List the built-in trips with their title and number of days.
The configured default trip is marked with *.

With --examples, list the example trip files that 'shiori check' can create.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if examples {
				for _, name := range configfiles.ListTripExamples() {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			cfg, err := loadConfig(global)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, name := range itinerary.Names() {
				trip, err := itinerary.Lookup(name)
				if err != nil {
					return err
				}
				mark := " "
				if name == cfg.Render.DefaultTrip && cfg.Render.TripFile == "" {
					mark = "*"
				}
				fmt.Fprintf(tw, "%s %s\t%s\t%d day(s)\n", mark, name, trip.Title, len(trip.Days))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&examples, "examples", false, "list the embedded example trip files")
	return cmd
}
