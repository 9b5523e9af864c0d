package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/go-day-planner/internal/types"
)

func newDiscoverCmd(opts *rootOptions, load servicesLoader) *cobra.Command {
	var (
		city      string
		interests []string
	)

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List places worth visiting in a city",
		Long: `Ask the model for places in a city matching a set of interests.

Use --output json to feed the result into "planner itinerary --places-file -".`,
		Example: `  planner discover --city Lisbon --interests history,food
  planner discover --city Kyoto --interests nature --output json > places.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			city = strings.TrimSpace(city)
			if city == "" {
				return errors.New("--city is required")
			}
			interests = types.CleanInterests(interests)
			if len(interests) == 0 {
				return errors.New("at least one --interests value is required")
			}

			ctx, cancel := opts.withTimeout(cmd)
			defer cancel()

			svc, err := load(ctx)
			if err != nil {
				return err
			}
			result, err := svc.POI.DiscoverPlaces(ctx, city, interests)
			if err != nil {
				return fmt.Errorf("could not fetch places: %w", err)
			}

			if opts.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			return printDiscovery(cmd.OutOrStdout(), city, result)
		},
	}

	cmd.Flags().StringVar(&city, "city", "", "City to explore (required)")
	cmd.Flags().StringSliceVar(&interests, "interests", nil, "Comma separated interest tags, e.g. history,food")
	return cmd
}

func printDiscovery(w io.Writer, city string, result *types.DiscoveryResult) error {
	fmt.Fprintf(w, "%s\n%s\n\n", city, result.Insight)
	if len(result.Places) == 0 {
		fmt.Fprintln(w, "No places found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tRATING\tAREA")
	for _, p := range result.Places {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f (%d)\t%s\n", p.ID, p.Name, p.Category, p.Rating, p.ReviewCount, p.ShortAddress())
	}
	return tw.Flush()
}
