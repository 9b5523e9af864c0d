package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/go-day-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-day-planner/internal/types"
)

func newItineraryCmd(opts *rootOptions, load servicesLoader) *cobra.Command {
	var (
		selection  types.UserSelection
		pace       string
		placesFile string
	)

	cmd := &cobra.Command{
		Use:   "itinerary",
		Short: "Plan a one-day itinerary from discovered places",
		Long: `Turn a list of places into a timed one-day itinerary.

--places-file takes either the JSON output of "planner discover" or a plain
JSON array of places. Use "-" to read from stdin. When the model cannot
produce an itinerary a simple sequential schedule is printed instead.`,
		Example: `  planner discover --city Lisbon --interests food -o json | planner itinerary --city Lisbon --places-file -
  planner itinerary --city Lisbon --places-file places.json --select place-0,place-3 --start 10:00 --pace chill`,
		RunE: func(cmd *cobra.Command, args []string) error {
			city := strings.TrimSpace(selection.City)
			if city == "" {
				return errors.New("--city is required")
			}
			p, err := types.ParsePace(pace)
			if err != nil {
				return err
			}
			if placesFile == "" {
				return errors.New("--places-file is required")
			}
			places, err := readPlaces(cmd.InOrStdin(), placesFile)
			if err != nil {
				return err
			}
			selected := types.SelectPlaces(places, selection.SelectedIDs)
			if len(selected) == 0 {
				return errors.New("no places selected")
			}

			ctx, cancel := opts.withTimeout(cmd)
			defer cancel()

			svc, err := load(ctx)
			if err != nil {
				return err
			}
			items := svc.Itinerary.GenerateItinerary(ctx, city, selected, selection.StartTime, selection.EndTime, p)

			resp := itinerary.Response{
				Items:       items,
				Directions:  itinerary.BuildDirections(items),
				MapEmbedURL: itinerary.MapEmbedURL(svc.MapsAPIKey, city, items),
			}
			if opts.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			return printItinerary(cmd.OutOrStdout(), city, resp)
		},
	}

	cmd.Flags().StringVar(&selection.City, "city", "", "City the places are in (required)")
	cmd.Flags().StringVar(&placesFile, "places-file", "", `JSON file with places, or "-" for stdin (required)`)
	cmd.Flags().StringSliceVar(&selection.SelectedIDs, "select", nil, "Place IDs to keep (default: all)")
	cmd.Flags().StringVar(&selection.StartTime, "start", types.DefaultStartTime, "Start time, HH:MM")
	cmd.Flags().StringVar(&selection.EndTime, "end", "", "Latest end time, HH:MM")
	cmd.Flags().StringVar(&pace, "pace", string(types.PaceBalanced), "chill, balanced or packed")
	return cmd
}

// readPlaces loads places from a discovery result object or a bare array.
func readPlaces(stdin io.Reader, path string) ([]types.Place, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read places: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var places []types.Place
		if err := json.Unmarshal(data, &places); err != nil {
			return nil, fmt.Errorf("failed to decode places: %w", err)
		}
		return places, nil
	}

	var result types.DiscoveryResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode places: %w", err)
	}
	return result.Places, nil
}

func printItinerary(w io.Writer, city string, resp itinerary.Response) error {
	fmt.Fprintf(w, "Your day in %s\n\n", city)
	if len(resp.Items) == 0 {
		fmt.Fprintln(w, "No itinerary could be planned.")
		return nil
	}

	links := make(map[string]string, len(resp.Directions))
	for _, d := range resp.Directions {
		links[d.FromID] = d.URL
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, item := range resp.Items {
		fmt.Fprintf(tw, "%s-%s\t%s\t%s\n", item.StartTime, item.EndTime, item.PlaceName, item.Category)
		if leg := item.TransportToNext; leg != nil {
			line := fmt.Sprintf("  ↓ %s, %d min", leg.Type, leg.DurationMinutes)
			if leg.Details != "" {
				line += ": " + leg.Details
			}
			fmt.Fprintf(tw, "\t%s\t\n", line)
			if url, ok := links[item.ID]; ok {
				fmt.Fprintf(tw, "\t    %s\t\n", url)
			}
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if resp.MapEmbedURL != "" {
		fmt.Fprintf(w, "\nMap: %s\n", resp.MapEmbedURL)
	}
	return nil
}
