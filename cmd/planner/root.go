package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	appLogger "github.com/FACorreiaa/go-day-planner/app/logger"
	"github.com/FACorreiaa/go-day-planner/config"
	"github.com/FACorreiaa/go-day-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-day-planner/internal/api/poi"
	"github.com/FACorreiaa/go-day-planner/internal/container"
)

const (
	outputJSON = "json"
	outputText = "text"
)

// services is what the subcommands need from the application.
type services struct {
	POI        poi.Service
	Itinerary  itinerary.Service
	MapsAPIKey string
}

type servicesLoader func(ctx context.Context) (*services, error)

// loadServices builds the real services from config and the environment.
// Logs go to stderr so stdout stays machine readable.
func loadServices(ctx context.Context) (*services, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}
	cfg, err := config.InitConfig()
	if err != nil {
		return nil, fmt.Errorf("error initializing config: %w", err)
	}
	logger := appLogger.New(cfg.Mode, os.Stderr)
	c, err := container.NewContainer(ctx, &cfg, logger)
	if err != nil {
		return nil, err
	}
	return &services{
		POI:        c.POIService,
		Itinerary:  c.ItineraryService,
		MapsAPIKey: cfg.Maps.APIKey,
	}, nil
}

type rootOptions struct {
	output  string
	timeout time.Duration
}

func newRootCmd(load servicesLoader) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "planner",
		Short: "Discover places and plan a one-day itinerary",
		Long: `planner asks Gemini for places worth visiting in a city and turns a
selection of them into a timed one-day itinerary.

Set GOOGLE_GEMINI_API_KEY (or API_KEY) before running. GOOGLE_MAPS_API_KEY
is optional and only adds a map embed URL to itinerary output.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != outputJSON && opts.output != outputText {
				return fmt.Errorf("invalid --output %q (want %s or %s)", opts.output, outputJSON, outputText)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", outputText, "Output format: text or json")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 2*time.Minute, "Operation timeout")

	rootCmd.AddCommand(newDiscoverCmd(opts, load))
	rootCmd.AddCommand(newItineraryCmd(opts, load))
	return rootCmd
}

func (o *rootOptions) withTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, o.timeout)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
