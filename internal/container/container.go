package container

import (
	"context"
	"log/slog"

	"github.com/FACorreiaa/go-day-planner/config"
	generativeAI "github.com/FACorreiaa/go-day-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-day-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-day-planner/internal/api/poi"
	"github.com/FACorreiaa/go-day-planner/internal/router"
)

// Container holds all application dependencies
type Container struct {
	Config           *config.Config
	Logger           *slog.Logger
	AIClient         *generativeAI.AIClient
	POIService       poi.Service
	ItineraryService itinerary.Service
	POIHandler       *poi.HandlerImpl
	ItineraryHandler *itinerary.HandlerImpl
}

// NewContainer builds the AI client from cfg and wires both pipelines on top
// of it. Credentials come from cfg only.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	aiConfig := generativeAI.Config{
		APIKey: cfg.GenAI.APIKey,
		Model:  cfg.GenAI.Model,
	}
	if cfg.GenAI.Temperature > 0 {
		temperature := cfg.GenAI.Temperature
		aiConfig.Temperature = &temperature
	}

	aiClient, err := generativeAI.NewAIClient(ctx, aiConfig, logger)
	if err != nil {
		logger.Error("Failed to initialize AI client", slog.Any("error", err))
		return nil, err
	}
	logger.Info("AI client initialized", slog.String("model", aiClient.Model()))

	poiService := poi.NewServiceImpl(aiClient, logger)
	itineraryService := itinerary.NewServiceImpl(aiClient, logger)

	return &Container{
		Config:           cfg,
		Logger:           logger,
		AIClient:         aiClient,
		POIService:       poiService,
		ItineraryService: itineraryService,
		POIHandler:       poi.NewHandlerImpl(poiService, logger),
		ItineraryHandler: itinerary.NewHandlerImpl(itineraryService, cfg.Maps.APIKey, logger),
	}, nil
}

// RouterConfig returns the handlers the HTTP router mounts.
func (c *Container) RouterConfig() *router.Config {
	return &router.Config{
		POIHandler:       c.POIHandler,
		ItineraryHandler: c.ItineraryHandler,
	}
}
