package itinerary

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-day-planner/app/observability/metrics"
	generativeAI "github.com/FACorreiaa/go-day-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-day-planner/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service turns a selection of places into an ordered day plan.
type Service interface {
	GenerateItinerary(ctx context.Context, city string, places []types.Place, startTime, endTime string, pace types.Pace) []types.ItineraryItem
}

type ServiceImpl struct {
	logger   *slog.Logger
	aiClient generativeAI.ContentGenerator
}

func NewServiceImpl(aiClient generativeAI.ContentGenerator, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:   logger,
		aiClient: aiClient,
	}
}

// GenerateItinerary asks the model, grounded with Maps, to order and time the
// selected places. It never fails: if the request or the JSON parse fails the
// result comes from ScheduleFallback with the same places and start time.
func (s *ServiceImpl) GenerateItinerary(ctx context.Context, city string, places []types.Place, startTime, endTime string, pace types.Pace) []types.ItineraryItem {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GenerateItinerary", trace.WithAttributes(
		attribute.String("city.name", city),
		attribute.Int("places.count", len(places)),
		attribute.String("pace", string(pace)),
	))
	defer span.End()

	if strings.TrimSpace(startTime) == "" {
		startTime = types.DefaultStartTime
	}
	if pace == "" {
		pace = types.PaceBalanced
	}
	l := s.logger.With(slog.String("city", city), slog.String("start", startTime), slog.String("pace", string(pace)))

	if len(places) == 0 {
		l.WarnContext(ctx, "No places selected, returning empty itinerary")
		return []types.ItineraryItem{}
	}

	m := metrics.Get()
	prompt := getItineraryPrompt(city, places, startTime, endTime, pace)
	config := &genai.GenerateContentConfig{
		Tools: generativeAI.MapsTools(),
	}

	start := time.Now()
	text, err := s.aiClient.GenerateContent(ctx, prompt, config)
	m.LLMRequestDurationSeconds.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("pipeline", "itinerary")))
	if err != nil {
		l.ErrorContext(ctx, "Error generating itinerary, using fallback schedule", slog.Any("error", err))
		return s.fallback(ctx, span, places, startTime, "service_error", err)
	}

	items, err := parseItineraryResponse(text)
	if err != nil {
		l.ErrorContext(ctx, "Failed to parse itinerary JSON, using fallback schedule", slog.Any("error", err))
		m.LLMParseErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("pipeline", "itinerary")))
		return s.fallback(ctx, span, places, startTime, "parse_error", err)
	}
	if len(items) == 0 {
		l.WarnContext(ctx, "Gemini returned no itinerary items")
	}

	span.SetAttributes(attribute.Int("items.count", len(items)))
	span.SetStatus(codes.Ok, "itinerary generated")
	m.ItineraryRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("source", "model")))
	l.InfoContext(ctx, "Itinerary generated", slog.Int("items", len(items)))
	return items
}

func (s *ServiceImpl) fallback(ctx context.Context, span trace.Span, places []types.Place, startTime, reason string, cause error) []types.ItineraryItem {
	span.RecordError(cause)
	span.AddEvent("fallback schedule", trace.WithAttributes(attribute.String("reason", reason)))

	m := metrics.Get()
	m.ItineraryFallbacksTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
	m.ItineraryRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("source", "fallback")))

	items := ScheduleFallback(places, startTime)
	span.SetAttributes(attribute.Int("items.count", len(items)))
	span.SetStatus(codes.Ok, "itinerary generated by fallback")
	return items
}
