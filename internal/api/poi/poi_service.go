package poi

import (
	"context"
	"errors"
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

// Service discovers candidate places for a city and a set of interests.
type Service interface {
	DiscoverPlaces(ctx context.Context, city string, interests []string) (*types.DiscoveryResult, error)
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

// DiscoverPlaces asks the model, grounded with Maps and Search, for ranked
// places and a city insight. Upstream failures come back as
// *generativeAI.ServiceError and malformed output as *generativeAI.ParseError;
// neither is retried.
func (s *ServiceImpl) DiscoverPlaces(ctx context.Context, city string, interests []string) (*types.DiscoveryResult, error) {
	ctx, span := otel.Tracer("POIService").Start(ctx, "DiscoverPlaces", trace.WithAttributes(
		attribute.String("city.name", city),
		attribute.StringSlice("interests", interests),
	))
	defer span.End()

	l := s.logger.With(slog.String("city", city))
	l.InfoContext(ctx, "Fetching places and insight", slog.String("interests", strings.Join(interests, ", ")))

	prompt := getDiscoveryPrompt(city, interests)
	config := &genai.GenerateContentConfig{
		Tools: generativeAI.MapsAndSearchTools(),
	}

	m := metrics.Get()
	start := time.Now()
	text, err := s.aiClient.GenerateContent(ctx, prompt, config)
	m.LLMRequestDurationSeconds.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("pipeline", "discovery")))
	if err != nil {
		var se *generativeAI.ServiceError
		if !errors.As(err, &se) {
			err = &generativeAI.ServiceError{Op: "discover places", Err: err}
		}
		l.ErrorContext(ctx, "Error fetching places", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "upstream request failed")
		m.DiscoveryRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "service_error")))
		return nil, err
	}
	l.DebugContext(ctx, "Raw Gemini response (places)", slog.String("response", text))

	result, err := parseDiscoveryResponse(city, text)
	if err != nil {
		l.ErrorContext(ctx, "Failed to parse JSON from Gemini", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid JSON response")
		m.LLMParseErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("pipeline", "discovery")))
		m.DiscoveryRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "parse_error")))
		return nil, err
	}
	if len(result.Places) == 0 {
		l.WarnContext(ctx, "Gemini returned no usable places")
	}

	span.SetAttributes(attribute.Int("places.count", len(result.Places)))
	span.SetStatus(codes.Ok, "places discovered")
	m.DiscoveryRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "ok")))
	l.InfoContext(ctx, "Places discovered", slog.Int("count", len(result.Places)))
	return result, nil
}
