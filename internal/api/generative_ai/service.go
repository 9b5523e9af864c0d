package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

// ContentGenerator is the single upstream capability the planners need:
// send one prompt with a set of declared tools and get the final text back.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
}

var _ ContentGenerator = (*AIClient)(nil)

// Config holds what is needed to talk to the Gemini API. It is filled in by
// the composition root; this package never reads the environment.
type Config struct {
	APIKey      string
	Model       string
	Temperature *float32
}

type AIClient struct {
	client      *genai.Client
	model       string
	temperature *float32
	logger      *slog.Logger
}

func NewAIClient(ctx context.Context, cfg Config, logger *slog.Logger) (*AIClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &AIClient{
		client:      client,
		model:       model,
		temperature: cfg.Temperature,
		logger:      logger,
	}, nil
}

func (ai *AIClient) Model() string {
	return ai.model
}

// GenerateContent sends a single prompt and returns the response text. Any
// failure of the call itself is returned as a *ServiceError.
func (ai *AIClient) GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "GenerateContent", trace.WithAttributes(
		attribute.String("llm.model", ai.model),
		attribute.Int("llm.prompt_length", len(prompt)),
	))
	defer span.End()

	if config == nil {
		config = &genai.GenerateContentConfig{}
	}
	if config.Temperature == nil && ai.temperature != nil {
		config.Temperature = ai.temperature
	}
	span.SetAttributes(attribute.Int("llm.tools", len(config.Tools)))

	result, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(prompt), config)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generate content failed")
		ai.logger.ErrorContext(ctx, "Gemini request failed", slog.String("model", ai.model), slog.Any("error", err))
		return "", &ServiceError{Op: "generate content", Err: err}
	}
	if result == nil || len(result.Candidates) == 0 {
		span.SetStatus(codes.Error, "no candidates")
		return "", &ServiceError{Op: "generate content", Err: ErrEmptyResponse}
	}

	text := result.Text()
	span.SetAttributes(attribute.Int("llm.response_length", len(text)))
	span.SetStatus(codes.Ok, "content generated")
	ai.logger.DebugContext(ctx, "Gemini response received", slog.Int("length", len(text)))
	return text, nil
}

// IsServiceError reports whether err came from the upstream call itself.
func IsServiceError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se)
}
