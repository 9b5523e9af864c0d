package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	DiscoveryRequestsTotal    metric.Int64Counter
	ItineraryRequestsTotal    metric.Int64Counter
	ItineraryFallbacksTotal   metric.Int64Counter
	LLMParseErrorsTotal       metric.Int64Counter
	LLMRequestDurationSeconds metric.Float64Histogram
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the metric instruments once, from the globally
// configured MeterProvider. Call it after the provider is installed.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("go-day-planner")
		var err error
		m := &AppMetrics{}

		m.DiscoveryRequestsTotal, err = meter.Int64Counter(
			"discovery_requests_total",
			metric.WithDescription("Total number of place discovery requests, by outcome"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create discovery_requests_total: %v", err)
		}

		m.ItineraryRequestsTotal, err = meter.Int64Counter(
			"itinerary_requests_total",
			metric.WithDescription("Total number of itinerary generation requests, by source"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_requests_total: %v", err)
		}

		m.ItineraryFallbacksTotal, err = meter.Int64Counter(
			"itinerary_fallbacks_total",
			metric.WithDescription("Itineraries served by the local fallback scheduler"),
			metric.WithUnit("{itinerary}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_fallbacks_total: %v", err)
		}

		m.LLMParseErrorsTotal, err = meter.Int64Counter(
			"llm_parse_errors_total",
			metric.WithDescription("Model responses that were not valid JSON"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create llm_parse_errors_total: %v", err)
		}

		m.LLMRequestDurationSeconds, err = meter.Float64Histogram(
			"llm_request_duration_seconds",
			metric.WithDescription("Duration of generative AI requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create llm_request_duration_seconds: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the AppMetrics instance, initializing it against the current
// global MeterProvider on first use.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}
