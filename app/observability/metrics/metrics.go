package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	ItineraryRequestsTotal    metric.Int64Counter
	SnippetRequestsTotal      metric.Int64Counter
	LLMRequestDurationSeconds metric.Float64Histogram
	LLMRequestErrorsTotal     metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider, so call it after
// the provider has been installed.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("WonderRoute")
		var err error
		m := &AppMetrics{}

		m.ItineraryRequestsTotal, err = meter.Int64Counter(
			"itinerary_requests_total",
			metric.WithDescription("Resolved itineraries by source (model_json, model_text, fallback)"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_requests_total: %v", err)
		}

		m.SnippetRequestsTotal, err = meter.Int64Counter(
			"snippet_requests_total",
			metric.WithDescription("Caption and trivia requests by kind and source"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create snippet_requests_total: %v", err)
		}

		m.LLMRequestDurationSeconds, err = meter.Float64Histogram(
			"llm_request_duration_seconds",
			metric.WithDescription("Duration of generative model calls in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create llm_request_duration_seconds: %v", err)
		}

		m.LLMRequestErrorsTotal, err = meter.Int64Counter(
			"llm_request_errors_total",
			metric.WithDescription("Total number of failed generative model calls"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create llm_request_errors_total: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the global AppMetrics, initializing it against the current
// MeterProvider (a no-op one in tests) on first use.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}
