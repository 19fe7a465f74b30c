package itinerary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/wonder-route/app/observability/metrics"
	generativeAI "github.com/FACorreiaa/wonder-route/internal/api/generative_ai"
	"github.com/FACorreiaa/wonder-route/internal/types"
)

const (
	sourceFallback  = "fallback"
	sourceModelJSON = "model_json"
	sourceModelText = "model_text"
	sourceModel     = "model"
)

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service is the planner core the presentation layer calls. None of its methods
// fail: every error path degrades to a usable result.
type Service interface {
	Resolve(ctx context.Context, req types.PlanningRequest) types.Itinerary
	CaptionFor(ctx context.Context, location, activity string) string
	TriviaFor(ctx context.Context, location string) string
}

// Models selects the model used for each kind of call.
type Models struct {
	Itinerary string // favours quality over latency
	Snippet   string // captions and trivia
	// CallTimeout bounds each model call; zero leaves only the caller's deadline.
	CallTimeout time.Duration
}

type ServiceImpl struct {
	logger    *slog.Logger
	generator generativeAI.TextGenerator
	models    Models
	now       func() time.Time
}

// NewItineraryService creates the planner service. A nil generator means no
// credential is configured and every call is served from templates.
func NewItineraryService(generator generativeAI.TextGenerator, models Models, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:    logger,
		generator: generator,
		models:    models,
		now:       time.Now,
	}
}

func (s *ServiceImpl) Resolve(ctx context.Context, req types.PlanningRequest) types.Itinerary {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Resolve", trace.WithAttributes(
		attribute.Int("request.friends", len(req.Friends)),
		attribute.Int("request.visits", len(req.Visits)),
		attribute.Int("request.personas", len(req.Personas)),
		attribute.String("request.budget", string(req.Preferences.Budget)),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Resolve"))
	counter := metrics.Get().ItineraryRequestsTotal
	record := func(source string) {
		counter.Add(ctx, 1, metric.WithAttributes(attribute.String("source", source)))
		span.SetAttributes(attribute.String("itinerary.source", source))
	}

	if s.generator == nil {
		l.DebugContext(ctx, "No generative AI credential configured, using template itinerary")
		record(sourceFallback)
		return BuildFallbackItinerary(req)
	}

	prompt := BuildItineraryPrompt(req, s.now())
	callCtx, cancel := s.callContext(ctx)
	responseText, err := s.generator.GenerateText(callCtx, s.models.Itinerary, prompt)
	cancel()
	if err != nil {
		l.WarnContext(ctx, "Itinerary generation failed, using template itinerary",
			slog.String("model", s.models.Itinerary), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "model call failed")
		record(sourceFallback)
		return BuildFallbackItinerary(req)
	}

	itinerary, parseErr := ParseModelResponse(responseText)
	if parseErr != nil {
		l.InfoContext(ctx, "Model reply had no usable JSON itinerary, returning text",
			slog.Any("reason", parseErr), slog.Int("response_length", len(responseText)))
		record(sourceModelText)
		return itinerary
	}

	l.InfoContext(ctx, "Itinerary generated",
		slog.Int("stops", len(itinerary.Plan.Stops)),
		slog.String("total_cost", itinerary.Plan.TotalCost))
	span.SetStatus(codes.Ok, "itinerary generated")
	record(sourceModelJSON)
	return itinerary
}

func (s *ServiceImpl) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.models.CallTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.models.CallTimeout)
}

func captionFallback(location string) string {
	return fmt.Sprintf("Exploring the wonders of %s! #LondonCalling", location)
}

func triviaFallback(location string) string {
	return fmt.Sprintf("An interesting fact about %s is waiting to be discovered...", location)
}

func (s *ServiceImpl) CaptionFor(ctx context.Context, location, activity string) string {
	return s.snippet(ctx, "caption", BuildCaptionPrompt(location, activity), captionFallback(location))
}

func (s *ServiceImpl) TriviaFor(ctx context.Context, location string) string {
	return s.snippet(ctx, "trivia", BuildTriviaPrompt(location), triviaFallback(location))
}

// snippet runs a one-shot prompt and returns fallback when no usable text comes back.
func (s *ServiceImpl) snippet(ctx context.Context, kind, prompt, fallback string) string {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Snippet", trace.WithAttributes(
		attribute.String("snippet.kind", kind),
	))
	defer span.End()

	counter := metrics.Get().SnippetRequestsTotal
	record := func(source string) {
		counter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("kind", kind),
			attribute.String("source", source),
		))
	}

	if s.generator == nil {
		record(sourceFallback)
		return fallback
	}

	callCtx, cancel := s.callContext(ctx)
	text, err := s.generator.GenerateText(callCtx, s.models.Snippet, prompt)
	cancel()
	text = strings.TrimSpace(text)
	if err != nil || text == "" {
		if err != nil {
			s.logger.WarnContext(ctx, "Snippet generation failed, using template",
				slog.String("kind", kind), slog.Any("error", err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "model call failed")
		}
		record(sourceFallback)
		return fallback
	}

	record(sourceModel)
	return text
}
