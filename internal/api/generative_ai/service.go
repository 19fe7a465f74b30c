package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/wonder-route/app/observability/metrics"
)

var (
	// ErrMissingAPIKey is returned when no Gemini credential is configured.
	ErrMissingAPIKey = errors.New("GOOGLE_GEMINI_API_KEY is not set")
	// ErrEmptyResponse is returned for a reply with no text. It is a call failure,
	// so callers serve their template instead of an empty text itinerary.
	ErrEmptyResponse = errors.New("model returned no text")
)

// TextGenerator is the single outbound operation the planner needs from a model.
type TextGenerator interface {
	GenerateText(ctx context.Context, modelID, prompt string) (string, error)
}

var _ TextGenerator = (*AIClient)(nil)

type AIClient struct {
	client *genai.Client
	config *genai.GenerateContentConfig
	logger *slog.Logger
}

func NewAIClient(ctx context.Context, apiKey string, temperature float32, logger *slog.Logger) (*AIClient, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "NewAIClient")
	defer span.End()

	if apiKey == "" {
		span.SetStatus(codes.Error, "API key not set")
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create Gemini client")
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	span.SetStatus(codes.Ok, "AI client created successfully")
	return &AIClient{
		client: client,
		config: &genai.GenerateContentConfig{Temperature: genai.Ptr(temperature)},
		logger: logger,
	}, nil
}

// GenerateText sends a single-turn prompt to modelID and returns the reply text.
func (ai *AIClient) GenerateText(ctx context.Context, modelID, prompt string) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "GenerateText", trace.WithAttributes(
		attribute.Int("prompt.length", len(prompt)),
		attribute.String("model", modelID),
	))
	defer span.End()

	m := metrics.Get()
	modelAttr := metric.WithAttributes(attribute.String("model", modelID))

	start := time.Now()
	result, err := ai.client.Models.GenerateContent(ctx, modelID, genai.Text(prompt), ai.config)
	m.LLMRequestDurationSeconds.Record(ctx, time.Since(start).Seconds(), modelAttr)
	if err != nil {
		m.LLMRequestErrorsTotal.Add(ctx, 1, modelAttr)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to generate content")
		return "", fmt.Errorf("failed to generate content with %s: %w", modelID, err)
	}

	responseText := result.Text()
	if responseText == "" {
		m.LLMRequestErrorsTotal.Add(ctx, 1, modelAttr)
		span.SetStatus(codes.Error, "Empty response from AI")
		return "", ErrEmptyResponse
	}

	ai.logger.DebugContext(ctx, "Model call completed",
		slog.String("model", modelID),
		slog.Int("response_length", len(responseText)),
		slog.Duration("latency", time.Since(start)))
	span.SetAttributes(attribute.Int("response.length", len(responseText)))
	span.SetStatus(codes.Ok, "Content generated successfully")
	return responseText, nil
}
