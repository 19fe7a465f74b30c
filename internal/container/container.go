package container

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/FACorreiaa/wonder-route/config"
	generativeAI "github.com/FACorreiaa/wonder-route/internal/api/generative_ai"
	"github.com/FACorreiaa/wonder-route/internal/api/itinerary"
)

// Container holds all application dependencies
type Container struct {
	Config           *config.Config
	Logger           *slog.Logger
	ItineraryService *itinerary.ServiceImpl
	ItineraryHandler *itinerary.HandlerImpl
}

// NewContainer initializes and returns a new dependency container. A missing
// API key is not an error: the planner then runs on templates only.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	var generator generativeAI.TextGenerator
	client, err := generativeAI.NewAIClient(ctx, cfg.GenerativeAI.APIKey, cfg.GenerativeAI.Temperature, logger)
	switch {
	case errors.Is(err, generativeAI.ErrMissingAPIKey):
		logger.Warn("No generative AI API key configured, itineraries will use templates")
	case err != nil:
		return nil, fmt.Errorf("failed to create generative AI client: %w", err)
	default:
		generator = client
	}

	itineraryService := itinerary.NewItineraryService(generator, itinerary.Models{
		Itinerary:   cfg.GenerativeAI.ItineraryModel,
		Snippet:     cfg.GenerativeAI.SnippetModel,
		CallTimeout: modelCallTimeout(cfg),
	}, logger)

	itineraryHandler, err := itinerary.NewItineraryHandler(itineraryService, logger)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config:           cfg,
		Logger:           logger,
		ItineraryService: itineraryService,
		ItineraryHandler: itineraryHandler,
	}, nil
}

// modelCallTimeout keeps model calls inside the server request timeout, leaving
// headroom to write the template response.
func modelCallTimeout(cfg *config.Config) time.Duration {
	callTimeout := cfg.GenerativeAI.CallTimeout
	serverTimeout := cfg.Server.Timeout
	if serverTimeout <= 0 {
		return callTimeout
	}
	limit := serverTimeout * 9 / 10
	if callTimeout <= 0 || callTimeout > limit {
		return limit
	}
	return callTimeout
}
