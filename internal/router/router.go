package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	appLogger "github.com/FACorreiaa/wonder-route/app/logger"
	"github.com/FACorreiaa/wonder-route/internal/api"
	"github.com/FACorreiaa/wonder-route/internal/api/itinerary"
)

// Config contains dependencies needed for the router setup
type Config struct {
	ItineraryHandler *itinerary.HandlerImpl
	Logger           *slog.Logger
	AllowedOrigins   []string
	RequestTimeout   time.Duration
	// RateLimitRequests per RateLimitWindow per client IP on the generate endpoints; 0 disables it.
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// SetupRouter builds the full HTTP handler, server-wide middleware included.
func SetupRouter(cfg *Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appLogger.StructuredLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(middleware.Compress(5, "application/json"))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{itinerary.PlanIDHeader},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any major browsers
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimitRequests > 0 {
			r.Use(httprate.Limit(cfg.RateLimitRequests, cfg.RateLimitWindow,
				httprate.WithKeyFuncs(httprate.KeyByRealIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					api.ErrorResponse(w, r, http.StatusTooManyRequests, "too many requests, slow down")
				}),
			))
		}

		r.Post("/generate-itinerary", cfg.ItineraryHandler.GenerateItinerary)
		r.Post("/generate-caption", cfg.ItineraryHandler.GenerateCaption)
		r.Post("/generate-trivia", cfg.ItineraryHandler.GenerateTrivia)
	})

	return otelhttp.NewHandler(r, "wonder-route")
}
