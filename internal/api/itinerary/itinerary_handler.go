package itinerary

import (
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/wonder-route/internal/api"
	"github.com/FACorreiaa/wonder-route/internal/types"
)

//go:embed planning_request.schema.json
var planningRequestSchemaJSON []byte

// PlanIDHeader carries the identifier logged with each generated itinerary.
const PlanIDHeader = "X-Plan-ID"

type HandlerImpl struct {
	service Service
	schema  *gojsonschema.Schema
	logger  *slog.Logger
}

// LoadPlanningRequestSchema compiles the embedded request schema.
func LoadPlanningRequestSchema() (*gojsonschema.Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(planningRequestSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to compile planning request schema: %w", err)
	}
	return schema, nil
}

func NewItineraryHandler(service Service, logger *slog.Logger) (*HandlerImpl, error) {
	schema, err := LoadPlanningRequestSchema()
	if err != nil {
		return nil, err
	}
	return &HandlerImpl{
		service: service,
		schema:  schema,
		logger:  logger,
	}, nil
}

// GenerateItinerary validates a planning request and always answers 200 with an itinerary.
func (h *HandlerImpl) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GenerateItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/generate-itinerary"),
	))
	defer span.End()

	planID := uuid.New()
	span.SetAttributes(attribute.String("plan.id", planID.String()))
	l := h.logger.With(slog.String("handler", "GenerateItinerary"), slog.String("planID", planID.String()))
	l.DebugContext(ctx, "Generate itinerary handler invoked")

	var req types.PlanningRequest
	if err := api.DecodeValidatedJSONBody(w, r, h.schema, &req); err != nil {
		l.WarnContext(ctx, "Invalid planning request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	itinerary := h.service.Resolve(ctx, req.WithDefaults())

	l.InfoContext(ctx, "Itinerary ready", slog.String("format", string(itinerary.Format)))
	w.Header().Set(PlanIDHeader, planID.String())
	api.WriteJSONResponse(w, r, http.StatusOK, itinerary)
}

func (h *HandlerImpl) GenerateCaption(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GenerateCaption", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/generate-caption"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GenerateCaption"))

	var req types.CaptionRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid caption request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	location := strings.TrimSpace(req.Location)
	if location == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "location is required")
		return
	}

	caption := h.service.CaptionFor(ctx, location, strings.TrimSpace(req.Activity))
	api.WriteJSONResponse(w, r, http.StatusOK, types.CaptionResponse{Caption: caption})
}

func (h *HandlerImpl) GenerateTrivia(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GenerateTrivia", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/generate-trivia"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GenerateTrivia"))

	var req types.TriviaRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid trivia request", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	location := strings.TrimSpace(req.Location)
	if location == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "location is required")
		return
	}

	trivia := h.service.TriviaFor(ctx, location)
	api.WriteJSONResponse(w, r, http.StatusOK, types.TriviaResponse{Trivia: trivia})
}
