package itinerary

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/wonder-route/internal/types"
)

// MockService is a mock implementation of the Service interface
type MockService struct {
	mock.Mock
}

func (m *MockService) Resolve(ctx context.Context, req types.PlanningRequest) types.Itinerary {
	args := m.Called(ctx, req)
	return args.Get(0).(types.Itinerary)
}

func (m *MockService) CaptionFor(ctx context.Context, location, activity string) string {
	args := m.Called(ctx, location, activity)
	return args.String(0)
}

func (m *MockService) TriviaFor(ctx context.Context, location string) string {
	args := m.Called(ctx, location)
	return args.String(0)
}

func newTestHandler(t *testing.T, service Service) *HandlerImpl {
	t.Helper()
	handler, err := NewItineraryHandler(service, slog.Default())
	require.NoError(t, err)
	return handler
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestGenerateItineraryHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockService)
		handler := newTestHandler(t, mockService)

		body := `{
			"friends": [{"name": "Camden Town", "lat": 51.539, "lng": -0.1426}],
			"visits": [],
			"preferences": {"startTime": "10:00", "endTime": "16:00", "budget": "LOW",
				"travelMode": "public_transport", "interests": ["coffee", "Black History Month"]},
			"personas": [{"name": "Ada", "budget": "high", "energy": 7, "interests": ["art"]}]
		}`
		want := types.PlanningRequest{
			Friends: []types.NamedPoint{{Name: "Camden Town", Lat: 51.539, Lng: -0.1426}},
			Visits:  []types.NamedPoint{},
			Preferences: types.Preferences{
				StartTime:  "10:00",
				EndTime:    "16:00",
				Budget:     types.BudgetLow,
				TravelMode: types.TravelModeTransit,
				Interests:  types.NewInterests(types.InterestCoffee, types.InterestBlackHistoryMonth),
			},
			Personas: []types.Persona{{
				Name: "Ada", Budget: types.BudgetHigh, EnergyLevel: 7,
				Interests: types.NewInterests(types.InterestArt),
			}},
		}
		mockService.On("Resolve", mock.Anything, want).
			Return(types.NewTextItinerary("A day out")).Once()

		w := httptest.NewRecorder()
		handler.GenerateItinerary(w, postJSON("/api/v1/generate-itinerary", body))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		_, err := uuid.Parse(w.Header().Get(PlanIDHeader))
		assert.NoError(t, err)
		response := decodeBody(t, w)
		assert.Equal(t, "text", response["format"])
		assert.Equal(t, "A day out", response["body"])
		mockService.AssertExpectations(t)
	})

	t.Run("DefaultsApplied", func(t *testing.T) {
		mockService := new(MockService)
		handler := newTestHandler(t, mockService)

		mockService.On("Resolve", mock.Anything, mock.MatchedBy(func(req types.PlanningRequest) bool {
			p := req.Preferences
			return p.StartTime == types.DefaultStartTime && p.EndTime == types.DefaultEndTime &&
				p.Budget == types.BudgetMedium && p.TravelMode == types.TravelModeWalking
		})).Return(BuildFallbackItinerary(types.PlanningRequest{})).Once()

		w := httptest.NewRecorder()
		handler.GenerateItinerary(w, postJSON("/api/v1/generate-itinerary", `{"preferences": {}}`))

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeBody(t, w)
		assert.Equal(t, "json", response["format"])
		assert.Len(t, response["stops"], 4)
		mockService.AssertExpectations(t)
	})

	badBodies := []struct {
		name string
		body string
	}{
		{name: "InvalidJSON", body: `{"preferences": }`},
		{name: "EmptyBody", body: ``},
		{name: "MissingPreferences", body: `{"friends": []}`},
		{name: "UnknownBudget", body: `{"preferences": {"budget": "lavish"}}`},
		{name: "UnknownTravelMode", body: `{"preferences": {"travelMode": "hovercraft"}}`},
		{name: "BadClock", body: `{"preferences": {"startTime": "9am"}}`},
		{name: "UnknownKey", body: `{"preferences": {}, "hotel": true}`},
		{name: "UnknownInterest", body: `{"preferences": {"interests": ["skydiving"]}}`},
		{name: "EnergyOutOfRange", body: `{"preferences": {}, "personas": [{"energyLevel": 11}]}`},
		{name: "PointWithoutCoordinates", body: `{"preferences": {}, "visits": [{"name": "Soho"}]}`},
	}
	for _, tt := range badBodies {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			handler := newTestHandler(t, mockService)

			w := httptest.NewRecorder()
			handler.GenerateItinerary(w, postJSON("/api/v1/generate-itinerary", tt.body))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			response := decodeBody(t, w)
			assert.Equal(t, false, response["success"])
			assert.NotEmpty(t, response["error"])
			mockService.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
		})
	}
}

func TestGenerateCaptionHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockService)
		handler := newTestHandler(t, mockService)
		mockService.On("CaptionFor", mock.Anything, "Borough Market", "Market Lunch").
			Return("Borough it's good! #FoodieLondon").Once()

		w := httptest.NewRecorder()
		handler.GenerateCaption(w, postJSON("/api/v1/generate-caption",
			`{"location": "Borough Market", "activity": "Market Lunch"}`))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Borough it's good! #FoodieLondon", decodeBody(t, w)["caption"])
		mockService.AssertExpectations(t)
	})

	t.Run("MissingLocation", func(t *testing.T) {
		mockService := new(MockService)
		handler := newTestHandler(t, mockService)

		w := httptest.NewRecorder()
		handler.GenerateCaption(w, postJSON("/api/v1/generate-caption", `{"activity": "Market Lunch"}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "CaptionFor", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGenerateTriviaHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockService)
		handler := newTestHandler(t, mockService)
		mockService.On("TriviaFor", mock.Anything, "Tower Bridge").
			Return("An interesting fact about Tower Bridge is waiting to be discovered...").Once()

		w := httptest.NewRecorder()
		handler.GenerateTrivia(w, postJSON("/api/v1/generate-trivia", `{"location": " Tower Bridge "}`))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "An interesting fact about Tower Bridge is waiting to be discovered...", decodeBody(t, w)["trivia"])
		mockService.AssertExpectations(t)
	})

	t.Run("TrailingData", func(t *testing.T) {
		mockService := new(MockService)
		handler := newTestHandler(t, mockService)

		w := httptest.NewRecorder()
		handler.GenerateTrivia(w, postJSON("/api/v1/generate-trivia", `{"location": "Soho"} {}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "body must only contain a single JSON value", decodeBody(t, w)["error"])
	})
}
