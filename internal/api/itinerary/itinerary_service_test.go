package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	generativeAI "github.com/FACorreiaa/wonder-route/internal/api/generative_ai"
	"github.com/FACorreiaa/wonder-route/internal/types"
)

// MockTextGenerator is a mock implementation of generativeAI.TextGenerator
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) GenerateText(ctx context.Context, modelID, prompt string) (string, error) {
	args := m.Called(ctx, modelID, prompt)
	return args.String(0), args.Error(1)
}

var testModels = Models{Itinerary: "itinerary-model", Snippet: "snippet-model"}

func newTestService(generator *MockTextGenerator) *ServiceImpl {
	var service *ServiceImpl
	if generator == nil {
		service = NewItineraryService(nil, testModels, slog.Default())
	} else {
		service = NewItineraryService(generator, testModels, slog.Default())
	}
	service.now = func() time.Time { return promptDay }
	return service
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	req := samplePlanningRequest()
	expectedPrompt := BuildItineraryPrompt(req, promptDay)

	t.Run("StructuredReply", func(t *testing.T) {
		generator := new(MockTextGenerator)
		generator.On("GenerateText", mock.Anything, "itinerary-model", expectedPrompt).
			Return(modelPlanReply, nil).Once()

		itinerary := newTestService(generator).Resolve(ctx, req)

		require.Equal(t, types.FormatJSON, itinerary.Format)
		assert.Equal(t, "King's Cross", itinerary.Plan.MeetingPoint.Name)

		// the block survives a round trip through the wire shape
		block, err := extractJSONBlock(modelPlanReply)
		require.NoError(t, err)
		var want, got map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(block), &want))
		encoded, err := json.Marshal(itinerary)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(encoded, &got))
		assert.Equal(t, "json", got["format"])
		delete(got, "format")
		assert.Equal(t, want, got)

		generator.AssertExpectations(t)
	})

	t.Run("LooselyTypedReplyStaysStructured", func(t *testing.T) {
		reply := "```json\n" + `{"stops": [{"time": "10:00", "location": "Sky Garden", "cost": 5, "caption": "Up in the clouds"}]}` + "\n```"
		generator := new(MockTextGenerator)
		generator.On("GenerateText", mock.Anything, "itinerary-model", expectedPrompt).Return(reply, nil).Once()

		itinerary := newTestService(generator).Resolve(ctx, req)

		require.Equal(t, types.FormatJSON, itinerary.Format)
		encoded, err := json.Marshal(itinerary)
		require.NoError(t, err)
		assert.JSONEq(t, `{"format": "json",
			"stops": [{"time": "10:00", "location": "Sky Garden", "cost": 5, "caption": "Up in the clouds"}]}`, string(encoded))
		generator.AssertExpectations(t)
	})

	t.Run("ProseReply", func(t *testing.T) {
		prose := "Meet at Trafalgar Square, then wander along the South Bank."
		generator := new(MockTextGenerator)
		generator.On("GenerateText", mock.Anything, "itinerary-model", expectedPrompt).
			Return(prose, nil).Once()

		itinerary := newTestService(generator).Resolve(ctx, req)

		assert.Equal(t, types.NewTextItinerary(prose), itinerary)
		generator.AssertExpectations(t)
	})

	t.Run("CallFailureFallsBack", func(t *testing.T) {
		generator := new(MockTextGenerator)
		generator.On("GenerateText", mock.Anything, "itinerary-model", mock.Anything).
			Return("", errors.New("503 service unavailable")).Once()

		itinerary := newTestService(generator).Resolve(ctx, req)

		assert.Equal(t, BuildFallbackItinerary(req), itinerary)
		generator.AssertExpectations(t)
	})

	t.Run("EmptyReplyFallsBack", func(t *testing.T) {
		generator := new(MockTextGenerator)
		generator.On("GenerateText", mock.Anything, "itinerary-model", mock.Anything).
			Return("", generativeAI.ErrEmptyResponse).Once()

		itinerary := newTestService(generator).Resolve(ctx, req)

		assert.Equal(t, BuildFallbackItinerary(req), itinerary)
		generator.AssertExpectations(t)
	})

	t.Run("CancelledContextFallsBack", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		generator := new(MockTextGenerator)
		generator.On("GenerateText", mock.Anything, "itinerary-model", mock.Anything).
			Return("", context.Canceled).Once()

		itinerary := newTestService(generator).Resolve(cancelled, req)

		assert.Equal(t, BuildFallbackItinerary(req), itinerary)
	})

	t.Run("SlowModelFallsBackWithinCallTimeout", func(t *testing.T) {
		generator := new(MockTextGenerator)
		generator.On("GenerateText", mock.Anything, "itinerary-model", mock.Anything).
			Run(func(args mock.Arguments) {
				callCtx := args.Get(0).(context.Context)
				_, hasDeadline := callCtx.Deadline()
				assert.True(t, hasDeadline)
				<-callCtx.Done()
			}).
			Return("", context.DeadlineExceeded).Once()
		service := newTestService(generator)
		service.models.CallTimeout = 20 * time.Millisecond

		start := time.Now()
		itinerary := service.Resolve(ctx, req)

		assert.Less(t, time.Since(start), 5*time.Second)
		assert.Equal(t, BuildFallbackItinerary(req), itinerary)
		assert.NoError(t, ctx.Err())
		generator.AssertExpectations(t)
	})

	t.Run("NoCredentialFallsBack", func(t *testing.T) {
		itinerary := newTestService(nil).Resolve(ctx, req)

		assert.Equal(t, BuildFallbackItinerary(req), itinerary)
	})
}

func TestCaptionFor(t *testing.T) {
	ctx := context.Background()
	prompt := BuildCaptionPrompt("Borough Market", "Market Lunch")

	t.Run("ModelCaption", func(t *testing.T) {
		generator := new(MockTextGenerator)
		generator.On("GenerateText", mock.Anything, "snippet-model", prompt).
			Return("  Borough it's good! #FoodieLondon\n", nil).Once()

		caption := newTestService(generator).CaptionFor(ctx, "Borough Market", "Market Lunch")

		assert.Equal(t, "Borough it's good! #FoodieLondon", caption)
		generator.AssertExpectations(t)
	})

	t.Run("BlankReplyFallsBack", func(t *testing.T) {
		generator := new(MockTextGenerator)
		generator.On("GenerateText", mock.Anything, "snippet-model", prompt).Return("   ", nil).Once()

		caption := newTestService(generator).CaptionFor(ctx, "Borough Market", "Market Lunch")

		assert.Equal(t, "Exploring the wonders of Borough Market! #LondonCalling", caption)
	})

	t.Run("NoCredentialFallsBack", func(t *testing.T) {
		caption := newTestService(nil).CaptionFor(ctx, "Borough Market", "Market Lunch")

		assert.Equal(t, "Exploring the wonders of Borough Market! #LondonCalling", caption)
	})
}

func TestTriviaFor(t *testing.T) {
	ctx := context.Background()

	t.Run("ModelTrivia", func(t *testing.T) {
		generator := new(MockTextGenerator)
		generator.On("GenerateText", mock.Anything, "snippet-model", BuildTriviaPrompt("Tower Bridge")).
			Return("Its bascules once lifted 50 times a day.", nil).Once()

		trivia := newTestService(generator).TriviaFor(ctx, "Tower Bridge")

		assert.Equal(t, "Its bascules once lifted 50 times a day.", trivia)
		generator.AssertExpectations(t)
	})

	t.Run("CallFailureFallsBack", func(t *testing.T) {
		generator := new(MockTextGenerator)
		generator.On("GenerateText", mock.Anything, "snippet-model", mock.Anything).
			Return("", errors.New("quota exceeded")).Once()

		trivia := newTestService(generator).TriviaFor(ctx, "Tower Bridge")

		assert.Equal(t, "An interesting fact about Tower Bridge is waiting to be discovered...", trivia)
	})
}
