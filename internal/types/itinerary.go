package types

import (
	"encoding/json"
	"errors"
	"fmt"
)

type ItineraryFormat string

const (
	FormatJSON ItineraryFormat = "json"
	FormatText ItineraryFormat = "text"
)

type MeetingPoint struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Time     string `json:"time"`
	Reason   string `json:"reason"`
}

// Stop is one scheduled entry of a day plan.
type Stop struct {
	Time        string `json:"time"`
	Activity    string `json:"activity"`
	Location    string `json:"location"`
	Duration    string `json:"duration"`
	Cost        string `json:"cost"`
	Description string `json:"description"`
	FunFact     string `json:"funFact"`
	PhotoOpp    string `json:"photoOpp"`
	MapsURL     string `json:"mapsUrl"`
}

// ItineraryPlan is the structured day plan the model is asked to return.
type ItineraryPlan struct {
	MeetingPoint MeetingPoint `json:"meetingPoint"`
	Stops        []Stop       `json:"stops"`
	Summary      string       `json:"summary"`
	TotalCost    string       `json:"totalCost"`
}

// Itinerary is either a structured plan (FormatJSON) or unparsed model prose (FormatText).
// A plan that came from the model keeps its object verbatim in Raw; Plan is then a
// best-effort typed view of it and is never what gets encoded.
type Itinerary struct {
	Format ItineraryFormat
	Plan   ItineraryPlan
	Raw    json.RawMessage
	Body   string
}

var ErrNotAnObject = errors.New("itinerary JSON is not an object")

func NewPlanItinerary(plan ItineraryPlan) Itinerary {
	return Itinerary{Format: FormatJSON, Plan: plan}
}

// NewModelItinerary wraps a JSON object produced by the model. Fields of an
// unexpected type only leave the matching Plan field empty.
func NewModelItinerary(raw []byte) (Itinerary, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return Itinerary{}, ErrNotAnObject
		}
		return Itinerary{}, fmt.Errorf("failed to parse itinerary JSON: %w", err)
	}
	if fields == nil {
		return Itinerary{}, ErrNotAnObject
	}
	delete(fields, "format")
	canonical, err := json.Marshal(fields)
	if err != nil {
		return Itinerary{}, fmt.Errorf("failed to re-encode itinerary JSON: %w", err)
	}

	var plan ItineraryPlan
	if err := json.Unmarshal(canonical, &plan); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return Itinerary{}, fmt.Errorf("failed to parse itinerary JSON: %w", err)
		}
	}
	return Itinerary{Format: FormatJSON, Plan: plan, Raw: canonical}, nil
}

func NewTextItinerary(body string) Itinerary {
	return Itinerary{Format: FormatText, Body: body}
}

type planEnvelope struct {
	Format ItineraryFormat `json:"format"`
	ItineraryPlan
}

type textEnvelope struct {
	Format ItineraryFormat `json:"format"`
	Body   string          `json:"body"`
}

// MarshalJSON emits only the keys of the active shape.
func (it Itinerary) MarshalJSON() ([]byte, error) {
	switch it.Format {
	case FormatJSON:
		if len(it.Raw) > 0 {
			return withFormat(it.Raw)
		}
		return json.Marshal(planEnvelope{Format: FormatJSON, ItineraryPlan: it.Plan})
	case FormatText:
		return json.Marshal(textEnvelope{Format: FormatText, Body: it.Body})
	default:
		return nil, fmt.Errorf("unknown itinerary format %q", it.Format)
	}
}

func (it *Itinerary) UnmarshalJSON(data []byte) error {
	var head struct {
		Format ItineraryFormat `json:"format"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	switch head.Format {
	case FormatJSON:
		parsed, err := NewModelItinerary(data)
		if err != nil {
			return err
		}
		*it = parsed
	case FormatText:
		var env textEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			return err
		}
		*it = NewTextItinerary(env.Body)
	default:
		return fmt.Errorf("unknown itinerary format %q", head.Format)
	}
	return nil
}

// withFormat adds the format discriminator to a model object without touching its other keys.
func withFormat(raw json.RawMessage) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("invalid raw itinerary: %w", err)
	}
	if fields == nil {
		return nil, ErrNotAnObject
	}
	fields["format"] = json.RawMessage(`"` + string(FormatJSON) + `"`)
	return json.Marshal(fields)
}
