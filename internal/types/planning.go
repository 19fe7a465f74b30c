package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Budget is the spending tier of a plan or a traveller.
type Budget string

const (
	BudgetLow    Budget = "low"
	BudgetMedium Budget = "medium"
	BudgetHigh   Budget = "high"
)

func ParseBudget(s string) (Budget, error) {
	switch b := Budget(strings.ToLower(strings.TrimSpace(s))); b {
	case BudgetLow, BudgetMedium, BudgetHigh:
		return b, nil
	default:
		return "", fmt.Errorf("unknown budget %q", s)
	}
}

// UnmarshalText leaves an empty value unset so callers can apply defaults.
func (b *Budget) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*b = ""
		return nil
	}
	parsed, err := ParseBudget(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

type TravelMode string

const (
	TravelModeWalking TravelMode = "walking"
	TravelModeTransit TravelMode = "transit"
	TravelModeDriving TravelMode = "driving"
	TravelModeCycling TravelMode = "cycling"
)

func ParseTravelMode(s string) (TravelMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "walking":
		return TravelModeWalking, nil
	case "transit", "public_transport", "public":
		return TravelModeTransit, nil
	case "driving", "car":
		return TravelModeDriving, nil
	case "cycling", "bike":
		return TravelModeCycling, nil
	default:
		return "", fmt.Errorf("unknown travel mode %q", s)
	}
}

func (m *TravelMode) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*m = ""
		return nil
	}
	parsed, err := ParseTravelMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// NamedPoint is a labelled map coordinate picked in the UI.
type NamedPoint struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type Preferences struct {
	StartTime  string     `json:"startTime"` // HH:MM
	EndTime    string     `json:"endTime"`   // HH:MM
	Budget     Budget     `json:"budget"`
	TravelMode TravelMode `json:"travelMode,omitempty"`
	Interests  Interests  `json:"interests"`
}

// Persona describes one traveller in the group.
type Persona struct {
	Name        string    `json:"name"`
	Budget      Budget    `json:"budget"`
	EnergyLevel int       `json:"energyLevel"` // 1..10
	Interests   Interests `json:"interests"`
}

// UnmarshalJSON also accepts the "energy" key used by older clients.
func (p *Persona) UnmarshalJSON(data []byte) error {
	type personaAlias Persona
	aux := struct {
		*personaAlias
		Energy *int `json:"energy,omitempty"`
	}{personaAlias: (*personaAlias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if p.EnergyLevel == 0 && aux.Energy != nil {
		p.EnergyLevel = *aux.Energy
	}
	return nil
}

// PlanningRequest is built once per generate action and never mutated afterwards.
type PlanningRequest struct {
	Friends     []NamedPoint `json:"friends"`
	Visits      []NamedPoint `json:"visits"`
	Preferences Preferences  `json:"preferences"`
	Personas    []Persona    `json:"personas,omitempty"`
}

const (
	DefaultStartTime = "09:00"
	DefaultEndTime   = "17:00"
)

// WithDefaults returns a copy with the planner form's defaults filled in for unset fields.
func (r PlanningRequest) WithDefaults() PlanningRequest {
	out := r
	if out.Preferences.StartTime == "" {
		out.Preferences.StartTime = DefaultStartTime
	}
	if out.Preferences.EndTime == "" {
		out.Preferences.EndTime = DefaultEndTime
	}
	if out.Preferences.Budget == "" {
		out.Preferences.Budget = BudgetMedium
	}
	if out.Preferences.TravelMode == "" {
		out.Preferences.TravelMode = TravelModeWalking
	}
	return out
}

type CaptionRequest struct {
	Location string `json:"location"`
	Activity string `json:"activity"`
}

type CaptionResponse struct {
	Caption string `json:"caption"`
}

type TriviaRequest struct {
	Location string `json:"location"`
}

type TriviaResponse struct {
	Trivia string `json:"trivia"`
}
