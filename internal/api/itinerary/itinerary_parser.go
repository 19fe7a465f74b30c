package itinerary

import (
	"bytes"
	"errors"
	"regexp"

	"github.com/FACorreiaa/wonder-route/internal/types"
)

var (
	errNoJSONBlock  = errors.New("no ```json block in model response")
	errNotAnObject  = types.ErrNotAnObject
	fencedJSONBlock = regexp.MustCompile("(?s)```json[ \\t]*\\r?\\n(.*?)\\r?\\n?[ \\t]*```")
)

func extractJSONBlock(text string) (string, error) {
	match := fencedJSONBlock.FindStringSubmatch(text)
	if match == nil {
		return "", errNoJSONBlock
	}
	return match[1], nil
}

// parseItineraryBlock keeps the model's object as sent: extra keys, missing keys
// and non-string values all survive.
func parseItineraryBlock(block string) (types.Itinerary, error) {
	trimmed := bytes.TrimSpace([]byte(block))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return types.Itinerary{}, errNotAnObject
	}
	return types.NewModelItinerary(trimmed)
}

// ParseModelResponse turns a model reply into an Itinerary. A reply without a
// usable ```json block is kept verbatim as a text itinerary; the returned error
// says why and is informational only.
func ParseModelResponse(text string) (types.Itinerary, error) {
	block, err := extractJSONBlock(text)
	if err != nil {
		return types.NewTextItinerary(text), err
	}
	itinerary, err := parseItineraryBlock(block)
	if err != nil {
		return types.NewTextItinerary(text), err
	}
	return itinerary, nil
}
