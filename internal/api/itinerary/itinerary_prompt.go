package itinerary

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/FACorreiaa/wonder-route/internal/types"
)

const (
	noFriendsText = "No specific friend locations provided"
	noVisitsText  = "No specific areas to visit provided"

	promptDateLayout = "Monday, 2 January 2006"
)

// itinerarySchemaSkeleton is the exact shape the resolver's parser expects back.
const itinerarySchemaSkeleton = "```json\n" + `{
  "meetingPoint": { "name": "", "location": "", "time": "", "reason": "" },
  "stops": [
    {
      "time": "",
      "activity": "",
      "location": "",
      "duration": "",
      "cost": "",
      "description": "",
      "funFact": "",
      "photoOpp": "",
      "mapsUrl": ""
    }
  ],
  "summary": "",
  "totalCost": ""
}` + "\n```"

const itineraryRequirements = `Please create a detailed itinerary with the following requirements:
1. Suggest an optimal meeting point for all travelers (if multiple starting points)
2. Plan a logical route that efficiently covers the locations
3. Include specific places to visit, each with:
   - Name and brief description
   - Estimated duration of visit
   - Approximate cost (respecting the budget)
   - A Google Maps search URL in "mapsUrl"
4. Account for travel time between locations using the chosen travel mode
5. Include food/coffee stops aligned with the interests
6. Ensure the plan fits within the specified start and end times
7. For each location, include a fun historical fact or trivia
8. If the group has different personas, suggest activities that accommodate different interests and energy levels
9. Offer at least one "Instagram-worthy" photo opportunity with a caption idea
10. Strictly follow the timeframe provided in the preferences; no stop may start before the start time or end after the end time
11. Keep every cost estimate within the stated budget and make the plan realistic for a single day in London`

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatPoints(points []types.NamedPoint, label, empty string) string {
	if len(points) == 0 {
		return empty
	}
	lines := lo.Map(points, func(p types.NamedPoint, i int) string {
		return fmt.Sprintf("%s %d: %s (%s, %s)", label, i+1, p.Name, formatCoord(p.Lat), formatCoord(p.Lng))
	})
	return strings.Join(lines, "\n")
}

func formatPersonas(personas []types.Persona) string {
	blocks := lo.Map(personas, func(p types.Persona, i int) string {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("Traveler %d", i+1)
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Person %d (%s):\n- Budget: %s\n", i+1, name, p.Budget)
		// zero means the traveller left energy unset
		if p.EnergyLevel > 0 {
			fmt.Fprintf(&b, "- Energy: %d/10\n", p.EnergyLevel)
		}
		fmt.Fprintf(&b, "- Interests: %s", strings.Join(p.Interests.Names(), ", "))
		return b.String()
	})
	return strings.Join(blocks, "\n\n")
}

// BuildItineraryPrompt renders a planning request into the instruction text sent to
// the itinerary model. today is the only input not taken from the request.
func BuildItineraryPrompt(req types.PlanningRequest, today time.Time) string {
	prefs := req.Preferences
	travelMode := prefs.TravelMode
	if travelMode == "" {
		travelMode = types.TravelModeWalking
	}

	var b strings.Builder
	b.WriteString("You are a professional London travel agent and AI assistant specialized in creating personalized itineraries.\n\n")
	fmt.Fprintf(&b, "Today is %s.\n\n", today.Format(promptDateLayout))
	b.WriteString("Your task is to create an optimized day trip plan in London for a group, considering the following:\n\n")

	b.WriteString("STARTING LOCATIONS:\n")
	b.WriteString(formatPoints(req.Friends, "Friend", noFriendsText))
	b.WriteString("\n\n")

	b.WriteString("POTENTIAL AREAS TO VISIT:\n")
	b.WriteString(formatPoints(req.Visits, "Location", noVisitsText))
	b.WriteString("\n\n")

	b.WriteString("PREFERENCES:\n")
	fmt.Fprintf(&b, "- Start time: %s\n", prefs.StartTime)
	fmt.Fprintf(&b, "- End time: %s\n", prefs.EndTime)
	fmt.Fprintf(&b, "- Budget: %s\n", prefs.Budget)
	fmt.Fprintf(&b, "- Travel mode: %s\n", travelMode)
	fmt.Fprintf(&b, "- Interests: %s\n\n", strings.Join(prefs.Interests.Names(), ", "))

	if len(req.Personas) > 0 {
		b.WriteString("PERSONAS OF TRAVELERS:\n")
		b.WriteString(formatPersonas(req.Personas))
		b.WriteString("\n\n")
	}

	b.WriteString(itineraryRequirements)
	b.WriteString("\n\n")
	b.WriteString("Return your response in this JSON format:\n")
	b.WriteString(itinerarySchemaSkeleton)
	b.WriteString("\n\n")
	b.WriteString("Make sure your suggestions are realistic for London, open during the planned hours, and aligned with the specified budget.\n")
	return b.String()
}

func BuildCaptionPrompt(location, activity string) string {
	return fmt.Sprintf(`Create a creative, engaging Instagram caption for a post about visiting "%s" in London.
Activity: %s

The caption should:
1. Be witty or clever
2. Include 1-2 relevant hashtags
3. Be under 100 characters
4. Have a London or British flavor to it

Reply with the caption only.
`, location, activity)
}

func BuildTriviaPrompt(location string) string {
	return fmt.Sprintf(`Share one interesting historical fact or trivia about "%s" in London.
The fact should be:
1. Concise (under 100 characters)
2. Interesting or surprising
3. Historically accurate
4. Something most tourists wouldn't know

Reply with the fact only.
`, location)
}
