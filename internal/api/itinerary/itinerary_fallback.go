package itinerary

import (
	"fmt"
	"net/url"
	"time"

	"github.com/FACorreiaa/wonder-route/internal/types"
)

const (
	defaultMeetingPoint    = "Trafalgar Square"
	defaultMeetingLocation = "Trafalgar Square, London WC2N 5DN"
	defaultMainAttraction  = "Tower Bridge"

	clockLayout = "15:04"
	mapsBaseURL = "https://www.google.com/maps/search/?api=1&query="
)

// tiered holds one string per budget tier.
type tiered struct{ low, medium, high string }

func (t tiered) For(b types.Budget) string {
	switch b {
	case types.BudgetLow:
		return t.low
	case types.BudgetHigh:
		return t.high
	default:
		return t.medium
	}
}

var (
	totalCostByBudget      = tiered{low: "£25-35", medium: "£45-60", high: "£75-100"}
	marketLunchCost        = tiered{low: "£10", medium: "£15-20", high: "£25-35"}
	mainAttractionCost     = tiered{low: "£0-10", medium: "£15-25", high: "£30-40"}
	mainAttractionActivity = tiered{
		low:    "Free landmarks, viewpoints and a self-guided walk around the area.",
		medium: "A ticketed visit or guided tour, with time left to wander the surroundings.",
		high:   "A premium guided experience with skip-the-line entry and afternoon tea nearby.",
	}
)

// MapsURL builds a Google Maps search link for a place name.
func MapsURL(location string) string {
	return mapsBaseURL + url.QueryEscape(location)
}

func clockAt(start time.Time, offset time.Duration) string {
	return start.Add(offset).Format(clockLayout)
}

// parseClock falls back to the form default when the caller sent an unusable time.
func parseClock(value, fallback string) time.Time {
	t, err := time.Parse(clockLayout, value)
	if err != nil {
		t, _ = time.Parse(clockLayout, fallback)
	}
	return t
}

// BuildFallbackItinerary assembles a template day plan from the request alone.
// It performs no I/O and returns identical output for identical input.
func BuildFallbackItinerary(req types.PlanningRequest) types.Itinerary {
	prefs := req.Preferences
	interests := prefs.Interests
	start := parseClock(prefs.StartTime, types.DefaultStartTime)
	end := parseClock(prefs.EndTime, types.DefaultEndTime)

	meeting := types.MeetingPoint{
		Name:     defaultMeetingPoint,
		Location: defaultMeetingLocation,
		Time:     start.Format(clockLayout),
		Reason:   "Central, easy to reach by Tube and bus, and hard to miss.",
	}
	if len(req.Friends) > 0 {
		first := req.Friends[0]
		meeting.Name = first.Name
		meeting.Location = fmt.Sprintf("%s (%s, %s)", first.Name, formatCoord(first.Lat), formatCoord(first.Lng))
		meeting.Reason = "Starting from the first friend's location keeps the morning simple."
	}

	stops := make([]types.Stop, 0, 4)

	stops = append(stops, types.Stop{
		Time:        clockAt(start, 0),
		Activity:    "Meet & Greet",
		Location:    meeting.Name,
		Duration:    "30 minutes",
		Cost:        "£0",
		Description: "Everyone gathers at the meeting point before setting off together.",
		FunFact:     "London has more than 170 museums and over 3,000 parks and open spaces.",
		PhotoOpp:    "A group selfie to mark the start of the day.",
		MapsURL:     MapsURL(meeting.Name),
	})

	if interests.Has(types.InterestCoffee) {
		stops = append(stops, types.Stop{
			Time:        clockAt(start, 30*time.Minute),
			Activity:    "Coffee Break",
			Location:    "Monmouth Coffee Company, Covent Garden",
			Duration:    "45 minutes",
			Cost:        "£5",
			Description: "Flat whites and pastries at one of London's best-loved independent roasters.",
			FunFact:     "Monmouth Coffee began roasting beans in a Covent Garden basement in 1978.",
			PhotoOpp:    "Latte art on the shopfront bench along Monmouth Street.",
			MapsURL:     MapsURL("Monmouth Coffee Company, Covent Garden"),
		})
	} else {
		stops = append(stops, types.Stop{
			Time:        clockAt(start, 30*time.Minute),
			Activity:    "Morning Stroll",
			Location:    "St James's Park",
			Duration:    "45 minutes",
			Cost:        "£0",
			Description: "A gentle walk past the lake with views towards Buckingham Palace.",
			FunFact:     "The park's pelicans were first gifted to King Charles II by a Russian ambassador in 1664.",
			PhotoOpp:    "Buckingham Palace framed by willows from the Blue Bridge.",
			MapsURL:     MapsURL("St James's Park"),
		})
	}

	if interests.Has(types.InterestFood) {
		stops = append(stops, types.Stop{
			Time:        clockAt(start, 90*time.Minute),
			Activity:    "Market Lunch",
			Location:    "Borough Market",
			Duration:    "1 hour",
			Cost:        marketLunchCost.For(prefs.Budget),
			Description: "Graze the street-food stalls and traders of London's oldest food market.",
			FunFact:     "There has been a market on the Borough site for around a thousand years.",
			PhotoOpp:    "The green-and-gold Market Porter sign above the busy stalls.",
			MapsURL:     MapsURL("Borough Market"),
		})
	} else {
		stops = append(stops, types.Stop{
			Time:        clockAt(start, 90*time.Minute),
			Activity:    "Museum Visit",
			Location:    "The National Gallery",
			Duration:    "1.5 hours",
			Cost:        "£0",
			Description: "Highlights from the national collection, from Van Eyck to Van Gogh.",
			FunFact:     "The gallery opened in 1824 with just 38 paintings bought by Parliament.",
			PhotoOpp:    "The portico steps looking out over Trafalgar Square.",
			MapsURL:     MapsURL("The National Gallery"),
		})
	}

	afternoon := clockAt(start, 4*time.Hour)
	if interests.Has(types.InterestBlackHistoryMonth) {
		stops = append(stops, types.Stop{
			Time:        afternoon,
			Activity:    "Black History Tour",
			Location:    "Black Cultural Archives",
			Duration:    "2 hours",
			Cost:        "£0",
			Description: "Exhibitions and archives celebrating the histories of African and Caribbean people in Britain, followed by a walk around Windrush Square.",
			FunFact:     "Black Cultural Archives opened in Brixton in 2014 as the UK's first national heritage centre dedicated to Black British history.",
			PhotoOpp:    "The Raleigh Hall facade on Windrush Square.",
			MapsURL:     MapsURL("Black Cultural Archives"),
		})
	} else {
		mainAttraction := defaultMainAttraction
		if len(req.Visits) > 0 {
			mainAttraction = req.Visits[0].Name
		}
		stops = append(stops, types.Stop{
			Time:        afternoon,
			Activity:    "Afternoon Exploration",
			Location:    mainAttraction,
			Duration:    "2 hours",
			Cost:        mainAttractionCost.For(prefs.Budget),
			Description: fmt.Sprintf("The main attraction of the day at %s. %s", mainAttraction, mainAttractionActivity.For(prefs.Budget)),
			FunFact:     fmt.Sprintf("Ask a local about %s; most have a story about it.", mainAttraction),
			PhotoOpp:    fmt.Sprintf("A wide shot of %s in the afternoon light.", mainAttraction),
			MapsURL:     MapsURL(mainAttraction),
		})
	}

	travelMode := prefs.TravelMode
	if travelMode == "" {
		travelMode = types.TravelModeWalking
	}
	budget := prefs.Budget
	if budget == "" {
		budget = types.BudgetMedium
	}

	return types.NewPlanItinerary(types.ItineraryPlan{
		MeetingPoint: meeting,
		Stops:        stops,
		Summary: fmt.Sprintf("A %s-budget day in London from %s to %s, getting around by %s, with %d stops.",
			budget, start.Format(clockLayout), end.Format(clockLayout), travelMode, len(stops)),
		TotalCost: totalCostByBudget.For(prefs.Budget),
	})
}
