package itinerary

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/FACorreiaa/go-day-planner/internal/types"
)

const defaultEndHint = "End by 22:00 if possible."

// describePlaces renders the selection as "Name (category) at location"
// entries joined by "; ".
func describePlaces(places []types.Place) string {
	parts := make([]string, 0, len(places))
	for _, p := range places {
		entry := fmt.Sprintf("%s (%s)", p.Name, p.Category)
		switch {
		case strings.TrimSpace(p.Address) != "":
			entry += " at " + p.Address
		case p.Coordinates != nil:
			entry += fmt.Sprintf(" at coordinates: %s,%s",
				strconv.FormatFloat(p.Coordinates.Lat, 'f', -1, 64),
				strconv.FormatFloat(p.Coordinates.Lng, 'f', -1, 64))
		}
		parts = append(parts, entry)
	}
	return strings.Join(parts, "; ")
}

func getItineraryPrompt(city string, places []types.Place, startTime, endTime string, pace types.Pace) string {
	endHint := defaultEndHint
	if strings.TrimSpace(endTime) != "" {
		endHint = fmt.Sprintf("The last stop must end by %s.", endTime)
	}
	return fmt.Sprintf(`
            Build a logical, time-optimized 1-day itinerary for %s starting at %s.
            User wants to visit: %s.

            Use Google Maps to:
            1. Order places geographically to minimize travel.
            2. Calculate realistic travel times and modes (Walk, U-Bahn, S-Bahn, Metro, Bus, etc.).
            3. Insert lunch/dinner at real, highly-rated restaurants near the stops at appropriate times.

            Rules:
            - Don't overlap times.
            - Do not start before %s. %s
            - %s

            CRITICAL ERROR HANDLING:
            - If the Google Maps tool fails to return directions for a specific leg, YOU MUST ESTIMATE the travel time (e.g. 15 mins) and mode (e.g. "transit") based on general city knowledge or straight-line distance.
            - DO NOT return an error message or apology text like "I apologize but I encountered a technical issue".
            - YOU MUST return the JSON array under all circumstances.

            IMPORTANT: Return ONLY a valid JSON array. Do not use Markdown code blocks.

            JSON Structure per item:
            {
              "startTime": "HH:MM",
              "endTime": "HH:MM",
              "placeName": "string",
              "category": "string",
              "description": "string",
              "transportType": "walk" | "transit" | "drive",
              "transportDetails": "string (e.g. 'U2 to Alexanderplatz' or 'Walk 500m')",
              "travelMinutes": <integer>,
              "lat": <float>,
              "lng": <float>
            }
            The transport fields describe travel to the NEXT stop; omit them on the last stop.`,
		city, startTime, describePlaces(places), startTime, endHint, pace.DwellHint())
}
