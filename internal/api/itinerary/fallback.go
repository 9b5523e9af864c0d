package itinerary

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/FACorreiaa/go-day-planner/internal/types"
)

const (
	fallbackDwellMinutes   = 90
	fallbackTransitMinutes = 30
	fallbackTransitDetails = "Transit to next stop"
)

// ScheduleFallback builds an itinerary locally, without the model: places are
// visited in the given order with a fixed 90 minute stay and a 30 minute
// transit gap between stops. Clock values are not wrapped at midnight, so a
// long list can produce hours of 24 or more.
func ScheduleFallback(places []types.Place, startTime string) []types.ItineraryItem {
	items := make([]types.ItineraryItem, 0, len(places))
	current := parseClock(startTime)

	for i, p := range places {
		end := current + fallbackDwellMinutes
		item := types.ItineraryItem{
			ID:          fmt.Sprintf("fallback-%d", i),
			StartTime:   formatClock(current),
			EndTime:     formatClock(end),
			PlaceName:   p.Name,
			Category:    p.Category,
			Description: p.Description,
		}
		if p.Coordinates != nil {
			c := *p.Coordinates
			item.Coordinates = &c
		}
		if i < len(places)-1 {
			item.TransportToNext = &types.TransportLeg{
				Type:            types.TransportTransit,
				Details:         fallbackTransitDetails,
				DurationMinutes: fallbackTransitMinutes,
			}
		}
		items = append(items, item)
		current = end + fallbackTransitMinutes
	}
	return items
}

// parseClock reads "HH:MM" into minutes since midnight. Input it cannot read
// is taken as the default start time.
func parseClock(s string) int {
	if minutes, ok := clockMinutes(s); ok {
		return minutes
	}
	minutes, _ := clockMinutes(types.DefaultStartTime)
	return minutes
}

// clockMinutes accepts "H:MM" or "HH:MM" with an hour of 0-23.
func clockMinutes(s string) (int, bool) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 || !allDigits(hh+mm) {
		return 0, false
	}
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	if h > 23 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
