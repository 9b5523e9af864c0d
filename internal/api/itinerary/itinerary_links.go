package itinerary

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/FACorreiaa/go-day-planner/internal/types"
)

const (
	directionsURL = "https://www.google.com/maps/dir/?api=1&destination=%s,%s&travelmode=%s"
	mapEmbedURL   = "https://www.google.com/maps/embed/v1/directions?key=%s&origin=%s&destination=%s&waypoints=%s&mode=transit"
)

// DirectionLink is a Google Maps deep link for travelling from one item to
// the next.
type DirectionLink struct {
	FromID string `json:"fromId"`
	ToID   string `json:"toId"`
	Mode   string `json:"mode"`
	URL    string `json:"url"`
}

// DirectionsURL opens Google Maps directions to dest in the leg's travel mode.
func DirectionsURL(dest types.Coordinates, mode types.TransportType) string {
	return fmt.Sprintf(directionsURL,
		strconv.FormatFloat(dest.Lat, 'f', -1, 64),
		strconv.FormatFloat(dest.Lng, 'f', -1, 64),
		mode.TravelMode())
}

// BuildDirections returns a link for every item that has a leg and whose next
// stop has coordinates.
func BuildDirections(items []types.ItineraryItem) []DirectionLink {
	var links []DirectionLink
	for i := 0; i+1 < len(items); i++ {
		leg, next := items[i].TransportToNext, items[i+1]
		if leg == nil || next.Coordinates == nil {
			continue
		}
		links = append(links, DirectionLink{
			FromID: items[i].ID,
			ToID:   next.ID,
			Mode:   leg.Type.TravelMode(),
			URL:    DirectionsURL(*next.Coordinates, leg.Type),
		})
	}
	return links
}

// MapEmbedURL builds a Maps Embed directions URL through every stop. It is
// empty without an API key or with fewer than two items.
func MapEmbedURL(apiKey, city string, items []types.ItineraryItem) string {
	if apiKey == "" || len(items) < 2 {
		return ""
	}
	stop := func(item types.ItineraryItem) string {
		return escapeComponent(item.PlaceName + " " + city)
	}

	waypoints := make([]string, 0, len(items)-2)
	for _, item := range items[1 : len(items)-1] {
		waypoints = append(waypoints, stop(item))
	}
	return fmt.Sprintf(mapEmbedURL, url.QueryEscape(apiKey), stop(items[0]), stop(items[len(items)-1]), strings.Join(waypoints, "|"))
}

func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
