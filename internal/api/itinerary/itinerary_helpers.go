package itinerary

import (
	"encoding/json"
	"fmt"

	generativeAI "github.com/FACorreiaa/go-day-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-day-planner/internal/types"
)

const defaultTravelMinutes = 10

// rawItineraryItem is one stop as the model returned it.
type rawItineraryItem struct {
	StartTime        generativeAI.OptionalString `json:"startTime"`
	EndTime          generativeAI.OptionalString `json:"endTime"`
	PlaceName        generativeAI.OptionalString `json:"placeName"`
	Category         generativeAI.OptionalString `json:"category"`
	Description      generativeAI.OptionalString `json:"description"`
	TransportType    generativeAI.OptionalString `json:"transportType"`
	TransportDetails generativeAI.OptionalString `json:"transportDetails"`
	TravelMinutes    generativeAI.OptionalFloat  `json:"travelMinutes"`
	Lat              generativeAI.OptionalFloat  `json:"lat"`
	Lng              generativeAI.OptionalFloat  `json:"lng"`
}

// parseItineraryResponse decodes the model text. Anything other than a JSON
// array yields an empty itinerary; only malformed JSON is an error.
func parseItineraryResponse(text string) ([]types.ItineraryItem, error) {
	raw, kind, err := generativeAI.DecodeResponse("generate itinerary", text, "[]")
	if err != nil {
		return nil, err
	}
	if kind != generativeAI.ShapeArray {
		return []types.ItineraryItem{}, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return []types.ItineraryItem{}, nil
	}
	items := make([]types.ItineraryItem, 0, len(elems))
	for _, elem := range elems {
		if generativeAI.KindOf(elem) != generativeAI.ShapeObject {
			continue
		}
		var ri rawItineraryItem
		if err := json.Unmarshal(elem, &ri); err != nil {
			continue
		}
		items = append(items, normalizeItem(len(items), ri))
	}
	if n := len(items); n > 0 {
		items[n-1].TransportToNext = nil
	}
	return items, nil
}

func normalizeItem(index int, ri rawItineraryItem) types.ItineraryItem {
	item := types.ItineraryItem{
		ID:          fmt.Sprintf("event-%d", index),
		StartTime:   ri.StartTime.Or(""),
		EndTime:     ri.EndTime.Or(""),
		PlaceName:   ri.PlaceName.Or(""),
		Category:    ri.Category.Or(""),
		Description: ri.Description.Or(""),
	}
	if mode := ri.TransportType.Or(""); mode != "" {
		item.TransportToNext = &types.TransportLeg{
			Type:            types.ParseTransportType(mode),
			Details:         ri.TransportDetails.Or(""),
			DurationMinutes: travelMinutes(ri.TravelMinutes),
		}
	}
	if ri.Lat.Set && ri.Lng.Set {
		item.Coordinates = &types.Coordinates{Lat: ri.Lat.Value, Lng: ri.Lng.Value}
	}
	return item
}

func travelMinutes(f generativeAI.OptionalFloat) int {
	if minutes := f.Count(); minutes > 0 {
		return minutes
	}
	return defaultTravelMinutes
}
