package types

import (
	"strings"
	"unicode"
)

// TransportType is the mode of a leg between two itinerary stops.
type TransportType string

const (
	TransportWalk    TransportType = "walk"
	TransportTransit TransportType = "transit"
	TransportDrive   TransportType = "drive"
)

var (
	walkWords    = map[string]bool{"walk": true, "walking": true, "foot": true, "stroll": true}
	driveWords   = map[string]bool{"drive": true, "driving": true, "car": true, "taxi": true, "cab": true, "uber": true}
	transitWords = map[string]bool{
		"bus": true, "tram": true, "streetcar": true, "cable": true, "funicular": true,
		"metro": true, "subway": true, "train": true, "rail": true, "ferry": true, "transit": true,
	}
)

// ParseTransportType classifies free text returned by the model into one of
// the three supported modes. The text is split into words; a transit word
// wins over "car" so "cable car" and "Carris bus 728" stay transit. Anything
// that is neither walking nor driving is treated as public transit.
func ParseTransportType(s string) TransportType {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	var walk, drive bool
	for _, w := range words {
		switch {
		case transitWords[w]:
			return TransportTransit
		case walkWords[w]:
			walk = true
		case driveWords[w]:
			drive = true
		}
	}
	switch {
	case walk:
		return TransportWalk
	case drive:
		return TransportDrive
	default:
		return TransportTransit
	}
}

// TravelMode maps the transport type to the Google Maps travelmode value.
func (t TransportType) TravelMode() string {
	switch t {
	case TransportDrive:
		return "driving"
	case TransportWalk:
		return "walking"
	default:
		return "transit"
	}
}

// TransportLeg describes travel from one itinerary item to the next.
type TransportLeg struct {
	Type            TransportType `json:"type"`
	Details         string        `json:"details,omitempty"`
	DurationMinutes int           `json:"durationMinutes"`
}

// ItineraryItem is one stop of a day plan. Items are returned in visit order
// and the last one never has TransportToNext set.
type ItineraryItem struct {
	ID              string        `json:"id"`
	StartTime       string        `json:"startTime"`
	EndTime         string        `json:"endTime"`
	PlaceName       string        `json:"placeName"`
	Category        string        `json:"category"`
	Description     string        `json:"description"`
	Coordinates     *Coordinates  `json:"coordinates,omitempty"`
	TransportToNext *TransportLeg `json:"transportToNext,omitempty"`
}
