package types

import (
	"fmt"
	"strings"
)

// DefaultStartTime is used when a caller does not provide a start time.
const DefaultStartTime = "09:00"

// Pace controls how densely the day is packed.
type Pace string

const (
	PaceChill    Pace = "chill"
	PaceBalanced Pace = "balanced"
	PacePacked   Pace = "packed"
)

// ParsePace accepts chill, balanced or packed (case-insensitive). An empty
// string yields PaceBalanced.
func ParsePace(s string) (Pace, error) {
	switch p := Pace(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PaceBalanced, nil
	case PaceChill, PaceBalanced, PacePacked:
		return p, nil
	default:
		return "", fmt.Errorf("invalid pace %q: must be one of chill, balanced, packed", s)
	}
}

// DwellHint is the instruction given to the model about how long to stay at
// each stop for this pace.
func (p Pace) DwellHint() string {
	switch p {
	case PaceChill:
		return "Relaxed pace: plan longer stays at each stop (about 2h at museums, 1h at cafes/landmarks) and fewer stops overall."
	case PacePacked:
		return "Packed pace: keep stays short (about 1h at museums, 30m at cafes/landmarks) and fit in as much as possible."
	default:
		return "Balanced pace: account for ~1.5h at museums, ~45m at cafes/landmarks."
	}
}

// UserSelection carries everything a user picked for one planning session.
// It is owned by the caller and passed by value.
type UserSelection struct {
	City        string   `json:"city"`
	Interests   []string `json:"interests"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	Pace        Pace     `json:"pace"`
	SelectedIDs []string `json:"selectedIds,omitempty"`
}

// SelectPlaces keeps the places whose IDs are in ids, in the order of places.
// An empty ids list selects everything.
func SelectPlaces(places []Place, ids []string) []Place {
	if len(ids) == 0 {
		return places
	}
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	selected := make([]Place, 0, len(ids))
	for _, p := range places {
		if _, ok := wanted[p.ID]; ok {
			selected = append(selected, p)
		}
	}
	return selected
}
