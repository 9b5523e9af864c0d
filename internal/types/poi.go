package types

import "strings"

// Coordinates is a WGS84 point in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is a point of interest returned by a discovery call.
// ID is positional (place-<index>) and only meaningful inside the result
// set that produced it.
type Place struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Category    string       `json:"category"`
	Description string       `json:"description"`
	Rating      float64      `json:"rating"`
	ReviewCount int          `json:"reviewCount"`
	PriceLevel  string       `json:"priceLevel,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Address     string       `json:"address,omitempty"`
	ImageURL    string       `json:"imageUrl,omitempty"`
}

// ShortAddress returns the first comma-delimited segment of the address.
func (p Place) ShortAddress() string {
	short, _, _ := strings.Cut(p.Address, ",")
	return strings.TrimSpace(short)
}

// DiscoveryResult is what a single discovery call produces: the candidate
// places and one short fact about the city.
type DiscoveryResult struct {
	Places  []Place `json:"places"`
	Insight string  `json:"insight"`
}
