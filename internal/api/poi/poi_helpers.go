package poi

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	generativeAI "github.com/FACorreiaa/go-day-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-day-planner/internal/types"
)

const (
	defaultCategory    = "General"
	defaultDescription = "A popular local spot."
	placeholderImage   = "https://placehold.co/600x400/EEE/31343C?text=%s"
)

// rawPlace is a place as the model returned it. Every field is optional;
// defaults are applied only in normalizePlace.
type rawPlace struct {
	Name        generativeAI.OptionalString `json:"name"`
	Category    generativeAI.OptionalString `json:"category"`
	Description generativeAI.OptionalString `json:"description"`
	Rating      generativeAI.OptionalFloat  `json:"rating"`
	ReviewCount generativeAI.OptionalFloat  `json:"reviewCount"`
	PriceLevel  generativeAI.OptionalString `json:"priceLevel"`
	Address     generativeAI.OptionalString `json:"address"`
	ImageURL    generativeAI.OptionalString `json:"imageUrl"`
	Lat         generativeAI.OptionalFloat  `json:"lat"`
	Lng         generativeAI.OptionalFloat  `json:"lng"`
}

// rawDiscovery is the object form of a discovery response. Both fields are
// kept raw so their shape can be checked before decoding.
type rawDiscovery struct {
	Places  json.RawMessage `json:"places"`
	Insight json.RawMessage `json:"insight"`
}

func defaultInsight(city string) string {
	return fmt.Sprintf("Welcome to %s!", city)
}

// parseDiscoveryResponse turns the model text into a DiscoveryResult. Only
// malformed JSON is an error; unexpected shapes give an empty place list.
func parseDiscoveryResponse(city, text string) (*types.DiscoveryResult, error) {
	raw, kind, err := generativeAI.DecodeResponse("discover places", text, "{}")
	if err != nil {
		return nil, err
	}

	result := &types.DiscoveryResult{Places: []types.Place{}, Insight: defaultInsight(city)}
	switch kind {
	case generativeAI.ShapeArray:
		result.Places = decodePlaces(raw)
	case generativeAI.ShapeObject:
		var obj rawDiscovery
		if err := json.Unmarshal(raw, &obj); err != nil {
			return result, nil
		}
		if generativeAI.KindOf(obj.Places) == generativeAI.ShapeArray {
			result.Places = decodePlaces(obj.Places)
		}
		var insight string
		if err := json.Unmarshal(obj.Insight, &insight); err == nil && strings.TrimSpace(insight) != "" {
			result.Insight = insight
		}
	}
	return result, nil
}

// decodePlaces decodes a JSON array of place objects. Elements that are not
// objects are skipped so IDs stay contiguous.
func decodePlaces(raw json.RawMessage) []types.Place {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return []types.Place{}
	}
	places := make([]types.Place, 0, len(elems))
	for _, elem := range elems {
		if generativeAI.KindOf(elem) != generativeAI.ShapeObject {
			continue
		}
		var rp rawPlace
		if err := json.Unmarshal(elem, &rp); err != nil {
			continue
		}
		places = append(places, normalizePlace(len(places), rp))
	}
	return places
}

func normalizePlace(index int, rp rawPlace) types.Place {
	category := rp.Category.Or(defaultCategory)
	p := types.Place{
		ID:          fmt.Sprintf("place-%d", index),
		Name:        rp.Name.Or(""),
		Category:    category,
		Description: rp.Description.Or(defaultDescription),
		PriceLevel:  rp.PriceLevel.Or(""),
		Address:     rp.Address.Or(""),
		ImageURL:    imageURLOrPlaceholder(rp.ImageURL.Or(""), category),
	}
	if rp.Rating.Set && rp.Rating.Value > 0 {
		p.Rating = rp.Rating.Value
	}
	p.ReviewCount = rp.ReviewCount.Count()
	if rp.Lat.Set && rp.Lng.Set {
		p.Coordinates = &types.Coordinates{Lat: rp.Lat.Value, Lng: rp.Lng.Value}
	}
	return p
}

func isWebURL(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func imageURLOrPlaceholder(imageURL, category string) string {
	if isWebURL(imageURL) {
		return strings.TrimSpace(imageURL)
	}
	return PlaceholderImageURL(category)
}

// PlaceholderImageURL is the deterministic stand-in image for a category.
func PlaceholderImageURL(category string) string {
	return fmt.Sprintf(placeholderImage, strings.ReplaceAll(url.QueryEscape(category), "+", "%20"))
}
