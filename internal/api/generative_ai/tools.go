package generativeAI

import "google.golang.org/genai"

// MapsAndSearchTools grounds a request with Google Maps and Google Search.
func MapsAndSearchTools() []*genai.Tool {
	return []*genai.Tool{
		{GoogleMaps: &genai.GoogleMaps{}},
		{GoogleSearch: &genai.GoogleSearch{}},
	}
}

// MapsTools grounds a request with Google Maps only.
func MapsTools() []*genai.Tool {
	return []*genai.Tool{
		{GoogleMaps: &genai.GoogleMaps{}},
	}
}
