package poi

import (
	"fmt"
	"strings"
)

func getDiscoveryPrompt(city string, interests []string) string {
	return fmt.Sprintf(`
            I need a list of 8-12 top-rated places in %s based on these interests: %s.
            Rank them with the best match first.

            Also, generate a "City Insight":
            - A single, short, surprising, and attention-grabbing fact about %s.
            - Focus on history, culture, architecture, or stats (e.g., "Berlin has more bridges than Venice").
            - Max 2 sentences.

            Use Google Maps and Google Search to find:
            - Real, accurate names and locations.
            - Up-to-date ratings and review counts.
            - Real opening hours info.
            - A public image URL for the place if you can find one.

            If exact matches aren't found, find the best available alternatives.

            IMPORTANT: Return ONLY a valid JSON object (NOT an array directly). Do not use Markdown code blocks.

            JSON Structure:
            {
              "insight": "string (The interesting fact)",
              "places": [
                {
                  "name": "string",
                  "category": "string",
                  "description": "string",
                  "rating": <float>,
                  "reviewCount": <integer>,
                  "priceLevel": "string (e.g. $ or $$$)",
                  "address": "string",
                  "imageUrl": "string (url or empty)",
                  "lat": <float>,
                  "lng": <float>
                }
              ]
            }`, city, strings.Join(interests, ", "), city)
}
