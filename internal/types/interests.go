package types

import "strings"

// Interest is an entry of the fixed interest catalogue offered to users.
type Interest struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// Interests is the catalogue of interest tags a user can pick from.
var Interests = []Interest{
	{ID: "history", Label: "History & Landmarks", Icon: "🏛️"},
	{ID: "art", Label: "Art & Museums", Icon: "🎨"},
	{ID: "food", Label: "Local Food", Icon: "🍝"},
	{ID: "cafe", Label: "Cafes & Coffee", Icon: "☕"},
	{ID: "nature", Label: "Parks & Nature", Icon: "🌳"},
	{ID: "shopping", Label: "Shopping", Icon: "🛍️"},
	{ID: "nightlife", Label: "Nightlife", Icon: "🥂"},
}

// CleanInterests trims tags and drops blanks and duplicates, keeping order.
func CleanInterests(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, i := range in {
		i = strings.TrimSpace(i)
		if i == "" {
			continue
		}
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, i)
	}
	return out
}
