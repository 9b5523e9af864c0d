package generativeAI

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CleanJSONResponse removes an optional Markdown code fence (```json ... ```
// or ``` ... ```) around the model output.
func CleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
		if len(response) >= 4 && strings.EqualFold(response[:4], "json") {
			response = response[4:]
		}
	}
	response = strings.TrimSpace(response)
	response = strings.TrimSuffix(response, "```")

	return strings.TrimSpace(response)
}

// ShapeKind is the top-level JSON kind of a decoded model response.
type ShapeKind int

const (
	ShapeOther ShapeKind = iota
	ShapeArray
	ShapeObject
)

// DecodeResponse cleans text and parses it as JSON. When text is empty after
// cleaning, fallback is parsed instead. The returned raw message is the whole
// document and kind tells which decoder should handle it.
func DecodeResponse(op, text, fallback string) (json.RawMessage, ShapeKind, error) {
	cleaned := CleanJSONResponse(text)
	if cleaned == "" {
		cleaned = fallback
	}
	var raw json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, ShapeOther, &ParseError{Op: op, Raw: cleaned, Err: err}
	}
	return raw, KindOf(raw), nil
}

// KindOf inspects the first significant byte of a JSON value.
func KindOf(raw json.RawMessage) ShapeKind {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ShapeOther
	}
	switch trimmed[0] {
	case '[':
		return ShapeArray
	case '{':
		return ShapeObject
	default:
		return ShapeOther
	}
}

// OptionalFloat is a lenient number: it accepts JSON numbers and numeric
// strings. Anything else, including NaN and infinities, leaves it unset.
type OptionalFloat struct {
	Value float64
	Set   bool
}

func (f *OptionalFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
		if n, err = strconv.ParseFloat(s, 64); err != nil {
			return nil
		}
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	f.Value, f.Set = n, true
	return nil
}

// maxCount bounds counts decoded from model output.
const maxCount = math.MaxInt32

// Count rounds the value to a non-negative integer no larger than
// math.MaxInt32. Unset values count as zero.
func (f OptionalFloat) Count() int {
	if !f.Set || f.Value <= 0 {
		return 0
	}
	if f.Value >= maxCount {
		return maxCount
	}
	return int(math.Round(f.Value))
}

// OptionalString is a lenient string: numbers and booleans are kept as their
// literal text, objects and arrays leave it unset.
type OptionalString struct {
	Value string
	Set   bool
}

func (s *OptionalString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	switch data[0] {
	case '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		s.Value, s.Set = v, true
	case '{', '[':
	default:
		s.Value, s.Set = string(data), true
	}
	return nil
}

// Or returns the value when it is set and non-blank, otherwise def.
func (s OptionalString) Or(def string) string {
	if !s.Set || strings.TrimSpace(s.Value) == "" {
		return def
	}
	return s.Value
}
