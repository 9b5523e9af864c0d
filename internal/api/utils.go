package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware" // For RequestID

	generativeAI "github.com/FACorreiaa/go-day-planner/internal/api/generative_ai"
)

// MaxRequestBodyBytes caps the JSON body of planner requests.
const MaxRequestBodyBytes = 1 << 20

// Error codes carried in ErrorBody.Code.
const (
	CodeInvalidRequest      = "invalid_request"
	CodeUpstreamInvalid     = "upstream_invalid_response"
	CodeUpstreamUnavailable = "upstream_unavailable"
	CodeInternal            = "internal_error"
)

// ErrorBody is the envelope of every failed planner request.
type ErrorBody struct {
	Success   bool   `json:"success"`
	Code      string `json:"code"`
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse writes an ErrorBody with a code derived from status.
func ErrorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeError(w, r, status, codeForStatus(status), message)
}

// ModelErrorResponse reports a failed model pipeline to the client and
// returns the status it wrote. Unparsable model output is a 502, a failed
// model call a 503 and anything else a 500. action leads the message, e.g.
// "Could not fetch places".
func ModelErrorResponse(w http.ResponseWriter, r *http.Request, action string, err error) int {
	status, code, reason := classifyModelError(err)
	writeError(w, r, status, code, action+": "+reason)
	return status
}

func classifyModelError(err error) (int, string, string) {
	var pe *generativeAI.ParseError
	switch {
	case errors.As(err, &pe):
		return http.StatusBadGateway, CodeUpstreamInvalid, "the AI response was not valid"
	case generativeAI.IsServiceError(err):
		return http.StatusServiceUnavailable, CodeUpstreamUnavailable, "the AI service is unavailable"
	default:
		return http.StatusInternalServerError, CodeInternal, "unexpected error"
	}
}

func codeForStatus(status int) string {
	if status >= http.StatusInternalServerError {
		return CodeInternal
	}
	return CodeInvalidRequest
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	WriteJSONResponse(w, r, status, ErrorBody{
		Success:   false,
		Code:      code,
		Error:     message,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// WriteJSONResponse encodes data and writes it with the given status. When
// data cannot be encoded the client gets a 500 ErrorBody instead.
func WriteJSONResponse(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}

	reqID := middleware.GetReqID(r.Context())
	js, err := json.Marshal(data)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to marshal JSON response",
			slog.Any("error", err),
			slog.String("request_id", reqID),
		)
		status = http.StatusInternalServerError
		// ErrorBody only holds strings
		js, _ = json.Marshal(ErrorBody{Code: CodeInternal, Error: "Could not encode response", RequestID: reqID})
	}

	// Headers go out with the status line
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(js); err != nil {
		// Status is already on the wire; nothing left to tell the client
		slog.ErrorContext(r.Context(), "Failed to write response body",
			slog.Any("error", err),
			slog.String("request_id", reqID),
		)
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}

// DecodeJSONBody decodes exactly one JSON value from the request body into
// dst. Unknown fields and bodies over MaxRequestBodyBytes are rejected; the
// returned error text is safe to show the client.
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return describeDecodeError(err)
	}

	// A second value (or garbage) after the first one
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}

func describeDecodeError(err error) error {
	var (
		syntaxError           *json.SyntaxError
		unmarshalTypeError    *json.UnmarshalTypeError
		invalidUnmarshalError *json.InvalidUnmarshalError
		maxBytesError         *http.MaxBytesError
	)

	switch {
	case errors.As(err, &syntaxError):
		return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return errors.New("body contains badly-formed JSON")
	case errors.As(err, &unmarshalTypeError):
		if unmarshalTypeError.Field != "" {
			return fmt.Errorf("body contains incorrect JSON type for field %q (wanted %s)", unmarshalTypeError.Field, unmarshalTypeError.Type)
		}
		return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
	case errors.Is(err, io.EOF):
		return errors.New("body must not be empty")
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		// encoding/json has no typed error for this one
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return fmt.Errorf("body contains unknown key %q", field)
	case errors.As(err, &maxBytesError):
		return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)
	case errors.As(err, &invalidUnmarshalError):
		// dst is not a pointer
		panic(fmt.Errorf("developer error: invalid argument passed to json.Unmarshal: %w", err))
	default:
		return fmt.Errorf("error decoding JSON body: %w", err)
	}
}
