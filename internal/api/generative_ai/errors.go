package generativeAI

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey = errors.New("gemini api key is not set")
	ErrEmptyResponse = errors.New("no candidates in model response")
)

// ServiceError means the call to the model failed: network, auth, quota or
// an empty candidate list.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: upstream service error: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// ParseError means the model answered but the text was not valid JSON after
// fence stripping. Raw holds the cleaned text for logging.
type ParseError struct {
	Op  string
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: invalid JSON response from AI: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
