package model

import (
	"errors"
	"fmt"
)

// ErrMissingCredential is wrapped by ConfigError when no API key could be resolved.
var ErrMissingCredential = errors.New("credential missing")

// ConfigError reports a configuration problem detected before any request is made.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("configuration: %v", e.Err)
	}
	return fmt.Sprintf("configuration %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// TransportError wraps a failed completion request. StatusCode is zero when
// the request never produced an HTTP response.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("llm transport: HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("llm transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// extractionMessage is the fixed text every ExtractionError reports.
const extractionMessage = "response too large or malformed to parse as job JSON"

// ExtractionError means the model's reply could not be interpreted as job JSON.
// Reply holds the raw text for debugging; it is not part of the message.
type ExtractionError struct {
	Reply string
	Err   error
}

func (e *ExtractionError) Error() string {
	return extractionMessage
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
