package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingToken means no API token was supplied or found in the environment
	ErrMissingToken = errors.New("missing API token")

	// ErrUnsupportedModel means the model cannot be requested from the API
	ErrUnsupportedModel = errors.New("unsupported model")

	// ErrNoChoices means the API replied without any completion choice
	ErrNoChoices = errors.New("failed to get the choice from response")
)

// ConfigError is raised before any network call when the client cannot be
// used as configured
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error (%s): %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// TransportError wraps connection, DNS, TLS and body read failures
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError is returned for non-2xx responses
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// ProtocolError is returned when the response body is not a valid
// completion envelope
type ProtocolError struct {
	Reason string
	Err    error
}

func (e *ProtocolError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid response: %s", e.Reason)
	}
	return fmt.Sprintf("invalid response: %s: %v", e.Reason, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}
