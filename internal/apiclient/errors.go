package apiclient

import (
	"fmt"
	"strings"
)

// APIError is an error response decoded from the server's error envelope.
// Error() returns the server's message verbatim so notifications can surface
// it without rewording.
type APIError struct {
	Code    string
	Message string
	Details []string
	TraceID string
	Status  int
}

func (e *APIError) Error() string {
	return e.Message
}

// IsValidation reports whether the server rejected the request as invalid.
func (e *APIError) IsValidation() bool {
	return strings.HasPrefix(e.Code, "VALIDATION_")
}

// IsAuth reports whether the request failed authentication or authorization.
func (e *APIError) IsAuth() bool {
	return strings.HasPrefix(e.Code, "AUTH_")
}

// IsNotFound reports whether the requested resource does not exist.
func (e *APIError) IsNotFound() bool {
	return e.Status == 404
}

// errorEnvelope mirrors the server's error response body.
type errorEnvelope struct {
	Error struct {
		Code    string   `json:"code"`
		Message string   `json:"message"`
		Details []string `json:"details"`
		TraceID string   `json:"trace_id"`
	} `json:"error"`
}

// wrapTransportError wraps a network-level failure so callers can tell it
// apart from an API rejection.
func wrapTransportError(op string, err error) error {
	return fmt.Errorf("%s: request failed: %w", op, err)
}
