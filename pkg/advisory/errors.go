package advisory

import (
	"errors"
	"fmt"
)

// Sentinel errors matching the advisory failure taxonomy.
var (
	// ErrNoAPIKey is returned when the API key is missing.
	ErrNoAPIKey = errors.New("advisory: API key required")

	// ErrTimeout is returned when the request exceeds the configured timeout.
	ErrTimeout = errors.New("advisory: request timed out")

	// ErrTransport is returned on network failures and API error responses.
	ErrTransport = errors.New("advisory: transport error")

	// ErrMalformedResponse is returned when the response cannot be parsed
	// or carries no instruction text.
	ErrMalformedResponse = errors.New("advisory: malformed response")
)

// APIError represents an error response from the advisory API.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Message is the error message from the API.
	Message string

	// Provider identifies which backend returned the error.
	Provider string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("advisory [%s]: API error %d: %s", e.Provider, e.StatusCode, e.Message)
}

// Unwrap classifies API error responses as transport failures.
func (e *APIError) Unwrap() error {
	return ErrTransport
}

// IsRateLimited returns true if this is a rate limit error (HTTP 429).
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == 429
}

// IsUnauthorized returns true if this is an authentication error (HTTP 401).
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401
}

// IsServerError returns true if this is a server-side error (HTTP 5xx).
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// ProviderError wraps an error with provider context.
type ProviderError struct {
	Provider string
	Err      error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("advisory [%s]: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// WrapError wraps an error with provider context.
func WrapError(provider string, err error) error {
	if err == nil {
		return nil
	}
	return &ProviderError{Provider: provider, Err: err}
}
