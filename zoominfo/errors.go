package zoominfo

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid zoominfo configuration")
	// ErrAuthentication indicates the credential exchange failed
	ErrAuthentication = errors.New("failed to authenticate with ZoomInfo API")
	// ErrMissingToken indicates the authentication response carried no token
	ErrMissingToken = errors.New("authentication response did not contain a token")
)

// APIError represents a non-2xx response from the ZoomInfo API
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("zoominfo API error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("zoominfo API error: status %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized checks if the error indicates an expired or invalid token
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// RequestError is the uniform failure returned for any failed data call.
// StatusCode is 0 when the request never produced a response.
type RequestError struct {
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("request failed: %v", e.Err)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
