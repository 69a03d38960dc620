package zoominfo

import (
	"errors"
	"net/http"
)

// errorCategory labels a failed exchange in logs
type errorCategory string

const (
	categoryBadRequest   errorCategory = "bad_request"
	categoryUnauthorized errorCategory = "unauthorized"
	categoryForbidden    errorCategory = "forbidden"
	categoryRateLimited  errorCategory = "rate_limited"
	categoryServerError  errorCategory = "server_error"
	categoryUnknown      errorCategory = "unknown"
)

func classifyStatus(status int) errorCategory {
	switch status {
	case http.StatusBadRequest:
		return categoryBadRequest
	case http.StatusUnauthorized:
		return categoryUnauthorized
	case http.StatusForbidden:
		return categoryForbidden
	case http.StatusTooManyRequests:
		return categoryRateLimited
	case http.StatusInternalServerError:
		return categoryServerError
	default:
		return categoryUnknown
	}
}

// handleError logs a failed exchange by category and converts it into a
// *RequestError. A 401 also drops the cached token.
func (c *Client) handleError(err error) error {
	status := 0
	message := err.Error()

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		status = apiErr.StatusCode
		if apiErr.Message != "" {
			message = apiErr.Message
		}
	}

	category := classifyStatus(status)
	event := c.logger.Error().
		Int("status", status).
		Str("category", string(category))

	switch category {
	case categoryBadRequest:
		event.Msgf("Bad Request: %s", message)
	case categoryUnauthorized:
		c.tokens.invalidate()
		event.Msg("Unauthorized: invalid credentials or token expired")
	case categoryForbidden:
		event.Msg("Forbidden: access denied")
	case categoryRateLimited:
		event.Msg("Rate limit exceeded, please try again later")
	case categoryServerError:
		event.Msg("Server error, please contact ZoomInfo support")
	default:
		event.Msgf("Error (%d): %s", status, message)
	}

	return &RequestError{StatusCode: status, Err: err}
}
