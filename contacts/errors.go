package contacts

import (
	"errors"
	"fmt"
)

var (
	// ErrJobTitleRequired is returned when a company search has no title keyword
	ErrJobTitleRequired = errors.New("job title not set")

	// ErrCompanyRequired is returned when a company search has no company name
	ErrCompanyRequired = errors.New("company name not set")

	// ErrPersonIDRequired is returned when an enrichment has no person id
	ErrPersonIDRequired = errors.New("person id not set")

	// ErrUnexpectedResponse is returned when a response body cannot be decoded
	ErrUnexpectedResponse = errors.New("unexpected response from ZoomInfo")
)

// EnrichError contains information about a failed enrichment
type EnrichError struct {
	PersonID ID
	Err      error
}

// Error implements the error interface
func (e EnrichError) Error() string {
	return fmt.Sprintf("failed to enrich person %s: %v", e.PersonID, e.Err)
}

func (e EnrichError) Unwrap() error {
	return e.Err
}
