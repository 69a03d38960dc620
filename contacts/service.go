package contacts

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/s0up4200/ziclient/zoominfo"
)

const (
	searchEndpoint = "/search/contact"
	enrichEndpoint = "/enrich/contact"

	// DefaultRequiredFields limits company searches to contacts with an email
	DefaultRequiredFields = "email"
	// DefaultRecordsPerPage is the rpp sent with company searches
	DefaultRecordsPerPage = 100
	// DefaultConcurrency bounds parallel enrich lookups
	DefaultConcurrency = 4
)

// HasMovedOutputFields are the attributes requested by has-moved enrichment
var HasMovedOutputFields = []string{"email", "companyId", "companyWebsite", "personHasMoved", "jobTitle"}

// Service runs contact searches and enrichments over a ZoomInfo client
type Service struct {
	api            zoominfo.API
	logger         zerolog.Logger
	requiredFields string
	recordsPerPage int
	concurrency    int
}

// Option configures a Service
type Option func(*Service)

// WithRequiredFields overrides the requiredFields filter of company searches.
// An empty value drops the filter.
func WithRequiredFields(fields string) Option {
	return func(s *Service) {
		s.requiredFields = fields
	}
}

// WithRecordsPerPage overrides the page size of company searches
func WithRecordsPerPage(rpp int) Option {
	return func(s *Service) {
		if rpp > 0 {
			s.recordsPerPage = rpp
		}
	}
}

// WithConcurrency sets how many enrich lookups run at once
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewService creates a contact service
func NewService(api zoominfo.API, logger zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		api:            api,
		logger:         logger,
		requiredFields: DefaultRequiredFields,
		recordsPerPage: DefaultRecordsPerPage,
		concurrency:    DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// firstMatch narrows a match response to data.result[0].data[0].
// It returns nil when the API matched nothing.
func firstMatch(body json.RawMessage) (json.RawMessage, error) {
	var resp matchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}

	if len(resp.Data.Result) == 0 || len(resp.Data.Result[0].Data) == 0 {
		return nil, nil
	}
	return resp.Data.Result[0].Data[0], nil
}

func decodeContact(raw json.RawMessage) (*Contact, error) {
	var c Contact
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}
	return &c, nil
}
