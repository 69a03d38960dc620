package contacts

import (
	"context"
	"fmt"
	"strings"
)

// Search runs a match lookup and returns the first matched contact.
// A nil contact with a nil error means no match.
func (s *Service) Search(ctx context.Context, req ContactSearch) (*Contact, error) {
	input := req.InputFields
	if len(input) == 0 {
		input = []map[string]any{{}}
	}
	output := req.OutputFields
	if output == nil {
		output = []string{}
	}

	body, err := s.api.Post(ctx, searchEndpoint, map[string]any{
		"matchPersonInput": input,
		"outputFields":     output,
	})
	if err != nil {
		return nil, fmt.Errorf("contact search: %w", err)
	}

	raw, err := firstMatch(body)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		s.logger.Debug().Msg("Contact search returned no match")
		return nil, nil
	}

	return decodeContact(raw)
}

// SearchByCompany collects every contact at a company matching a job title
// keyword, paging up to the client's result ceiling.
func (s *Service) SearchByCompany(ctx context.Context, req CompanySearch) ([]Contact, error) {
	title := strings.TrimSpace(req.JobTitleKeyword)
	if title == "" {
		return nil, ErrJobTitleRequired
	}
	company := strings.TrimSpace(req.CompanyName)
	if company == "" {
		return nil, ErrCompanyRequired
	}

	payload := map[string]any{
		"jobTitle":    title,
		"companyName": company,
		"rpp":         s.recordsPerPage,
	}
	if s.requiredFields != "" {
		payload["requiredFields"] = s.requiredFields
	}

	records, err := s.api.FetchPagedData(ctx, searchEndpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("company search: %w", err)
	}

	result := make([]Contact, 0, len(records))
	for _, raw := range records {
		c, err := decodeContact(raw)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("company", company).
				Msg("Skipping undecodable contact record")
			continue
		}
		result = append(result, *c)
	}

	s.logger.Info().
		Str("company", company).
		Str("title", title).
		Int("count", len(result)).
		Msg("Company search complete")

	return result, nil
}
