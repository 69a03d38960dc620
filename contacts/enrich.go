package contacts

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// CheckHasMoved looks up whether a person has left their listed company.
// An unmatched id yields a result with Found set to false.
func (s *Service) CheckHasMoved(ctx context.Context, personID ID) (HasMoved, error) {
	personID = ID(strings.TrimSpace(personID.String()))
	if personID == "" {
		return HasMoved{}, ErrPersonIDRequired
	}

	body, err := s.api.Post(ctx, enrichEndpoint, map[string]any{
		"matchPersonInput": []map[string]any{{"personId": personID.String()}},
		"outputFields":     HasMovedOutputFields,
	})
	if err != nil {
		return HasMoved{}, EnrichError{PersonID: personID, Err: err}
	}

	raw, err := firstMatch(body)
	if err != nil {
		return HasMoved{}, EnrichError{PersonID: personID, Err: err}
	}

	result := HasMoved{PersonID: personID}
	if raw == nil {
		return result, nil
	}

	c, err := decodeContact(raw)
	if err != nil {
		return HasMoved{}, EnrichError{PersonID: personID, Err: err}
	}
	if c.ID == "" {
		c.ID = personID
	}

	result.Contact = *c
	result.Found = true
	return result, nil
}

// CheckHasMovedBatch enriches several people concurrently. Individual
// failures are collected rather than aborting the batch.
func (s *Service) CheckHasMovedBatch(ctx context.Context, personIDs []ID) BatchHasMovedResult {
	result := BatchHasMovedResult{Requested: len(personIDs)}
	if len(personIDs) == 0 {
		return result
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	var mu sync.Mutex
	found := make([]*HasMoved, len(personIDs))
	failed := make([]*EnrichError, len(personIDs))

	for i, id := range personIDs {
		g.Go(func() error {
			res, err := s.CheckHasMoved(ctx, id)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				var enrichErr EnrichError
				if !errors.As(err, &enrichErr) {
					enrichErr = EnrichError{PersonID: id, Err: err}
				}
				failed[i] = &enrichErr

				s.logger.Warn().
					Err(err).
					Str("person_id", id.String()).
					Msg("Failed to check if person has moved")
				return nil
			}

			found[i] = &res
			return nil
		})
	}

	_ = g.Wait()

	for i := range personIDs {
		switch {
		case found[i] != nil:
			result.Results = append(result.Results, *found[i])
		case failed[i] != nil:
			result.Failed = append(result.Failed, *failed[i])
		}
	}

	return result
}
