package zoominfo

import (
	"bytes"
	"context"
	"encoding/json"
	"maps"
	"net/http"

	"github.com/google/uuid"
)

// PagedResponse is the envelope returned by paged search endpoints
type PagedResponse struct {
	Data         json.RawMessage `json:"data"`
	MaxResults   int             `json:"maxResults,omitempty"`
	TotalResults int             `json:"totalResults,omitempty"`
}

// FetchPagedData posts payload to endpoint page by page, injecting the page
// number, and returns every record collected.
//
// Paging continues while fetch-all is enabled and fewer records than the
// current maxResults ceiling have been collected. totalResults is recorded but
// never stops the loop. At most maxResults pages are requested. A failed page
// ends the loop and the records gathered so far are returned without an error;
// only a failure to authenticate before the first page is returned to the caller.
func (c *Client) FetchPagedData(ctx context.Context, endpoint string, payload map[string]any) ([]json.RawMessage, error) {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return nil, err
	}

	logger := c.logger.With().
		Str("run_id", uuid.NewString()).
		Str("endpoint", endpoint).
		Logger()

	records := make([]json.RawMessage, 0)
	page := 1
	maxResults := c.maxResults
	totalResults := 0

	for {
		if page > 1 {
			if token, err = c.ensureToken(ctx); err != nil {
				break
			}
		}

		body := make(map[string]any, len(payload)+1)
		maps.Copy(body, payload)
		body["page"] = page

		resp, err := c.send(ctx, http.MethodPost, endpoint, nil, body, token)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				logger.Warn().
					Err(ctxErr).
					Int("page", page).
					Int("total", len(records)).
					Msg("Paged fetch cancelled, returning partial results")
				break
			}
			c.handleError(err)
			break
		}

		var parsed PagedResponse
		if err := json.Unmarshal(resp, &parsed); err != nil {
			c.handleError(err)
			break
		}

		if parsed.MaxResults > 0 {
			maxResults = parsed.MaxResults
		}
		if parsed.TotalResults > 0 {
			totalResults = parsed.TotalResults
		}

		before := len(records)
		records = appendData(records, parsed.Data)
		if len(records) > maxResults {
			records = records[:maxResults]
		}
		c.metrics.observePage(len(records) - before)

		logger.Debug().
			Int("page", page).
			Int("count", len(records)-before).
			Int("total", len(records)).
			Int("max_results", maxResults).
			Int("total_results", totalResults).
			Msg("Retrieved page from ZoomInfo")

		page++

		if !c.fetchAll || len(records) >= maxResults {
			break
		}
		// Pages that add nothing never reach the ceiling; cap the page count at it.
		if page > maxResults {
			logger.Warn().
				Int("pages", page-1).
				Int("total", len(records)).
				Msg("Page limit reached before result ceiling")
			break
		}
	}

	logger.Debug().
		Int("pages", page-1).
		Int("records", len(records)).
		Msg("Paged fetch finished")

	return records, nil
}

// appendData appends the elements of an array, or any other non-null value as
// a single record.
func appendData(records []json.RawMessage, data json.RawMessage) []json.RawMessage {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return records
	}

	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err == nil {
			return append(records, items...)
		}
	}

	return append(records, json.RawMessage(trimmed))
}
