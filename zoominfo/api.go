package zoominfo

import (
	"context"
	"encoding/json"
	"net/url"
)

// API defines the primitives endpoint helpers build on
type API interface {
	// Get performs an authenticated GET request
	Get(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error)

	// Post performs an authenticated POST request with a JSON body
	Post(ctx context.Context, endpoint string, body any) (json.RawMessage, error)

	// FetchPagedData collects all pages of a POST search endpoint
	FetchPagedData(ctx context.Context, endpoint string, payload map[string]any) ([]json.RawMessage, error)
}

var _ API = (*Client)(nil)
