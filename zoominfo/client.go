package zoominfo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the public ZoomInfo API host
	DefaultBaseURL = "https://api.zoominfo.com"
	// DefaultTimeout bounds a single HTTP exchange
	DefaultTimeout = 30 * time.Second
	// DefaultRequestInterval keeps the client under the upstream rate limit
	DefaultRequestInterval = time.Second
	// DefaultTokenLifetime stays under the 60 minute server-side token lifetime
	DefaultTokenLifetime = 55 * time.Minute
	// DefaultMaxResults is the paging ceiling until the server reports one
	DefaultMaxResults = 1000
)

// Credentials identify the API account used for the token exchange
type Credentials struct {
	Username string
	Password string
}

// Client represents a ZoomInfo API client. It is safe for concurrent use.
type Client struct {
	baseURL     string
	credentials Credentials
	httpClient  *http.Client
	throttle    Throttle
	tokens      *tokenStore
	maxResults  int
	fetchAll    bool
	metrics     *Metrics
	logger      zerolog.Logger
}

// NewClient creates a new ZoomInfo client. No network call is made until the first request.
func NewClient(baseURL string, creds Credentials, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: zoominfo URL is required", ErrInvalidConfig)
	}
	if creds.Username == "" {
		return nil, fmt.Errorf("%w: zoominfo username is required", ErrInvalidConfig)
	}
	if creds.Password == "" {
		return nil, fmt.Errorf("%w: zoominfo password is required", ErrInvalidConfig)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	throttle := o.throttle
	if throttle == nil {
		throttle = NewIntervalThrottle(o.requestInterval)
	}

	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		credentials: creds,
		httpClient:  httpClient,
		throttle:    throttle,
		tokens:      newTokenStore(o.tokenLifetime, o.now),
		maxResults:  o.maxResults,
		fetchAll:    o.fetchAll,
		metrics:     o.metrics,
		logger:      logger,
	}, nil
}

// Get performs an authenticated GET request and returns the raw response body
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return nil, err
	}

	body, err := c.send(ctx, http.MethodGet, endpoint, params, nil, token)
	if err != nil {
		return nil, c.handleError(err)
	}

	return body, nil
}

// Post performs an authenticated POST request with a JSON body and returns the raw response body
func (c *Client) Post(ctx context.Context, endpoint string, body any) (json.RawMessage, error) {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return nil, err
	}

	if body == nil {
		body = map[string]any{}
	}

	resp, err := c.send(ctx, http.MethodPost, endpoint, nil, body, token)
	if err != nil {
		return nil, c.handleError(err)
	}

	return resp, nil
}

// send performs one throttled HTTP exchange and returns the body of a 2xx response.
// Non-2xx responses are returned as *APIError.
func (c *Client) send(ctx context.Context, method, endpoint string, params url.Values, body any, token string) ([]byte, error) {
	if err := c.throttle.Wait(ctx); err != nil {
		return nil, fmt.Errorf("throttle wait: %w", err)
	}

	requestURL := c.baseURL + endpoint
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Msg("Making ZoomInfo API request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observeRequest(method, 0, time.Since(start))
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	c.metrics.observeRequest(method, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(respBody),
			Body:       string(respBody),
		}
	}

	return respBody, nil
}

// errorMessage extracts the "message" field of an error body, if any
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}
