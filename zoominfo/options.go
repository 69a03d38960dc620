package zoominfo

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	httpClient      *http.Client
	timeout         time.Duration
	requestInterval time.Duration
	throttle        Throttle
	tokenLifetime   time.Duration
	maxResults      int
	fetchAll        bool
	metrics         *Metrics
	now             func() time.Time
}

func defaultOptions() clientOptions {
	return clientOptions{
		timeout:         DefaultTimeout,
		requestInterval: DefaultRequestInterval,
		tokenLifetime:   DefaultTokenLifetime,
		maxResults:      DefaultMaxResults,
		fetchAll:        true,
		now:             time.Now,
	}
}

// WithHTTPClient replaces the underlying HTTP client. The timeout option is ignored.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithRequestInterval sets the minimum interval between two API calls.
// Zero disables throttling.
func WithRequestInterval(interval time.Duration) Option {
	return func(o *clientOptions) {
		if interval >= 0 {
			o.requestInterval = interval
		}
	}
}

// WithThrottle installs a custom throttle, overriding WithRequestInterval.
func WithThrottle(throttle Throttle) Option {
	return func(o *clientOptions) {
		o.throttle = throttle
	}
}

// WithTokenLifetime sets how long an issued token is reused before re-authenticating.
func WithTokenLifetime(lifetime time.Duration) Option {
	return func(o *clientOptions) {
		if lifetime > 0 {
			o.tokenLifetime = lifetime
		}
	}
}

// WithMaxResults sets the initial result ceiling for paged searches.
func WithMaxResults(maxResults int) Option {
	return func(o *clientOptions) {
		if maxResults > 0 {
			o.maxResults = maxResults
		}
	}
}

// WithFetchAll controls whether paged searches continue past the first page.
func WithFetchAll(fetchAll bool) Option {
	return func(o *clientOptions) {
		o.fetchAll = fetchAll
	}
}

// WithMetrics records request metrics into m.
func WithMetrics(m *Metrics) Option {
	return func(o *clientOptions) {
		o.metrics = m
	}
}

// WithClock overrides the time source used for token expiry.
func WithClock(now func() time.Time) Option {
	return func(o *clientOptions) {
		if now != nil {
			o.now = now
		}
	}
}
