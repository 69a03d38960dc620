package zoominfo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name    string
		baseURL string
		creds   Credentials
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			baseURL: "https://api.zoominfo.com/",
			creds:   Credentials{Username: "user", Password: "pass"},
		},
		{
			name:    "missing URL",
			creds:   Credentials{Username: "user", Password: "pass"},
			wantErr: true,
			errMsg:  "URL is required",
		},
		{
			name:    "missing username",
			baseURL: DefaultBaseURL,
			creds:   Credentials{Password: "pass"},
			wantErr: true,
			errMsg:  "username is required",
		},
		{
			name:    "missing password",
			baseURL: DefaultBaseURL,
			creds:   Credentials{Username: "user"},
			wantErr: true,
			errMsg:  "password is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.baseURL, tt.creds, logger)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "https://api.zoominfo.com", client.baseURL)
			assert.Equal(t, DefaultMaxResults, client.maxResults)
			assert.True(t, client.fetchAll)
			assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
		})
	}
}

func TestClientOptions(t *testing.T) {
	creds := Credentials{Username: "user", Password: "pass"}

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient(DefaultBaseURL, creds, zerolog.Nop(), WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		custom := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient(DefaultBaseURL, creds, zerolog.Nop(), WithHTTPClient(custom))
		require.NoError(t, err)
		assert.Same(t, custom, client.httpClient)
	})

	t.Run("with request interval", func(t *testing.T) {
		client, err := NewClient(DefaultBaseURL, creds, zerolog.Nop(), WithRequestInterval(250*time.Millisecond))
		require.NoError(t, err)
		throttle, ok := client.throttle.(*IntervalThrottle)
		require.True(t, ok)
		assert.Equal(t, 250*time.Millisecond, throttle.Interval())
	})

	t.Run("with max results and fetch all", func(t *testing.T) {
		client, err := NewClient(DefaultBaseURL, creds, zerolog.Nop(), WithMaxResults(50), WithFetchAll(false))
		require.NoError(t, err)
		assert.Equal(t, 50, client.maxResults)
		assert.False(t, client.fetchAll)
	})

	t.Run("non-positive max results keeps default", func(t *testing.T) {
		client, err := NewClient(DefaultBaseURL, creds, zerolog.Nop(), WithMaxResults(0))
		require.NoError(t, err)
		assert.Equal(t, DefaultMaxResults, client.maxResults)
	})
}

func TestGet(t *testing.T) {
	server := newTestServer(t, "abc", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/x", r.URL.Path)
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		assert.Equal(t, "acme", r.URL.Query().Get("company"))
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	client := newTestClient(t, server.URL)

	body, err := client.Get(context.Background(), "/x", url.Values{"company": {"acme"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, int32(1), server.authCalls.Load())
}

func TestPost(t *testing.T) {
	t.Run("sends JSON body", func(t *testing.T) {
		server := newTestServer(t, "abc", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "CEO", body["jobTitle"])
			writeJSON(w, http.StatusOK, map[string]any{"data": []int{1, 2}})
		})
		client := newTestClient(t, server.URL)

		body, err := client.Post(context.Background(), "/search/contact", map[string]any{"jobTitle": "CEO"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"data":[1,2]}`, string(body))
	})

	t.Run("nil body sends empty object", func(t *testing.T) {
		server := newTestServer(t, "abc", func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Empty(t, body)
			writeJSON(w, http.StatusOK, map[string]any{})
		})
		client := newTestClient(t, server.URL)

		_, err := client.Post(context.Background(), "/x", nil)
		require.NoError(t, err)
	})

	t.Run("token reused across calls", func(t *testing.T) {
		server := newTestServer(t, "abc", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{})
		})
		client := newTestClient(t, server.URL)

		for range 3 {
			_, err := client.Post(context.Background(), "/x", map[string]any{})
			require.NoError(t, err)
		}
		assert.Equal(t, int32(1), server.authCalls.Load())
		assert.Equal(t, int32(3), server.dataCalls.Load())
	})
}

func TestUnauthorizedClearsToken(t *testing.T) {
	calls := 0
	server := newTestServer(t, "abc", func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "token expired"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	client := newTestClient(t, server.URL)

	_, err := client.Post(context.Background(), "/x", nil)
	require.Error(t, err)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusUnauthorized, reqErr.StatusCode)

	_, ok := client.SessionExpiry()
	assert.False(t, ok, "401 must clear the cached token")

	_, err = client.Get(context.Background(), "/x", nil)
	require.NoError(t, err)
	assert.Equal(t, int32(2), server.authCalls.Load())
}

func TestRequestErrors(t *testing.T) {
	tests := []struct {
		status  int
		message string
	}{
		{http.StatusBadRequest, "request failed with status 400"},
		{http.StatusForbidden, "request failed with status 403"},
		{http.StatusNotFound, "request failed with status 404"},
		{http.StatusTooManyRequests, "request failed with status 429"},
		{http.StatusInternalServerError, "request failed with status 500"},
		{http.StatusServiceUnavailable, "request failed with status 503"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			server := newTestServer(t, "abc", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, map[string]string{"message": "nope"})
			})
			client := newTestClient(t, server.URL)

			_, err := client.Get(context.Background(), "/x", nil)
			require.Error(t, err)
			assert.EqualError(t, err, tt.message)

			var reqErr *RequestError
			require.True(t, errors.As(err, &reqErr))
			assert.Equal(t, tt.status, reqErr.StatusCode)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, "nope", apiErr.Message)

			_, ok := client.SessionExpiry()
			assert.True(t, ok, "only a 401 clears the token")
		})
	}
}

func TestTransportError(t *testing.T) {
	server := newTestServer(t, "abc", func(w http.ResponseWriter, r *http.Request) {
		hj, ok := w.(http.Hijacker)
		require.True(t, ok)
		conn, _, err := hj.Hijack()
		require.NoError(t, err)
		conn.Close()
	})
	client := newTestClient(t, server.URL)

	_, err := client.Post(context.Background(), "/x", nil)
	require.Error(t, err)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, 0, reqErr.StatusCode)
	assert.Contains(t, err.Error(), "request failed")
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	server := newTestServer(t, "abc", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": []int{1, 2, 3}, "maxResults": 3})
	})
	client := newTestClient(t, server.URL, WithMetrics(metrics))

	_, err := client.FetchPagedData(context.Background(), "/search/contact", nil)
	require.NoError(t, err)
	_, err = client.Get(context.Background(), "/missing", nil)
	require.Error(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.authentications.WithLabelValues("success")))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.requests.WithLabelValues(http.MethodPost, "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.requests.WithLabelValues(http.MethodGet, "404")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.pages))
	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.records))
}

func TestAPIError(t *testing.T) {
	err := &APIError{StatusCode: 401, Message: "expired"}
	assert.Equal(t, "zoominfo API error: status 401: expired", err.Error())
	assert.True(t, err.IsUnauthorized())

	err = &APIError{StatusCode: 403}
	assert.Equal(t, "zoominfo API error: status 403", err.Error())
	assert.False(t, err.IsUnauthorized())
}
