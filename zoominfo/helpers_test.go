package zoominfo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// testServer serves /authenticate with a fixed token and hands every other
// request to handler.
type testServer struct {
	*httptest.Server
	authCalls atomic.Int32
	dataCalls atomic.Int32
}

func newTestServer(t *testing.T, token string, handler http.HandlerFunc) *testServer {
	t.Helper()

	ts := &testServer{}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == authEndpoint {
			ts.authCalls.Add(1)
			var creds authRequest
			if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Username == "" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"jwt": token})
			return
		}
		ts.dataCalls.Add(1)
		if handler == nil {
			t.Errorf("unexpected request to %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(ts.Close)

	return ts
}

func newTestClient(t *testing.T, baseURL string, opts ...Option) *Client {
	t.Helper()

	opts = append([]Option{WithRequestInterval(0)}, opts...)
	client, err := NewClient(baseURL, Credentials{Username: "user", Password: "pass"}, zerolog.Nop(), opts...)
	require.NoError(t, err)
	return client
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
