package zoominfo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"
)

const authEndpoint = "/authenticate"

type authRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	JWT string `json:"jwt"`
}

// tokenStore holds the cached bearer token. Writes happen only on a successful
// exchange and on a 401 from a data call.
type tokenStore struct {
	mu       sync.RWMutex
	token    string
	expiry   time.Time
	lifetime time.Duration
	now      func() time.Time
	group    singleflight.Group
}

func newTokenStore(lifetime time.Duration, now func() time.Time) *tokenStore {
	return &tokenStore{
		lifetime: lifetime,
		now:      now,
	}
}

// current returns the token if one is cached and unexpired
func (s *tokenStore) current() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token != "" && s.now().Before(s.expiry) {
		return s.token, true
	}
	return "", false
}

// store caches token issued at the given time and returns its expiry.
// A JWT exp claim between issued and issued+lifetime takes precedence; an exp
// at or before issued is ignored.
func (s *tokenStore) store(token string, issued time.Time) time.Time {
	expiry := issued.Add(s.lifetime)
	if exp, ok := jwtExpiry(token); ok && exp.After(issued) && exp.Before(expiry) {
		expiry = exp
	}

	s.mu.Lock()
	s.token = token
	s.expiry = expiry
	s.mu.Unlock()

	return expiry
}

func (s *tokenStore) invalidate() {
	s.mu.Lock()
	s.token = ""
	s.expiry = time.Time{}
	s.mu.Unlock()
}

func (s *tokenStore) expiryTime() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == "" {
		return time.Time{}, false
	}
	return s.expiry, true
}

// EnsureAuthenticated guarantees a usable token is cached, exchanging the
// credentials when none is present or the cached one has expired.
func (c *Client) EnsureAuthenticated(ctx context.Context) error {
	_, err := c.ensureToken(ctx)
	return err
}

// SessionExpiry reports when the cached token stops being reused
func (c *Client) SessionExpiry() (time.Time, bool) {
	return c.tokens.expiryTime()
}

func (c *Client) ensureToken(ctx context.Context) (string, error) {
	if token, ok := c.tokens.current(); ok {
		return token, nil
	}

	// Concurrent callers share one exchange. It runs detached from the
	// leader's cancellation and is bounded by the HTTP client timeout.
	ch := c.tokens.group.DoChan(authEndpoint, func() (any, error) {
		if token, ok := c.tokens.current(); ok {
			return token, nil
		}
		return c.authenticate(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// authenticate exchanges the credentials for a new token. Failures are not retried.
func (c *Client) authenticate(ctx context.Context) (string, error) {
	c.logger.Debug().Str("username", c.credentials.Username).Msg("Authenticating with ZoomInfo API")

	token, err := c.exchangeCredentials(ctx)
	c.metrics.observeAuthentication(err)
	if err != nil {
		c.logger.Error().Err(err).Msg("Authentication failed")
		return "", fmt.Errorf("%w: %w", ErrAuthentication, err)
	}

	expiry := c.tokens.store(token, c.tokens.now())

	c.logger.Debug().Time("expires", expiry).Msg("Authenticated with ZoomInfo API")
	return token, nil
}

func (c *Client) exchangeCredentials(ctx context.Context) (string, error) {
	body, err := c.send(ctx, http.MethodPost, authEndpoint, nil, authRequest{
		Username: c.credentials.Username,
		Password: c.credentials.Password,
	}, "")
	if err != nil {
		return "", err
	}

	var resp authResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse authentication response: %w", err)
	}
	if resp.JWT == "" {
		return "", ErrMissingToken
	}

	return resp.JWT, nil
}

// jwtExpiry reads the exp claim without verifying the signature
func jwtExpiry(token string) (time.Time, bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
