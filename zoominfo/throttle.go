package zoominfo

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Throttle paces outgoing API calls. Wait blocks until the next call may start.
type Throttle interface {
	Wait(ctx context.Context) error
}

// IntervalThrottle enforces a minimum interval between the start of two calls.
type IntervalThrottle struct {
	limiter  *rate.Limiter
	interval time.Duration
}

// NewIntervalThrottle creates a throttle allowing one call per interval.
// A non-positive interval never blocks.
func NewIntervalThrottle(interval time.Duration) *IntervalThrottle {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &IntervalThrottle{
		limiter:  rate.NewLimiter(limit, 1),
		interval: interval,
	}
}

// Wait blocks until the interval since the previous call has elapsed or ctx is done.
func (t *IntervalThrottle) Wait(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}

// Interval returns the configured minimum interval.
func (t *IntervalThrottle) Interval() time.Duration {
	return t.interval
}
