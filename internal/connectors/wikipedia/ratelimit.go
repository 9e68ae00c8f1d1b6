package wikipedia

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// ProactiveRate is the proactive throttle rate in requests/second.
	// Wikipedia asks API clients to stay well below abusive levels;
	// ingestion is sequential anyway so this is rarely the bottleneck.
	ProactiveRate = 5

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// RateLimiter throttles requests to the Wikipedia API. It combines a
// proactive token bucket with reactive handling of Retry-After headers.
type RateLimiter struct {
	mu      sync.Mutex
	retryAt time.Time
	bucket  *rate.Limiter
}

// NewRateLimiter creates a rate limiter with proactive throttling.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		bucket: rate.NewLimiter(rate.Limit(ProactiveRate), 1),
	}
}

// Wait blocks until it's safe to make a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(retryAt)):
		}
	}

	return nil
}

// UpdateFromResponse records server-imposed backoff from response
// headers. The API sends Retry-After on 429 and on replication lag.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}

	retryAfter := resp.Header.Get(HeaderRetryAfter)
	if retryAfter == "" {
		return
	}
	seconds, err := strconv.Atoi(retryAfter)
	if err != nil || seconds <= 0 {
		return
	}

	r.mu.Lock()
	r.retryAt = time.Now().Add(time.Duration(seconds) * time.Second)
	r.mu.Unlock()
}
