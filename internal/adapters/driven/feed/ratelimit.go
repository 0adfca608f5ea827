package feed

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultRate is the proactive request rate across all hosts.
	DefaultRate = 5.0

	// DefaultBurst lets a batch of feeds start together.
	DefaultBurst = 4

	// DefaultBackoff is used when a 429 carries no usable Retry-After.
	DefaultBackoff = 30 * time.Second

	// HeaderRetryAfter is the retry-after header (seconds or HTTP date).
	HeaderRetryAfter = "Retry-After"
)

// RateLimiter throttles feed requests in two ways: a token bucket shared
// by all hosts, and a per-host pause set when a server answers 429 or 503
// with Retry-After.
type RateLimiter struct {
	mu      sync.Mutex
	bucket  *rate.Limiter
	resetAt map[string]time.Time
	now     func() time.Time
}

// NewRateLimiter creates a limiter allowing perSecond requests with the
// given burst. A non-positive perSecond disables the token bucket.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		bucket:  rate.NewLimiter(limit, burst),
		resetAt: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Wait blocks until a request to host may be sent.
func (r *RateLimiter) Wait(ctx context.Context, host string) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	if wait := r.Until(host); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}

// Until returns how long host is still paused.
func (r *RateLimiter) Until(host string) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	reset, ok := r.resetAt[host]
	if !ok {
		return 0
	}
	wait := reset.Sub(r.now())
	if wait <= 0 {
		delete(r.resetAt, host)
		return 0
	}
	return wait
}

// CheckResponse records a Retry-After pause for host and returns a
// RateLimitError when the response says the host is throttling us.
func (r *RateLimiter) CheckResponse(host string, resp *http.Response) error {
	if resp == nil {
		return nil
	}
	if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusServiceUnavailable {
		return nil
	}

	now := r.now()
	reset, ok := parseRetryAfter(resp.Header.Get(HeaderRetryAfter), now)
	if !ok {
		if resp.StatusCode != http.StatusTooManyRequests {
			return nil
		}
		reset = now.Add(DefaultBackoff)
	}

	r.mu.Lock()
	r.resetAt[host] = reset
	r.mu.Unlock()

	return &RateLimitError{Host: host, ResetAt: reset}
}

// parseRetryAfter accepts delay seconds or an HTTP date.
func parseRetryAfter(value string, now time.Time) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds >= 0 {
		return now.Add(time.Duration(seconds) * time.Second), true
	}
	if at, err := http.ParseTime(value); err == nil {
		return at, true
	}
	return time.Time{}, false
}
