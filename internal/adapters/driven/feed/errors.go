package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
)

// RateLimitError reports that a host asked us to slow down.
type RateLimitError struct {
	Host    string
	ResetAt time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("feed: %s rate limited until %s", e.Host, e.ResetAt.Format(time.RFC3339))
}

// Unwrap lets callers match domain.ErrRateLimited.
func (e *RateLimitError) Unwrap() error {
	return domain.ErrRateLimited
}

// HTTPError reports an unexpected response status.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("feed: HTTP %d from %s", e.StatusCode, e.URL)
}

// Unwrap classifies the status as an unavailable feed.
func (e *HTTPError) Unwrap() error {
	return domain.ErrFeedUnavailable
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// isServerFault reports whether err says the remote end is unhealthy, as
// opposed to serving a document we could not parse.
func isServerFault(err error) bool {
	if err == nil {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500
	}
	switch {
	case errors.Is(err, domain.ErrFeedMalformed), IsRateLimited(err):
		return false
	case errors.Is(err, context.Canceled):
		return false
	}
	return true
}
