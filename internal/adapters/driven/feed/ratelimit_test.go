package feed

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedLimiter(now time.Time) *RateLimiter {
	r := NewRateLimiter(0, 0)
	r.now = func() time.Time { return now }
	return r
}

func response(status int, retryAfter string) *http.Response {
	resp := &http.Response{StatusCode: status, Header: http.Header{}}
	if retryAfter != "" {
		resp.Header.Set(HeaderRetryAfter, retryAfter)
	}
	return resp
}

func TestCheckResponse(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		resp      *http.Response
		wantPause time.Duration
	}{
		{"nil response", nil, 0},
		{"ok", response(http.StatusOK, ""), 0},
		{"429 seconds", response(http.StatusTooManyRequests, "90"), 90 * time.Second},
		{"429 without header", response(http.StatusTooManyRequests, ""), DefaultBackoff},
		{"429 garbage header", response(http.StatusTooManyRequests, "soon"), DefaultBackoff},
		{"503 http date", response(http.StatusServiceUnavailable, now.Add(2*time.Minute).Format(http.TimeFormat)), 2 * time.Minute},
		{"503 without header", response(http.StatusServiceUnavailable, ""), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := fixedLimiter(now)
			err := r.CheckResponse("example.com", tt.resp)

			if tt.wantPause == 0 {
				assert.NoError(t, err)
				assert.Zero(t, r.Until("example.com"))
				return
			}

			var rlErr *RateLimitError
			require.ErrorAs(t, err, &rlErr)
			assert.Equal(t, "example.com", rlErr.Host)
			assert.True(t, now.Add(tt.wantPause).Equal(rlErr.ResetAt))
			assert.Equal(t, tt.wantPause, r.Until("example.com"))
			assert.Zero(t, r.Until("other.example.com"))
		})
	}
}

func TestUntil_Expires(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	r := fixedLimiter(now)
	require.Error(t, r.CheckResponse("h", response(http.StatusTooManyRequests, "10")))

	r.now = func() time.Time { return now.Add(11 * time.Second) }

	assert.Zero(t, r.Until("h"))
	assert.Empty(t, r.resetAt)
}

func TestWait(t *testing.T) {
	t.Run("unpaused host passes", func(t *testing.T) {
		r := NewRateLimiter(0, 0)
		assert.NoError(t, r.Wait(context.Background(), "h"))
	})

	t.Run("paused host honours context", func(t *testing.T) {
		r := NewRateLimiter(0, 0)
		require.Error(t, r.CheckResponse("h", response(http.StatusTooManyRequests, "60")))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, r.Wait(ctx, "h"), context.DeadlineExceeded)
	})

	t.Run("short pause elapses", func(t *testing.T) {
		r := NewRateLimiter(0, 0)
		r.resetAt["h"] = time.Now().Add(10 * time.Millisecond)
		assert.NoError(t, r.Wait(context.Background(), "h"))
	})
}

func TestRateLimitError(t *testing.T) {
	err := &RateLimitError{Host: "example.com", ResetAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	assert.Contains(t, err.Error(), "example.com")
	assert.Contains(t, err.Error(), "2024-01-01T00:00:00Z")
	assert.True(t, IsRateLimited(err))
	assert.False(t, IsRateLimited(&HTTPError{StatusCode: 500}))
}
