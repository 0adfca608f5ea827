package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
	"github.com/custodia-labs/feedcorpus/internal/core/ports/driven"
	"github.com/custodia-labs/feedcorpus/internal/logger"
	"github.com/custodia-labs/feedcorpus/internal/metrics"
	"github.com/custodia-labs/feedcorpus/internal/normalisers/html"
)

// Ensure Source implements the interface.
var _ driven.FeedSource = (*Source)(nil)

const (
	// DefaultTimeout bounds a single feed request.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies the fetcher to feed servers.
	DefaultUserAgent = "feedcorpus/1.0 (+https://github.com/custodia-labs/feedcorpus)"

	// BreakerFailures is the number of consecutive server faults that
	// open a host's circuit.
	BreakerFailures = 3

	// BreakerTimeout is how long an open circuit rejects requests before
	// letting a probe through.
	BreakerTimeout = time.Minute

	// maxFeedSize caps the bytes read from a feed response.
	maxFeedSize = 16 << 20
)

// Config configures a Source. Zero values select the defaults.
type Config struct {
	// Client performs the requests. Timeout is applied when Client is nil.
	Client *http.Client

	// Timeout bounds a single request.
	Timeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// Rate and Burst configure the shared token bucket. A Rate of zero
	// disables proactive throttling; Retry-After is still honoured.
	Rate  float64
	Burst int

	// Metrics receives fetch observations. May be nil.
	Metrics *metrics.Metrics
}

// Source fetches RSS and Atom feeds over HTTP.
type Source struct {
	client    *http.Client
	userAgent string
	limiter   *RateLimiter
	metrics   *metrics.Metrics

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

// NewSource creates a feed source.
func NewSource(cfg Config) *Source {
	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Source{
		client:    client,
		userAgent: userAgent,
		limiter:   NewRateLimiter(cfg.Rate, cfg.Burst),
		metrics:   cfg.Metrics,
		breakers:  make(map[string]*gobreaker.CircuitBreaker),
	}
}

// Fetch retrieves the feed at rawURL and parses it.
func (s *Source) Fetch(ctx context.Context, rawURL string) (*domain.Feed, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("%w: feed url %q", domain.ErrInvalidInput, rawURL)
	}
	host := u.Host

	if err := s.limiter.Wait(ctx, host); err != nil {
		return nil, fmt.Errorf("%w: waiting for %s: %w", domain.ErrFeedUnavailable, host, err)
	}

	start := time.Now()
	result, err := s.breaker(host).Execute(func() (interface{}, error) {
		return s.fetch(ctx, rawURL, host)
	})
	elapsed := time.Since(start)

	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			s.metrics.ObserveFetch(metrics.ResultOpenCircuit, elapsed, 0)
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrFeedUnavailable, host, err)
		case IsRateLimited(err):
			s.metrics.ObserveFetch(metrics.ResultRateLimited, elapsed, 0)
		default:
			s.metrics.ObserveFetch(metrics.ResultError, elapsed, 0)
		}
		return nil, err
	}

	feed := result.(*domain.Feed)
	s.metrics.ObserveFetch(metrics.ResultOK, elapsed, len(feed.Items))
	logger.Debug("fetched %s: %d items in %s", rawURL, len(feed.Items), elapsed.Round(time.Millisecond))
	return feed, nil
}

func (s *Source) fetch(ctx context.Context, rawURL, host string) (*domain.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if err := s.limiter.CheckResponse(host, resp); err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: rawURL}
	}

	return s.Parse(ctx, rawURL, io.LimitReader(resp.Body, maxFeedSize))
}

// breaker returns the circuit breaker guarding host.
func (s *Source) breaker(host string) *gobreaker.CircuitBreaker {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cb, ok := s.breakers[host]; ok {
		return cb
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        host,
		MaxRequests: 1,
		Timeout:     BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= BreakerFailures
		},
		IsSuccessful: func(err error) bool {
			return !isServerFault(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("feed host %s circuit %s -> %s", name, from, to)
			s.metrics.SetBreakerState(name, int(to))
		},
	})
	s.breakers[host] = cb
	return cb
}

// Parse parses a feed document. origin is recorded as the feed URL.
func (s *Source) Parse(ctx context.Context, origin string, r io.Reader) (*domain.Feed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// gofeed parsers keep per-document state, so each call gets its own.
	parsed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrFeedMalformed, origin, err)
	}
	return toFeed(origin, parsed), nil
}

func toFeed(origin string, parsed *gofeed.Feed) *domain.Feed {
	feed := &domain.Feed{
		URL:   origin,
		Title: strings.TrimSpace(parsed.Title),
		Items: make([]domain.FeedItem, 0, len(parsed.Items)),
	}
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		feed.Items = append(feed.Items, toItem(item))
	}
	return feed
}

func toItem(item *gofeed.Item) domain.FeedItem {
	fields := domain.ArticleFields{
		ID:      strings.TrimSpace(item.GUID),
		Title:   item.Title,
		Link:    strings.TrimSpace(item.Link),
		Author:  authorName(item),
		Summary: item.Description,
		Content: item.Content,
	}
	if fields.ID == "" {
		fields.ID = fields.Link
	}
	if fields.Content == "" {
		fields.Content = item.Description
	}
	if item.PublishedParsed != nil {
		fields.Published = domain.FormatTimestamp(item.PublishedParsed.UTC())
	}
	if item.UpdatedParsed != nil {
		fields.Updated = domain.FormatTimestamp(item.UpdatedParsed.UTC())
	}
	if fields.Published == "" && fields.Updated != "" {
		fields.Published = fields.Updated
	}

	return domain.FeedItem{Fields: fields, Pictures: pictures(item)}
}

func authorName(item *gofeed.Item) string {
	if item.Author != nil && item.Author.Name != "" {
		return item.Author.Name
	}
	for _, author := range item.Authors {
		if author != nil && author.Name != "" {
			return author.Name
		}
	}
	return ""
}

// pictures collects the entry image, image enclosures and inline images.
func pictures(item *gofeed.Item) []string {
	var (
		out  []string
		seen = make(map[string]struct{})
	)
	add := func(u string) {
		u = strings.TrimSpace(u)
		if u == "" {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}

	if item.Image != nil {
		add(item.Image.URL)
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") {
			add(enc.URL)
		}
	}
	for _, src := range html.ImageSources(item.Content) {
		add(src)
	}
	for _, src := range html.ImageSources(item.Description) {
		add(src)
	}
	return out
}
