package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
)

// FeedSource retrieves and parses RSS and Atom feeds.
type FeedSource interface {
	// Fetch retrieves the feed at url and parses it.
	Fetch(ctx context.Context, url string) (*domain.Feed, error)

	// Parse parses a feed document already in hand.
	// origin is recorded as the feed URL.
	Parse(ctx context.Context, origin string, r io.Reader) (*domain.Feed, error)
}

// SubscriptionReader reads a list of feed subscriptions.
type SubscriptionReader interface {
	// Read parses a subscription document.
	Read(r io.Reader) ([]domain.Subscription, error)
}
