package feed

import (
	"fmt"
	"io"
	"strings"

	"github.com/gilliek/go-opml/opml"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
	"github.com/custodia-labs/feedcorpus/internal/core/ports/driven"
)

// Ensure OPMLReader implements the interface.
var _ driven.SubscriptionReader = (*OPMLReader)(nil)

// OPMLReader reads OPML subscription lists.
type OPMLReader struct{}

// NewOPMLReader creates a new OPML reader.
func NewOPMLReader() *OPMLReader {
	return &OPMLReader{}
}

// Read returns every outline carrying an xmlUrl, depth first, without
// duplicate URLs. Category outlines without a URL are descended into.
func (r *OPMLReader) Read(in io.Reader) ([]domain.Subscription, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("reading opml: %w", err)
	}
	doc, err := opml.NewOPML(data)
	if err != nil {
		return nil, fmt.Errorf("%w: opml: %w", domain.ErrInvalidInput, err)
	}

	var (
		subs []domain.Subscription
		seen = make(map[string]struct{})
		walk func([]opml.Outline)
	)
	walk = func(outlines []opml.Outline) {
		for _, o := range outlines {
			if u := strings.TrimSpace(o.XMLURL); u != "" {
				if _, ok := seen[u]; !ok {
					seen[u] = struct{}{}
					title := o.Title
					if title == "" {
						title = o.Text
					}
					subs = append(subs, domain.Subscription{Title: title, URL: u})
				}
			}
			walk(o.Outlines)
		}
	}
	walk(doc.Outlines())
	return subs, nil
}
