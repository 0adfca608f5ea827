package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for feedcorpus resources.
	uriScheme = "feedcorpus://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "feeds",
		Name:        "feeds",
		Description: "Subscribed feed URLs",
		MIMEType:    "application/json",
	}, s.handleFeedsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "stopwords",
		Name:        "stopwords",
		Description: "Terms excluded from weighting",
		MIMEType:    "application/json",
	}, s.handleStopWordsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "articles/{articleId}",
		Name:        "article-content",
		Description: "Plain text content of an article",
		MIMEType:    "text/plain",
	}, s.handleArticleResource)
}

// handleFeedsResource returns the subscribed feeds.
func (s *Server) handleFeedsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	feeds := []string{}
	if s.ports.Settings != nil {
		settings, err := s.ports.Settings.Get()
		if err != nil {
			return nil, fmt.Errorf("reading settings: %w", err)
		}
		feeds = append(feeds, settings.Ingest.Feeds...)
	}
	return jsonResource(req.Params.URI, feeds)
}

// handleStopWordsResource returns the current stop words.
func (s *Server) handleStopWordsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	words := s.ports.Corpus.StopWords()
	if words == nil {
		words = []string{}
	}
	return jsonResource(req.Params.URI, words)
}

// handleArticleResource returns one article as plain text.
func (s *Server) handleArticleResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractArticleID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	article, err := s.ports.Corpus.Article(id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting article: %w", err)
	}

	var b strings.Builder
	if article.Title != "" {
		fmt.Fprintf(&b, "%s\n\n", article.Title)
	}
	b.WriteString(article.Content)

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     b.String(),
		}},
	}, nil
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractArticleID extracts the ID from a URI like feedcorpus://articles/{articleId}.
func extractArticleID(uri string) string {
	const prefix = uriScheme + "articles/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	return strings.TrimPrefix(uri, prefix)
}
