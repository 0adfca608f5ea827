package mcp

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
)

const (
	defaultTermLimit    = 10
	defaultArticleLimit = 20
	defaultWindow       = 24 * time.Hour
)

// TermWeightOutput is one weighted term.
type TermWeightOutput struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

// TermsOutput is the output schema for the term ranking tools.
type TermsOutput struct {
	Terms []TermWeightOutput `json:"terms"`
	Count int                `json:"count"`
}

// MostRelevantTermsInput is the input schema for most_relevant_terms.
type MostRelevantTermsInput struct {
	K int `json:"k,omitempty" jsonschema:"number of terms to return (default 10)"`
}

// FindArticlesInput is the input schema for find_articles.
type FindArticlesInput struct {
	Terms []string `json:"terms" jsonschema:"terms to look for in article content"`
	Limit int      `json:"limit,omitempty" jsonschema:"maximum number of articles to return (default 20)"`
}

// ArticleOutput summarises an article.
type ArticleOutput struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Link      string  `json:"link,omitempty"`
	Author    string  `json:"author,omitempty"`
	Published string  `json:"published"`
	Updated   string  `json:"updated"`
	Score     float64 `json:"score,omitempty"`
}

// ArticlesOutput is the output schema for the article listing tools.
type ArticlesOutput struct {
	Articles []ArticleOutput `json:"articles"`
	Count    int             `json:"count"`
	Total    int             `json:"total"`
}

// ListArticlesInput is the input schema for list_articles.
type ListArticlesInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of articles to return (default 20)"`
}

// ArticlesNearDateInput is the input schema for articles_near_date.
type ArticlesNearDateInput struct {
	Date   string `json:"date" jsonschema:"ISO-8601 date or timestamp"`
	Window string `json:"window,omitempty" jsonschema:"half-width of the window as a duration such as 36h (default 24h)"`
	K      int    `json:"k,omitempty" jsonschema:"number of terms to return (default 10)"`
}

// HotTermsInput is the input schema for hot_terms.
type HotTermsInput struct {
	Start   string `json:"start,omitempty" jsonschema:"ISO-8601 start of the span (default: earliest article)"`
	End     string `json:"end,omitempty" jsonschema:"ISO-8601 end of the span (default: latest article)"`
	Samples int    `json:"samples,omitempty" jsonschema:"number of sample dates (default 10)"`
	K       int    `json:"k,omitempty" jsonschema:"terms kept per sample (default 10)"`
}

// HotTermRow holds one term's weight at every sample date.
type HotTermRow struct {
	Term    string    `json:"term"`
	Weights []float64 `json:"weights"`
}

// HotTermsOutput is the output schema for hot_terms.
type HotTermsOutput struct {
	Dates  []string     `json:"dates"`
	Window string       `json:"window"`
	Terms  []HotTermRow `json:"terms"`
}

// TermWeightingInput is the input schema for term_weighting.
type TermWeightingInput struct {
	Terms      []string `json:"terms,omitempty" jsonschema:"terms to weigh (default: every term of the selected articles)"`
	ArticleIDs []string `json:"article_ids,omitempty" jsonschema:"articles to weigh over (default: all)"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "most_relevant_terms",
		Description: "Terms with the highest inverse document frequency across the corpus",
	}, s.handleMostRelevantTerms)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_articles",
		Description: "Articles whose content contains any of the terms, best match first",
	}, s.handleFindArticles)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_articles",
		Description: "Articles in the corpus in arrival order",
	}, s.handleListArticles)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "articles_near_date",
		Description: "Most relevant terms among articles published or updated near a date",
	}, s.handleArticlesNearDate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "hot_terms",
		Description: "Most relevant terms sampled at evenly spaced dates",
	}, s.handleHotTerms)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "term_weighting",
		Description: "Inverse document frequency of terms over a set of articles",
	}, s.handleTermWeighting)
}

func (s *Server) handleMostRelevantTerms(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input MostRelevantTermsInput,
) (*mcp.CallToolResult, TermsOutput, error) {
	k := input.K
	if k <= 0 {
		k = defaultTermLimit
	}

	weights, err := s.ports.Corpus.MostRelevantTerms(k)
	if err != nil {
		return nil, TermsOutput{}, err
	}
	return nil, termsOutput(weights), nil
}

func (s *Server) handleFindArticles(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input FindArticlesInput,
) (*mcp.CallToolResult, ArticlesOutput, error) {
	if len(input.Terms) == 0 {
		return nil, ArticlesOutput{}, fmt.Errorf("%w: at least one term is required", domain.ErrInvalidInput)
	}

	scores := s.ports.Corpus.FindArticles(input.Terms)
	output := ArticlesOutput{Articles: []ArticleOutput{}, Total: len(scores)}
	for i := range capped(len(scores), input.Limit) {
		out := articleOutput(&scores[i].Article)
		out.Score = scores[i].Score
		output.Articles = append(output.Articles, out)
	}
	output.Count = len(output.Articles)
	return nil, output, nil
}

func (s *Server) handleListArticles(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ListArticlesInput,
) (*mcp.CallToolResult, ArticlesOutput, error) {
	articles := s.ports.Corpus.Articles()
	output := ArticlesOutput{Articles: []ArticleOutput{}, Total: len(articles)}
	for i := range capped(len(articles), input.Limit) {
		output.Articles = append(output.Articles, articleOutput(&articles[i]))
	}
	output.Count = len(output.Articles)
	return nil, output, nil
}

func (s *Server) handleArticlesNearDate(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ArticlesNearDateInput,
) (*mcp.CallToolResult, TermsOutput, error) {
	date, err := domain.ParseTimestamp(input.Date)
	if err != nil {
		return nil, TermsOutput{}, err
	}
	window := defaultWindow
	if input.Window != "" {
		if window, err = time.ParseDuration(input.Window); err != nil || window < 0 {
			return nil, TermsOutput{}, fmt.Errorf("%w: window %q", domain.ErrInvalidInput, input.Window)
		}
	}
	k := input.K
	if k <= 0 {
		k = defaultTermLimit
	}

	weights, err := s.ports.Corpus.ArticlesNearDate(date, window, k)
	if err != nil {
		return nil, TermsOutput{}, err
	}
	return nil, termsOutput(weights), nil
}

func (s *Server) handleHotTerms(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input HotTermsInput,
) (*mcp.CallToolResult, HotTermsOutput, error) {
	opts := domain.HotTermOptions{Samples: input.Samples, K: input.K}
	var err error
	if input.Start != "" {
		if opts.Start, err = domain.ParseTimestamp(input.Start); err != nil {
			return nil, HotTermsOutput{}, fmt.Errorf("start: %w", err)
		}
	}
	if input.End != "" {
		if opts.End, err = domain.ParseTimestamp(input.End); err != nil {
			return nil, HotTermsOutput{}, fmt.Errorf("end: %w", err)
		}
	}

	hot, err := s.ports.Corpus.HotTermMatrix(opts)
	if err != nil {
		return nil, HotTermsOutput{}, err
	}
	return nil, hotTermsOutput(hot), nil
}

func (s *Server) handleTermWeighting(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input TermWeightingInput,
) (*mcp.CallToolResult, TermsOutput, error) {
	weights, err := s.ports.Corpus.TermWeighting(input.Terms, input.ArticleIDs)
	if err != nil {
		return nil, TermsOutput{}, err
	}

	ranked := make([]domain.TermWeight, 0, len(weights))
	for term, w := range weights {
		ranked = append(ranked, domain.TermWeight{Term: term, Weight: w})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Weight != ranked[j].Weight {
			return ranked[i].Weight > ranked[j].Weight
		}
		return ranked[i].Term < ranked[j].Term
	})
	return nil, termsOutput(ranked), nil
}

// capped returns n capped by limit; a non-positive limit selects the default.
func capped(n, limit int) int {
	if limit <= 0 {
		limit = defaultArticleLimit
	}
	return min(n, limit)
}

func termsOutput(weights []domain.TermWeight) TermsOutput {
	out := TermsOutput{
		Terms: make([]TermWeightOutput, len(weights)),
		Count: len(weights),
	}
	for i, w := range weights {
		out.Terms[i] = TermWeightOutput{Term: w.Term, Weight: w.Weight}
	}
	return out
}

func articleOutput(a *domain.Article) ArticleOutput {
	return ArticleOutput{
		ID:        a.ID(),
		Title:     a.Title,
		Link:      a.Link,
		Author:    a.Author,
		Published: domain.FormatTimestamp(a.Published),
		Updated:   domain.FormatTimestamp(a.Updated),
	}
}

func hotTermsOutput(hot *domain.HotTerms) HotTermsOutput {
	out := HotTermsOutput{
		Dates:  make([]string, len(hot.Dates)),
		Window: hot.Window.String(),
		Terms:  []HotTermRow{},
	}
	for i, d := range hot.Dates {
		out.Dates[i] = domain.FormatTimestamp(d)
	}
	if hot.Matrix == nil {
		return out
	}
	for _, term := range hot.Matrix.Rows() {
		row := HotTermRow{Term: term, Weights: make([]float64, len(out.Dates))}
		for j, col := range out.Dates {
			row.Weights[j] = hot.Matrix.Get(term, col)
		}
		out.Terms = append(out.Terms, row)
	}
	return out
}
