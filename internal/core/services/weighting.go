package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
	"github.com/custodia-labs/feedcorpus/internal/logger"
)

// hotSpanMargin is the fraction of the corpus date span added on each
// side when a hot term matrix has no explicit bounds.
const hotSpanMargin = 10

// InverseDocumentFrequency returns ln(N/df) where N is the number of
// candidate articles and df the number of those containing term.
// A nil articleIDs selects every article; unknown IDs are ignored.
// A term found in no candidate returns domain.ErrZeroDocumentFrequency.
func (c *Corpus) InverseDocumentFrequency(term string, articleIDs []string) (float64, error) {
	candidates := c.candidates(articleIDs)
	return idf(c.termDocument(candidates), len(candidates), term)
}

func idf(td *domain.Matrix, total int, term string) (float64, error) {
	df := td.NonZero(term)
	if df == 0 {
		return 0, fmt.Errorf("idf of %q: %w", term, domain.ErrZeroDocumentFrequency)
	}
	return math.Log(float64(total) / float64(df)), nil
}

// candidates returns the held articles whose IDs are listed, in arrival
// order. nil selects all articles.
func (c *Corpus) candidates(articleIDs []string) []*domain.Article {
	if articleIDs == nil {
		return c.articles
	}
	wanted := make(map[string]struct{}, len(articleIDs))
	for _, id := range articleIDs {
		wanted[id] = struct{}{}
	}
	var out []*domain.Article
	for _, article := range c.articles {
		if _, ok := wanted[article.ID()]; ok {
			out = append(out, article)
		}
	}
	return out
}

// TermWeighting returns the IDF of each term over the candidate articles.
// A nil terms slice selects every term occurring in the candidates.
func (c *Corpus) TermWeighting(terms, articleIDs []string) (map[string]float64, error) {
	weights, err := c.weighting(c.candidates(articleIDs), terms)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(weights))
	for _, w := range weights {
		out[w.Term] = w.Weight
	}
	return out, nil
}

// weighting computes IDF weights in matrix row order (or in the order of
// terms when given).
func (c *Corpus) weighting(articles []*domain.Article, terms []string) ([]domain.TermWeight, error) {
	td := c.termDocument(articles)
	if terms == nil {
		terms = td.Rows()
	}

	weights := make([]domain.TermWeight, 0, len(terms))
	for _, term := range terms {
		w, err := idf(td, len(articles), term)
		if err != nil {
			return nil, err
		}
		weights = append(weights, domain.TermWeight{Term: term, Weight: w})
	}
	return weights, nil
}

// topK sorts weights by descending weight, keeping the existing order for
// ties, and keeps the first k. A non-positive k keeps all.
func topK(weights []domain.TermWeight, k int) []domain.TermWeight {
	sort.SliceStable(weights, func(i, j int) bool {
		return weights[i].Weight > weights[j].Weight
	})
	if k > 0 && k < len(weights) {
		weights = weights[:k]
	}
	return weights
}

// MostRelevantTerms returns the k terms with the highest IDF over the
// whole corpus, best first. Ties keep matrix row order.
func (c *Corpus) MostRelevantTerms(k int) ([]domain.TermWeight, error) {
	weights, err := c.weighting(c.articles, nil)
	if err != nil {
		return nil, err
	}
	return topK(weights, k), nil
}

// FindArticles returns the articles containing at least one of terms,
// ordered by the sum of their term frequencies for those terms. Ties keep
// arrival order.
func (c *Corpus) FindArticles(terms []string) []domain.ArticleScore {
	td := c.TermDocumentMatrix()

	var scores []domain.ArticleScore
	for _, article := range c.articles {
		var score float64
		for _, term := range terms {
			score += td.Get(term, article.ID())
		}
		if score > 0 {
			scores = append(scores, domain.ArticleScore{Article: *article, Score: score})
		}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores
}

// ArticlesNearDate weights the terms of the articles published or updated
// within window of date and returns the k best, with the same ordering as
// MostRelevantTerms.
func (c *Corpus) ArticlesNearDate(date time.Time, window time.Duration, k int) ([]domain.TermWeight, error) {
	var near []*domain.Article
	for _, article := range c.articles {
		if article.InWindow(date, window) {
			near = append(near, article)
		}
	}
	if len(near) == 0 {
		return nil, nil
	}

	weights, err := c.weighting(near, nil)
	if err != nil {
		return nil, err
	}
	logger.Debug("%d articles within %s of %s", len(near), window, domain.FormatTimestamp(date))
	return topK(weights, k), nil
}

// HotTermMatrix runs ArticlesNearDate at evenly spaced sample dates and
// gathers the weights into a term × date matrix. The window around each
// sample is a tenth of the sampled span. Samples that fall on the same
// instant are kept once, so Dates and the matrix columns stay aligned.
func (c *Corpus) HotTermMatrix(opts domain.HotTermOptions) (*domain.HotTerms, error) {
	result := &domain.HotTerms{Matrix: domain.NewMatrix()}
	if len(c.articles) == 0 {
		return result, nil
	}

	start, end := c.hotSpan(opts.Start, opts.End)
	samples := opts.Samples
	if samples <= 0 {
		samples = domain.DefaultHotSamples
	}
	k := opts.K
	if k <= 0 {
		k = domain.DefaultHotK
	}

	span := end.Sub(start)
	result.Window = span / 10
	for i := 0; i < samples; i++ {
		date := start
		switch {
		case samples > 1 && i == samples-1:
			date = end
		case samples > 1:
			date = start.Add(time.Duration(float64(span) * float64(i) / float64(samples-1)))
		}
		label := domain.FormatTimestamp(date)
		if result.Matrix.HasCol(label) {
			continue
		}
		result.Dates = append(result.Dates, date)
		result.Matrix.AddCol(label)

		weights, err := c.ArticlesNearDate(date, result.Window, k)
		if err != nil {
			return nil, fmt.Errorf("sample %s: %w", label, err)
		}
		for _, w := range weights {
			result.Matrix.Set(w.Term, label, w.Weight)
		}
	}
	return result, nil
}

// hotSpan fills missing bounds from the corpus date range widened by a
// tenth on each side. A degenerate span is widened to one day.
func (c *Corpus) hotSpan(start, end time.Time) (time.Time, time.Time) {
	first, last := c.dateRange()
	margin := last.Sub(first) / hotSpanMargin
	if start.IsZero() {
		start = first.Add(-margin)
	}
	if end.IsZero() {
		end = last.Add(margin)
	}
	if !end.After(start) {
		mid := start
		start = mid.Add(-12 * time.Hour)
		end = mid.Add(12 * time.Hour)
	}
	return start, end
}

// dateRange returns the earliest and latest article timestamps.
func (c *Corpus) dateRange() (first, last time.Time) {
	for i, article := range c.articles {
		for _, t := range []time.Time{article.Published, article.Updated} {
			if i == 0 && first.IsZero() && last.IsZero() {
				first, last = t, t
				continue
			}
			if t.Before(first) {
				first = t
			}
			if t.After(last) {
				last = t
			}
		}
	}
	return first, last
}
