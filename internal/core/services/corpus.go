package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
	"github.com/custodia-labs/feedcorpus/internal/core/ports/driven"
	"github.com/custodia-labs/feedcorpus/internal/core/ports/driving"
	"github.com/custodia-labs/feedcorpus/internal/linalg"
	"github.com/custodia-labs/feedcorpus/internal/logger"
)

// Ensure Corpus implements the interface.
var _ driving.CorpusService = (*Corpus)(nil)

// NewArticle builds an article from raw fields, generating a time-based
// ID when none is given and using the current time as publication date
// when none is given.
func NewArticle(fields domain.ArticleFields) (*domain.Article, error) {
	return fields.Build(time.Now(), newArticleID)
}

func newArticleID() string {
	id, err := uuid.NewUUID()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Corpus is an ordered collection of articles with the term statistics
// derived from them.
//
// Every matrix is rebuilt from the current articles and stop words on each
// call; nothing is cached, so results always reflect the latest insert.
// Corpus does no locking: callers that ingest and query concurrently must
// serialise access.
type Corpus struct {
	store     driven.ArticleStore
	articles  []*domain.Article
	index     map[string]int
	stopWords map[string]struct{}

	now   func() time.Time
	newID func() string
}

// NewCorpus creates an empty corpus. store may be nil, in which case the
// corpus lives in memory only.
func NewCorpus(store driven.ArticleStore) *Corpus {
	return &Corpus{
		store:     store,
		index:     make(map[string]int),
		stopWords: make(map[string]struct{}),
		now:       time.Now,
		newID:     newArticleID,
	}
}

// AddArticle appends an article unless its ID is already held.
//
// The duplicate check runs before any mutation. The record is persisted
// before the article is appended and stores ignore repeated IDs, so a
// retry after a failure between the two steps cannot duplicate a record.
func (c *Corpus) AddArticle(ctx context.Context, article *domain.Article) error {
	_, err := c.add(ctx, article)
	return err
}

func (c *Corpus) add(ctx context.Context, article *domain.Article) (bool, error) {
	if article == nil {
		return false, fmt.Errorf("%w: nil article", domain.ErrInvalidInput)
	}

	id := article.ID()
	if _, ok := c.index[id]; ok {
		logger.Warn("article %s already in corpus", id)
		return false, nil
	}

	if c.store != nil {
		if err := c.store.Insert(ctx, article.ToRecord()); err != nil {
			return false, fmt.Errorf("persist article %s: %w", id, err)
		}
	}

	c.append(article)
	return true, nil
}

func (c *Corpus) append(article *domain.Article) {
	c.index[article.ID()] = len(c.articles)
	c.articles = append(c.articles, article)
}

// IngestFromSource builds and adds one article per record. Records are
// attempted independently: a record that fails to build or persist is
// reported and the batch moves on.
func (c *Corpus) IngestFromSource(ctx context.Context, records []domain.ArticleFields) domain.IngestReport {
	var report domain.IngestReport
	for i, record := range records {
		article, err := record.Build(c.now(), c.newID)
		if err != nil {
			report.Failures = append(report.Failures, domain.IngestFailure{Index: i, Err: err})
			logger.Warn("record %d skipped: %v", i, err)
			continue
		}

		added, err := c.add(ctx, article)
		switch {
		case err != nil:
			report.Failures = append(report.Failures, domain.IngestFailure{Index: i, Err: err})
			logger.Warn("record %d skipped: %v", i, err)
		case added:
			report.Added++
		default:
			report.Duplicates++
		}
	}
	logger.Debug("ingested %d records: %d added, %d duplicates, %d failures",
		len(records), report.Added, report.Duplicates, len(report.Failures))
	return report
}

// Load restores the articles persisted in the article store, skipping
// IDs already held. A stored record that no longer builds is logged and
// skipped. It returns the number of restored articles.
func (c *Corpus) Load(ctx context.Context) (int, error) {
	if c.store == nil {
		return 0, domain.ErrStoreUnavailable
	}

	records, err := c.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list records: %w", err)
	}

	loaded := 0
	for _, record := range records {
		if _, ok := c.index[record.ID]; ok {
			continue
		}
		article, err := domain.ArticleFromRecord(record)
		if err != nil {
			logger.Warn("stored record %s skipped: %v", record.ID, err)
			continue
		}
		c.append(article)
		loaded++
	}

	logger.Debug("loaded %d articles from store", loaded)
	return loaded, nil
}

// Articles returns copies of the held articles in arrival order.
func (c *Corpus) Articles() []domain.Article {
	out := make([]domain.Article, len(c.articles))
	for i, a := range c.articles {
		out[i] = *a
	}
	return out
}

// Article returns a copy of the held article with the given ID.
func (c *Corpus) Article(id string) (*domain.Article, error) {
	i, ok := c.index[id]
	if !ok {
		return nil, fmt.Errorf("article %s: %w", id, domain.ErrNotFound)
	}
	article := *c.articles[i]
	return &article, nil
}

// Len returns the number of held articles.
func (c *Corpus) Len() int {
	return len(c.articles)
}

// StopWords returns the stop words in lexical order.
func (c *Corpus) StopWords() []string {
	words := make([]string, 0, len(c.stopWords))
	for w := range c.stopWords {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// AddStopWords adds terms to the stop word set.
func (c *Corpus) AddStopWords(terms ...string) {
	for _, term := range terms {
		c.stopWords[term] = struct{}{}
	}
}

// TermDocumentMatrix returns the term frequency of every term in every
// article, with terms as rows and article IDs as columns.
func (c *Corpus) TermDocumentMatrix() *domain.Matrix {
	return c.termDocument(c.articles)
}

// termDocument builds the term-document matrix of a subset of articles.
// Rows appear in first-seen order, walking articles in arrival order and
// each article's terms lexically.
func (c *Corpus) termDocument(articles []*domain.Article) *domain.Matrix {
	m := domain.NewMatrix()
	for _, article := range articles {
		m.AddCol(article.ID())

		tf := article.TermFrequency(c.stopWords)
		terms := make([]string, 0, len(tf))
		for term := range tf {
			terms = append(terms, term)
		}
		sort.Strings(terms)

		for _, term := range terms {
			m.Set(term, article.ID(), tf[term])
		}
	}
	return m
}

// DocumentTermMatrix returns the transpose of TermDocumentMatrix.
func (c *Corpus) DocumentTermMatrix() *domain.Matrix {
	return c.TermDocumentMatrix().Transpose()
}

// DocumentSimilarity returns DocumentTermMatrix · TermDocumentMatrix, the
// Gram matrix of the article term frequency vectors.
func (c *Corpus) DocumentSimilarity() *domain.Matrix {
	return linalg.Gram(c.DocumentTermMatrix())
}

// TermSimilarity returns TermDocumentMatrix · DocumentTermMatrix.
func (c *Corpus) TermSimilarity() *domain.Matrix {
	return linalg.Gram(c.TermDocumentMatrix())
}

// AutodetectStopWords adds to the stop words every term that occurs in
// all articles, is shorter than three characters, or occurs in fewer
// than two articles. It returns the whole stop word set.
//
// With a single article every term occurs in all articles, so every term
// becomes a stop word.
func (c *Corpus) AutodetectStopWords() []string {
	td := c.TermDocumentMatrix()
	total := len(c.articles)

	var detected int
	for _, term := range td.Rows() {
		df := td.NonZero(term)
		if df == total || len([]rune(term)) < 3 || df < 2 {
			c.stopWords[term] = struct{}{}
			detected++
		}
	}

	logger.Debug("detected %d stop words over %d articles", detected, total)
	return c.StopWords()
}

// Timeline lays out each article as a period running from its earlier
// to its later timestamp.
func (c *Corpus) Timeline() *domain.Timeline {
	tl := &domain.Timeline{}
	for _, article := range c.articles {
		start, end := article.Published, article.Updated
		if end.Before(start) {
			start, end = end, start
		}
		label := article.Title
		if label == "" {
			label = article.ID()
		}
		period, err := domain.NewPeriod(label, start, end)
		if err != nil {
			continue
		}
		tl.Periods = append(tl.Periods, period)
	}
	return tl
}

// Close releases the article store.
func (c *Corpus) Close() error {
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}
