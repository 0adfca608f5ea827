package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
)

// CorpusService holds the article collection and answers term statistics
// queries over it. Queries are recomputed from the current articles on
// every call.
type CorpusService interface {
	// AddArticle appends an article unless its ID is already held.
	// A duplicate is logged and ignored.
	AddArticle(ctx context.Context, article *domain.Article) error

	// IngestFromSource builds and adds one article per record. A failing
	// record is reported and the batch continues.
	IngestFromSource(ctx context.Context, records []domain.ArticleFields) domain.IngestReport

	// Load restores the articles persisted in the article store.
	Load(ctx context.Context) (int, error)

	// Articles returns the held articles in arrival order.
	Articles() []domain.Article

	// Article returns a held article by ID.
	Article(id string) (*domain.Article, error)

	// StopWords returns the current stop words, sorted.
	StopWords() []string

	// AddStopWords adds terms to the stop word set.
	AddStopWords(terms ...string)

	// TermDocumentMatrix returns term frequencies with terms as rows and
	// article IDs as columns.
	TermDocumentMatrix() *domain.Matrix

	// DocumentTermMatrix returns the transpose of TermDocumentMatrix.
	DocumentTermMatrix() *domain.Matrix

	// DocumentSimilarity returns the document × document Gram matrix.
	DocumentSimilarity() *domain.Matrix

	// TermSimilarity returns the term × term Gram matrix.
	TermSimilarity() *domain.Matrix

	// AutodetectStopWords finds uninformative terms and adds them to the
	// stop words.
	AutodetectStopWords() []string

	// InverseDocumentFrequency returns ln(N/df) over the given articles
	// (all articles when articleIDs is nil).
	InverseDocumentFrequency(term string, articleIDs []string) (float64, error)

	// TermWeighting returns the IDF of each term over the given articles.
	// A nil terms slice selects every term of those articles.
	TermWeighting(terms, articleIDs []string) (map[string]float64, error)

	// MostRelevantTerms returns the k terms with the highest IDF.
	MostRelevantTerms(k int) ([]domain.TermWeight, error)

	// FindArticles returns articles containing any of terms, best first.
	FindArticles(terms []string) []domain.ArticleScore

	// ArticlesNearDate returns the k most relevant terms of the articles
	// published or updated within window of date.
	ArticlesNearDate(date time.Time, window time.Duration, k int) ([]domain.TermWeight, error)

	// HotTermMatrix samples ArticlesNearDate across a date span.
	HotTermMatrix(opts domain.HotTermOptions) (*domain.HotTerms, error)

	// Timeline lays out each article's publication period.
	Timeline() *domain.Timeline

	// Close releases the article store.
	Close() error
}
