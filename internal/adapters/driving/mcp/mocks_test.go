package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
	"github.com/custodia-labs/feedcorpus/internal/core/ports/driving"
	"github.com/custodia-labs/feedcorpus/internal/core/services"
)

// mockCorpus is a testify mock of driving.CorpusService.
type mockCorpus struct {
	mock.Mock
}

var _ driving.CorpusService = (*mockCorpus)(nil)

func (m *mockCorpus) AddArticle(ctx context.Context, article *domain.Article) error {
	return m.Called(ctx, article).Error(0)
}

func (m *mockCorpus) IngestFromSource(ctx context.Context, records []domain.ArticleFields) domain.IngestReport {
	return m.Called(ctx, records).Get(0).(domain.IngestReport)
}

func (m *mockCorpus) Load(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockCorpus) Articles() []domain.Article {
	articles, _ := m.Called().Get(0).([]domain.Article)
	return articles
}

func (m *mockCorpus) Article(id string) (*domain.Article, error) {
	args := m.Called(id)
	article, _ := args.Get(0).(*domain.Article)
	return article, args.Error(1)
}

func (m *mockCorpus) StopWords() []string {
	words, _ := m.Called().Get(0).([]string)
	return words
}

func (m *mockCorpus) AddStopWords(terms ...string) {
	m.Called(terms)
}

func (m *mockCorpus) TermDocumentMatrix() *domain.Matrix {
	return m.Called().Get(0).(*domain.Matrix)
}

func (m *mockCorpus) DocumentTermMatrix() *domain.Matrix {
	return m.Called().Get(0).(*domain.Matrix)
}

func (m *mockCorpus) DocumentSimilarity() *domain.Matrix {
	return m.Called().Get(0).(*domain.Matrix)
}

func (m *mockCorpus) TermSimilarity() *domain.Matrix {
	return m.Called().Get(0).(*domain.Matrix)
}

func (m *mockCorpus) AutodetectStopWords() []string {
	words, _ := m.Called().Get(0).([]string)
	return words
}

func (m *mockCorpus) InverseDocumentFrequency(term string, articleIDs []string) (float64, error) {
	args := m.Called(term, articleIDs)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockCorpus) TermWeighting(terms, articleIDs []string) (map[string]float64, error) {
	args := m.Called(terms, articleIDs)
	weights, _ := args.Get(0).(map[string]float64)
	return weights, args.Error(1)
}

func (m *mockCorpus) MostRelevantTerms(k int) ([]domain.TermWeight, error) {
	args := m.Called(k)
	weights, _ := args.Get(0).([]domain.TermWeight)
	return weights, args.Error(1)
}

func (m *mockCorpus) FindArticles(terms []string) []domain.ArticleScore {
	scores, _ := m.Called(terms).Get(0).([]domain.ArticleScore)
	return scores
}

func (m *mockCorpus) ArticlesNearDate(date time.Time, window time.Duration, k int) ([]domain.TermWeight, error) {
	args := m.Called(date, window, k)
	weights, _ := args.Get(0).([]domain.TermWeight)
	return weights, args.Error(1)
}

func (m *mockCorpus) HotTermMatrix(opts domain.HotTermOptions) (*domain.HotTerms, error) {
	args := m.Called(opts)
	hot, _ := args.Get(0).(*domain.HotTerms)
	return hot, args.Error(1)
}

func (m *mockCorpus) Timeline() *domain.Timeline {
	return m.Called().Get(0).(*domain.Timeline)
}

func (m *mockCorpus) Close() error {
	return m.Called().Error(0)
}

// mockSettings is a testify mock of driving.SettingsService.
type mockSettings struct {
	mock.Mock
}

var _ driving.SettingsService = (*mockSettings)(nil)

func (m *mockSettings) Get() (*domain.AppSettings, error) {
	args := m.Called()
	settings, _ := args.Get(0).(*domain.AppSettings)
	return settings, args.Error(1)
}

func (m *mockSettings) Save(settings *domain.AppSettings) error {
	return m.Called(settings).Error(0)
}

func (m *mockSettings) Validate(settings *domain.AppSettings) error {
	return m.Called(settings).Error(0)
}

func (m *mockSettings) AddFeed(url string) error {
	return m.Called(url).Error(0)
}

func (m *mockSettings) RemoveFeed(url string) error {
	return m.Called(url).Error(0)
}

func (m *mockSettings) GetDefaults() domain.AppSettings {
	return m.Called().Get(0).(domain.AppSettings)
}

// newTestCorpus builds an in-memory corpus from records.
func newTestCorpus(t *testing.T, records ...domain.ArticleFields) *services.Corpus {
	t.Helper()
	c := services.NewCorpus(nil)
	report := c.IngestFromSource(context.Background(), records)
	require.Empty(t, report.Failures)
	return c
}

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

// sampleRecords are three dated articles sharing the term "news".
var sampleRecords = []domain.ArticleFields{
	{ID: "a", Title: "Alpha", Content: "alpha news", Published: "2024-01-01T00:00:00Z"},
	{ID: "b", Title: "Beta", Content: "beta news", Published: "2024-01-02T00:00:00Z"},
	{ID: "c", Title: "Gamma", Content: "gamma news gamma", Published: "2024-01-20T00:00:00Z"},
}
