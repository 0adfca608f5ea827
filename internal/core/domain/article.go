package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// punctuation is replaced by spaces before tokenising article content.
const punctuation = ",.:!?"

// DefaultNorm is the p-norm used by TermFrequency.
const DefaultNorm = 2.0

// ArticleFields holds the optional raw fields an Article is built from.
// It is the shape produced by feed sources and accepted by ingestion.
//
// Defaults applied by Build:
//   - ID: a freshly generated identifier
//   - Published: the ingestion time
//   - Updated: the Published value
//   - text fields: empty string
//
// Published and Updated are ISO-8601 strings. An empty string means absent.
type ArticleFields struct {
	ID        string `json:"id,omitempty" yaml:"id,omitempty"`
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	Link      string `json:"link,omitempty" yaml:"link,omitempty"`
	Published string `json:"published,omitempty" yaml:"published,omitempty"`
	Updated   string `json:"updated,omitempty" yaml:"updated,omitempty"`
	Author    string `json:"author,omitempty" yaml:"author,omitempty"`
	Summary   string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Content   string `json:"content,omitempty" yaml:"content,omitempty"`
}

// Build validates the fields and constructs an Article.
// now is used when Published is absent and newID when ID is absent.
func (f ArticleFields) Build(now time.Time, newID func() string) (*Article, error) {
	id := f.ID
	if id == "" {
		if newID == nil {
			return nil, fmt.Errorf("%w: no id and no id generator", ErrInvalidInput)
		}
		id = newID()
	}

	published := now
	if f.Published != "" {
		t, err := ParseTimestamp(f.Published)
		if err != nil {
			return nil, fmt.Errorf("published: %w", err)
		}
		published = t
	}

	updated := published
	if f.Updated != "" {
		t, err := ParseTimestamp(f.Updated)
		if err != nil {
			return nil, fmt.Errorf("updated: %w", err)
		}
		updated = t
	}

	return &Article{
		id:        id,
		Title:     f.Title,
		Link:      f.Link,
		Author:    f.Author,
		Summary:   f.Summary,
		Content:   f.Content,
		Published: published,
		Updated:   updated,
	}, nil
}

// Article is a normalised text unit collected from a feed.
// Its identifier is fixed at construction.
type Article struct {
	id string

	// Title is the human-readable title.
	Title string

	// Link is the article's canonical URL.
	Link string

	// Author is the display name and/or address of the author.
	Author string

	// Summary is the short description provided by the feed.
	Summary string

	// Content is the full text used for all term statistics.
	Content string

	// Published is when the article was first published.
	Published time.Time

	// Updated is when the article was last modified. It is not
	// required to be after Published.
	Updated time.Time
}

// ID returns the article's unique identifier.
func (a *Article) ID() string {
	return a.id
}

// ToRecord returns the serialisable form of the article.
func (a *Article) ToRecord() Record {
	return Record{
		ID:        a.id,
		Title:     a.Title,
		Link:      a.Link,
		Published: FormatTimestamp(a.Published),
		Updated:   FormatTimestamp(a.Updated),
		Author:    a.Author,
		Summary:   a.Summary,
		Content:   a.Content,
	}
}

// BagOfWords counts the tokens of the article content.
// Content is lowercased, the characters of punctuation are replaced by
// spaces and the result is split on whitespace. Tokens in stopWords are
// dropped.
func (a *Article) BagOfWords(stopWords map[string]struct{}) map[string]int {
	content := strings.ToLower(a.Content)
	for _, char := range punctuation {
		content = strings.ReplaceAll(content, string(char), " ")
	}

	bag := make(map[string]int)
	for _, token := range strings.Fields(content) {
		bag[token]++
	}
	for word := range stopWords {
		delete(bag, word)
	}
	return bag
}

// TermFrequency returns the bag of words normalised to a unit vector
// under the Euclidean norm.
func (a *Article) TermFrequency(stopWords map[string]struct{}) map[string]float64 {
	return a.NormalizedBagOfWords(stopWords, DefaultNorm)
}

// NormalizedBagOfWords divides every count by the p-norm of the bag,
// (Σ count^p)^(1/p). A non-positive p falls back to DefaultNorm.
// An empty bag yields an empty map.
func (a *Article) NormalizedBagOfWords(stopWords map[string]struct{}, p float64) map[string]float64 {
	if p <= 0 {
		p = DefaultNorm
	}

	bag := a.BagOfWords(stopWords)
	result := make(map[string]float64, len(bag))
	if len(bag) == 0 {
		return result
	}

	// counts are positive, no abs needed
	var sum float64
	for _, count := range bag {
		sum += math.Pow(float64(count), p)
	}
	size := math.Pow(sum, 1/p)

	for word, count := range bag {
		result[word] = float64(count) / size
	}
	return result
}

// InWindow reports whether the article was published or updated within
// [date-window, date+window].
func (a *Article) InWindow(date time.Time, window time.Duration) bool {
	start := date.Add(-window)
	end := date.Add(window)
	return within(a.Published, start, end) || within(a.Updated, start, end)
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
