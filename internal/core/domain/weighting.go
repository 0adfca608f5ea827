package domain

import "time"

// TermWeight pairs a term with a score.
type TermWeight struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

// ArticleScore pairs an article with its relevance to a set of terms.
type ArticleScore struct {
	Article Article
	Score   float64
}

// IngestFailure describes one record that could not be added.
type IngestFailure struct {
	// Index is the position of the record in its batch.
	Index int

	// Source identifies where the record came from (feed URL or file).
	Source string

	// Err is the construction or persistence error.
	Err error
}

// IngestReport summarises an ingestion batch.
type IngestReport struct {
	// Added is the number of new articles.
	Added int

	// Duplicates is the number of records whose ID was already held.
	Duplicates int

	// Failures lists records that failed; the batch continued past them.
	Failures []IngestFailure
}

// Merge folds other into r.
func (r *IngestReport) Merge(other IngestReport) {
	r.Added += other.Added
	r.Duplicates += other.Duplicates
	r.Failures = append(r.Failures, other.Failures...)
}

// HotTermOptions configures a hot term matrix computation.
// Zero values select the defaults.
type HotTermOptions struct {
	// Start of the sampled span. Defaults to the earliest article date
	// minus 10% of the span.
	Start time.Time

	// End of the sampled span. Defaults to the latest article date plus
	// 10% of the span.
	End time.Time

	// Samples is the number of evenly spaced sample dates. Default 10.
	Samples int

	// K is the number of top terms kept per sample. Default 10.
	K int
}

// HotTerms is a term × sample-date weight matrix.
type HotTerms struct {
	// Dates are the distinct sample dates, one per matrix column.
	Dates []time.Time

	// Window is the half-width of the window around each sample.
	Window time.Duration

	// Matrix holds weights with terms as rows and the RFC 3339 form of
	// each sample date as columns.
	Matrix *Matrix
}
