package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreUnavailable indicates the corpus is not bound to an article store.
	ErrStoreUnavailable = errors.New("article store unavailable")

	// Weighting Errors.

	// ErrZeroDocumentFrequency indicates an IDF was requested for a term
	// that occurs in none of the candidate articles.
	ErrZeroDocumentFrequency = errors.New("term has zero document frequency in this context")

	// Feed Errors.

	// ErrFeedUnavailable indicates a feed could not be retrieved.
	ErrFeedUnavailable = errors.New("feed unavailable")

	// ErrFeedMalformed indicates a feed document could not be parsed.
	ErrFeedMalformed = errors.New("feed malformed")

	// ErrRateLimited indicates a remote host refused the request rate.
	ErrRateLimited = errors.New("rate limited")
)
