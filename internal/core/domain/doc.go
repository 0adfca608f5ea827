// Package domain defines the core business entities for feedcorpus.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Article: A normalised feed entry with derived bag-of-words views
//   - ArticleFields: The optional raw fields an Article is built from
//   - Record: The serialisable form persisted by article stores
//   - Matrix: A sparse labelled matrix (term-document and friends)
//   - Timeline: Events and periods laid out on non-overlapping lanes
//   - Settings: Application configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
