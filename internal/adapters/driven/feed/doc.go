// Package feed implements the feed ports: fetching and parsing RSS and Atom
// documents, reading OPML subscription lists and watching a directory for
// dropped feed files.
//
// # Architecture
//
//   - Source: fetches feeds over HTTP and parses them with gofeed
//   - RateLimiter: proactive token bucket plus Retry-After handling per host
//   - breakers: one circuit breaker per host so a dead server is skipped
//   - OPMLReader: reads subscription lists
//   - Watcher: reports feed files created in a directory
//
// Parsing maps each entry to article fields: the GUID (or link) becomes the
// article ID, parsed dates are formatted as RFC 3339 and the content falls
// back to the description. Picture URLs come from the entry image, image
// enclosures and <img> tags in the content.
package feed
