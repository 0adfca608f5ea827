// Package pictures downloads images referenced by feed entries into a
// local cache directory.
//
// Pictures are keyed by URL. Adding a URL twice is a no-op, and a URL whose
// file is already in the cache directory is not downloaded again. Downloads
// run on a bounded worker pool and are paced by a token bucket.
package pictures
