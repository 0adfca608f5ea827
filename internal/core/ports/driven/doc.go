// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - ArticleStore: Article record persistence (SQLite or in-memory)
//   - FeedSource: Retrieves and parses RSS/Atom feeds
//   - SubscriptionReader: Reads feed subscription lists (OPML)
//   - Normaliser: Turns feed markup into plain article text
//   - PictureFetcher: Collects and downloads pictures referenced by feeds
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ArticleStore: Without it the corpus lives in memory only.
//   - PictureFetcher: Without it pictures are ignored.
//   - Normaliser: Without it feed content is used verbatim.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
