package domain

// PictureStatus tracks a picture through the download cache.
type PictureStatus int

const (
	// PicturePending means the picture still needs to be downloaded.
	PicturePending PictureStatus = iota

	// PictureCached means the picture is stored locally.
	PictureCached

	// PictureFailed means the last download attempt failed.
	PictureFailed
)

// String returns the status name.
func (s PictureStatus) String() string {
	switch s {
	case PicturePending:
		return "pending"
	case PictureCached:
		return "cached"
	case PictureFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Picture is an image referenced by a feed item.
type Picture struct {
	// URL is the remote location. Pictures are deduplicated by URL.
	URL string

	// Filename is the local cache path once downloaded.
	Filename string

	// Status is the download state.
	Status PictureStatus
}

// FeedItem is one entry of a parsed feed.
type FeedItem struct {
	// Fields are the article fields extracted from the entry.
	Fields ArticleFields

	// Pictures are image URLs referenced by the entry.
	Pictures []string
}

// Feed is a parsed RSS or Atom document.
type Feed struct {
	// URL is where the feed was retrieved from (or the file path).
	URL string

	// Title is the feed's title.
	Title string

	// Items are the entries in document order.
	Items []FeedItem
}

// Subscription is one feed listed in a subscription file (OPML).
type Subscription struct {
	Title string
	URL   string
}
