package feed

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/feedcorpus/internal/logger"
)

// DefaultSettle is how long a file must stay quiet before it is reported.
const DefaultSettle = 250 * time.Millisecond

// feedExtensions are the file suffixes the watcher reports.
var feedExtensions = map[string]struct{}{
	".xml":  {},
	".rss":  {},
	".atom": {},
}

// IsFeedFile reports whether path has a feed file extension.
func IsFeedFile(path string) bool {
	_, ok := feedExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Watcher reports feed files written into a directory.
type Watcher struct {
	dir    string
	settle time.Duration
}

// NewWatcher creates a watcher for dir. A non-positive settle selects
// DefaultSettle.
func NewWatcher(dir string, settle time.Duration) *Watcher {
	if settle <= 0 {
		settle = DefaultSettle
	}
	return &Watcher{dir: dir, settle: settle}
}

// Watch calls onFile for every feed file created or written in the
// directory until ctx is done. Bursts of writes to the same file are
// reported once, after the file has been quiet for the settle period.
// Callbacks run on the watch goroutine, one at a time.
func (w *Watcher) Watch(ctx context.Context, onFile func(path string)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	logger.Info("watching %s for feed files", w.dir)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.settle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 || !IsFeedFile(event.Name) {
				continue
			}
			pending[event.Name] = time.Now()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher: %v", err)

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < w.settle {
					continue
				}
				delete(pending, path)
				onFile(path)
			}
		}
	}
}
