package pictures

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/feedcorpus/internal/core/domain"
	"github.com/custodia-labs/feedcorpus/internal/core/ports/driven"
	"github.com/custodia-labs/feedcorpus/internal/logger"
	"github.com/custodia-labs/feedcorpus/internal/metrics"
)

// Ensure Downloader implements the interface.
var _ driven.PictureFetcher = (*Downloader)(nil)

const (
	// DefaultWorkers bounds concurrent downloads.
	DefaultWorkers = 4

	// DefaultTimeout bounds a single download.
	DefaultTimeout = 30 * time.Second

	// maxPictureSize caps the bytes stored per picture.
	maxPictureSize = 20 << 20
)

// Status labels recorded on the pictures metric.
const (
	statusDownloaded = "downloaded"
	statusHit        = "hit"
	statusFailed     = "failed"
)

// Config configures a Downloader. Zero values select the defaults.
type Config struct {
	// Dir is the cache directory. Empty selects DefaultDir.
	Dir string

	// Rate is the number of downloads started per second. Zero or less
	// disables throttling.
	Rate float64

	// Workers bounds concurrent downloads.
	Workers int

	// Client performs the requests.
	Client *http.Client

	// Metrics receives download outcomes. May be nil.
	Metrics *metrics.Metrics
}

// Downloader collects picture URLs and stores them in a local cache
// directory, one file per URL named after the URL's SHA-256.
type Downloader struct {
	dir     string
	client  *http.Client
	limiter *rate.Limiter
	workers int
	metrics *metrics.Metrics

	mu       sync.Mutex
	order    []string
	pictures map[string]*domain.Picture
}

// DefaultDir returns the platform cache directory for pictures.
func DefaultDir() string {
	return filepath.Join(xdg.CacheHome, "feedcorpus", "pictures")
}

// NewDownloader creates a picture downloader.
func NewDownloader(cfg Config) *Downloader {
	dir := cfg.Dir
	if dir == "" {
		dir = DefaultDir()
	}
	limit := rate.Inf
	if cfg.Rate > 0 {
		limit = rate.Limit(cfg.Rate)
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = DefaultWorkers
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	return &Downloader{
		dir:      dir,
		client:   client,
		limiter:  rate.NewLimiter(limit, 1),
		workers:  workers,
		metrics:  cfg.Metrics,
		pictures: make(map[string]*domain.Picture),
	}
}

// Dir returns the cache directory.
func (d *Downloader) Dir() string {
	return d.dir
}

// Add queues a picture URL. Empty and already known URLs are ignored.
func (d *Downloader) Add(rawURL string) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.pictures[rawURL]; ok {
		return
	}
	d.pictures[rawURL] = &domain.Picture{URL: rawURL, Status: domain.PicturePending}
	d.order = append(d.order, rawURL)
}

// Pictures returns a snapshot of the known pictures in the order added.
func (d *Downloader) Pictures() []domain.Picture {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]domain.Picture, 0, len(d.order))
	for _, u := range d.order {
		out = append(out, *d.pictures[u])
	}
	return out
}

// FetchAll downloads every picture that is not cached yet. Failed pictures
// are retried on the next call. Individual failures are joined into the
// returned error and do not stop the other downloads.
func (d *Downloader) FetchAll(ctx context.Context) error {
	pending := d.pending()
	if len(pending) == 0 {
		return nil
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("creating picture directory: %w", err)
	}
	logger.Info("downloading %d pictures to %s", len(pending), d.dir)

	var (
		g      errgroup.Group
		errsMu sync.Mutex
		errs   []error
	)
	g.SetLimit(d.workers)

	for _, rawURL := range pending {
		g.Go(func() error {
			filename, hit, err := d.download(ctx, rawURL)
			d.finish(rawURL, filename, hit, err)
			if err != nil {
				errsMu.Lock()
				errs = append(errs, fmt.Errorf("picture %s: %w", rawURL, err))
				errsMu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

func (d *Downloader) pending() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	var out []string
	for _, u := range d.order {
		if d.pictures[u].Status != domain.PictureCached {
			out = append(out, u)
		}
	}
	return out
}

func (d *Downloader) finish(rawURL, filename string, hit bool, err error) {
	d.mu.Lock()
	pic := d.pictures[rawURL]
	if err != nil {
		pic.Status = domain.PictureFailed
	} else {
		pic.Status = domain.PictureCached
		pic.Filename = filename
	}
	d.mu.Unlock()

	switch {
	case err != nil:
		d.metrics.ObservePicture(statusFailed)
		logger.Debug("picture %s failed: %v", rawURL, err)
	case hit:
		d.metrics.ObservePicture(statusHit)
	default:
		d.metrics.ObservePicture(statusDownloaded)
	}
}

// download stores rawURL in the cache and returns the local path. hit
// reports that the file was already present.
func (d *Downloader) download(ctx context.Context, rawURL string) (filename string, hit bool, err error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false, fmt.Errorf("%w: picture url", domain.ErrInvalidInput)
	}

	base := cacheKey(rawURL)
	if existing := d.cached(base); existing != "" {
		return existing, true, nil
	}

	if err := d.limiter.Wait(ctx); err != nil {
		return "", false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return "", false, err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	filename = filepath.Join(d.dir, base+extension(u.Path, resp.Header.Get("Content-Type")))
	if err := writeAtomic(filename, io.LimitReader(resp.Body, maxPictureSize)); err != nil {
		return "", false, err
	}
	return filename, false, nil
}

// cached returns a file in the cache directory named base, with any
// extension, or "" when there is none.
func (d *Downloader) cached(base string) string {
	matches, err := filepath.Glob(filepath.Join(d.dir, base+"*"))
	if err != nil {
		return ""
	}
	for _, m := range matches {
		if strings.HasSuffix(m, ".part") {
			continue
		}
		return m
	}
	return ""
}

func cacheKey(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return hex.EncodeToString(sum[:])
}

// extension picks a file extension from the URL path, falling back to the
// response content type.
func extension(urlPath, contentType string) string {
	if ext := strings.ToLower(path.Ext(urlPath)); ext != "" && len(ext) <= 5 {
		return ext
	}
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
			return exts[0]
		}
	}
	return ""
}

// writeAtomic writes r to a temporary file and renames it into place.
func writeAtomic(filename string, r io.Reader) error {
	tmp := filename + ".part"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, filename)
}
