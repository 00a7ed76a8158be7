package sources

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"
)

var (
	// ErrInvalidURL is returned for URLs that are not absolute http(s) links.
	ErrInvalidURL = errors.New("invalid source url")
	// ErrDownloadFailed wraps non-success HTTP responses.
	ErrDownloadFailed = errors.New("source download failed")
)

const (
	cacheEnvVar        = "NOTEBOOK_CACHE_DIR"
	cacheSubdir        = "notebook/sources"
	cacheTTL           = 24 * time.Hour
	defaultHTTPTimeout = 90 * time.Second
)

// Fetcher imports documents from http(s) URLs. Downloads are kept on disk
// grouped by document type and reused for a day; after that the server is
// asked whether the copy changed.
type Fetcher struct {
	dir    string
	client *http.Client
	now    func() time.Time
}

// NewFetcher returns a Fetcher caching under dir. An empty dir falls back to
// $NOTEBOOK_CACHE_DIR, then the user cache directory.
func NewFetcher(dir string, client *http.Client) (*Fetcher, error) {
	if dir == "" {
		dir = os.Getenv(cacheEnvVar)
	}
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			base = filepath.Join(os.TempDir(), "notebook-cache")
		}
		dir = filepath.Join(base, cacheSubdir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Fetcher{dir: dir, client: client, now: time.Now}, nil
}

// Fetch returns the document behind rawURL, titled after the last path
// segment. When the server cannot be reached a previously downloaded copy
// is served instead.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Document, error) {
	title, err := sourceTitle(rawURL)
	if err != nil {
		return Document{}, err
	}
	entry := f.entryFor(rawURL, DocumentType(title))
	record, cached := entry.load()
	if cached && f.now().Sub(record.FetchedAt) < cacheTTL {
		return entry.document(record)
	}
	if !cached {
		record = sourceRecord{URL: rawURL, Title: title}
	}

	refreshed, err := f.refresh(ctx, entry, record, cached)
	if err != nil {
		if !cached {
			return Document{}, err
		}
		log.Printf("[sources] serving cached %s: %v", title, err)
		return entry.document(record)
	}
	return entry.document(refreshed)
}

func sourceTitle(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	title := path.Base(parsed.Path)
	if !Accepts(title) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, title)
	}
	return title, nil
}

// refresh downloads the entry, or only confirms it when revalidate is set
// and the server answers 304.
func (f *Fetcher) refresh(ctx context.Context, entry cacheEntry, record sourceRecord, revalidate bool) (sourceRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, record.URL, nil)
	if err != nil {
		return record, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if revalidate {
		if record.ETag != "" {
			req.Header.Set("If-None-Match", record.ETag)
		}
		if record.LastModified != "" {
			req.Header.Set("If-Modified-Since", record.LastModified)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return record, fmt.Errorf("download %s: %w", record.Title, err)
	}
	defer resp.Body.Close()

	switch {
	case revalidate && resp.StatusCode == http.StatusNotModified:
	case resp.StatusCode == http.StatusOK:
		if err := entry.writeBody(resp.Body); err != nil {
			return record, fmt.Errorf("store %s: %w", record.Title, err)
		}
		record.ETag = resp.Header.Get("ETag")
		record.LastModified = resp.Header.Get("Last-Modified")
	default:
		return record, fmt.Errorf("%w: %s returned %s", ErrDownloadFailed, record.Title, resp.Status)
	}
	record.FetchedAt = f.now()
	return record, entry.store(record)
}

// sourceRecord is the JSON kept next to a downloaded body.
type sourceRecord struct {
	URL          string    `json:"url"`
	Title        string    `json:"title"`
	ETag         string    `json:"etag,omitempty"`
	LastModified string    `json:"last_modified,omitempty"`
	FetchedAt    time.Time `json:"fetched_at"`
}

// cacheEntry locates one URL in the cache: <dir>/<type>/<sha1>.<type> and
// its record.
type cacheEntry struct {
	body   string
	record string
}

func (f *Fetcher) entryFor(rawURL, kind string) cacheEntry {
	sum := sha1.Sum([]byte(rawURL))
	base := filepath.Join(f.dir, kind, hex.EncodeToString(sum[:]))
	return cacheEntry{body: base + "." + kind, record: base + ".json"}
}

// load reports the stored record when both it and a non-empty body exist.
func (e cacheEntry) load() (sourceRecord, bool) {
	data, err := os.ReadFile(e.record)
	if err != nil {
		return sourceRecord{}, false
	}
	var record sourceRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return sourceRecord{}, false
	}
	if info, err := os.Stat(e.body); err != nil || info.Size() == 0 {
		return sourceRecord{}, false
	}
	return record, true
}

func (e cacheEntry) store(record sourceRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return os.WriteFile(e.record, data, 0o644)
}

// writeBody replaces the body through a temp file so a failed download
// never leaves a truncated copy behind.
func (e cacheEntry) writeBody(r io.Reader) error {
	dir := filepath.Dir(e.body)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "download-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), e.body)
}

func (e cacheEntry) document(record sourceRecord) (Document, error) {
	return importFile(e.body, record.Title)
}
