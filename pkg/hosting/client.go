// Package hosting provides a client for the JDBC driver archive host.
//
// Driver archives are published as zip files at a fixed base URL
// (https://ohdsi.github.io/DatabaseConnectorJars/). The client downloads
// archives with automatic retry for transient failures and exposes cached
// HEAD metadata (size, last-modified) for individual archives.
//
// The base URL is injectable so tests can point the client at an
// httptest server.
package hosting

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/driverjars/pkg/httputil"
)

// DefaultBaseURL is the fixed location where driver archives are published.
const DefaultBaseURL = "https://ohdsi.github.io/DatabaseConnectorJars/"

const httpTimeout = 10 * time.Minute

var (
	// ErrNotFound is returned when an archive doesn't exist on the host.
	ErrNotFound = errors.New("archive not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// ArchiveInfo holds HEAD metadata for a published driver archive.
type ArchiveInfo struct {
	Name         string    `json:"name"`          // Archive file name (e.g., "postgresqlV42.2.18.zip")
	URL          string    `json:"url"`           // Full download URL
	Size         int64     `json:"size"`          // Content-Length in bytes (-1 if unknown)
	LastModified time.Time `json:"last_modified"` // Last-Modified header (zero if absent)
}

// Client provides access to the driver archive host.
// It handles streaming downloads with automatic retries and caches
// metadata lookups. All methods are safe for concurrent use.
type Client struct {
	http    *http.Client
	cache   *httputil.Cache
	baseURL string
}

// NewClient creates a hosting client with the specified metadata cache TTL.
//
// baseURL selects the archive host; pass "" for [DefaultBaseURL].
// cacheTTL sets how long HEAD metadata is cached. Typical values:
// 1-24 hours for production, 0 to never expire.
//
// Returns an error if the cache directory cannot be created.
func NewClient(baseURL string, cacheTTL time.Duration) (*Client, error) {
	cache, err := httputil.NewCache("", cacheTTL)
	if err != nil {
		return nil, err
	}
	return NewClientWithCache(baseURL, cache), nil
}

// NewClientWithCache creates a hosting client backed by an existing cache.
// Pass nil to disable metadata caching entirely.
func NewClientWithCache(baseURL string, cache *httputil.Cache) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if cache != nil {
		cache = cache.Namespace("hosting:")
	}
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   cache,
		baseURL: baseURL,
	}
}

// BaseURL returns the archive host base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// ArchiveURL returns the full download URL for an archive file name.
func (c *Client) ArchiveURL(name string) string {
	return c.baseURL + name
}

// DownloadArchive fetches the named archive and writes it to destPath.
//
// The body streams to a temporary file next to destPath (uuid-suffixed)
// which is renamed into place only after the full body is written, so a
// half-downloaded archive never appears under the final name. The
// temporary file is removed on any failure.
//
// Transient failures (connection errors, 5xx) are retried with backoff.
// Returns [ErrNotFound] for a missing archive and [ErrNetwork] for
// other HTTP failures. The context cancels an in-flight download.
func (c *Client) DownloadArchive(ctx context.Context, name, destPath string) error {
	return httputil.RetryWithBackoff(ctx, func() error {
		return c.download(ctx, name, destPath)
	})
}

func (c *Client) download(ctx context.Context, name, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ArchiveURL(name), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode, name); err != nil {
		return err
	}

	tmp := filepath.Join(filepath.Dir(destPath),
		fmt.Sprintf(".%s.%s.part", filepath.Base(destPath), uuid.NewString()))
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, destPath)
}

// ArchiveInfo retrieves HEAD metadata for the named archive.
//
// If refresh is false, cached metadata is returned when available and not
// expired. If refresh is true, the cache is bypassed and a fresh HEAD
// request is made.
//
// Returns [ErrNotFound] if the archive doesn't exist on the host.
func (c *Client) ArchiveInfo(ctx context.Context, name string, refresh bool) (*ArchiveInfo, error) {
	if !refresh && c.cache != nil {
		var info ArchiveInfo
		if ok, _ := c.cache.Get(name, &info); ok {
			return &info, nil
		}
	}

	var info *ArchiveInfo
	err := httputil.RetryWithBackoff(ctx, func() error {
		var err error
		info, err = c.head(ctx, name)
		return err
	})
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		_ = c.cache.Set(name, info)
	}
	return info, nil
}

func (c *Client) head(ctx context.Context, name string) (*ArchiveInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.ArchiveURL(name), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode, name); err != nil {
		return nil, err
	}

	info := &ArchiveInfo{
		Name: name,
		URL:  c.ArchiveURL(name),
		Size: -1,
	}
	if cl := resp.Header.Get("Content-Length"); cl != "" {
		if n, err := strconv.ParseInt(cl, 10, 64); err == nil {
			info.Size = n
		}
	}
	if lm := resp.Header.Get("Last-Modified"); lm != "" {
		if ts, err := http.ParseTime(lm); err == nil {
			info.LastModified = ts
		}
	}
	return info, nil
}

func checkStatus(code int, name string) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
