// Package httputil provides HTTP utilities for the driver hosting client.
//
// # Overview
//
// This package provides infrastructure shared by code that talks to the
// driver archive host:
//
//   - [Cache]: File-based caching of small JSON-marshalable responses
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores responses in the filesystem (~/.cache/driverjars/) with a
// configurable TTL. It is used for archive metadata lookups, not for the
// archives themselves; driver zips are written straight to the installation
// directory.
//
// Usage:
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	ok, err := cache.Get("head:postgresqlV42.2.18.zip", &info)
//	if !ok {
//	    info = fetchFromHost()
//	    cache.Set("head:postgresqlV42.2.18.zip", info)
//	}
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//
// Only errors wrapped in [RetryableError] are retried; everything else is
// returned immediately. The backoff doubles after each failed attempt.
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Cache directory: ~/.cache/driverjars/
//   - Max retries: 3
//   - Base backoff: 1 second
//
// The cache can be cleared via `driverjars cache clear` or by deleting the
// cache directory.
package httputil
