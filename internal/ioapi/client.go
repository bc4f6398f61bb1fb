// Package ioapi implements the occurrence service client over HTTP.
// This is an impure package; the pure contracts live in pkg/gnoccur.
package ioapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gnames/gnoccur/pkg/config"
	"github.com/gnames/gnoccur/pkg/gnoccur"
	"github.com/gnames/gnoccur/pkg/parserpool"
	"github.com/patrickmn/go-cache"
)

// Client talks to the occurrence service REST API. It implements all
// capability interfaces of pkg/gnoccur. Requests are synchronous and are
// not retried internally; retry policy belongs to the caller, who has a
// better view of total request volume.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	cache      *cache.Cache
	parser     parserpool.Pool
}

var (
	_ gnoccur.NameResolver       = (*Client)(nil)
	_ gnoccur.Taxonomy           = (*Client)(nil)
	_ gnoccur.OccurrenceSearcher = (*Client)(nil)
	_ gnoccur.DownloadManager    = (*Client)(nil)
)

// New creates a client from the configuration. Taxonomy responses are
// cached in memory for cfg.API.CacheTTL; zero TTL disables the cache.
func New(cfg *config.Config) *Client {
	res := &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.API.Timeout,
		},
		parser: parserpool.New(cfg.JobsNumber),
	}
	if cfg.API.CacheTTL > 0 {
		res.cache = cache.New(cfg.API.CacheTTL, 2*cfg.API.CacheTTL)
	}

	slog.Info("Occurrence service client initialized",
		"base_url", cfg.API.BaseURL,
		"timeout", cfg.API.Timeout,
		"cache_ttl", cfg.API.CacheTTL,
	)
	return res
}

// Close releases the parser pool. The client must not be used afterwards.
func (c *Client) Close() {
	c.parser.Close()
}

// doGet performs a GET request and decodes the JSON response into result.
// Status codes map to the client's error vocabulary: 404 is reported by
// callers who know what was missing, 429 becomes QuotaExceededError, 5xx
// and transport failures become TransientNetworkError.
func (c *Client) doGet(ctx context.Context, url string, result any) error {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return TransientNetworkError(url, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.API.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("Request failed", "url", url, "error", err)
		return TransientNetworkError(url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return TransientNetworkError(url, err)
	}

	if err := checkStatus(url, resp.StatusCode, body); err != nil {
		return err
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			slog.Error("Cannot parse response",
				"url", url, "size", len(body), "error", err)
			return ResponseParseError(url, err)
		}
	}

	slog.Debug("Request done",
		"url", url,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// checkStatus translates HTTP status codes into client errors.
// 404 is returned as errNotFound so callers can attach what was missing.
func checkStatus(url string, code int, body []byte) error {
	switch {
	case code < 400:
		return nil
	case code == http.StatusNotFound:
		return errNotFound
	case code == http.StatusTooManyRequests:
		return QuotaExceededError(url)
	default:
		return TransientNetworkError(url, httpStatusError(code, body))
	}
}
