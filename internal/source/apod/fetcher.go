package apod

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"apod_poster/internal/domain"
)

// FetcherConfig holds fetcher configuration.
type FetcherConfig struct {
	Timeout   time.Duration
	UserAgent string
	MaxBytes  int64
}

// Fetcher retrieves the raw daily page. It never retries: a failed fetch
// fails the run and the caller decides whether to trigger another one.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	logger     *slog.Logger
}

func NewFetcher(cfg FetcherConfig, logger *slog.Logger) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: newHTTPTransport(timeout),
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBytes,
		logger:    logger.With("component", "fetcher"),
	}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*domain.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.FetchError{URL: url, Err: fmt.Errorf("create request: %w", err)}
	}

	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &domain.FetchError{URL: url, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	if f.maxBytes > 0 && resp.ContentLength > f.maxBytes {
		return nil, &domain.FetchError{URL: url, Err: fmt.Errorf("page too large: %d > %d bytes", resp.ContentLength, f.maxBytes)}
	}

	var body io.Reader = resp.Body
	if f.maxBytes > 0 {
		body = io.LimitReader(resp.Body, f.maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, &domain.FetchError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}
	if f.maxBytes > 0 && int64(len(data)) > f.maxBytes {
		return nil, &domain.FetchError{URL: url, Err: fmt.Errorf("page too large: over %d bytes", f.maxBytes)}
	}

	f.logger.Debug("fetched page",
		"url", url,
		"bytes", len(data),
		"duration", time.Since(start),
	)

	return &domain.Document{
		URL:         url,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
		FetchedAt:   time.Now(),
	}, nil
}

func newHTTPTransport(timeout time.Duration) *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
	}
}
