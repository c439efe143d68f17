// ABOUTME: HTTP implementation of the download delegation contract
// ABOUTME: Retries transient failures with backoff and bounds concurrency and request rate

package standard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"golang.org/x/time/rate"

	"aggregator-core/core/interfaces"
)

const (
	maxRetries = 3
	userAgent  = "AggregatorCore/1.0"
)

// Config tunes the downloader.
type Config struct {
	// Timeout bounds a single HTTP attempt. Zero means 30 seconds.
	Timeout time.Duration

	// MaxConcurrent bounds how many downloads run at once. Zero means 4.
	MaxConcurrent int

	// RequestsPerSecond paces outgoing requests. Zero means unpaced.
	RequestsPerSecond float64
}

// Downloader fetches URLs over HTTP into local files.
type Downloader struct {
	client  *http.Client
	limiter *rate.Limiter
	sem     chan struct{}
	logger  interfaces.Logger
}

// NewDownloader creates an HTTP downloader.
func NewDownloader(cfg Config, logger interfaces.Logger) *Downloader {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 4
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Downloader{
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
		sem:     make(chan struct{}, cfg.MaxConcurrent),
		logger:  logger,
	}
}

// Delegate accepts http and https URLs and fetches them asynchronously. The
// returned channel delivers exactly one result.
func (d *Downloader) Delegate(ctx context.Context, req interfaces.DownloadRequest) (<-chan *interfaces.DownloadError, error) {
	parsed, err := url.Parse(req.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, interfaces.ErrNoHandler
	}

	result := make(chan *interfaces.DownloadError, 1)
	go func() {
		result <- d.run(ctx, req)
	}()
	return result, nil
}

func (d *Downloader) run(ctx context.Context, req interfaces.DownloadRequest) *interfaces.DownloadError {
	select {
	case d.sem <- struct{}{}:
		defer func() { <-d.sem }()
	case <-ctx.Done():
		return &interfaces.DownloadError{Category: interfaces.CategoryUserCanceled, Cause: ctx.Err()}
	}

	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return &interfaces.DownloadError{Category: interfaces.CategoryUserCanceled, Cause: err}
		}
	}

	resp, derr := d.fetch(ctx, req.URL)
	if derr != nil {
		return derr
	}
	defer resp.Body.Close()

	out, err := os.Create(req.DestPath)
	if err != nil {
		return &interfaces.DownloadError{Category: interfaces.CategoryLocalError, Cause: err}
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return &interfaces.DownloadError{Category: interfaces.CategoryLocalError, Cause: err}
	}

	d.logger.Debug("download complete", map[string]interface{}{
		"url": req.URL,
	})
	return nil
}

// fetch performs the GET with retry on 5xx and transport errors.
func (d *Downloader) fetch(ctx context.Context, rawURL string) (*http.Response, *interfaces.DownloadError) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &interfaces.DownloadError{Category: interfaces.CategoryLocalError, Cause: err}
	}
	httpReq.Header.Set("User-Agent", userAgent)

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 100ms, 200ms, 400ms
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, &interfaces.DownloadError{Category: interfaces.CategoryUserCanceled, Cause: ctx.Err()}
			}
		}

		resp, err = d.client.Do(httpReq)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil, &interfaces.DownloadError{Category: interfaces.CategoryUserCanceled, Cause: err}
			}
			lastErr = err
			continue
		}

		// Don't retry on success or 4xx errors.
		if resp.StatusCode < 500 {
			break
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
		resp = nil
	}

	if resp == nil {
		return nil, &interfaces.DownloadError{Category: interfaces.CategoryUnknown, Cause: lastErr}
	}

	if derr := categorizeStatus(resp.StatusCode); derr != nil {
		resp.Body.Close()
		return nil, derr
	}
	return resp, nil
}

func categorizeStatus(status int) *interfaces.DownloadError {
	switch {
	case status == http.StatusNotFound || status == http.StatusGone:
		return &interfaces.DownloadError{Category: interfaces.CategoryNotFound, Cause: fmt.Errorf("server returned %d", status)}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &interfaces.DownloadError{Category: interfaces.CategoryAccessDenied, Cause: fmt.Errorf("server returned %d", status)}
	case status >= 400:
		return &interfaces.DownloadError{Category: interfaces.CategoryUnknown, Cause: fmt.Errorf("server returned %d", status)}
	}
	return nil
}
