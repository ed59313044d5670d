// Package fetch retrieves subscription documents over HTTP. Each source is
// fetched independently; one dead source never fails the batch.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"sonar/internal/shared/config"
	"sonar/internal/shared/goroutine"
	"sonar/internal/shared/logger"
	"sonar/internal/shared/utils"
	"sonar/internal/shared/utils/logutil"
)

// SourceResult is the outcome of fetching one subscription URL.
type SourceResult struct {
	URL  string
	Body string
	Err  error
}

// Fetcher downloads subscription bodies with retry, a response size cap,
// and a guard against URLs pointing into private address space.
type Fetcher struct {
	client *http.Client
	cfg    config.FetchConfig
	log    logger.Interface
}

// NewFetcher creates a fetcher from the fetch configuration.
func NewFetcher(cfg config.FetchConfig, log logger.Interface) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		cfg:    cfg,
		log:    log,
	}
}

// IsURL reports whether a scan source is a subscription URL rather than
// inline descriptor text.
func IsURL(s string) bool {
	lower := strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Fetch downloads one subscription body. Transport errors and 5xx answers
// are retried with exponential backoff up to the configured attempt count;
// 4xx answers are permanent.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if err := f.validateURL(rawURL); err != nil {
		return "", err
	}

	var body string
	operation := func() error {
		b, err := f.fetchOnce(ctx, rawURL)
		if err != nil {
			return err
		}
		body = b
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(f.cfg.MaxRetries)),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return "", err
	}
	return body, nil
}

// FetchAll fetches every URL with at most MaxConcurrent downloads running
// at once. Results come back in input order, one per URL.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) []SourceResult {
	results := make([]SourceResult, len(urls))
	if len(urls) == 0 {
		return results
	}

	limit := f.cfg.MaxConcurrent
	if limit < 1 {
		limit = 1
	}
	sem := make(chan struct{}, limit)

	var wg sync.WaitGroup
	for i, rawURL := range urls {
		wg.Add(1)
		goroutine.SafeGo(f.log, "fetch-subscription", func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			body, err := f.Fetch(ctx, rawURL)
			if err != nil {
				f.log.Warnw("subscription fetch failed",
					"url", logutil.TruncateForLog(rawURL, 120),
					"error", err.Error(),
				)
			}
			results[i] = SourceResult{URL: rawURL, Body: body, Err: err}
		})
	}
	wg.Wait()

	return results
}

func (f *Fetcher) validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid subscription URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported subscription URL scheme %q", u.Scheme)
	}
	host := u.Hostname()
	if host == "" {
		return fmt.Errorf("subscription URL has no host")
	}
	if !f.cfg.AllowPrivate {
		if err := utils.ValidateRemoteHost(host); err != nil {
			return err
		}
	}
	return nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", backoff.Permanent(err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respErr := fmt.Errorf("subscription fetch returned %s", resp.Status)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return "", backoff.Permanent(respErr)
		}
		return "", respErr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBodyBytes))
	if err != nil {
		return "", err
	}
	return string(body), nil
}
