// Package fetcher performs the authenticated GET requests that drive cache
// warming. One request is in flight at a time, retry on transient failure is
// bounded and backed off with a fixed delay.
package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/warmstack/primer/internal/pkg/config"
	"github.com/warmstack/primer/internal/pkg/log"
)

const maxBodySize = 64 << 20 // 64 MiB, hypermedia bodies are small

// Fetcher issues authenticated GETs against the configured base URL.
type Fetcher struct {
	client     *http.Client
	baseURL    string
	mediaType  string
	username   string
	password   string
	apiKey     string
	userAgent  string
	maxRetry   int
	retryDelay time.Duration
	logger     *log.FieldedLogger
}

// Result is the outcome of a single Fetch call, either a payload or a
// classified failure. Err is nil exactly when Class is ErrorClassNone.
type Result struct {
	URL         string
	StatusCode  int
	Body        []byte
	ContentType string
	Header      http.Header
	Attempts    int
	Elapsed     time.Duration
	Class       ErrorClass
	Err         error
}

// New builds a Fetcher from the run configuration.
func New(cfg *config.Config) (*Fetcher, error) {
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, err
	}

	return &Fetcher{
		client: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		mediaType:  cfg.MediaType,
		username:   cfg.Username,
		password:   cfg.Password,
		apiKey:     cfg.APIKey,
		userAgent:  cfg.UserAgent,
		maxRetry:   cfg.MaxRetry,
		retryDelay: cfg.RetryDelay,
		logger: log.NewFieldedLogger(&log.Fields{
			"component": "fetcher",
		}),
	}, nil
}

// URL resolves a resource path against the base URL. Absolute URLs pass
// through untouched, the API links with absolute paths relative to its base.
func (f *Fetcher) URL(resource string) string {
	if strings.HasPrefix(resource, "http://") || strings.HasPrefix(resource, "https://") {
		return resource
	}
	if !strings.HasPrefix(resource, "/") {
		resource = "/" + resource
	}
	return f.baseURL + resource
}

// Fetch GETs the resource once, retrying transient failures up to the
// configured budget with a fixed delay between attempts. Non-2xx statuses
// and exhausted retries come back as a classified Result, never as a
// process-fatal error.
func (f *Fetcher) Fetch(ctx context.Context, resource string) *Result {
	result := &Result{URL: f.URL(resource)}
	start := time.Now()
	defer func() { result.Elapsed = time.Since(start) }()

	for attempt := 0; attempt <= f.maxRetry; attempt++ {
		if attempt > 0 {
			f.logger.Debug("retrying", "url", result.URL, "attempt", attempt)
			select {
			case <-time.After(f.retryDelay):
			case <-ctx.Done():
				result.Class = ErrorClassTransient
				result.Err = ctx.Err()
				return result
			}
		}
		result.Attempts = attempt + 1

		retryable := f.do(ctx, result)
		if !retryable {
			return result
		}
	}

	// Retry budget exhausted, the last transient failure stands as permanent
	return result
}

// do performs one attempt, filling result. It reports whether the failure is
// transient and worth another attempt.
func (f *Fetcher) do(ctx context.Context, result *Result) (retryable bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, result.URL, nil)
	if err != nil {
		result.Class = ErrorClassNetwork
		result.Err = err
		return false
	}

	req.Header.Set("Accept", f.mediaType)
	req.Header.Set("User-Agent", f.userAgent)
	if f.apiKey != "" {
		req.Header.Set("api-key", f.apiKey)
	}
	if f.username != "" {
		req.SetBasicAuth(f.username, f.password)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		// Connection resets and timeouts are worth retrying
		result.Class = ErrorClassTransient
		result.Err = err
		return true
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	result.Header = resp.Header
	result.ContentType = resp.Header.Get("Content-Type")

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		if err != nil {
			result.Class = ErrorClassTransient
			result.Err = err
			return true
		}
		result.Body = body
		result.Class = ErrorClassNone
		result.Err = nil
		return false

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		io.Copy(io.Discard, resp.Body)
		result.Class = ErrorClassAuth
		result.Err = statusError(resp.StatusCode)
		return false

	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		io.Copy(io.Discard, resp.Body)
		result.Class = ErrorClassTransient
		result.Err = statusError(resp.StatusCode)
		return true

	default:
		io.Copy(io.Discard, resp.Body)
		result.Class = ErrorClassHTTP
		result.Err = statusError(resp.StatusCode)
		return false
	}
}
