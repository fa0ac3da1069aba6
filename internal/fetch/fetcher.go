// Package fetch retrieves plain-text renderings of source pages through
// an external content-extraction (reader) service.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/silverhaven/eventscout/internal/cache"
	"github.com/silverhaven/eventscout/internal/model"
	"github.com/silverhaven/eventscout/internal/source"
	"github.com/silverhaven/eventscout/internal/util"
)

// Error is a transport or upstream-service failure for one source.
// An empty body is not an Error: only the transport layer can fail a fetch.
type Error struct {
	URL    string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

// Fetcher calls the reader service for one source page per invocation.
// It applies no retries: a failed fetch yields zero events for that
// source and the next scheduled run tries again.
type Fetcher struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	userAgent  string
	maxBytes   int64
	cache      cache.Cache
	robots     *util.RobotsChecker
	now        func() time.Time
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithCache enables response caching for repeated triggers in a short window
func WithCache(c cache.Cache) Option {
	return func(f *Fetcher) { f.cache = c }
}

// WithRobots enables a robots.txt check before each fetch
func WithRobots(r *util.RobotsChecker) Option {
	return func(f *Fetcher) { f.robots = r }
}

// WithClock overrides the wall clock, for tests
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) { f.now = now }
}

// NewFetcher creates a Fetcher against the given reader service
func NewFetcher(cfg model.FetchConfig, opts ...Option) *Fetcher {
	f := &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		baseURL:   strings.TrimRight(cfg.ReaderBaseURL, "/"),
		apiKey:    cfg.APIKey,
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves a markdown rendering of the source page. The returned
// RawContent may have an empty body; callers decide what that means.
func (f *Fetcher) Fetch(ctx context.Context, src source.Descriptor) (*model.RawContent, error) {
	key := cache.Key(src.URL)
	if f.cache != nil {
		if body, found := f.cache.Get(key); found {
			return f.rawContent(src, string(body)), nil
		}
	}

	if f.robots != nil && !f.robots.IsAllowed(ctx, src.URL) {
		return nil, &Error{URL: src.URL, Err: fmt.Errorf("disallowed by robots.txt")}
	}

	// Reader-style API: the target URL is appended to the service base and
	// the render format requested via headers.
	readerURL := f.baseURL + "/" + src.URL

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, readerURL, nil)
	if err != nil {
		return nil, &Error{URL: src.URL, Err: err}
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/plain")
	req.Header.Set("X-Return-Format", "markdown")
	// Give the reader a moment to let client-rendered calendars settle.
	req.Header.Set("X-Timeout", "10")
	if f.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.apiKey)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &Error{URL: src.URL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{URL: src.URL, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, &Error{URL: src.URL, Err: fmt.Errorf("read body: %w", err)}
	}

	if f.cache != nil {
		_ = f.cache.Set(key, body, 0)
	}

	return f.rawContent(src, string(body)), nil
}

func (f *Fetcher) rawContent(src source.Descriptor, body string) *model.RawContent {
	return &model.RawContent{
		SourceName: src.Name,
		SourceURL:  src.URL,
		Body:       body,
		FetchedAt:  f.now().UTC(),
	}
}
