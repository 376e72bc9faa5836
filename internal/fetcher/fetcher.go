// Package fetcher retrieves raw HTML for a URL with a bounded timeout,
// redirect following and an identifiable user agent.
package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds a single page fetch end to end
	DefaultTimeout = 15 * time.Second
	// DefaultUserAgent identifies pagelens traffic to site operators
	DefaultUserAgent = "pagelens/1.0 (+https://github.com/pagelens/pagelens)"
	// maxRedirects caps redirect chains before the fetch is abandoned
	maxRedirects = 10
	// maxBodySize caps how much HTML is read from a single page (5MB)
	maxBodySize = 5 << 20
)

// Result holds the outcome of one successful page fetch.
type Result struct {
	// HTML is the raw response body
	HTML string
	// FinalURL is the resolved URL after following redirects
	FinalURL string
	// Headers are the response headers of the final response
	Headers http.Header
	// ResponseTime is the elapsed wall time for the request
	ResponseTime time.Duration
	// ByteSize is the size of the response body in bytes
	ByteSize int
}

// Fetcher retrieves pages over HTTP. It performs no retries; callers decide
// whether a failed fetch is worth repeating.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the fetch timeout. Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithHTTPClient sets a custom HTTP client, primarily for tests.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// New creates a Fetcher with the given options.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return ErrTooManyRedirects
				}
				return nil
			},
		}
	}

	return f
}

// ValidateURL reports whether raw parses as an absolute http(s) URL with a
// host. Handlers call this before any network I/O.
func ValidateURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, ErrInvalidURL
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidURL
	}

	return u, nil
}

// Fetch retrieves the page at rawURL and reports the final resolved URL,
// response latency and payload size. Non-2xx responses and transport
// failures return a *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	if _, err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Reason: err.Error(), Err: err}
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	start := time.Now()

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Reason: err.Error(), Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is non-critical

	elapsed := time.Since(start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Reason:     http.StatusText(resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &FetchError{URL: rawURL, Reason: err.Error(), Err: err}
	}

	return &Result{
		HTML:         string(body),
		FinalURL:     resp.Request.URL.String(),
		Headers:      resp.Header,
		ResponseTime: elapsed,
		ByteSize:     len(body),
	}, nil
}
