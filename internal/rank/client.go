// Package rank wraps a third-party search API to find a domain's position
// for a keyword. The adapter normalizes the provider's response to a ranked
// window; everything beyond that window yields a nil rank, not an error.
package rank

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/theopenlane/httpsling"
	"golang.org/x/time/rate"

	"github.com/pagelens/pagelens/internal/domain"
)

const (
	// defaultEndpoint is the Serper-compatible search endpoint
	defaultEndpoint = "https://google.serper.dev/search"
	// defaultRequestTimeout bounds a single search API call
	defaultRequestTimeout = 10 * time.Second
	// resultWindow is how many ranked results the adapter requests
	resultWindow = 10
)

// RankedResult is one search result in rank order.
type RankedResult struct {
	Rank    int    `json:"rank"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
}

// Lookup is the normalized outcome of one rank check. TargetRank is nil
// when the target domain does not appear in the returned window.
type Lookup struct {
	Keyword    string         `json:"keyword"`
	Results    []RankedResult `json:"results"`
	TargetRank *int           `json:"target_rank"`
	TargetURL  *string        `json:"target_url"`
}

// Client queries the search API.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures the Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithEndpoint overrides the search API endpoint, primarily for tests
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithRateLimit paces outbound search API calls
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// New creates a rank lookup client.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		apiKey:     apiKey,
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// searchRequest is the provider request payload.
type searchRequest struct {
	Query string `json:"q"`
	Num   int    `json:"num"`
}

// searchResponse is the provider response payload.
type searchResponse struct {
	Organic []struct {
		Title    string `json:"title"`
		Link     string `json:"link"`
		Snippet  string `json:"snippet"`
		Position int    `json:"position"`
	} `json:"organic"`
}

// Lookup queries the search API for keyword and locates targetDomain in the
// ranked results. Provider failures are surfaced as wrapped ErrLookupFailed
// and must not be persisted by callers.
func (c *Client) Lookup(ctx context.Context, keyword, targetDomain string) (*Lookup, error) {
	info, err := domain.Parse(targetDomain)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
		}
	}

	requester := httpsling.MustNew(
		httpsling.URL(c.endpoint),
		httpsling.Post(),
		httpsling.Header("X-API-KEY", c.apiKey),
		httpsling.JSON(false),
		httpsling.Body(searchRequest{Query: keyword, Num: resultWindow}),
		httpsling.WithUnmarshaler(&httpsling.JSONMarshaler{}),
		httpsling.WithDoer(c.httpClient),
	)

	var payload searchResponse

	resp, err := requester.ReceiveWithContext(ctx, &payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is non-critical

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	lookup := &Lookup{Keyword: keyword}

	for i, organic := range payload.Organic {
		if i >= resultWindow {
			break
		}

		position := organic.Position
		if position == 0 {
			position = i + 1
		}

		result := RankedResult{
			Rank:    position,
			Title:   organic.Title,
			URL:     organic.Link,
			Snippet: organic.Snippet,
		}
		lookup.Results = append(lookup.Results, result)

		if lookup.TargetRank == nil && matchesDomain(organic.Link, info.Host) {
			rank := position
			link := organic.Link
			lookup.TargetRank = &rank
			lookup.TargetURL = &link
		}
	}

	return lookup, nil
}

// matchesDomain reports whether a result URL belongs to the target domain.
// Containment is checked in both directions so a subdomain result matches a
// root-domain target and vice versa.
func matchesDomain(resultURL, target string) bool {
	info, err := domain.Parse(resultURL)
	if err != nil {
		return false
	}

	host := strings.TrimPrefix(info.Host, "www.")
	target = strings.TrimPrefix(strings.ToLower(target), "www.")

	return strings.Contains(host, target) || strings.Contains(target, host)
}
