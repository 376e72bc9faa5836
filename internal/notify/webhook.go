// Package notify pushes audit alerts to a configured webhook. Delivery is
// best effort: the audit pipeline logs failures and moves on.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/theopenlane/httpsling"
)

// defaultRequestTimeout is the default timeout for webhook requests
const defaultRequestTimeout = 10 * time.Second

// Message is the webhook payload for one audit alert.
type Message struct {
	// Text is the human-readable alert text
	Text string `json:"text"`
	// URL is the audited page
	URL string `json:"url,omitempty"`
	// ProjectID identifies the audited project
	ProjectID string `json:"project_id,omitempty"`
	// Score is the audit score that triggered the alert
	Score int `json:"score,omitempty"`
}

// Client sends notifications to a webhook endpoint.
type Client struct {
	webhookURL string
	httpClient *http.Client
}

// Option configures the Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client for the webhook client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a webhook notification client.
func New(webhookURL string, opts ...Option) (*Client, error) {
	if webhookURL == "" {
		return nil, ErrMissingWebhookURL
	}

	client := &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Send posts a message to the configured webhook.
func (c *Client) Send(ctx context.Context, msg Message) error {
	requester := httpsling.MustNew(
		httpsling.URL(c.webhookURL),
		httpsling.Post(),
		httpsling.JSON(false),
		httpsling.Body(msg),
		httpsling.WithDoer(c.httpClient),
	)

	resp, err := requester.SendWithContext(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is non-critical

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return nil
}
