// Package proxy fetches daily cost and token usage from the usage proxy that
// fronts the organization's Admin API.
package proxy

import (
	"net/http"
	"time"
)

const (
	defaultTimeout = 45 * time.Second

	costReportPath  = "/v1/organizations/cost_report"
	usageReportPath = "/v1/organizations/usage_report/messages"

	// maxBodySize caps how much of a response body is read.
	maxBodySize = 4 << 20
)

// httpClient abstracts HTTP operations for testing.
type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the usage proxy. It performs no client-side rate limiting;
// the proxy enforces its own quota.
type Client struct {
	http    httpClient
	baseURL string
	token   string
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c httpClient) ClientOption {
	return func(cl *Client) {
		cl.http = c
	}
}

// WithTimeout replaces the default HTTP client with one using timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(cl *Client) {
		if timeout > 0 {
			cl.http = &http.Client{Timeout: timeout}
		}
	}
}

// NewClient creates a proxy client for baseURL authenticating with token.
func NewClient(baseURL, token string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
