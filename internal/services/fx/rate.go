// Package fx fetches the USD to EUR display rate.
package fx

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/j-veylop/claude-usage/internal/logger"
)

const (
	defaultURL     = "https://api.frankfurter.app/latest?from=USD&to=EUR"
	requestTimeout = 5 * time.Second

	// FallbackRate is used when the live rate cannot be fetched.
	FallbackRate = 0.92
)

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Source fetches the live exchange rate.
type Source struct {
	http httpClient
	url  string
}

// Option configures Source.
type Option func(*Source)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c httpClient) Option {
	return func(s *Source) {
		s.http = c
	}
}

// WithURL overrides the rate endpoint.
func WithURL(url string) Option {
	return func(s *Source) {
		s.url = url
	}
}

// NewSource creates a rate source for the Frankfurter API.
func NewSource(opts ...Option) *Source {
	s := &Source{
		http: &http.Client{Timeout: requestTimeout},
		url:  defaultURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rate returns the current USD to EUR rate. It never fails: any error or
// non-positive rate yields FallbackRate.
func (s *Source) Rate(ctx context.Context) float64 {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return FallbackRate
	}

	resp, err := s.http.Do(req)
	if err != nil {
		logger.Debug("exchange rate unavailable", "error", err)
		return FallbackRate
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Debug("exchange rate unavailable", "status", resp.StatusCode)
		return FallbackRate
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return FallbackRate
	}

	rate := gjson.GetBytes(body, "rates.EUR")
	if rate.Type != gjson.Number || rate.Float() <= 0 {
		return FallbackRate
	}
	return rate.Float()
}
