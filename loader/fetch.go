package loader

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"gopkg.in/resty.v1"

	docsync "github.com/docsync/docsync"
)

// Fetcher retrieves remote definitions.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (body []byte, contentType string, err error)
}

// DefaultFetchTimeout bounds a single fetch.
const DefaultFetchTimeout = 30 * time.Second

// HTTPFetcher fetches definitions over HTTP with resty. It does not retry.
type HTTPFetcher struct {
	client *resty.Client
}

// FetcherOption configures an HTTPFetcher.
type FetcherOption func(*fetcherConfig)

type fetcherConfig struct {
	httpClient *http.Client
	userAgent  string
	headers    map[string]string
}

// WithHTTPClient uses hc for requests, e.g. one with a custom transport.
func WithHTTPClient(hc *http.Client) FetcherOption {
	return func(c *fetcherConfig) { c.httpClient = hc }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(c *fetcherConfig) { c.userAgent = ua }
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) FetcherOption {
	return func(c *fetcherConfig) {
		if c.headers == nil {
			c.headers = make(map[string]string)
		}
		c.headers[key] = value
	}
}

// NewHTTPFetcher creates an HTTPFetcher.
func NewHTTPFetcher(opts ...FetcherOption) *HTTPFetcher {
	cfg := fetcherConfig{userAgent: docsync.UserAgent()}
	for _, opt := range opts {
		opt(&cfg)
	}
	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: DefaultFetchTimeout}
	}
	client := resty.NewWithClient(hc)
	client.SetHeader("User-Agent", cfg.userAgent)
	client.SetHeader("Accept", "application/json, application/yaml, text/yaml, */*")
	for k, v := range cfg.headers {
		client.SetHeader(k, v)
	}
	return &HTTPFetcher{client: client}
}

// Fetch implements Fetcher. Any status other than 200 is an error.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("loader: failed to fetch %s: %w", url, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, "", fmt.Errorf("loader: fetching %s: HTTP %d: %s", url, resp.StatusCode(), resp.Status())
	}
	return resp.Body(), resp.Header().Get("Content-Type"), nil
}

var _ Fetcher = (*HTTPFetcher)(nil)
