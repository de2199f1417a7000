// Package datasource holds the leaf clients that make exactly one bounded
// network call to one provider and hand back a parsed document or a typed failure.
package datasource

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/smartscreen/backend/internal/domain"
)

const defaultUserAgent = "smart-screensaver/1.0 (+https://github.com/smartscreen/backend)"

// Client performs single-attempt JSON GETs
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
}

// Option configures a Client
type Option func(*Client)

// WithRateLimit caps outbound calls, e.g. 1/s for Nominatim's usage policy
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// WithHTTPClient swaps the underlying transport
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = resty.NewWithClient(hc).
			SetHeader("User-Agent", defaultUserAgent).
			SetHeader("Accept", "application/json")
	}
}

// NewClient creates a new data source client
func NewClient(opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetHeader("User-Agent", defaultUserAgent).
			SetHeader("Accept", "application/json"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetJSON issues one GET bounded by timeout and parses the body as JSON
func (c *Client) GetJSON(ctx context.Context, url string, params map[string]string, timeout time.Duration) (gjson.Result, error) {
	if url == "" {
		return gjson.Result{}, fmt.Errorf("datasource: %w: url not configured", domain.ErrConfigurationSkip)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return gjson.Result{}, fmt.Errorf("datasource: %w: rate limit wait: %w", domain.ErrTransport, err)
		}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(url)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("datasource: %w: %w", domain.ErrTransport, err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return gjson.Result{}, fmt.Errorf("datasource: %w: %s returned status %d", domain.ErrTransport, url, resp.StatusCode())
	}

	body := resp.Body()
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("datasource: %w: %s returned invalid JSON", domain.ErrParse, url)
	}
	return gjson.ParseBytes(body), nil
}

// requireFields fails with ErrParse unless every path exists in doc
func requireFields(doc gjson.Result, paths ...string) error {
	for _, p := range paths {
		if !doc.Get(p).Exists() {
			return fmt.Errorf("datasource: %w: missing field %q", domain.ErrParse, p)
		}
	}
	return nil
}
