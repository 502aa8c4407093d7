// Package transport provides the HTTP client shared by the scraping sources.
// Every client enforces a hard minimum interval between two requests to the
// same source.
package transport

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/agentstation/confmap/pkg/constants"
	"github.com/agentstation/confmap/pkg/errors"
	"github.com/agentstation/confmap/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// maxBodySize bounds how much of a page is read.
const maxBodySize = 16 << 20

// Client fetches pages of one source.
type Client struct {
	http      *http.Client
	limiter   *rate.Limiter
	source    string
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithInterval sets the minimum interval between two requests. Zero disables the limit.
func WithInterval(interval time.Duration) Option {
	return func(c *Client) {
		c.limiter = newLimiter(interval)
	}
}

// WithUserAgent sets the User-Agent header of every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates a transport client for the named source.
func New(source string, opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: DefaultHTTPTimeout},
		limiter:   newLimiter(0),
		source:    source,
		userAgent: constants.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// Source returns the name of the source this client fetches from.
func (c *Client) Source() string {
	return c.source
}

// Do waits for the rate limiter and performs the request.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, errors.WrapFetch(c.source, req.URL.String(), fmt.Errorf("%w: %w", errors.ErrCanceled, ctx.Err()))
		}
		return nil, errors.WrapFetch(c.source, req.URL.String(), err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/yaml;q=0.9,*/*;q=0.8")
	}

	logging.Ctx(ctx).Debug().
		Str("source", c.source).
		Str("url", req.URL.String()).
		Msg("Fetching")

	resp, err := c.http.Do(req.WithContext(ctx))
	if err != nil {
		return nil, errors.WrapFetch(c.source, req.URL.String(), err)
	}
	return resp, nil
}

// Get fetches url and returns the body of a 200 response. Any other status
// is reported as a FetchError carrying the status code.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapFetch(c.source, url, err)
	}
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return ReadBody(resp, c.source)
}
