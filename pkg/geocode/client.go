// Package geocode resolves Dutch free-text addresses to coordinates and
// administrative areas via the PDOK Locatieserver.
package geocode

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/sells-group/locintel/internal/model"
	"github.com/sells-group/locintel/internal/retry"
)

// DefaultBaseURL is the public Locatieserver v3.1 search endpoint.
const DefaultBaseURL = "https://api.pdok.nl/bzk/locatieserver/search/v3_1"

// Client resolves addresses to location records.
type Client interface {
	// Geocode resolves a single free-text address.
	Geocode(ctx context.Context, address string) (*model.LocationData, error)
}

// Option configures the client.
type Option func(*client)

// WithBaseURL overrides the Locatieserver endpoint, typically for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// WithRateLimit sets the requests-per-second limit for Locatieserver calls.
func WithRateLimit(rps float64) Option {
	return func(c *client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), int(rps))
	}
}

// WithRetry overrides the retry policy for Locatieserver calls.
func WithRetry(cfg retry.Config) Option {
	return func(c *client) {
		c.retry = cfg
	}
}

type client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	retry      retry.Config
}

// NewClient creates a Locatieserver client with the given options.
func NewClient(opts ...Option) Client {
	c := &client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(10, 10),
		retry:      retry.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
