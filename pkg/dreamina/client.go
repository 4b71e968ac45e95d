package dreamina

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the default gateway address.
	DefaultBaseURL = "http://localhost:5200"

	// DefaultTimeout bounds the generation round trip.
	DefaultTimeout = 600 * time.Second

	// DefaultDownloadTimeout bounds each image download.
	DefaultDownloadTimeout = 60 * time.Second

	userAgent = "giztoy-dreamina-go/1.0"
)

// Client is the Dreamina gateway client.
type Client struct {
	// Image provides image generation operations.
	Image *ImageService

	config *clientConfig
	http   *httpClient
}

// clientConfig holds the client configuration.
type clientConfig struct {
	token           string
	baseURL         string
	httpClient      *http.Client
	timeout         time.Duration
	downloadTimeout time.Duration
	logger          *slog.Logger
	now             func() time.Time
}

// Option is a function that configures the client.
type Option func(*clientConfig)

// WithBaseURL sets the gateway address. A trailing slash is ignored.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client used for both generation and
// downloads. Timeouts are applied per call through the request context.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the generation round-trip bound.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithDownloadTimeout sets the per-image download bound.
func WithDownloadTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.downloadTimeout = timeout
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithClock overrides the time source used to stamp downloaded filenames.
func WithClock(now func() time.Time) Option {
	return func(c *clientConfig) {
		c.now = now
	}
}

// NewClient creates a new gateway client.
//
// The token is the Dreamina session ID and is forwarded verbatim as a
// bearer token.
//
// Example:
//
//	client := dreamina.NewClient("session-id")
//	client := dreamina.NewClient("session-id", dreamina.WithBaseURL("http://gw:5200"))
func NewClient(token string, opts ...Option) *Client {
	cfg := &clientConfig{
		token:           token,
		baseURL:         DefaultBaseURL,
		timeout:         DefaultTimeout,
		downloadTimeout: DefaultDownloadTimeout,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	cfg.baseURL = strings.TrimRight(cfg.baseURL, "/")
	if cfg.httpClient == nil {
		cfg.httpClient = &http.Client{}
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.now == nil {
		cfg.now = time.Now
	}

	c := &Client{
		config: cfg,
		http:   newHTTPClient(cfg),
	}
	c.Image = newImageService(c)

	return c
}

// BaseURL returns the configured gateway address.
func (c *Client) BaseURL() string {
	return c.config.baseURL
}

// Timeout returns the generation round-trip bound.
func (c *Client) Timeout() time.Duration {
	return c.config.timeout
}
