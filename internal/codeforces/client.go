package codeforces

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rodriguescarson/cfkit/internal/auth"
)

// DefaultBaseURL is the public API root.
const DefaultBaseURL = "https://codeforces.com/api"

// DefaultTimeout bounds every request.
const DefaultTimeout = 10 * time.Second

// Client provides access to the Codeforces API.
type Client struct {
	baseURL    string
	creds      *auth.Credentials
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new API client. An empty baseURL uses DefaultBaseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithCredentials enables signed requests. Incomplete credentials are ignored.
func WithCredentials(key, secret string) ClientOption {
	return func(c *Client) {
		c.creds = auth.NewCredentials(key, secret)
	}
}

// WithSigner sets prepared credentials, mainly for tests.
func WithSigner(creds *auth.Credentials) ClientOption {
	return func(c *Client) {
		c.creds = creds
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// Authenticated reports whether requests can be signed.
func (c *Client) Authenticated() bool {
	return c.creds != nil
}
