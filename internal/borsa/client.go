package borsa

import (
	"log/slog"
	"net/http"
	"time"
)

// Client accesses the Borsa Italiana detail pages and charting service.
type Client struct {
	pageBaseURL string
	chartURL    string
	httpClient  *http.Client
	logger      *slog.Logger

	userAgent string
	headers   map[string]string
	cookies   map[string]string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a client for the given page and chart base URLs.
func NewClient(pageBaseURL, chartURL string, opts ...ClientOption) *Client {
	c := &Client{
		pageBaseURL: pageBaseURL,
		chartURL:    chartURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:    slog.Default(),
		userAgent: DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
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

// WithUserAgent sets the User-Agent sent on every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithHeaders sets the static header set attached to chart requests.
func WithHeaders(headers map[string]string) ClientOption {
	return func(c *Client) {
		c.headers = headers
	}
}

// WithCookies sets the static cookie set attached to chart requests.
func WithCookies(cookies map[string]string) ClientOption {
	return func(c *Client) {
		c.cookies = cookies
	}
}
