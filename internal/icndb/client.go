package icndb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// JokeFetcher defines the interface for fetching joke collections.
// This interface is implemented by *Client and can be used for testing.
type JokeFetcher interface {
	ListJokes(ctx context.Context, params url.Values) ([]Joke, error)
	RandomJokes(ctx context.Context, n int, params url.Values) ([]Joke, error)
}

// Ensure Client implements JokeFetcher at compile time.
var _ JokeFetcher = (*Client)(nil)

// Client talks to an ICNDb compatible joke service.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	// DefaultBaseURL is the public ICNDb endpoint.
	DefaultBaseURL   = "https://api.icndb.com"
	defaultUserAgent = "norris/0.1"
	requestTimeout   = 10 * time.Second
)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client for the service rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the service root the client was built with.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// ListJokes retrieves the joke collection matching params.
func (c *Client) ListJokes(ctx context.Context, params url.Values) ([]Joke, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	return c.fetch(ctx, "/jokes", params)
}

// RandomJokes draws n random jokes matching params.
func (c *Client) RandomJokes(ctx context.Context, n int, params url.Values) ([]Joke, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if n <= 0 {
		return nil, fmt.Errorf("random count must be positive, got %d", n)
	}
	return c.fetch(ctx, "/jokes/random/"+strconv.Itoa(n), params)
}

func (c *Client) fetch(ctx context.Context, path string, params url.Values) ([]Joke, error) {
	rel := &url.URL{Path: c.baseURL.Path + path, RawQuery: params.Encode()}
	var payload envelope
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return nil, err
	}
	return payload.jokes(rel.Path)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
