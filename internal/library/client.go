package library

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Fetcher is the set of API operations the application state depends on.
// It is implemented by *Client and by fakes in tests.
type Fetcher interface {
	Authenticate(ctx context.Context, username, password string) (string, error)
	ListAuthors(ctx context.Context, token string) ([]Author, error)
	ListBooks(ctx context.Context, token string) ([]Book, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

const (
	defaultAPIBase   = "127.0.0.1:8005"
	defaultUserAgent = "shelf/0.1"

	tokenAuthPath = "/api-token-auth/"
	authorsPath   = "/api/authors/"
	booksPath     = "/api/books/"
)

// Client talks to the library HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
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

// NewClient builds a Client for the given API base (host:port or URL).
// Requests carry no client-side timeout; callers bound them with ctx.
func NewClient(apiBase string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized API base address.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// Authenticate exchanges credentials for an API token.
func (c *Client) Authenticate(ctx context.Context, username, password string) (string, error) {
	if c == nil {
		return "", &AuthError{Err: fmt.Errorf("client is nil")}
	}
	body, err := json.Marshal(credentials{Username: username, Password: password})
	if err != nil {
		return "", &AuthError{Err: fmt.Errorf("encode credentials: %w", err)}
	}
	var payload tokenResponse
	status, err := c.do(ctx, http.MethodPost, tokenAuthPath, "", bytes.NewReader(body), &payload)
	if err != nil {
		return "", &AuthError{Status: status, Err: err}
	}
	if strings.TrimSpace(payload.Token) == "" {
		return "", &AuthError{Status: status, Err: fmt.Errorf("response carried no token")}
	}
	return payload.Token, nil
}

// ListAuthors retrieves every author visible to the token. An empty token
// sends an anonymous request.
func (c *Client) ListAuthors(ctx context.Context, token string) ([]Author, error) {
	if c == nil {
		return nil, &FetchError{Resource: ResourceAuthors, Err: fmt.Errorf("client is nil")}
	}
	var authors []Author
	status, err := c.do(ctx, http.MethodGet, authorsPath, token, nil, &authors)
	if err != nil {
		return nil, &FetchError{Resource: ResourceAuthors, Status: status, Err: err}
	}
	return authors, nil
}

// ListBooks retrieves every book visible to the token.
func (c *Client) ListBooks(ctx context.Context, token string) ([]Book, error) {
	if c == nil {
		return nil, &FetchError{Resource: ResourceBooks, Err: fmt.Errorf("client is nil")}
	}
	var books []Book
	status, err := c.do(ctx, http.MethodGet, booksPath, token, nil, &books)
	if err != nil {
		return nil, &FetchError{Resource: ResourceBooks, Status: status, Err: err}
	}
	return books, nil
}

// do executes a request and decodes the JSON response into dest. The returned
// status is zero when no response was received.
func (c *Client) do(ctx context.Context, method, path, token string, body io.Reader, dest any) (int, error) {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return resp.StatusCode, fmt.Errorf("api %s returned status %d", path, resp.StatusCode)
	}
	if dest == nil {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		trimmed = defaultAPIBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", apiBase, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api base %q: missing host", apiBase)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
