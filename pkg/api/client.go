package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds every request so a hung server can never leave a view
// loading forever.
const DefaultTimeout = 30 * time.Second

// TokenSource supplies the bearer token attached to each request. An empty
// string means no credential is available.
type TokenSource func() string

// Client wraps outbound requests to the credit-note API: it injects the
// bearer token, normalizes errors into the client taxonomy, and decodes the
// JSON or binary response body.
type Client struct {
	base      *url.URL
	http      *http.Client
	token     TokenSource
	onExpired func()
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token source.
func WithToken(src TokenSource) Option {
	return func(c *Client) { c.token = src }
}

// WithExpiredHandler registers the session-guard hook invoked exactly once
// per 401 response, before the call returns ErrSessionExpired.
func WithExpiredHandler(fn func()) Option {
	return func(c *Client) { c.onExpired = fn }
}

// WithTimeout overrides the default per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient swaps the underlying transport, mostly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New builds a client for the given server base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("server url %q must be absolute", baseURL)
	}
	c := &Client{
		base: u,
		http: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL reports the configured server address.
func (c *Client) BaseURL() string { return c.base.String() }

// do executes one request and hands back the raw response. Transport-level
// failures are folded into ErrNetworkUnavailable; 401 escalates to the
// expired handler.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, attachAuth bool) (*http.Response, error) {
	endpoint := *c.base
	endpoint.Path = strings.TrimRight(endpoint.Path, "/") + path
	if query != nil {
		endpoint.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if attachAuth && c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrNetworkUnavailable, err)
	}

	// A 401 means the credential went stale, but only when one was attached:
	// a 401 on the unauthenticated token exchange is a plain request error.
	if resp.StatusCode == http.StatusUnauthorized && req.Header.Get("Authorization") != "" {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		if c.onExpired != nil {
			c.onExpired()
		}
		return nil, ErrSessionExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, decodeError(resp)
	}
	return resp, nil
}

// Request performs a JSON round trip. body may be nil; out may be nil for
// endpoints that return no payload (delete returns 204).
func (c *Client) Request(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
		contentType = "application/json"
	}

	resp, err := c.do(ctx, method, path, query, reader, contentType, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// RequestForm posts form-encoded fields, used only by the token endpoint.
// The exchange is unauthenticated: a stored bearer token is never attached,
// so a rejected login can never be mistaken for an expired session.
func (c *Client) RequestForm(ctx context.Context, path string, fields url.Values, out any) error {
	resp, err := c.do(ctx, http.MethodPost, path, nil,
		strings.NewReader(fields.Encode()), "application/x-www-form-urlencoded", false)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// RequestBinary performs a round trip whose successful response is an opaque
// byte payload (report downloads).
func (c *Client) RequestBinary(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	resp, err := c.do(ctx, method, path, query, nil, "", true)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}

// decodeError extracts the server's structured detail, falling back to the
// HTTP status text when the body is not the expected shape.
func decodeError(resp *http.Response) error {
	detail := ""
	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && len(data) > 0 {
		var payload struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(data, &payload) == nil {
			detail = strings.TrimSpace(payload.Detail)
		}
	}
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}
	return &RequestError{Status: resp.StatusCode, Detail: detail}
}
