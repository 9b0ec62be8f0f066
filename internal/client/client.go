// Package client is a typed HTTP client for the portfolio content API.
// Every failure, whether the request never reached the server or the server
// answered non-2xx, comes back as *APIError carrying the HTTP status (0 for
// transport failures). The client neither retries nor caches; falling back to
// local data is the fallback package's job.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotConfigured is returned by every call on a Client built without a
// base URL. No network access is attempted.
var ErrNotConfigured = errors.New("client: API base URL not configured")

// APIError is a failed API call. Status is the HTTP status code, or 0 when
// the request failed before a response arrived (dial error, timeout,
// cancellation).
type APIError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("API unavailable: %s", e.Message)
	}
	return fmt.Sprintf("API request failed: %d %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// IsTransport reports whether err is a transport failure (status 0).
func IsTransport(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == 0
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not an
// *APIError or is a transport failure.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// Client talks to one API base URL, e.g. "http://localhost:3001/api".
type Client struct {
	baseURL string
	http    *http.Client
}

// New constructs a Client. An empty baseURL is accepted; calls then fail with
// ErrNotConfigured. timeout bounds each request end to end.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Configured reports whether the client has a base URL.
func (c *Client) Configured() bool { return c.baseURL != "" }

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Projects returns the project endpoints.
func (c *Client) Projects() *ProjectAPI { return &ProjectAPI{c: c} }

// BlogPosts returns the blog post endpoints.
func (c *Client) BlogPosts() *BlogPostAPI { return &BlogPostAPI{c: c} }

// Health is the body of GET /health.
type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var h Health
	err := c.do(ctx, http.MethodGet, "/health", nil, &h)
	return h, err
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// do sends one request and decodes a 2xx JSON body into out (unless out is
// nil or the status is 204).
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if c.baseURL == "" {
		return ErrNotConfigured
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &APIError{Message: "invalid request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Message: "network error or API unavailable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var eb errorBody
		if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&eb); err == nil && eb.Error.Message != "" {
			apiErr.Code = eb.Error.Code
			apiErr.Message = eb.Error.Message
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Status: resp.StatusCode, Message: "malformed response body", Err: err}
	}
	return nil
}

func escape(segment string) string { return url.PathEscape(segment) }
