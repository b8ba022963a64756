// Package remote talks to the health records REST API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// Client is an authenticated API client. Every request carries the bearer
// token currently returned by the token source.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	base *http.Client
	log  *slog.Logger
}

// WithHTTPClient sets the underlying client whose transport carries the
// authenticated requests. Its Timeout, if any, is kept.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(o *clientOptions) { o.base = c }
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(o *clientOptions) { o.log = l }
}

// NewClient creates a client for the API rooted at baseURL.
//
// The token source is consulted on every request and is not wrapped in a
// caching source, so a token change is picked up immediately.
func NewClient(baseURL string, tokens oauth2.TokenSource, opts ...ClientOption) *Client {
	o := clientOptions{base: &http.Client{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: &oauth2.Transport{Source: tokens, Base: o.base.Transport},
			Timeout:   o.base.Timeout,
		},
		log: o.log.With("component", "remote"),
	}
}

// BaseURL returns the API root all paths are appended to.
func (c *Client) BaseURL() string { return c.baseURL }

// envelope is the response wrapper used by every endpoint.
type envelope[T any] struct {
	Data T `json:"data"`
}

// errorBody is the body of a failed response.
type errorBody struct {
	Message string `json:"message"`
}

// APIError is returned for responses with a status of 400 or above.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
	Body    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: API error %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: API error %d", e.Method, e.Path, e.Status)
}

// ServerMessage returns the message field of the error body, if any.
func (e *APIError) ServerMessage() string { return e.Message }

// do sends one request and decodes the data field of a successful response
// into out. There is no retry.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.DebugContext(ctx, "api request", "method", method, "path", path, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Method: method, Path: path, Status: resp.StatusCode, Body: string(data)}
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil {
			apiErr.Message = eb.Message
		}
		c.log.DebugContext(ctx, "api error", "status", resp.StatusCode, "request_id", requestID, "message", apiErr.Message)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding API response: %w", err)
	}
	return nil
}
