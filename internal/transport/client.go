// Package transport is the single HTTP client every remote data source shares:
// base URL, bearer token injection, JSON and multipart bodies, request ids.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"evrental-staff-core/internal/apperror"

	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"
	maxErrorBody    = 64 << 10
)

var ErrNoBaseURL = errors.New("transport: base url is required")

// TokenSource supplies the bearer token for outgoing requests. An empty token
// sends the request unauthenticated.
type TokenSource interface {
	Token() string
}

// Response is a 2xx reply. Body is fully read.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	timeout time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenSource sets the bearer token supplier.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithTimeout bounds every request. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, ErrNoBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// DoJSON sends body (nil for none) as JSON.
func (c *Client) DoJSON(ctx context.Context, method, path string, body any) (*Response, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
	}
	contentType := ""
	if payload != nil {
		contentType = "application/json"
	}
	return c.do(ctx, method, path, contentType, func() (io.Reader, error) {
		return bytes.NewReader(payload), nil
	})
}

// DoMultipart sends form as multipart/form-data. Every file part is checked
// before the request is built.
func (c *Client) DoMultipart(ctx context.Context, method, path string, form *Form) (*Response, error) {
	if err := form.checkFiles(); err != nil {
		return nil, err
	}
	body, contentType, err := form.encode()
	if err != nil {
		return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
	}
	return c.do(ctx, method, path, contentType, func() (io.Reader, error) {
		return body, nil
	})
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body func() (io.Reader, error)) (*Response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	reader, err := body()
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, uuid.NewString())
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	endpoint := metricEndpoint(path)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observe(method, endpoint, "error", start)
		return nil, &apperror.TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()
	observe(method, endpoint, strconv.Itoa(resp.StatusCode), start)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, newHTTPError(method, path, resp.StatusCode, raw)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperror.TransportError{Method: method, Path: path, Err: err}
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: raw}, nil
}

// newHTTPError keeps whatever structure the error body has.
func newHTTPError(method, path string, status int, raw []byte) *apperror.HTTPError {
	he := &apperror.HTTPError{Method: method, Path: path, StatusCode: status, Body: raw}
	var env struct {
		Message   string `json:"message"`
		ErrorCode string `json:"errorCode"`
	}
	if json.Unmarshal(raw, &env) == nil {
		he.Message = env.Message
		he.ErrorCode = env.ErrorCode
	}
	if he.Message == "" {
		he.Message = http.StatusText(status)
	}
	return he
}
