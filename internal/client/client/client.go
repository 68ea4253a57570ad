package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/parishportal/parishportal/internal/common"
	"github.com/parishportal/parishportal/internal/logging"
)

// TokenSource yields the currently persisted bearer token. An empty string
// means "no token"; requests are then sent unauthenticated, which is not
// itself an error — the backend decides whether the endpoint requires one.
//
// The API client only ever reads through this interface; writes happen in
// the auth service.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client issues requests against the ParishPortal REST API and normalizes
// responses into the Envelope shape.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger

	// newRequestID is a test seam for request correlation ids.
	newRequestID func() string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client (timeouts, transport).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout on the default client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New constructs a Client for the given API base URL. tokens may be nil for
// a purely anonymous client.
func New(baseURL string, tokens TokenSource, log logging.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         &http.Client{Timeout: 30 * time.Second},
		tokens:       tokens,
		log:          log,
		newRequestID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AbsoluteURL joins an endpoint path onto the API base. Pure string work;
// used by the per-resource image/file URL builders.
func (c *Client) AbsoluteURL(endpoint string) string {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return c.baseURL + endpoint
}

// HTTPClient exposes the underlying transport for raw (non-envelope)
// downloads.
func (c *Client) HTTPClient() *http.Client {
	return c.http
}

// send builds and issues one request, handling body encoding, the bearer
// header, and the correlation id. The caller owns the response body.
func (c *Client) send(ctx context.Context, method, endpoint string, body any) (*http.Response, error) {
	var (
		reader      io.Reader
		contentType string
	)

	switch b := body.(type) {
	case nil:
	case *FormBody:
		reader = b.Reader()
		contentType = b.ContentType()
	default:
		payload, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, c.AbsoluteURL(endpoint), reader)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set(common.RequestIDHeaderName, c.newRequestID())

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("read token: %w", err)
		}
		if token != "" {
			req.Header.Set(common.AuthHeaderName, common.BearerPrefix+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

// Do sends one request and returns the parsed envelope verbatim.
//
// Body handling:
//   - nil: no request body;
//   - *FormBody: multipart payload, content type taken from the form writer
//     so the boundary survives;
//   - anything else: marshalled to JSON with Content-Type: application/json.
//
// Only network-level failures (ErrUnavailable) and non-JSON bodies
// (ErrMalformedResponse) are returned as errors. An envelope with
// success=false is returned as data; callers handle that path separately.
func (c *Client) Do(ctx context.Context, method, endpoint string, body any) (*Envelope, error) {
	var env Envelope
	if err := c.DoInto(ctx, method, endpoint, body, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// DoInto sends one request and decodes the JSON body into out. It exists
// for the few endpoints whose response deviates from the uniform envelope
// (login carries token and user as top-level siblings of success).
// Error semantics match Do.
func (c *Client) DoInto(ctx context.Context, method, endpoint string, body, out any) error {
	resp, err := c.send(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if c.log != nil {
		c.log.Debug(ctx, "api call", "method", method, "endpoint", endpoint,
			"status", resp.StatusCode)
	}

	return nil
}

// Get issues GET endpoint with the serialized list options appended.
func (c *Client) Get(ctx context.Context, endpoint string, opts *ListOptions) (*Envelope, error) {
	return c.Do(ctx, http.MethodGet, withQuery(endpoint, opts), nil)
}

// Post issues POST endpoint with the given body.
func (c *Client) Post(ctx context.Context, endpoint string, body any) (*Envelope, error) {
	return c.Do(ctx, http.MethodPost, endpoint, body)
}

// Put issues PUT endpoint with the given body.
func (c *Client) Put(ctx context.Context, endpoint string, body any) (*Envelope, error) {
	return c.Do(ctx, http.MethodPut, endpoint, body)
}

// Delete issues DELETE endpoint.
func (c *Client) Delete(ctx context.Context, endpoint string) (*Envelope, error) {
	return c.Do(ctx, http.MethodDelete, endpoint, nil)
}

// Ping probes backend liveness via GET /health.
func (c *Client) Ping(ctx context.Context) error {
	env, err := c.Do(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}
	if !env.Success {
		return fmt.Errorf("health check failed: %s", env.Message)
	}
	return nil
}
