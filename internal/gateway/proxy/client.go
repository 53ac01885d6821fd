package proxy

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a thin JSON proxy to one downstream service. Requests carry
// the caller's bearer token unchanged when one is given; the gateway
// never re-mints identity.
type Client struct {
	base string
	http *http.Client
}

func New(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// Response is whatever the downstream answered, relayed as-is.
type Response struct {
	Status int
	Body   []byte
}

// Do performs the proxied call. An error means the downstream could not
// be reached at all; any received response, success or not, comes back
// as a Response.
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader, token string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if reqID, ok := ctx.Value(ctxKeyRequestID{}).(string); ok && reqID != "" {
		req.Header.Set("X-Request-ID", reqID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Response{Status: resp.StatusCode, Body: b}, nil
}

type ctxKeyRequestID struct{}

// WithRequestID threads the gateway's request id into the outbound call.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID{}, id)
}
