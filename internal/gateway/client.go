// Package gateway implements the authenticated request gateway to the
// remote canteen API: one HTTP client with a fixed base URL that attaches
// the configured bearer token to every outgoing call and logs each
// request/response pair for diagnostics.
package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/canteen-system/canteen-console/internal/core/ports"
)

const defaultTimeout = 30 * time.Second

// Client issues JSON calls against the canteen backend. A Client is
// immutable once built: WithToken derives a copy bound to a credential, so
// in-flight requests keep the token they were issued with even if the
// session logs out meanwhile.
type Client struct {
	base  string
	httpc *http.Client
	token string
	log   zerolog.Logger
}

var _ ports.APIClient = (*Client)(nil)
var _ ports.AuthAPI = (*Client)(nil)

// New builds an anonymous client for the given base URL. The base may
// include a path prefix; a trailing slash is tolerated.
func New(baseURL string, log zerolog.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("gateway: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("gateway: base url %q must be absolute", baseURL)
	}
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		httpc: &http.Client{Timeout: defaultTimeout},
		log:   log,
	}, nil
}

// WithToken returns a client that sends "Authorization: Bearer <token>" on
// every request. An empty token yields an anonymous client.
func (c *Client) WithToken(token string) ports.APIClient {
	clone := *c
	clone.token = token
	return &clone
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// Ping checks backend reachability. Any HTTP response, including an error
// status, proves the backend is up; only transport failures count.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base, nil)
	if err != nil {
		return fmt.Errorf("gateway ping: %w", err)
	}
	res, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("gateway ping: %w", err)
	}
	_, _ = io.Copy(io.Discard, res.Body)
	_ = res.Body.Close()
	return nil
}
