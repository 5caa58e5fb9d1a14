// Package remote implements a thermo.Backend that forwards every library
// call to a thermo HTTP server over its backend proxy endpoint.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fwojciec/thermo"
	thermojson "github.com/fwojciec/thermo/json"
)

// CallPath is the backend proxy endpoint served by the http package.
const CallPath = "/v1/backend/call"

// Interface compliance checks.
var (
	_ thermo.Backend = (*Client)(nil)
	_ thermo.Session = (*session)(nil)
)

// Client implements [thermo.Backend] against a remote thermo server.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures a [Client].
type Option func(*Client)

// WithAPIKey sets the key sent in the X-API-Key header.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a [Client] for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Open returns a session. Sessions hold no server-side state; the server
// opens a session of its own backend for every call.
func (c *Client) Open(ctx context.Context) (thermo.Session, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("remote: no base URL: %w", thermo.ErrConfiguration)
	}
	return &session{client: c}, nil
}

type session struct {
	client *Client
	closed bool
}

func (s *session) Call(ctx context.Context, call thermo.Call) (thermo.Reply, error) {
	if s.closed {
		return thermo.Reply{}, thermo.ErrSessionClosed
	}
	body, err := thermojson.MarshalCall(call)
	if err != nil {
		return thermo.Reply{}, fmt.Errorf("remote: %w", err)
	}

	c := s.client
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+CallPath, bytes.NewReader(body))
	if err != nil {
		return thermo.Reply{}, fmt.Errorf("remote: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return thermo.Reply{}, fmt.Errorf("remote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return thermo.Reply{}, parseHTTPError(resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return thermo.Reply{}, fmt.Errorf("remote: read body: %w", err)
	}
	reply, err := thermojson.UnmarshalReply(data)
	if err != nil {
		return thermo.Reply{}, fmt.Errorf("remote: %w", err)
	}
	return reply, nil
}

func (s *session) Close() error {
	s.closed = true
	return nil
}

// parseHTTPError builds an error from a non-200 response. The server
// reports failures as {"detail": "..."}.
func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("remote: HTTP %d (failed to read body: %w)", resp.StatusCode, err)
	}
	var apiErr struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Detail == "" {
		return fmt.Errorf("remote: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return fmt.Errorf("remote: HTTP %d: %s", resp.StatusCode, apiErr.Detail)
}
