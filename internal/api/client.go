// Package api talks to the todo list backend. Every failure, whether the
// request never completed or the server answered non-2xx, comes back as an
// *errs.Error so callers handle them in one branch.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/idilsaglam/todolists/internal/errs"
)

// Credentials yields the bearer token for the current session. An empty token
// means the request goes out unauthenticated.
type Credentials interface {
	Token() string
}

// Client is a JSON HTTP client for the backend.
type Client struct {
	base  *url.URL
	http  *http.Client
	creds Credentials
	log   *slog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithCredentials attaches a bearer token to each request when one is present.
func WithCredentials(cr Credentials) Option { return func(c *Client) { c.creds = cr } }

func WithLogger(l *slog.Logger) Option { return func(c *Client) { c.log = l } }

// New returns a client rooted at baseURL (e.g. http://localhost:3000).
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q: scheme and host required", baseURL)
	}
	c := &Client{base: u, http: &http.Client{}, log: slog.Default()}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Request sends body (JSON-encoded when non-nil) and decodes a 2xx response into
// out. When out is non-nil an empty 2xx body is a ServerRejection.
func (c *Client) Request(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out, false)
}

// do is Request with emptyOK letting a 2xx response carry no body, leaving out
// untouched.
func (c *Client) do(ctx context.Context, method, path string, body, out any, emptyOK bool) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &errs.Error{Kind: errs.ClientPrecondition, Msg: "encode request: " + err.Error(), Err: err}
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base.JoinPath(path).String(), rd)
	if err != nil {
		return &errs.Error{Kind: errs.ClientPrecondition, Msg: "build request: " + err.Error(), Err: err}
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", reqID)
	if c.creds != nil {
		if tok := c.creds.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", "method", method, "path", path, "request_id", reqID, "err", err)
		return &errs.Error{Kind: errs.NetworkFailure, Msg: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &errs.Error{Kind: errs.NetworkFailure, Msg: "read response: " + err.Error(), Err: err}
	}
	c.log.Debug("handled", "method", method, "path", path, "status", resp.StatusCode, "request_id", reqID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = resp.Status
		}
		return &errs.Error{Kind: errs.ServerRejection, Status: resp.StatusCode, Msg: msg}
	}
	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		if emptyOK {
			return nil
		}
		c.log.Debug("empty response", "method", method, "path", path, "status", resp.StatusCode, "request_id", reqID)
		return &errs.Error{Kind: errs.ServerRejection, Status: resp.StatusCode, Msg: fmt.Sprintf("%s %s: empty response", method, path)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &errs.Error{Kind: errs.ServerRejection, Status: resp.StatusCode, Msg: "decode response: " + err.Error(), Err: err}
	}
	return nil
}
