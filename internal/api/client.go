package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"ride-hail-client/internal/common/logger"
	"ride-hail-client/internal/metrics"
	"ride-hail-client/internal/session"
)

// Client is the single REST access point. Every outgoing request gets the
// bearer token of the active role namespace when one exists; a missing token
// means an unauthenticated request, not a client-side error. A 401 on any
// response triggers the global policy: purge stored credentials, then fire
// the unauthorized hook exactly once per login epoch.
type Client struct {
	baseURL string
	httpc   *http.Client
	sess    *session.Session
	log     *logger.Logger

	onUnauthorized   func()
	unauthorizedDone atomic.Bool
}

// New creates a client for baseURL using the given session for tokens.
func New(baseURL string, timeout time.Duration, sess *session.Session, log *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		sess:    sess,
		log:     log,
	}
}

var validate = validator.New()

// checkRequest rejects a malformed body locally instead of burning a round
// trip on a guaranteed 422.
func checkRequest(req any) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

// SetUnauthorizedHook registers the agent's "navigate to login" side effect.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.onUnauthorized = fn
}

// RearmUnauthorized re-enables the one-shot unauthorized hook. Called after
// a fresh login starts a new epoch.
func (c *Client) RearmUnauthorized() {
	c.unauthorizedDone.Store(false)
}

func (c *Client) handleUnauthorized(ctx context.Context) {
	if err := c.sess.PurgeCredentials(); err != nil {
		c.log.Error(ctx, "credential_purge_failed", "Failed to clear stored credentials after 401", err, nil)
	}
	if c.onUnauthorized != nil && c.unauthorizedDone.CompareAndSwap(false, true) {
		c.onUnauthorized()
	}
}

// do issues a JSON request. body and out may be nil. The bearer token, when
// present, comes from the session; everything else is passed through.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	return c.doWith(ctx, c.sess.Token(), method, path, body, out)
}

func (c *Client) doWith(ctx context.Context, token, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.send(ctx, req, out)
}

// doForm issues a form-encoded request; the login endpoint takes its
// credentials this way.
func (c *Client) doForm(ctx context.Context, method, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.send(ctx, req, out)
}

func (c *Client) send(ctx context.Context, req *http.Request, out any) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	metrics.APIRequests.WithLabelValues(req.Method, fmt.Sprintf("%dxx", resp.StatusCode/100)).Inc()

	if resp.StatusCode == http.StatusUnauthorized {
		c.log.Warn(ctx, "request_unauthorized", "Server rejected credentials, forcing logout",
			map[string]any{"method": req.Method, "path": req.URL.Path})
		c.handleUnauthorized(ctx)
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
