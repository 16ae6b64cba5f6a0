package upstream

// Package upstream is the adapter for the remote resident-management JSON
// API. Every call settles with the uniform ports.Result shape: transport
// failures, non-2xx statuses, malformed JSON, and business rejections all
// become Success=false with a message. The UI never distinguishes transport
// from business failure.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// envelope is the wire shape shared by all upstream responses.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	User    json.RawMessage `json:"user"`
	Items   json.RawMessage `json:"-"`
}

// Config captures what the client needs to reach the upstream API.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client
	Logger  *slog.Logger
}

// Client is a thin JSON-over-HTTP client for the upstream API.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// genericFailure is the one message surfaced for transport-level problems.
// Keeping it generic mirrors the product decision to treat "network
// unreachable" and "invalid credentials" alike at the UI.
const genericFailure = "request failed, please try again"

// NewClient builds an upstream client. Callers should pass a validated config.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("upstream base URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("parse upstream base URL: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{baseURL: base, client: hc, logger: logger}, nil
}

// postJSON issues one POST and decodes the response envelope. The returned
// error is internal plumbing for this package only; callers of the exported
// methods see a Result instead.
func (c *Client) postJSON(ctx context.Context, path string, payload any) (envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return envelope{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return envelope{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return envelope{}, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("close upstream response body", "error", cerr)
		}
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return envelope{}, fmt.Errorf("read response: %w", err)
	}

	// The API signals business failures inside the envelope, usually with a
	// 4xx status; decode before rejecting on status so the server message
	// survives.
	var env envelope
	if decodeErr := json.Unmarshal(data, &env); decodeErr != nil {
		return envelope{}, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, decodeErr)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return env, fmt.Errorf("upstream status %d", resp.StatusCode)
	}

	return env, nil
}

// getJSON issues one GET and returns the raw body.
func (c *Client) getJSON(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("close upstream response body", "error", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}

// failureMessage picks the message surfaced to the UI for a settled call.
func failureMessage(env envelope) string {
	if msg := strings.TrimSpace(env.Message); msg != "" {
		return msg
	}
	return genericFailure
}
