// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// QueryURL is the question-answer endpoint.
	QueryURL = "https://madhwagpt2.onrender.com/query"

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Prevents memory exhaustion from a misbehaving server.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit

	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "madhwagpt-tui/0.1.0"
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// Config holds configuration options for the API client.
type Config struct {
	// QueryURL is the question-answer endpoint (default: QueryURL)
	QueryURL string

	// Timeout for a single request. Zero keeps the net/http default (no
	// client-side deadline); callers bound requests with their context.
	Timeout time.Duration

	// QueryRate limits questions per second. Zero disables pacing.
	QueryRate float64

	// QueryBurst is the limiter burst size (default: 1)
	QueryBurst int

	// UserAgent header value (default: DefaultUserAgent)
	UserAgent string

	// HTTPClient overrides the underlying client; mainly for tests.
	HTTPClient *http.Client

	// Logger receives request diagnostics (default: slog.Default())
	Logger *slog.Logger
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() Config {
	return Config{
		QueryURL:   QueryURL,
		QueryBurst: 1,
		UserAgent:  DefaultUserAgent,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the MadhwaGPT HTTP API. Every call makes exactly one
// attempt; failures come back as *ClientError.
//
// The Client is safe for concurrent use. It holds no per-request state.
//
// Example:
//
//	client := api.NewClient(api.DefaultConfig())
//	answer, err := client.Ask(ctx, "What is Pancha-bheda?", "")
//	chapters, err := api.Fetch[scripture.ChapterList](ctx, client, work.ChaptersURL)
type Client struct {
	queryURL   string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *slog.Logger
}

// NewClient creates a client, filling zero-valued fields from DefaultConfig.
func NewClient(cfg Config) *Client {
	defaults := DefaultConfig()
	if cfg.QueryURL == "" {
		cfg.QueryURL = defaults.QueryURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}
	if cfg.QueryBurst <= 0 {
		cfg.QueryBurst = defaults.QueryBurst
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	c := &Client{
		queryURL:   cfg.QueryURL,
		userAgent:  cfg.UserAgent,
		httpClient: httpClient,
		log:        cfg.Logger.With(slog.String("component", "api")),
	}
	if cfg.QueryRate > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.QueryRate), cfg.QueryBurst)
	}
	return c
}

// QueryEndpoint returns the configured question-answer URL.
func (c *Client) QueryEndpoint() string {
	return c.queryURL
}

// =============================================================================
// REQUEST PIPELINE
// =============================================================================

// ParseURL validates that raw is an absolute http(s) URL.
func ParseURL(raw string) (*url.URL, error) {
	u, err := url.ParseRequestURI(strings.TrimSpace(raw))
	if err != nil {
		return nil, newError(ErrTypeInvalidURL, "invalid URL "+quoteURL(raw), err)
	}
	if u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, newError(ErrTypeInvalidURL, "invalid URL "+quoteURL(raw), nil)
	}
	return u, nil
}

// Do sends one request and decodes a 2xx JSON body into out. body, when
// non-nil, is encoded as JSON. The same success predicate applies to every
// method: status in 200..299 and a body that decodes into out.
func (c *Client) Do(ctx context.Context, method, rawURL string, body, out any) error {
	u, err := ParseURL(rawURL)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return newError(ErrTypeInvalidRequest, "failed to encode request", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return newError(ErrTypeInvalidRequest, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			slog.String("method", method),
			slog.String("url", u.Redacted()),
			slog.Any("error", err))
		return newError(ErrTypeTransport, "request failed", err)
	}
	defer resp.Body.Close()

	c.log.Debug("api request",
		slog.String("method", method),
		slog.String("url", u.Redacted()),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))

	// A transport that hands back a response without a status line.
	if resp.StatusCode == 0 {
		return newError(ErrTypeNonHTTP, ErrNonHTTP.Message, nil)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused; the body is not inspected.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxResponseSize))
		return &ClientError{
			Type:       ErrTypeBadStatus,
			Message:    ErrBadStatus.Message,
			StatusCode: resp.StatusCode,
		}
	}

	data, err := readResponse(resp)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return newError(ErrTypeDecode, ErrDecode.Message, err)
	}
	return nil
}

// Fetch issues exactly one GET against rawURL and decodes the body into T.
// A malformed URL fails before any network I/O.
func Fetch[T any](ctx context.Context, c *Client, rawURL string) (T, error) {
	var out T
	if err := c.Do(ctx, http.MethodGet, rawURL, nil, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// readResponse reads the response body with a size limit.
// SECURITY: Limits response size to prevent memory exhaustion.
func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, newError(ErrTypeTransport, "failed to read response", err)
	}
	if int64(len(body)) > MaxResponseSize {
		return nil, newError(ErrTypeDecode, "response exceeded maximum size", nil)
	}
	return body, nil
}

func quoteURL(s string) string {
	if len(s) > 80 {
		s = s[:77] + "..."
	}
	return strconv.Quote(s)
}
