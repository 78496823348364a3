// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultTimeout applies to each of connect, read and write.
	DefaultTimeout = 120 * time.Second

	// MaxResponseSize is the maximum accepted response body size.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB

	opGenerate = "generate-comment"
	opContinue = "continue-conversation"

	userAgent = "chatguru-tui/1.0"
)

// Timeouts groups the per-phase transport timeouts.
type Timeouts struct {
	Connect time.Duration
	Read    time.Duration
	Write   time.Duration
}

// DefaultTimeouts returns 120s for every phase.
func DefaultTimeouts() Timeouts {
	return Timeouts{Connect: DefaultTimeout, Read: DefaultTimeout, Write: DefaultTimeout}
}

// Total is the whole-request budget used as http.Client.Timeout.
func (t Timeouts) Total() time.Duration {
	return t.Connect + t.Read + t.Write
}

// Client talks to the comment backend. It is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logBodies  bool
}

// NewClient creates a client for baseURL (for example
// "https://<project>.supabase.co/functions/v1") using apiKey for both the
// apikey and bearer headers.
func NewClient(baseURL, apiKey string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(strings.TrimSpace(baseURL), "/"),
		apiKey:  strings.TrimSpace(apiKey),
	}
	c.httpClient = newHTTPClient(DefaultTimeouts())
	return c
}

func newHTTPClient(t Timeouts) *http.Client {
	dialer := &net.Dialer{
		Timeout:   t.Connect,
		KeepAlive: 30 * time.Second,
	}
	return &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           dialer.DialContext,
			MaxIdleConns:          10,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   t.Connect,
			ResponseHeaderTimeout: t.Read,
		},
		Timeout: t.Total(),
	}
}

// WithTimeouts rebuilds the transport with the given timeouts. Zero
// fields keep the default.
func (c *Client) WithTimeouts(t Timeouts) *Client {
	if t.Connect <= 0 {
		t.Connect = DefaultTimeout
	}
	if t.Read <= 0 {
		t.Read = DefaultTimeout
	}
	if t.Write <= 0 {
		t.Write = DefaultTimeout
	}
	c.httpClient = newHTTPClient(t)
	return c
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.httpClient = hc
	}
	return c
}

// WithLogBodies toggles request/response body logging.
func (c *Client) WithLogBodies(enabled bool) *Client {
	c.logBodies = enabled
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// IsConfigured reports whether an API key is set.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// =============================================================================
// ENDPOINTS
// =============================================================================

// GenerateComment requests a first comment for a post.
func (c *Client) GenerateComment(ctx context.Context, req GenerateCommentRequest) (*CommentResponse, error) {
	var logged any
	if c.logBodies {
		logged = req.redacted()
	}
	return c.post(ctx, opGenerate, req, logged, DefaultGenerateError)
}

// ContinueConversation requests a follow-up reply.
func (c *Client) ContinueConversation(ctx context.Context, req ContinueConversationRequest) (*CommentResponse, error) {
	var logged any
	if c.logBodies {
		logged = req
	}
	return c.post(ctx, opContinue, req, logged, DefaultContinueError)
}

// post sends body to {base}/{op} and decodes the envelope.
func (c *Client) post(ctx context.Context, op string, body, logged any, defaultErr string) (*CommentResponse, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+op, bytes.NewReader(payload))
	if err != nil {
		return nil, &NetworkError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	c.setHeaders(httpReq)
	c.logRequest(httpReq, logged)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Printf("[cloud] %s failed after %v: %v", op, time.Since(start).Round(time.Millisecond), err)
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := readResponse(resp)
	c.logResponse(resp, time.Since(start), raw)
	if err != nil {
		return nil, &NetworkError{Op: op, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{Op: op, Status: resp.StatusCode, Err: statusCause(resp.StatusCode, raw)}
	}

	var envelope CommentResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &NetworkError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("malformed response: %w", err)}
	}

	if !envelope.Success {
		msg := strings.TrimSpace(envelope.Error)
		if msg == "" {
			msg = defaultErr
		}
		return nil, &APIError{Message: msg}
	}

	return &envelope, nil
}

// statusCause prefers the envelope's error field, then the raw body.
func statusCause(status int, raw []byte) error {
	var envelope CommentResponse
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != "" {
		return &statusError{status: status, message: envelope.Error}
	}
	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &statusError{status: status, message: msg}
}

// setHeaders sets the credential and content headers.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
}

// readResponse reads the response body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// =============================================================================
// LOGGING
// =============================================================================

// logRequest never logs headers; they carry the credential.
func (c *Client) logRequest(req *http.Request, logged any) {
	log.Printf("[cloud] --> %s %s", req.Method, req.URL.Path)
	if logged == nil {
		return
	}
	if b, err := json.Marshal(logged); err == nil {
		log.Printf("[cloud] --> body %s", b)
	}
}

func (c *Client) logResponse(resp *http.Response, d time.Duration, body []byte) {
	log.Printf("[cloud] <-- %d %s (%v)", resp.StatusCode, resp.Request.URL.Path, d.Round(time.Millisecond))
	if c.logBodies && len(body) > 0 {
		log.Printf("[cloud] <-- body %s", body)
	}
}
