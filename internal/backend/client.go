// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jeranaias/bookchat-tui/internal/model"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	// ErrTypeRemote means the service answered with a non-success status.
	ErrTypeRemote ErrorType = iota + 1
	// ErrTypeTransport means no response was obtained at all.
	ErrTypeTransport
)

// String returns a short name for the error type.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeRemote:
		return "remote"
	case ErrTypeTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// ClientError represents a failed exchange with the service.
type ClientError struct {
	Type       ErrorType
	StatusCode int    // Set for ErrTypeRemote
	StatusText string // Reason phrase of the response, e.g. "Not Found"
	Message    string
	Cause      error
}

func (e *ClientError) Error() string {
	msg := e.Message
	if e.Type == ErrTypeRemote && e.StatusText != "" {
		msg = fmt.Sprintf("%s: %d %s", e.Message, e.StatusCode, e.StatusText)
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// IsRemote reports whether err is a RemoteError.
func IsRemote(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeRemote
}

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeTransport
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

const (
	// DefaultBaseURL is the address of the chat service.
	DefaultBaseURL = "http://localhost:8000"

	// ChatPath is the endpoint questions are posted to.
	ChatPath = "/chat"

	// DefaultTimeout bounds a single exchange.
	DefaultTimeout = 60 * time.Second

	// maxResponseSize limits how much of a reply body is read.
	maxResponseSize = 4 * 1024 * 1024
)

// ClientConfig holds configuration options for the client.
type ClientConfig struct {
	// BaseURL is the service base URL (default: http://localhost:8000)
	BaseURL string

	// Timeout for a whole exchange, including reading the body (default: 60s)
	Timeout time.Duration

	// Logger receives one diagnostic entry per failed exchange.
	Logger zerolog.Logger

	// HTTPClient overrides the underlying client (tests).
	HTTPClient *http.Client
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
		Logger:  zerolog.Nop(),
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the chat service. It performs exactly one request per call
// and never retries.
//
// The Client is safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a new client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
		log:        config.Logger.With().Str("component", "backend").Logger(),
	}
}

// BaseURL returns the configured service address.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// CHAT
// =============================================================================

// Send posts one question and returns the service's answer verbatim.
// Failures are returned as *ClientError of type ErrTypeRemote or
// ErrTypeTransport.
func (c *Client) Send(ctx context.Context, message string, mode model.Mode) (string, error) {
	body, err := json.Marshal(ChatRequest{Message: message, Mode: mode.String()})
	if err != nil {
		return "", c.fail(&ClientError{Type: ErrTypeTransport, Message: "failed to marshal request", Cause: err})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+ChatPath, bytes.NewReader(body))
	if err != nil {
		return "", c.fail(&ClientError{Type: ErrTypeTransport, Message: "failed to create request", Cause: err})
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", c.fail(&ClientError{Type: ErrTypeTransport, Message: "backend unreachable", Cause: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused; the body is not interpreted.
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		return "", c.fail(&ClientError{
			Type:       ErrTypeRemote,
			StatusCode: resp.StatusCode,
			StatusText: statusText(resp),
			Message:    "backend returned an error",
		})
	}

	var result ChatResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&result); err != nil {
		if isInterrupted(err) {
			return "", c.fail(&ClientError{Type: ErrTypeTransport, Message: "response interrupted", Cause: err})
		}
		return "", c.fail(&ClientError{
			Type:       ErrTypeRemote,
			StatusCode: resp.StatusCode,
			StatusText: statusText(resp),
			Message:    "failed to decode response",
			Cause:      err,
		})
	}

	c.log.Debug().
		Str("mode", mode.String()).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("chat exchange complete")

	return result.Response, nil
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// Health queries the service root and reports whether it is online.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/", nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeTransport, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeTransport, Message: "backend unreachable", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ClientError{
			Type:       ErrTypeRemote,
			StatusCode: resp.StatusCode,
			StatusText: statusText(resp),
			Message:    "health check failed",
		}
	}

	var status HealthStatus
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&status); err != nil {
		return nil, &ClientError{
			Type:       ErrTypeRemote,
			StatusCode: resp.StatusCode,
			StatusText: statusText(resp),
			Message:    "failed to decode health response",
			Cause:      err,
		}
	}
	return &status, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// fail records the diagnostic entry for a failed exchange and returns err.
func (c *Client) fail(err *ClientError) error {
	ev := c.log.Warn().Str("kind", err.Type.String())
	if err.StatusCode != 0 {
		ev = ev.Int("status", err.StatusCode).Str("status_text", err.StatusText)
	}
	if err.Cause != nil {
		ev = ev.AnErr("cause", err.Cause)
	}
	ev.Msg(err.Message)
	return err
}

// isInterrupted reports whether reading the body stopped because of a
// timeout or cancellation rather than a malformed payload.
func isInterrupted(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// statusText extracts the reason phrase from the response status line.
// "404 Not Found" yields "Not Found". Falls back to the standard text when
// the server sent none.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
