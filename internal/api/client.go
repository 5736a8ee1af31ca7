// Package api is the single choke point for talking to the admin server.
// Every request gets the stored bearer token attached; any 401 clears the
// token and announces auth expiry exactly once, so individual panels never
// deal with authentication themselves.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"outlooker/internal/eventbus"
)

// TokenStore is the narrow slice of the session store the client needs.
type TokenStore interface {
	Token() string
	SetToken(token string) error
	Clear() error
}

// Client issues requests against the admin API.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenStore
	bus     eventbus.EventBus

	mu          sync.Mutex
	authExpired bool // guards against publishing AuthExpired repeatedly
}

// NewClient creates a new API client. bus may be nil in tests that do not
// care about auth expiry events.
func NewClient(baseURL string, timeout time.Duration, tokens TokenStore, bus eventbus.EventBus) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		tokens:  tokens,
		bus:     bus,
	}
}

// envelope is the server's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// do sends one request and decodes the envelope's data into out when out
// is non-nil. All endpoint methods go through here.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized()
		return ErrUnauthorized
	}

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(respData, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return &APIError{StatusCode: resp.StatusCode}
		}
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	if !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to parse response data: %w", err)
		}
	}
	return nil
}

// handleUnauthorized clears the stored token and announces the expiry at
// most once. Later 401s stay quiet until a new token is stored, the analog
// of "don't redirect when already on the login page".
func (c *Client) handleUnauthorized() {
	if err := c.tokens.Clear(); err != nil {
		log.Printf("Failed to clear stored token: %v", err)
	}

	c.mu.Lock()
	alreadyExpired := c.authExpired
	c.authExpired = true
	c.mu.Unlock()

	if !alreadyExpired && c.bus != nil {
		c.bus.Publish(eventbus.AuthExpiredEvent{})
	}
}

// storeToken saves a fresh token and re-arms the auth expiry guard.
func (c *Client) storeToken(token string) error {
	if err := c.tokens.SetToken(token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	c.mu.Lock()
	c.authExpired = false
	c.mu.Unlock()
	return nil
}
