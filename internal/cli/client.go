package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is an HTTP client for the whack-a-mole API. One method per
// endpoint; the commands never build paths or bodies themselves.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken updates the client's token
func (c *Client) SetToken(token string) {
	c.token = token
}

// APIError represents an error response from the API
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an API error
type ErrorResponse struct {
	Error APIError `json:"error"`
}

func (e *APIError) String() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

type credentials struct {
	Username string `json:"username"`
	Secret   string `json:"secret"`
}

// Register creates an account and opens a session
func (c *Client) Register(username, secret string) (AuthResult, error) {
	var result AuthResult
	err := c.do(http.MethodPost, "/api/v1/accounts/register", credentials{username, secret}, &result)
	return result, err
}

// Login signs in to an existing account
func (c *Client) Login(username, secret string) (AuthResult, error) {
	var result AuthResult
	err := c.do(http.MethodPost, "/api/v1/accounts/login", credentials{username, secret}, &result)
	return result, err
}

// Logout invalidates the current session
func (c *Client) Logout() error {
	return c.do(http.MethodPost, "/api/v1/accounts/logout", nil, nil)
}

// Me returns the current account
func (c *Client) Me() (Account, error) {
	var result Account
	err := c.do(http.MethodGet, "/api/v1/accounts/me", nil, &result)
	return result, err
}

// StartGame begins a round; a running round is left untouched
func (c *Client) StartGame() (GameState, error) {
	var result GameState
	err := c.do(http.MethodPost, "/api/v1/game/start", nil, &result)
	return result, err
}

// RestartGame begins a fresh round, discarding any round in progress
func (c *Client) RestartGame() (GameState, error) {
	var result GameState
	err := c.do(http.MethodPost, "/api/v1/game/restart", nil, &result)
	return result, err
}

// Hit whacks the given grid slot
func (c *Client) Hit(slot int) (HitResult, error) {
	var result HitResult
	err := c.do(http.MethodPost, "/api/v1/game/hit", map[string]int{"slot": slot}, &result)
	return result, err
}

// GameState returns the current round state
func (c *Client) GameState() (GameState, error) {
	var result GameState
	err := c.do(http.MethodGet, "/api/v1/game/state", nil, &result)
	return result, err
}

// StopGame abandons any round in progress
func (c *Client) StopGame() error {
	return c.do(http.MethodDelete, "/api/v1/game", nil, nil)
}

// Leaderboard returns the full ranking
func (c *Client) Leaderboard() (Leaderboard, error) {
	var result Leaderboard
	err := c.do(http.MethodGet, "/api/v1/leaderboard", nil, &result)
	return result, err
}

// MyStanding returns the caller's best score and rank
func (c *Client) MyStanding() (MyStanding, error) {
	var result MyStanding
	err := c.do(http.MethodGet, "/api/v1/leaderboard/me", nil, &result)
	return result, err
}

// Health checks server health
func (c *Client) Health() (HealthResult, error) {
	var result HealthResult
	err := c.do(http.MethodGet, "/api/v1/health", nil, &result)
	return result, err
}

func (c *Client) do(method, path string, body, result any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// Check for error responses
	if resp.StatusCode >= 400 {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Code != "" {
			return fmt.Errorf("%s", errResp.Error.String())
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	// Parse successful response
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}
