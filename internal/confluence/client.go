// Package confluence provides an HTTP client and typed shortcuts for the
// Confluence Cloud REST API v2, the subset the crawler needs: spaces,
// pages, folders, and the depth-capped descendants endpoint the Parent
// Clustering Crawl Algorithm exists to work around.
package confluence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MacHu-GWU/docpack-confluence-go/internal/auth"
	"github.com/MacHu-GWU/docpack-confluence-go/internal/config"
)

const (
	// AtlassianAPIURL is the base URL for Atlassian cloud API requests.
	AtlassianAPIURL = "https://api.atlassian.com"

	// DefaultTimeout is the default HTTP client timeout for API requests.
	DefaultTimeout = 30 * time.Second
)

// Client is an HTTP client for the Confluence Cloud v2 API.
type Client struct {
	httpClient *http.Client
	hostname   string
	baseURL    string // overridable for tests, defaults to the cloud gateway
	tokens     *auth.TokenSet
}

// ClientOption configures the API client.
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) { c.httpClient.Timeout = timeout }
}

// WithBaseURL overrides the Confluence base URL, bypassing the Atlassian
// cloud gateway. Used by tests to point the client at an httptest.Server.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(baseURL, "/") }
}

// NewClient creates a new API client for the given hostname.
func NewClient(hostname string, opts ...ClientOption) (*Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	tokens, err := auth.GetToken(hostname)
	if err != nil {
		return nil, fmt.Errorf("failed to get tokens: %w", err)
	}
	if tokens == nil {
		return nil, fmt.Errorf("not authenticated. Run 'docpack auth login' first")
	}

	hostConfig := cfg.GetHost(hostname)
	if hostConfig == nil {
		return nil, fmt.Errorf("no configuration found for host %s", hostname)
	}

	client := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		hostname:   hostname,
		baseURL:    fmt.Sprintf("%s/ex/confluence/%s/wiki/api/v2", AtlassianAPIURL, hostConfig.CloudID),
		tokens:     tokens,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// NewClientFromConfig creates a new API client using the current host
// from config.
func NewClientFromConfig() (*Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.CurrentHost == "" {
		return nil, fmt.Errorf("no host configured. Run 'docpack auth login' first")
	}

	return NewClient(cfg.CurrentHost)
}

// Hostname returns the configured hostname.
func (c *Client) Hostname() string { return c.hostname }

// BaseURL returns the base URL for Confluence API requests.
func (c *Client) BaseURL() string { return c.baseURL }

// Request makes an HTTP request to the API, retrying transient failures
// (network errors, 429, 5xx) with ExecuteWithRetry's exponential backoff.
// A 4xx other than 429 is fatal on the first attempt.
func (c *Client) Request(ctx context.Context, method, path string, body, result interface{}) error {
	_, err := ExecuteWithRetry(ctx, DefaultRetryOptions(), func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.doRequest(ctx, method, path, body, result)
	})
	return err
}

func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if c.tokens != nil {
		req.Header.Set("Authorization", "Bearer "+c.tokens.AccessToken)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Transient: true, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Transient: true, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(respBody),
			Transient:  resp.StatusCode == 429 || resp.StatusCode >= 500,
		}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// Get makes a GET request.
func (c *Client) Get(ctx context.Context, path string, result interface{}) error {
	return c.Request(ctx, http.MethodGet, path, nil, result)
}

// Post makes a POST request.
func (c *Client) Post(ctx context.Context, path string, body, result interface{}) error {
	return c.Request(ctx, http.MethodPost, path, body, result)
}

// Delete makes a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Request(ctx, http.MethodDelete, path, nil, nil)
}

// APIError represents an error response from the API. StatusCode is zero
// for errors that never reached the server (connection failures).
// Transient marks errors ExecuteWithRetry is allowed to retry: network
// failures, 429, and 5xx.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
	Transient  bool
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("confluence API request failed: %s", e.Err)
	}
	return fmt.Sprintf("confluence API error: %s (status %d): %s", e.Status, e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error { return e.Err }

// BuildQueryString builds a URL query string from parameters, skipping
// empty values.
func BuildQueryString(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}
	values := url.Values{}
	for k, v := range params {
		if v != "" {
			values.Set(k, v)
		}
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

// JoinPath joins path segments properly.
func JoinPath(base string, paths ...string) string {
	result := strings.TrimSuffix(base, "/")
	for _, p := range paths {
		result = result + "/" + strings.TrimPrefix(p, "/")
	}
	return result
}
