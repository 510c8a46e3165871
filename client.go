// client.go
// ---------
// The client.go file contains the core Client struct and its methods.
// This is the single point of HTTP egress for every resource service.
//
// Key functionalities include:
// - Constructing a client with New()
// - Re-pointing base URL and timeout with Configure()
// - Issuing requests via the Get/Post/Put/Patch/Delete verb helpers
// - Checking backend liveness with HealthCheck()
//
// The Client relies on the pipeline in pipeline.go to handle interceptors,
// retries, and the 401 refresh path, ensuring consistent behavior across
// all resource services.
package watchparty

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Client wraps an HTTP transport and owns the request/response interceptor
// pipeline, retry bookkeeping, and auth-refresh coordination.
type Client struct {
	mu            sync.RWMutex
	baseURL       string
	wsURL         string
	timeout       time.Duration
	maxRetries    int
	retryDelay    time.Duration
	maxRetryDelay time.Duration

	httpClient *http.Client
	tokens     TokenStorage
	logger     *slog.Logger
	retries    *retryTracker

	// refreshGroup collapses concurrent token refreshes into a single
	// in-flight call; every waiter observes the same outcome.
	refreshGroup singleflight.Group
}

// New creates a Client. A nil cfg uses defaults; a nil store falls back to
// in-memory token storage; a nil logger falls back to slog's default.
func New(cfg *Config, store TokenStorage, logger *slog.Logger) *Client {
	resolved := cfg.withDefaults()
	if store == nil {
		store = NewMemoryTokenStorage()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:       resolved.BaseURL,
		wsURL:         resolved.WebSocketURL,
		timeout:       resolved.Timeout,
		maxRetries:    resolved.MaxRetries,
		retryDelay:    resolved.RetryDelay,
		maxRetryDelay: resolved.MaxRetryDelay,
		httpClient: &http.Client{
			Timeout: resolved.Timeout,
		},
		tokens:  store,
		logger:  logger.With("component", "watchparty_client"),
		retries: newRetryTracker(),
	}
}

// Configure re-points the client at a new base URL and timeout without
// losing interceptor wiring or retry state. Zero values leave the current
// setting unchanged.
func (c *Client) Configure(baseURL string, timeout time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if baseURL != "" {
		c.baseURL = baseURL
	}
	if timeout > 0 {
		c.timeout = timeout
		c.httpClient.Timeout = timeout
	}
}

// SetTransport swaps the underlying HTTP transport. Mocking hook; the
// pipeline, retry state, and token storage are untouched.
func (c *Client) SetTransport(rt http.RoundTripper) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.httpClient.Transport = rt
}

// BaseURL returns the current backend origin.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// Tokens exposes the injected token storage to resource services that need
// to persist a login result.
func (c *Client) Tokens() TokenStorage {
	return c.tokens
}

// Get issues a GET request and decodes the payload into result.
func (c *Client) Get(ctx context.Context, path string, result any) error {
	return c.call(ctx, http.MethodGet, path, nil, result)
}

// Post issues a POST request with a JSON body and decodes the payload into
// result.
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.call(ctx, http.MethodPost, path, body, result)
}

// Put issues a PUT request with a JSON body and decodes the payload into
// result.
func (c *Client) Put(ctx context.Context, path string, body, result any) error {
	return c.call(ctx, http.MethodPut, path, body, result)
}

// Patch issues a PATCH request with a JSON body and decodes the payload
// into result.
func (c *Client) Patch(ctx context.Context, path string, body, result any) error {
	return c.call(ctx, http.MethodPatch, path, body, result)
}

// Delete issues a DELETE request and decodes the payload into result.
func (c *Client) Delete(ctx context.Context, path string, result any) error {
	return c.call(ctx, http.MethodDelete, path, nil, result)
}

// GetRaw issues a GET request and returns the raw payload bytes. Used by
// services that pipe responses through transformers.
func (c *Client) GetRaw(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// PostRaw issues a POST request with a JSON body and returns the raw
// payload bytes.
func (c *Client) PostRaw(ctx context.Context, path string, body any) ([]byte, error) {
	data, err := marshalBody(body)
	if err != nil {
		return nil, err
	}
	resp, err := c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: data})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// HealthCheck reports whether the backend answers its health endpoint.
// All errors are swallowed; the caller only sees a boolean.
func (c *Client) HealthCheck(ctx context.Context) bool {
	err := c.Get(ctx, EndpointHealth, nil)
	return err == nil
}

// call runs one verb through the pipeline and decodes the payload.
func (c *Client) call(ctx context.Context, method, path string, body, result any) error {
	data, err := marshalBody(body)
	if err != nil {
		return err
	}

	resp, err := c.Do(ctx, &Request{Method: method, Path: path, Body: data})
	if err != nil {
		return err
	}

	if result != nil && len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, result); err != nil {
			return fmt.Errorf("failed to decode response from %s %s: %w", method, path, err)
		}
	}
	return nil
}

func marshalBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, newRequestError(fmt.Errorf("failed to marshal request body: %w", err))
	}
	return data, nil
}
