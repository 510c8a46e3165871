// pipeline.go
// -----------
// The request/response pipeline: the request interceptor that attaches the
// bearer token and stamps metadata, the send loop with its retry and
// refresh state machine, and the token refresh call itself.
//
// Per-request lifecycle: intercept -> send -> maybe refresh-and-resend
// (once) or backoff-and-resend (bounded by the retry tracker) -> settle.
package watchparty

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/watchparty/watchparty-go/internal"
)

// Do runs one request through the full pipeline and returns the normalized
// response. Every returned error is an *APIError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if err := c.intercept(ctx, req); err != nil {
		return nil, err
	}
	return c.execute(ctx, req)
}

// intercept prepares an outgoing request: proactive refresh of an expired
// access token, Authorization header, metadata stamps, debug log. A failure
// here means the request is never sent.
func (c *Client) intercept(ctx context.Context, req *Request) error {
	if req.Method == "" || req.Path == "" {
		return newRequestError(errors.New("request method and path are required"))
	}

	access := c.tokens.AccessToken()
	if access != "" && req.Path != EndpointAuthRefresh &&
		tokenExpired(access, time.Now()) && c.tokens.RefreshToken() != "" {
		// Best effort: a failed proactive refresh leaves the 401 path to
		// settle the session's fate.
		if err := c.RefreshTokens(ctx); err == nil {
			access = c.tokens.AccessToken()
		}
	}

	if req.Headers == nil {
		req.Headers = make(map[string]string)
	}
	if access != "" {
		req.Headers["Authorization"] = "Bearer " + access
	}

	req.Metadata.RequestID = uuid.NewString()
	req.Metadata.StartTime = time.Now()

	c.logger.Debug("api request",
		"method", req.Method,
		"url", req.Path,
		"request_id", req.Metadata.RequestID,
	)
	return nil
}

// execute is the per-request state machine. A 401 triggers at most one
// refresh-and-resend; retryable failures resend with capped exponential
// backoff, bounded by the method+path retry counter.
func (c *Client) execute(ctx context.Context, req *Request) (*Response, error) {
	key := req.key()

	for {
		resp, sendErr := c.send(ctx, req)
		if sendErr != nil && sendErr.Code == CodeRequestError {
			c.retries.clear(key)
			return nil, sendErr
		}

		if resp != nil && resp.StatusCode < 400 {
			c.retries.clear(key)
			c.logger.Info("api response",
				"method", req.Method,
				"url", req.Path,
				"status", resp.StatusCode,
				"duration", time.Since(req.Metadata.StartTime),
				"request_id", req.Metadata.RequestID,
			)
			return resp, nil
		}

		if resp != nil && resp.StatusCode == http.StatusUnauthorized &&
			!req.retried && req.Path != EndpointAuthRefresh {
			req.retried = true
			if err := c.RefreshTokens(ctx); err != nil {
				c.retries.clear(key)
				return nil, err
			}
			if access := c.tokens.AccessToken(); access != "" {
				req.Headers["Authorization"] = "Bearer " + access
			}
			continue
		}

		var apiErr *APIError
		if resp != nil {
			apiErr = newServerError(resp.StatusCode, resp.Data)
		} else {
			apiErr = sendErr
		}

		if retryable(resp, apiErr) {
			attempt := c.retries.attempt(key)
			if attempt < c.maxRetries {
				delay := backoffDelay(c.retryDelay, c.maxRetryDelay, attempt)
				if resp != nil {
					// A server-stated wait overrides a shorter backoff, still
					// capped by the configured maximum.
					if wait, ok := internal.RetryAfter(resp.Headers.Get("Retry-After"), time.Now()); ok && wait > delay {
						delay = wait
						if delay > c.maxRetryDelay {
							delay = c.maxRetryDelay
						}
					}
				}
				c.retries.record(key)
				c.logger.Warn("retrying api request",
					"method", req.Method,
					"url", req.Path,
					"attempt", attempt+1,
					"max_retries", c.maxRetries,
					"delay", delay,
					"request_id", req.Metadata.RequestID,
				)
				if err := sleepCtx(ctx, delay); err != nil {
					c.retries.clear(key)
					return nil, newRequestError(err)
				}
				continue
			}
			c.retries.clear(key)
		}

		c.logger.Error("api request failed",
			"method", req.Method,
			"url", req.Path,
			"status", apiErr.Status,
			"code", apiErr.Code,
			"request_id", req.Metadata.RequestID,
		)
		return nil, apiErr
	}
}

// send performs a single transport attempt. The body reader is rebuilt on
// every attempt so resends carry the full payload.
func (c *Client) send(ctx context.Context, req *Request) (*Response, *APIError) {
	target, err := c.requestURL(req.Path, req.Query)
	if err != nil {
		return nil, newRequestError(err)
	}

	var bodyReader io.Reader
	if len(req.Body) > 0 {
		bodyReader = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, bodyReader)
	if err != nil {
		return nil, newRequestError(err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if len(req.Body) > 0 && req.Headers["Content-Type"] == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, newNetworkError(err, isTimeout(err))
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newNetworkError(err, isTimeout(err))
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Data:       data,
	}, nil
}

// refreshTokenBody is the refresh endpoint contract: POST {refresh} and
// receive {access, refresh?}.
type refreshTokenBody struct {
	Refresh string `json:"refresh"`
}

type refreshTokenResult struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RefreshTokens rotates the token pair. Concurrent callers share a single
// in-flight refresh; on any failure the stored tokens are cleared and the
// error propagates, so callers must treat failure as "session invalid".
func (c *Client) RefreshTokens(ctx context.Context) error {
	_, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		return nil, c.doRefresh(ctx)
	})
	return err
}

// doRefresh performs the bare transport call to the refresh endpoint. It
// deliberately bypasses the interceptor pipeline to avoid recursive 401
// handling.
func (c *Client) doRefresh(ctx context.Context) error {
	refresh := c.tokens.RefreshToken()
	if refresh == "" {
		c.tokens.ClearTokens()
		return newRequestError(errors.New("no refresh token available"))
	}

	body, err := json.Marshal(refreshTokenBody{Refresh: refresh})
	if err != nil {
		c.tokens.ClearTokens()
		return newRequestError(err)
	}

	target, err := c.requestURL(EndpointAuthRefresh, nil)
	if err != nil {
		c.tokens.ClearTokens()
		return newRequestError(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		c.tokens.ClearTokens()
		return newRequestError(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.tokens.ClearTokens()
		c.logger.Error("token refresh failed", "error", err)
		return newNetworkError(err, isTimeout(err))
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.tokens.ClearTokens()
		return newNetworkError(err, isTimeout(err))
	}

	if resp.StatusCode >= 400 {
		c.tokens.ClearTokens()
		c.logger.Error("token refresh rejected", "status", resp.StatusCode)
		return newServerError(resp.StatusCode, data)
	}

	var result refreshTokenResult
	if err := json.Unmarshal(data, &result); err != nil {
		c.tokens.ClearTokens()
		return newRequestError(fmt.Errorf("failed to decode refresh response: %w", err))
	}
	if result.Access == "" {
		c.tokens.ClearTokens()
		return newRequestError(errors.New("refresh response missing access token"))
	}

	c.tokens.SetTokens(TokenPair{
		AccessToken:  result.Access,
		RefreshToken: result.Refresh,
	})
	c.logger.Info("access token refreshed")
	return nil
}

// requestURL joins the configured base URL with a path and query.
func (c *Client) requestURL(path string, query url.Values) (string, error) {
	c.mu.RLock()
	base := c.baseURL
	c.mu.RUnlock()

	u, err := url.Parse(base + path)
	if err != nil {
		return "", fmt.Errorf("invalid request url %q: %w", base+path, err)
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

// isTimeout reports whether a transport error is a timeout rather than a
// generic network failure.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Timeout()
	}
	return false
}

// sleepCtx waits for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
