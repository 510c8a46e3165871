// retry.go
// --------
// This file defines the retryTracker, which stores retry attempt counts for
// each method+path key, and the backoff calculation used between attempts.
//
// Responsibilities:
// - Storing attempt counts keyed by "{METHOD}-{path}".
// - Deleting entries when a request succeeds or its attempts are exhausted,
//   so counts never leak across unrelated call sequences.
// - Computing the capped exponential delay before the next attempt.
package watchparty

import (
	"sync"
	"time"
)

// Retry policy defaults. A request gets at most MaxRetries retries on top
// of the initial attempt; delays grow as RetryDelay * 2^attempt, capped at
// MaxRetryDelay.
const (
	MaxRetries    = 3
	RetryDelay    = 1 * time.Second
	MaxRetryDelay = 5 * time.Second
)

type retryTracker struct {
	mu       sync.Mutex
	attempts map[string]int
}

func newRetryTracker() *retryTracker {
	return &retryTracker{
		attempts: make(map[string]int),
	}
}

// attempt returns the number of retries already recorded for key without
// modifying the entry.
func (t *retryTracker) attempt(key string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.attempts[key]
}

// record increments the retry count for key and returns the new count.
func (t *retryTracker) record(key string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.attempts[key]++
	return t.attempts[key]
}

// clear removes the entry for key. Called on success and on exhaustion.
func (t *retryTracker) clear(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.attempts, key)
}

// has reports whether an entry exists for key.
func (t *retryTracker) has(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.attempts[key]
	return ok
}

// backoffDelay returns the wait before retry number attempt (zero-based):
// base * 2^attempt, capped at max. With the defaults that is 1s, 2s, 4s.
func backoffDelay(base, max time.Duration, attempt int) time.Duration {
	delay := base * (1 << attempt)
	if delay > max || delay <= 0 {
		delay = max
	}
	return delay
}

// retryable reports whether an attempt outcome is worth retrying: no
// response at all (network failure or timeout), or a 5xx status. Client
// errors other than the 401 refresh path are never retried.
func retryable(resp *Response, err *APIError) bool {
	if resp == nil {
		return err != nil && (err.Code == CodeNetworkError || err.Code == CodeTimeout)
	}
	return resp.StatusCode >= 500 && resp.StatusCode < 600
}
