package watchparty

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoffDelayMonotonicCapped(t *testing.T) {
	assert.Equal(t, 1*time.Second, backoffDelay(RetryDelay, MaxRetryDelay, 0))
	assert.Equal(t, 2*time.Second, backoffDelay(RetryDelay, MaxRetryDelay, 1))
	assert.Equal(t, 4*time.Second, backoffDelay(RetryDelay, MaxRetryDelay, 2))

	// Beyond the cap every delay clamps.
	assert.Equal(t, 5*time.Second, backoffDelay(RetryDelay, MaxRetryDelay, 3))
	assert.Equal(t, 5*time.Second, backoffDelay(RetryDelay, MaxRetryDelay, 10))
}

func TestRetryTrackerLifecycle(t *testing.T) {
	tr := newRetryTracker()

	assert.Equal(t, 0, tr.attempt("GET-/api/parties/"))
	assert.False(t, tr.has("GET-/api/parties/"))

	assert.Equal(t, 1, tr.record("GET-/api/parties/"))
	assert.Equal(t, 2, tr.record("GET-/api/parties/"))
	assert.Equal(t, 2, tr.attempt("GET-/api/parties/"))
	assert.True(t, tr.has("GET-/api/parties/"))

	// Unrelated keys do not interfere.
	assert.Equal(t, 0, tr.attempt("POST-/api/parties/"))

	tr.clear("GET-/api/parties/")
	assert.False(t, tr.has("GET-/api/parties/"))
	assert.Equal(t, 0, tr.attempt("GET-/api/parties/"))
}

func TestRetryablePredicate(t *testing.T) {
	assert.True(t, retryable(nil, &APIError{Code: CodeNetworkError}))
	assert.True(t, retryable(nil, &APIError{Code: CodeTimeout}))
	assert.False(t, retryable(nil, &APIError{Code: CodeRequestError}))

	assert.True(t, retryable(&Response{StatusCode: 500}, nil))
	assert.True(t, retryable(&Response{StatusCode: 503}, nil))
	assert.True(t, retryable(&Response{StatusCode: 599}, nil))
	assert.False(t, retryable(&Response{StatusCode: 400}, nil))
	assert.False(t, retryable(&Response{StatusCode: 404}, nil))
	assert.False(t, retryable(&Response{StatusCode: 429}, nil))
}
