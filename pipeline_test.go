package watchparty

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/watchparty/watchparty-go/mock"
)

// newTestClient builds a client over a scripted transport with millisecond
// backoff so retry tests run fast.
func newTestClient(t *testing.T, tr *mock.Transport) (*Client, *MemoryTokenStorage) {
	t.Helper()
	store := NewMemoryTokenStorage()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := New(&Config{
		BaseURL:       "http://api.test",
		RetryDelay:    time.Millisecond,
		MaxRetryDelay: 5 * time.Millisecond,
	}, store, logger)
	c.SetTransport(tr)
	return c, store
}

func TestRequestAttachesBearerToken(t *testing.T) {
	tr := mock.NewTransport()
	tr.Script(http.MethodGet, "/api/users/me/", mock.Step{Status: 200, Body: `{"id":"u1"}`})

	c, store := newTestClient(t, tr)
	store.SetTokens(TokenPair{AccessToken: "token-abc", RefreshToken: "ref-abc"})

	require.NoError(t, c.Get(context.Background(), EndpointUsersMe, nil))

	calls := tr.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer token-abc", calls[0].Header.Get("Authorization"))
}

func TestRetryBoundOnServerError(t *testing.T) {
	tr := mock.NewTransport()
	tr.Script(http.MethodGet, "/api/parties/", mock.Step{Status: 503, Body: `{"detail":"unavailable"}`})

	c, _ := newTestClient(t, tr)

	err := c.Get(context.Background(), EndpointParties, nil)
	require.Error(t, err)

	apiErr := AsAPIError(err)
	assert.Equal(t, 503, apiErr.Status)
	assert.Equal(t, "unavailable", apiErr.Message)

	// Initial attempt plus MaxRetries retries, then the counter entry is
	// removed.
	assert.Equal(t, 1+MaxRetries, tr.CallCount(http.MethodGet, "/api/parties/"))
	assert.False(t, c.retries.has("GET-/api/parties/"))
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	tr := mock.NewTransport()
	tr.Script(http.MethodGet, "/api/videos/v1/", mock.Step{Status: 404, Body: `{"detail":"not found"}`})

	c, _ := newTestClient(t, tr)

	err := c.Get(context.Background(), EndpointVideo("v1"), nil)
	require.Error(t, err)

	apiErr := AsAPIError(err)
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "not found", apiErr.Message)
	assert.Equal(t, 1, tr.CallCount(http.MethodGet, "/api/videos/v1/"))
}

func TestNetworkFailureShapeAndRetry(t *testing.T) {
	tr := mock.NewTransport()
	tr.Script(http.MethodGet, "/api/parties/", mock.Step{Err: errors.New("connection refused")})

	c, _ := newTestClient(t, tr)

	err := c.Get(context.Background(), EndpointParties, nil)
	require.Error(t, err)

	apiErr := AsAPIError(err)
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, CodeNetworkError, apiErr.Code)

	// Network failures are retryable up to the same bound.
	assert.Equal(t, 1+MaxRetries, tr.CallCount(http.MethodGet, "/api/parties/"))
}

func TestSingleRefreshRetryOn401(t *testing.T) {
	tr := mock.NewTransport()
	tr.Script(http.MethodGet, "/api/users/me/",
		mock.Step{Status: 401, Body: `{"detail":"token expired"}`},
		mock.Step{Status: 401, Body: `{"detail":"token expired"}`},
	)
	tr.Script(http.MethodPost, "/api/auth/refresh/",
		mock.Step{Status: 200, Body: `{"access":"new-access","refresh":"new-refresh"}`},
	)

	c, store := newTestClient(t, tr)
	store.SetTokens(TokenPair{AccessToken: "stale", RefreshToken: "ref-1"})

	err := c.Get(context.Background(), EndpointUsersMe, nil)
	require.Error(t, err)
	assert.Equal(t, 401, AsAPIError(err).Status)

	// One refresh, one resend, no matter how often 401 recurs.
	assert.Equal(t, 1, tr.CallCount(http.MethodPost, "/api/auth/refresh/"))
	assert.Equal(t, 2, tr.CallCount(http.MethodGet, "/api/users/me/"))
}

func TestRefreshSuccessResendsWithNewToken(t *testing.T) {
	tr := mock.NewTransport()
	tr.Script(http.MethodGet, "/api/users/me/",
		mock.Step{Status: 401, Body: `{"detail":"token expired"}`},
		mock.Step{Status: 200, Body: `{"id":"u1","username":"alice"}`},
	)
	tr.Script(http.MethodPost, "/api/auth/refresh/",
		mock.Step{Status: 200, Body: `{"access":"new-access","refresh":"new-refresh"}`},
	)

	c, store := newTestClient(t, tr)
	store.SetTokens(TokenPair{AccessToken: "stale", RefreshToken: "ref-1"})

	var result struct {
		Username string `json:"username"`
	}
	require.NoError(t, c.Get(context.Background(), EndpointUsersMe, &result))
	assert.Equal(t, "alice", result.Username)

	calls := tr.Calls()
	var meCalls []mock.Call
	for _, call := range calls {
		if call.Path == "/api/users/me/" {
			meCalls = append(meCalls, call)
		}
	}
	require.Len(t, meCalls, 2)
	assert.Equal(t, "Bearer stale", meCalls[0].Header.Get("Authorization"))
	assert.Equal(t, "Bearer new-access", meCalls[1].Header.Get("Authorization"))

	assert.Equal(t, "new-access", store.AccessToken())
	assert.Equal(t, "new-refresh", store.RefreshToken())
}

func TestRefreshFailureClearsTokens(t *testing.T) {
	tr := mock.NewTransport()
	tr.Script(http.MethodGet, "/api/users/me/", mock.Step{Status: 401, Body: `{"detail":"token expired"}`})
	tr.Script(http.MethodPost, "/api/auth/refresh/", mock.Step{Status: 401, Body: `{"detail":"refresh expired"}`})

	c, store := newTestClient(t, tr)
	store.SetTokens(TokenPair{AccessToken: "stale", RefreshToken: "ref-1"})

	err := c.Get(context.Background(), EndpointUsersMe, nil)
	require.Error(t, err)
	assert.Equal(t, 401, AsAPIError(err).Status)

	assert.Empty(t, store.AccessToken())
	assert.Empty(t, store.RefreshToken())
}

func TestConcurrentRefreshIsSingleFlight(t *testing.T) {
	tr := mock.NewTransport()
	tr.Script(http.MethodPost, "/api/auth/refresh/",
		mock.Step{Status: 200, Body: `{"access":"new-access"}`, Delay: 50 * time.Millisecond},
	)

	c, store := newTestClient(t, tr)
	store.SetTokens(TokenPair{AccessToken: "stale", RefreshToken: "ref-1"})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, c.RefreshTokens(context.Background()))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, tr.CallCount(http.MethodPost, "/api/auth/refresh/"))
	assert.Equal(t, "new-access", store.AccessToken())
	// Rotated refresh token omitted by the backend: the old one is kept.
	assert.Equal(t, "ref-1", store.RefreshToken())
}

func TestProactiveRefreshOfExpiredJWT(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	raw, err := expired.SignedString([]byte("test-key"))
	require.NoError(t, err)

	tr := mock.NewTransport()
	tr.Script(http.MethodPost, "/api/auth/refresh/",
		mock.Step{Status: 200, Body: `{"access":"fresh-access"}`},
	)
	tr.Script(http.MethodGet, "/api/users/me/", mock.Step{Status: 200, Body: `{"id":"u1"}`})

	c, store := newTestClient(t, tr)
	store.SetTokens(TokenPair{AccessToken: raw, RefreshToken: "ref-1"})

	require.NoError(t, c.Get(context.Background(), EndpointUsersMe, nil))

	assert.Equal(t, 1, tr.CallCount(http.MethodPost, "/api/auth/refresh/"))
	calls := tr.Calls()
	last := calls[len(calls)-1]
	assert.Equal(t, "/api/users/me/", last.Path)
	assert.Equal(t, "Bearer fresh-access", last.Header.Get("Authorization"))
}

func TestRequestSetupErrorShape(t *testing.T) {
	c, _ := newTestClient(t, mock.NewTransport())

	_, err := c.Do(context.Background(), &Request{})
	require.Error(t, err)

	apiErr := AsAPIError(err)
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, CodeRequestError, apiErr.Code)
}

func TestConfigureRebasesWithoutReconstruction(t *testing.T) {
	first := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"server":"first"}`))
	}))
	defer first.Close()
	second := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"server":"second"}`))
	}))
	defer second.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := New(&Config{BaseURL: first.URL}, nil, logger)

	var result struct {
		Server string `json:"server"`
	}
	require.NoError(t, c.Get(context.Background(), "/api/parties/", &result))
	assert.Equal(t, "first", result.Server)

	c.Configure(second.URL, 10*time.Second)
	require.NoError(t, c.Get(context.Background(), "/api/parties/", &result))
	assert.Equal(t, "second", result.Server)
}

func TestHealthCheckSwallowsErrors(t *testing.T) {
	tr := mock.NewTransport()
	tr.Script(http.MethodGet, "/health/", mock.Step{Status: 200, Body: `{"status":"ok"}`})
	c, _ := newTestClient(t, tr)
	assert.True(t, c.HealthCheck(context.Background()))

	down := mock.NewTransport()
	down.Script(http.MethodGet, "/health/", mock.Step{Err: errors.New("connection refused")})
	c2, _ := newTestClient(t, down)
	assert.False(t, c2.HealthCheck(context.Background()))
}

func TestRetrySucceedsMidway(t *testing.T) {
	tr := mock.NewTransport()
	tr.Script(http.MethodGet, "/api/parties/",
		mock.Step{Status: 502, Body: `{"detail":"bad gateway"}`},
		mock.Step{Status: 502, Body: `{"detail":"bad gateway"}`},
		mock.Step{Status: 200, Body: `{"results":[]}`},
	)

	c, _ := newTestClient(t, tr)

	require.NoError(t, c.Get(context.Background(), EndpointParties, nil))
	assert.Equal(t, 3, tr.CallCount(http.MethodGet, "/api/parties/"))
	assert.False(t, c.retries.has("GET-/api/parties/"))
}
