package watchparty

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg := (*Config)(nil).withDefaults()
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, MaxRetries, cfg.MaxRetries)
	assert.Equal(t, RetryDelay, cfg.RetryDelay)
	assert.Equal(t, MaxRetryDelay, cfg.MaxRetryDelay)
}

func TestConfigWebSocketDerivation(t *testing.T) {
	cfg := (&Config{BaseURL: "https://watch.example.com"}).withDefaults()
	assert.Equal(t, "wss://watch.example.com", cfg.WebSocketURL)

	cfg = (&Config{BaseURL: "http://localhost:8000"}).withDefaults()
	assert.Equal(t, "ws://localhost:8000", cfg.WebSocketURL)

	// Explicit websocket origin wins over derivation.
	cfg = (&Config{BaseURL: "https://watch.example.com", WebSocketURL: "wss://ws.example.com"}).withDefaults()
	assert.Equal(t, "wss://ws.example.com", cfg.WebSocketURL)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("WATCHPARTY_API_BASE_URL", "https://staging.example.com")
	t.Setenv("WATCHPARTY_WEBSOCKET_URL", "wss://staging.example.com")
	t.Setenv("WATCHPARTY_TIMEOUT", "15s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://staging.example.com", cfg.BaseURL)
	assert.Equal(t, "wss://staging.example.com", cfg.WebSocketURL)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, MaxRetries, cfg.MaxRetries)
}
