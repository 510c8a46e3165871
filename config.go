// config.go
// ----------
// This file defines the Config structure, which carries the client's base
// URL, websocket base, timeout, and retry policy overrides, and the viper
// based loader that resolves configuration from the environment and an
// optional config file.
//
// Resolution order: explicit Config fields, then WATCHPARTY_* environment
// variables, then watchparty.yaml, then compiled defaults.
package watchparty

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Compiled defaults, used when neither the caller nor the environment
// provides a value.
const (
	DefaultBaseURL      = "http://localhost:8000"
	DefaultWebSocketURL = "ws://localhost:8000"
	DefaultTimeout      = 30 * time.Second
)

// Config allows customization of the client's target and retry behavior.
type Config struct {
	// BaseURL is the backend origin, without a trailing slash.
	BaseURL string `mapstructure:"api_base_url"`

	// WebSocketURL is the websocket origin (ws:// or wss://). When empty it
	// is derived from BaseURL.
	WebSocketURL string `mapstructure:"websocket_url"`

	// Timeout applies uniformly to every request. No per-call override is
	// surfaced to resource services.
	Timeout time.Duration `mapstructure:"timeout"`

	// MaxRetries bounds retries per method+path key.
	MaxRetries int `mapstructure:"max_retries"`

	// RetryDelay is the base of the exponential backoff.
	RetryDelay time.Duration `mapstructure:"retry_delay"`

	// MaxRetryDelay caps the exponential backoff.
	MaxRetryDelay time.Duration `mapstructure:"max_retry_delay"`
}

// withDefaults fills every unset field.
func (c *Config) withDefaults() *Config {
	out := Config{}
	if c != nil {
		out = *c
	}
	if out.BaseURL == "" {
		out.BaseURL = DefaultBaseURL
	}
	if out.WebSocketURL == "" {
		out.WebSocketURL = deriveWebSocketURL(out.BaseURL)
	}
	if out.Timeout == 0 {
		out.Timeout = DefaultTimeout
	}
	if out.MaxRetries == 0 {
		out.MaxRetries = MaxRetries
	}
	if out.RetryDelay == 0 {
		out.RetryDelay = RetryDelay
	}
	if out.MaxRetryDelay == 0 {
		out.MaxRetryDelay = MaxRetryDelay
	}
	return &out
}

// deriveWebSocketURL maps an http(s) origin to its ws(s) counterpart.
func deriveWebSocketURL(baseURL string) string {
	switch {
	case strings.HasPrefix(baseURL, "https://"):
		return "wss://" + strings.TrimPrefix(baseURL, "https://")
	case strings.HasPrefix(baseURL, "http://"):
		return "ws://" + strings.TrimPrefix(baseURL, "http://")
	default:
		return DefaultWebSocketURL
	}
}

// LoadConfig resolves a Config from the environment and an optional
// watchparty.yaml in the working directory. A missing config file is not an
// error; a malformed one is.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Every key needs a default registered so AutomaticEnv values survive
	// Unmarshal.
	v.SetDefault("api_base_url", DefaultBaseURL)
	v.SetDefault("websocket_url", "")
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("max_retries", MaxRetries)
	v.SetDefault("retry_delay", RetryDelay)
	v.SetDefault("max_retry_delay", MaxRetryDelay)

	v.SetEnvPrefix("WATCHPARTY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("watchparty")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg.withDefaults(), nil
}
