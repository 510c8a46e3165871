package watchparty

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	})
	raw, err := tok.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return raw
}

func TestMemoryTokenStorageLifecycle(t *testing.T) {
	store := NewMemoryTokenStorage()
	assert.Empty(t, store.AccessToken())
	assert.Empty(t, store.RefreshToken())

	store.SetTokens(TokenPair{AccessToken: "acc-1", RefreshToken: "ref-1"})
	assert.Equal(t, "acc-1", store.AccessToken())
	assert.Equal(t, "ref-1", store.RefreshToken())

	// A rotation without a new refresh token keeps the old one.
	store.SetTokens(TokenPair{AccessToken: "acc-2"})
	assert.Equal(t, "acc-2", store.AccessToken())
	assert.Equal(t, "ref-1", store.RefreshToken())

	store.ClearTokens()
	assert.Empty(t, store.AccessToken())
	assert.Empty(t, store.RefreshToken())
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()

	assert.True(t, tokenExpired(signedToken(t, now.Add(-time.Minute)), now))
	assert.False(t, tokenExpired(signedToken(t, now.Add(time.Hour)), now))

	// Opaque tokens and tokens without exp are never considered expired.
	assert.False(t, tokenExpired("opaque-session-token", now))
	assert.False(t, tokenExpired("", now))
}
