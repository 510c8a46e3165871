// tokens.go
// ---------
// TokenStorage is the single source of truth for the session's token pair.
// The client never persists tokens itself; it only reads and writes through
// this interface, so tests and embedding applications can substitute their
// own storage with an explicit lifecycle.
package watchparty

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPair holds the short-lived access token and the long-lived refresh
// token for one session.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenStorage persists and retrieves the session token pair.
// Lifecycle: login sets both tokens, refresh rotates them, logout clears.
type TokenStorage interface {
	AccessToken() string
	RefreshToken() string
	SetTokens(pair TokenPair)
	ClearTokens()
}

// MemoryTokenStorage is an in-memory TokenStorage, safe for concurrent use.
// It is the default storage and the one tests inject.
type MemoryTokenStorage struct {
	mu   sync.RWMutex
	pair TokenPair
}

func NewMemoryTokenStorage() *MemoryTokenStorage {
	return &MemoryTokenStorage{}
}

func (s *MemoryTokenStorage) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pair.AccessToken
}

func (s *MemoryTokenStorage) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pair.RefreshToken
}

func (s *MemoryTokenStorage) SetTokens(pair TokenPair) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pair.RefreshToken == "" {
		// Refresh responses may omit the rotated refresh token; keep the
		// current one in that case.
		pair.RefreshToken = s.pair.RefreshToken
	}
	s.pair = pair
}

func (s *MemoryTokenStorage) ClearTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = TokenPair{}
}

// tokenExpired reports whether raw is a JWT whose exp claim has passed.
// Opaque tokens and tokens without an exp claim are never considered
// expired; the 401 path handles those.
func tokenExpired(raw string, now time.Time) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Time.Before(now)
}
