package watchparty

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebSocketURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := New(&Config{BaseURL: "https://watch.example.com"}, nil, logger)

	u, err := c.WebSocketURL(EndpointWSChat("p1"))
	require.NoError(t, err)
	assert.Equal(t, "wss://watch.example.com/ws/chat/p1/", u)

	u, err = c.WebSocketURL(EndpointWSPartySync("p1"))
	require.NoError(t, err)
	assert.Equal(t, "wss://watch.example.com/ws/party/p1/sync/", u)

	u, err = c.WebSocketURL(EndpointWSInteractive("p1"))
	require.NoError(t, err)
	assert.Equal(t, "wss://watch.example.com/ws/interactive/p1/", u)
}

func TestSubprotocolCarriesToken(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := NewMemoryTokenStorage()
	c := New(nil, store, logger)

	assert.Nil(t, c.Subprotocols())

	store.SetTokens(TokenPair{AccessToken: "tok-123", RefreshToken: "ref"})
	assert.Equal(t, []string{"auth.token.tok-123"}, c.Subprotocols())
}

func TestDialWebSocket(t *testing.T) {
	upgrader := websocket.Upgrader{
		Subprotocols: []string{"auth.token.tok-123"},
	}
	received := make(chan string, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received <- r.Header.Get("Sec-WebSocket-Protocol")
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer func() { _ = conn.Close() }()
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"welcome"}`))
	}))
	defer server.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := NewMemoryTokenStorage()
	store.SetTokens(TokenPair{AccessToken: "tok-123", RefreshToken: "ref"})

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	c := New(&Config{BaseURL: server.URL, WebSocketURL: wsURL}, store, logger)

	conn, err := c.DialWebSocket(context.Background(), EndpointWSChat("p1"))
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	assert.Contains(t, <-received, "auth.token.tok-123")

	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"welcome"}`, string(msg))
}
