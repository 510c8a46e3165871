// websocket.go
// ------------
// WebSocket factory for the realtime party endpoints. The handshake cannot
// carry an Authorization header from every client environment, so the
// access token travels as a synthetic subprotocol entry ("auth.token.<tok>")
// which the backend strips during the upgrade.
package watchparty

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

const wsHandshakeTimeout = 10 * time.Second

// WebSocketURL joins the configured websocket origin with an endpoint path.
func (c *Client) WebSocketURL(path string) (string, error) {
	c.mu.RLock()
	base := c.wsURL
	c.mu.RUnlock()

	u, err := url.Parse(base + path)
	if err != nil {
		return "", fmt.Errorf("invalid websocket url %q: %w", base+path, err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return "", fmt.Errorf("websocket url %q must use ws or wss", u.String())
	}
	return u.String(), nil
}

// Subprotocols returns the subprotocol list for a websocket handshake,
// carrying the current access token when one exists.
func (c *Client) Subprotocols() []string {
	if access := c.tokens.AccessToken(); access != "" {
		return []string{"auth.token." + access}
	}
	return nil
}

// DialWebSocket opens an authenticated websocket connection to path. The
// caller owns the returned connection and must close it.
func (c *Client) DialWebSocket(ctx context.Context, path string) (*websocket.Conn, error) {
	target, err := c.WebSocketURL(path)
	if err != nil {
		return nil, newRequestError(err)
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: wsHandshakeTimeout,
		Subprotocols:     c.Subprotocols(),
	}

	c.logger.Debug("websocket dial", "url", target)
	conn, resp, err := dialer.DialContext(ctx, target, nil)
	if err != nil {
		if resp != nil {
			defer func() { _ = resp.Body.Close() }()
			c.logger.Error("websocket dial rejected", "url", target, "status", resp.StatusCode)
			return nil, newServerError(resp.StatusCode, nil)
		}
		c.logger.Error("websocket dial failed", "url", target, "error", err)
		return nil, newNetworkError(err, isTimeout(err))
	}
	return conn, nil
}
