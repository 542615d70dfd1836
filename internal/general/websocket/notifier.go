package websocket

import (
	"net/http"
	"sync"
	"time"

	"move-market/internal/domain/user"
	"move-market/internal/general/jwt"
	"move-market/internal/general/logger"

	"github.com/gorilla/websocket"
)

const wsWriteTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type conn struct {
	sock *websocket.Conn
	role user.Role
}

// Notifier keeps one notification socket per user and pushes JSON
// frames to it. Inbound frames are ignored except for close handling.
type Notifier struct {
	logger *logger.Logger
	jwtMgr *jwt.Manager

	mu    sync.Mutex
	conns map[int64]conn // user id -> connection
}

// NewNotifier creates a Notifier with JWT auth.
func NewNotifier(log *logger.Logger, jwtMgr *jwt.Manager) *Notifier {
	return &Notifier{
		logger: log,
		jwtMgr: jwtMgr,
		conns:  make(map[int64]conn),
	}
}

// Connect handles GET /ws/notifications. The token comes from the
// Authorization header or the `token` query parameter; the connection
// is registered under the token subject and replaces any previous one.
func (n *Notifier) Connect(w http.ResponseWriter, r *http.Request) {
	raw, err := jwt.FromAuthorization(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	_, claims, err := n.jwtMgr.ParseAndValidate(raw)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		http.Error(w, "invalid token subject", http.StatusUnauthorized)
		return
	}

	sock, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		n.logger.Error(r.Context(), "websocket_upgrade_failed", "Failed to upgrade to WebSocket", err, nil)
		return
	}

	n.register(userID, conn{sock: sock, role: claims.Role})
	n.logger.Info(r.Context(), "ws_connected", "Notification socket connected", map[string]any{
		"user_id": userID,
		"role":    claims.Role.String(),
	})

	// drain inbound frames until the peer goes away
	sock.SetReadLimit(1 << 16)
	for {
		if _, _, err := sock.ReadMessage(); err != nil {
			break
		}
	}

	n.unregister(userID, sock)
	_ = sock.Close()
	n.logger.Info(r.Context(), "ws_disconnected", "Notification socket closed", map[string]any{
		"user_id": userID,
	})
}

// Push writes a JSON payload to the user's socket. A missing connection
// is not an error: the user is simply not online.
func (n *Notifier) Push(userID int64, payload any) error {
	n.mu.Lock()
	c, ok := n.conns[userID]
	n.mu.Unlock()
	if !ok {
		return nil
	}

	_ = c.sock.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := c.sock.WriteJSON(payload); err != nil {
		// a broken socket is evicted so the next push is a clean miss
		n.unregister(userID, c.sock)
		_ = c.sock.Close()
		return err
	}
	return nil
}

// Broadcast writes a JSON payload to every connected socket of the
// given role and returns the number of successful deliveries. Broken
// sockets are evicted along the way.
func (n *Notifier) Broadcast(role user.Role, payload any) int {
	n.mu.Lock()
	targets := make(map[int64]conn)
	for id, c := range n.conns {
		if c.role == role {
			targets[id] = c
		}
	}
	n.mu.Unlock()

	delivered := 0
	for id, c := range targets {
		_ = c.sock.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := c.sock.WriteJSON(payload); err != nil {
			n.unregister(id, c.sock)
			_ = c.sock.Close()
			continue
		}
		delivered++
	}
	return delivered
}

// Online reports whether the user currently has a socket registered.
func (n *Notifier) Online(userID int64) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, ok := n.conns[userID]
	return ok
}

func (n *Notifier) register(userID int64, c conn) {
	n.mu.Lock()
	old, had := n.conns[userID]
	n.conns[userID] = c
	n.mu.Unlock()
	if had && old.sock != c.sock {
		_ = old.sock.Close()
	}
}

func (n *Notifier) unregister(userID int64, sock *websocket.Conn) {
	n.mu.Lock()
	if cur, ok := n.conns[userID]; ok && cur.sock == sock {
		delete(n.conns, userID)
	}
	n.mu.Unlock()
}
