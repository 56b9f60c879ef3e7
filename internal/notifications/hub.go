package notifications

import (
	"context"
	"log"
	"sync"
	"time"

	"statusworld/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const (
	maxConnsPerUser = 8
	maxTotalConns   = 10000
)

// Hub maintains the set of active websocket clients. Every client receives
// feed broadcast events; per-user notifications are delivered only to the
// connections of that user.
type Hub struct {
	mu    sync.RWMutex
	conns map[uint]map[*Client]struct{}
	total int

	closed bool
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[uint]map[*Client]struct{}),
	}
}

func (h *Hub) Name() string { return "feed" }

// Register creates a client for the connection and starts its pumps.
// Returns nil when connection limits are exceeded or the hub is shut down.
func (h *Hub) Register(conn *websocket.Conn, userID uint) *Client {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	if h.total >= maxTotalConns {
		h.mu.Unlock()
		log.Printf("Hub: rejecting connection for user %d, total connection limit reached", userID)
		return nil
	}
	if len(h.conns[userID]) >= maxConnsPerUser {
		h.mu.Unlock()
		log.Printf("Hub: rejecting connection for user %d, per-user limit reached", userID)
		return nil
	}

	client := NewClient(h, conn, userID)
	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*Client]struct{})
	}
	h.conns[userID][client] = struct{}{}
	h.total++
	observability.WebSocketConnectionsTotal.Set(float64(h.total))
	h.mu.Unlock()

	return client
}

// UnregisterClient removes the client and closes its send channel.
func (h *Hub) UnregisterClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.conns[c.UserID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.conns, c.UserID)
	}
	h.total--
	observability.WebSocketConnectionsTotal.Set(float64(h.total))
	close(c.Send)
}

// Broadcast delivers a message to every connection of a single user.
func (h *Hub) Broadcast(userID uint, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.conns[userID] {
		client.TrySend(message)
	}
}

// BroadcastAll delivers a message to every connected client.
func (h *Hub) BroadcastAll(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, set := range h.conns {
		for client := range set {
			client.TrySend(message)
		}
	}
}

// ConnectionCount reports the number of active connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.total
}

// Shutdown closes all client connections gracefully.
func (h *Hub) Shutdown(ctx context.Context) {
	h.mu.Lock()
	h.closed = true
	clients := make([]*Client, 0, h.total)
	for _, set := range h.conns {
		for client := range set {
			clients = append(clients, client)
		}
	}
	h.mu.Unlock()

	for _, client := range clients {
		if client.Conn != nil {
			_ = client.Conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(time.Second))
		}
		h.UnregisterClient(client)
		if client.Conn != nil {
			_ = client.Conn.Close()
		}
	}

	select {
	case <-ctx.Done():
	default:
	}
}
