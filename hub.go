package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"i4.energy/across/sw42dagw/status"
)

// Message is the envelope sent to websocket clients. Type is "status" for
// snapshots.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// wsClient serializes writes to one connection; gorilla/websocket does not
// allow concurrent writers.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) write(b []byte, timeout time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

// DefaultWriteTimeout bounds a single websocket write.
const DefaultWriteTimeout = 5 * time.Second

// Hub fans status snapshots out to websocket subscribers.
type Hub struct {
	Logger *slog.Logger
	// WriteTimeout bounds each write. Zero means DefaultWriteTimeout.
	WriteTimeout time.Duration

	mu      sync.RWMutex
	clients map[*wsClient]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{Logger: logger, clients: make(map[*wsClient]struct{})}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Serve upgrades the request, sends the current snapshot if there is one and
// keeps the connection registered until the peer goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, current *status.Snapshot) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Logger.Debug("Websocket upgrade failed", "error", err)
		return
	}

	c := h.add(conn)
	if current != nil {
		if b, err := json.Marshal(Message{Type: "status", Data: current}); err == nil {
			if err := c.write(b, h.writeTimeout()); err != nil {
				h.remove(c)
				return
			}
		}
	}

	// Incoming messages are ignored; reading detects the disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.remove(c)
			return
		}
	}
}

// Publish sends a snapshot to every subscriber.
func (h *Hub) Publish(s *status.Snapshot) {
	h.Broadcast(Message{Type: "status", Data: s})
}

// Broadcast marshals msg once and writes it to all clients. A client whose
// write fails or times out is dropped.
func (h *Hub) Broadcast(msg Message) {
	b, err := json.Marshal(msg)
	if err != nil {
		h.Logger.Error("Failed to encode websocket message", "type", msg.Type, "error", err)
		return
	}

	h.mu.RLock()
	clients := make([]*wsClient, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.write(b, h.writeTimeout()); err != nil {
			h.Logger.Debug("Dropping websocket client", "remote", c.conn.RemoteAddr().String(), "error", err)
			h.remove(c)
		}
	}
}

func (h *Hub) writeTimeout() time.Duration {
	if h.WriteTimeout > 0 {
		return h.WriteTimeout
	}
	return DefaultWriteTimeout
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) add(conn *websocket.Conn) *wsClient {
	c := &wsClient{conn: conn}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	return c
}

func (h *Hub) remove(c *wsClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	_ = c.conn.Close()
}
