package ws

import (
	"sync"
	"time"

	"artifact-host/core/mre"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 10 * time.Second

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeLocked(data)
}

func (c *client) writeLocked(data []byte) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub fans runtime events out to connected clients.
// It implements memory.Publisher.
type Hub struct {
	mu      sync.Mutex
	clients map[mre.UserID]*client
	logger  *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{clients: make(map[mre.UserID]*client), logger: logger}
}

// Publish sends evt to every client. A client that cannot be written to is
// closed; its read loop then performs the leave.
func (h *Hub) Publish(evt mre.Event) {
	data, err := json.Marshal(evt)
	if err != nil {
		h.logger.Error("Failed to marshal session event", zap.String("type", string(evt.Type)), zap.Error(err))
		return
	}

	h.mu.Lock()
	subs := make(map[mre.UserID]*client, len(h.clients))
	for id, c := range h.clients {
		subs[id] = c
	}
	h.mu.Unlock()

	for id, c := range subs {
		if err := c.write(data); err != nil {
			h.logger.Warn("Failed to send session event", zap.String("user", string(id)), zap.Error(err))
			c.conn.Close()
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	subs := h.clients
	h.clients = make(map[mre.UserID]*client)
	h.mu.Unlock()

	for _, c := range subs {
		c.mu.Lock()
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "host shutting down"))
		c.mu.Unlock()
		c.conn.Close()
	}
}

func (h *Hub) add(id mre.UserID, c *client) {
	h.mu.Lock()
	h.clients[id] = c
	h.mu.Unlock()
}

func (h *Hub) remove(id mre.UserID) {
	h.mu.Lock()
	delete(h.clients, id)
	h.mu.Unlock()
}
