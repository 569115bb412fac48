package realtime

import (
	"context"
	"sync"
	"time"

	"hotelbooking/internal/domain"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const writeWait = 10 * time.Second

type client struct {
	userID int64
	conn   *websocket.Conn
	mu     sync.Mutex // gorilla allows one concurrent writer
}

func (c *client) write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(messageType, data)
}

func (c *client) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

// Hub keeps the open admin feed connections. One admin may hold several
// (one per browser tab).
type Hub struct {
	clients map[*client]struct{}
	mutex   sync.RWMutex
	log     logrus.FieldLogger
}

func NewHub(log logrus.FieldLogger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		log:     log,
	}
}

func (h *Hub) register(c *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.clients[c]; ok {
		_ = c.conn.Close()
		delete(h.clients, c)
	}
}

func (h *Hub) Count() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// SendBookingEvent pushes evt to every connected admin. Connections that
// fail to accept the write are dropped.
func (h *Hub) SendBookingEvent(_ context.Context, evt domain.BookingEvent) error {
	h.mutex.RLock()
	targets := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mutex.RUnlock()

	msg := Message{Type: "booking_event", Event: &evt}
	for _, c := range targets {
		if err := c.writeJSON(msg); err != nil {
			h.log.WithError(err).WithField("user_id", c.userID).Debug("dropping websocket client")
			h.unregister(c)
		}
	}
	return nil
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for c := range h.clients {
		_ = c.conn.Close()
		delete(h.clients, c)
	}
}
