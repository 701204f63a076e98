// Package broadcaster pushes accepted recommendations to websocket
// subscribers.
package broadcaster

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/mkrebs/gridline/pkg/models"
)

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan models.BetRecommendation
}

// Hub maintains the set of connected clients and fans recommendations out
// to them. Slow clients drop messages rather than blocking the sizer.
type Hub struct {
	mu        sync.RWMutex
	clients   map[*client]bool
	broadcast chan models.BetRecommendation
	log       *logrus.Entry
}

// NewHub creates a broadcast hub.
func NewHub(log *logrus.Entry) *Hub {
	return &Hub{
		clients:   make(map[*client]bool),
		broadcast: make(chan models.BetRecommendation, 256),
		log:       log,
	}
}

// Run fans out broadcasts until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case rec := <-h.broadcast:
			h.fanOut(rec)
		}
	}
}

// Broadcast queues a recommendation for all subscribers. Never blocks; the
// feed is advisory and a full buffer drops the message.
func (h *Hub) Broadcast(rec models.BetRecommendation) {
	select {
	case h.broadcast <- rec:
	default:
		h.log.Warn("broadcast buffer full, dropping recommendation")
	}
}

// ServeWS upgrades an HTTP request to a subscriber connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan models.BetRecommendation, sendBufferSize),
	}

	h.mu.Lock()
	h.clients[c] = true
	total := len(h.clients)
	h.mu.Unlock()

	h.log.WithField("client_id", c.id).WithField("total", total).Info("subscriber connected")

	go h.writePump(c)
}

func (h *Hub) fanOut(rec models.BetRecommendation) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- rec:
		default:
			// Slow subscriber; skip this message for it.
		}
	}
}

func (h *Hub) writePump(c *client) {
	defer h.drop(c)

	for rec := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(rec); err != nil {
			return
		}
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	c.conn.Close()

	h.log.WithField("client_id", c.id).Info("subscriber disconnected")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
		c.conn.Close()
	}
}
