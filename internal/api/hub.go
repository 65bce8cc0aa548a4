// WebSocket fan-out for snapshot broadcasts. The hub keeps the set of
// connected viewers and pushes every broadcast frame to all of them; the
// socket is one-way, so anything a client sends is drained and dropped.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

// Hub maintains the set of active clients and broadcasts frames to them.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewHub builds a hub; Run must be started in its own goroutine.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, 8),
		register:   make(chan *client),
		unregister: make(chan *client),
	}
}

// Broadcast queues a frame for every connected client. Frames are dropped
// when the hub's queue is full rather than stalling the simulation.
func (h *Hub) Broadcast(frame []byte) {
	select {
	case h.broadcast <- frame:
	default:
	}
}

// Run is the hub event loop; it blocks until ctx-free shutdown via process
// exit. Slow clients are disconnected instead of backing up the loop.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			slog.Info("viewer connected", "viewers", len(h.clients))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				slog.Info("viewer disconnected", "viewers", len(h.clients))
			}

		case frame := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- frame:
				default:
					close(c.send)
					delete(h.clients, c)
				}
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWs upgrades a GET request to a websocket and registers the viewer.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, 16)}
	h.register <- c

	go c.writePump()
	go c.readPump()
}

// readPump drains the connection so pings and closes are processed; client
// payloads are ignored.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Debug("websocket read", "error", err)
			}
			return
		}
	}
}

// writePump pushes hub frames to the socket until the send channel closes.
func (c *client) writePump() {
	defer c.conn.Close()
	for frame := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			return
		}
	}
}
