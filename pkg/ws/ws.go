// Package ws streams order events to kitchen and counter screens over
// WebSocket using gorilla/websocket.
//
//	hub := ws.NewHub(config.CORSOrigins())
//	hub.Attach(bus)
//	go hub.Run(ctx)
//	r.Get("/ws/orders", "ws.orders", hub.ServeHTTP)
//
// Clients only listen; anything they send is read and discarded so that
// control frames keep flowing.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shashiranjanraj/lanchonete/pkg/event"
	"github.com/shashiranjanraj/lanchonete/pkg/logger"
	"github.com/shashiranjanraj/lanchonete/pkg/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
	sendBuffer     = 64
)

// Client is one connected screen.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("ws: unexpected close", "error", err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Hub fans events out to every connected client.
type Hub struct {
	upgrader   websocket.Upgrader
	clients    map[*Client]struct{}
	count      atomic.Int64
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

// NewHub accepts connections from origins; an empty list or "*" allows any.
func NewHub(origins []string) *Hub {
	h := &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || len(origins) == 0 ||
				slices.Contains(origins, "*") || slices.Contains(origins, origin)
		},
	}
	return h
}

// Attach forwards every order event fired on bus to the clients.
func (h *Hub) Attach(bus *event.Bus) {
	bus.ListenAll(h.Publish, event.OrderPlaced, event.OrderStatusChanged, event.OrdersCleared)
}

// Publish queues e for broadcast. It drops the event if the hub is backed up.
func (h *Hub) Publish(e event.Event) {
	raw, err := json.Marshal(e)
	if err != nil {
		logger.Error("ws: encode event", "event", e.Name, "error", err)
		return
	}
	select {
	case h.broadcast <- raw:
	default:
		logger.Warn("ws: broadcast queue full", "event", e.Name)
	}
}

// Run is the hub loop. It returns when ctx is done, closing every client.
// A hub runs once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.remove(c)
			}
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.updateCount()
			logger.Info("ws: client connected", "total", len(h.clients))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.remove(c)
				logger.Info("ws: client disconnected", "total", len(h.clients))
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					h.remove(c)
				}
			}
		}
	}
}

func (h *Hub) remove(c *Client) {
	delete(h.clients, c)
	close(c.send)
	h.updateCount()
}

func (h *Hub) updateCount() {
	h.count.Store(int64(len(h.clients)))
	metrics.WSClients.Set(float64(len(h.clients)))
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int { return int(h.count.Load()) }

// ServeHTTP upgrades the request and registers the client. Run must be
// active.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("ws: upgrade failed", "error", err)
		return
	}
	c := &Client{hub: h, conn: conn, send: make(chan []byte, sendBuffer)}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}
	go c.writePump()
	go c.readPump()
}
