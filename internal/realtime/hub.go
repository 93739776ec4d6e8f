package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 64 * 1024
)

// WSEvent is a change-feed event pushed to connected dashboard clients.
type WSEvent struct {
	Type    EventType `json:"type"`
	Table   string    `json:"table"`
	Payload any       `json:"payload,omitempty"`
}

// connection represents a single WebSocket client
type connection struct {
	userID uuid.UUID
	conn   *websocket.Conn
	send   chan []byte
	tables map[string]bool // subscribed table names
}

// Hub manages all active WebSocket connections and forwards bus events to
// clients subscribed to the affected table.
type Hub struct {
	mu          sync.RWMutex
	connections map[uuid.UUID]*connection // userID -> connection
}

func NewHub(bus *Bus) *Hub {
	h := &Hub{connections: make(map[uuid.UUID]*connection)}
	bus.SubscribeAll(h.broadcast)
	return h
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c.userID] = c
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.connections[c.userID]; ok && existing == c {
		delete(h.connections, c.userID)
		close(c.send)
	}
}

func (h *Hub) broadcast(ev Event) {
	data, err := json.Marshal(WSEvent{Type: ev.Type, Table: ev.Table, Payload: ev.Record})
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.connections {
		if c.tables[ev.Table] {
			select {
			case c.send <- data:
			default:
				// client too slow, drop the event
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // Allow all origins (configure in prod)
}

// Upgrade upgrades the HTTP request to a websocket connection.
func Upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return upgrader.Upgrade(w, r, nil)
}

// ServeWS registers a new connection and starts read/write loops. The client
// starts subscribed to initialTables and can adjust with subscribe /
// unsubscribe messages.
func (h *Hub) ServeWS(conn *websocket.Conn, userID uuid.UUID, initialTables []string) {
	c := &connection{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, 256),
		tables: make(map[string]bool),
	}

	for _, t := range initialTables {
		c.tables[t] = true
	}

	h.register(c)

	go h.writePump(c)
	h.readPump(c) // blocks until disconnect
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var req struct {
			Type  string `json:"type"`
			Table string `json:"table"`
		}
		if err := json.Unmarshal(msg, &req); err != nil {
			continue
		}

		switch req.Type {
		case "subscribe":
			h.mu.Lock()
			c.tables[req.Table] = true
			h.mu.Unlock()
		case "unsubscribe":
			h.mu.Lock()
			delete(c.tables, req.Table)
			h.mu.Unlock()
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
