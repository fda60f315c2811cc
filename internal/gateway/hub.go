package gateway

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/spycards/spycards-server/internal/session"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBuffer     = 64
)

// Client is one connected WebSocket session.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	session *session.Session
}

func newClient(hub *Hub, conn *websocket.Conn, sess *session.Session) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		session: sess,
	}
}

// writePump drains the send channel onto the connection and keeps the
// peer alive with pings.
func (c *Client) writePump() {
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

// Hub fans events out to the lobby and to each room's clients. It
// implements game.Notifier.
type Hub struct {
	mu     sync.RWMutex
	lobby  map[*Client]struct{}
	rooms  map[string]map[*Client]struct{}
	logger *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		lobby:  make(map[*Client]struct{}),
		rooms:  make(map[string]map[*Client]struct{}),
		logger: logger,
	}
}

// JoinLobby subscribes a client to open-room announcements.
func (h *Hub) JoinLobby(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lobby[c] = struct{}{}
}

// JoinRoom subscribes a client to a room's broadcasts.
func (h *Hub) JoinRoom(c *Client, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.rooms[roomID]
	if !ok {
		clients = make(map[*Client]struct{})
		h.rooms[roomID] = clients
	}
	clients[c] = struct{}{}
}

// Drop removes a client from the lobby and every room.
func (h *Hub) Drop(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.lobby, c)
	for roomID, clients := range h.rooms {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

// ToRoom delivers an event to every client subscribed to the room.
func (h *Hub) ToRoom(roomID, event string, payload any) {
	msg, err := marshalEnvelope(event, payload)
	if err != nil {
		h.logger.Error("marshal room event failed",
			zap.String("event", event),
			zap.Error(err),
		)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[roomID] {
		c.enqueue(msg)
	}
}

// ToLobby delivers an event to every lobby watcher.
func (h *Hub) ToLobby(event string, payload any) {
	msg, err := marshalEnvelope(event, payload)
	if err != nil {
		h.logger.Error("marshal lobby event failed",
			zap.String("event", event),
			zap.Error(err),
		)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.lobby {
		c.enqueue(msg)
	}
}

// Send delivers an event to a single client.
func (h *Hub) Send(c *Client, event string, payload any) {
	msg, err := marshalEnvelope(event, payload)
	if err != nil {
		h.logger.Error("marshal event failed",
			zap.String("event", event),
			zap.Error(err),
		)
		return
	}
	c.enqueue(msg)
}

// enqueue hands a frame to the client's write pump. A client whose
// buffer is full misses the frame rather than stalling the broadcast.
func (c *Client) enqueue(msg []byte) {
	select {
	case c.send <- msg:
	default:
	}
}

func marshalEnvelope(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: data})
}
