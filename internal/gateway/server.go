// Package gateway is the WebSocket transport: it routes inbound player
// actions to the registry and coordinator and broadcasts their events
// back to rooms and the lobby.
package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/spycards/spycards-server/internal/game"
	"github.com/spycards/spycards-server/internal/room"
	"github.com/spycards/spycards-server/internal/session"
)

// Gateway serves the WebSocket endpoint and dispatches client actions.
type Gateway struct {
	rooms       *room.Manager
	sessions    *session.Manager
	coord       *game.Coordinator
	decks       *game.DeckService
	hub         *Hub
	disconnects *DisconnectHandler
	upgrader    websocket.Upgrader
	mux         *http.ServeMux
	logger      *zap.Logger
}

// New wires the gateway.
func New(rooms *room.Manager, sessions *session.Manager, coord *game.Coordinator, decks *game.DeckService, hub *Hub, logger *zap.Logger) *Gateway {
	g := &Gateway{
		rooms:       rooms,
		sessions:    sessions,
		coord:       coord,
		decks:       decks,
		hub:         hub,
		disconnects: NewDisconnectHandler(sessions, rooms, coord, hub, logger),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		mux:    http.NewServeMux(),
		logger: logger,
	}

	g.mux.HandleFunc("GET /", g.handleHealth)
	g.mux.HandleFunc("GET /ws", g.handleWebSocket)
	return g
}

// Handler returns the HTTP handler serving / and /ws.
func (g *Gateway) Handler() http.Handler {
	return g.mux
}

func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("spycards server"))
}

func (g *Gateway) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	sess := g.sessions.Register()
	client := newClient(g.hub, conn, sess)
	g.logger.Info("connection detected", zap.String("session_id", sess.ID))

	go client.writePump()
	g.readPump(client)
}

// readPump processes frames until the connection drops, then runs the
// disconnect flow exactly once.
func (g *Gateway) readPump(c *Client) {
	defer func() {
		g.disconnects.HandleSessionLoss(c.session.ID)
		g.hub.Drop(c)
		close(c.send)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.logger.Debug("websocket read error",
					zap.String("session_id", c.session.ID),
					zap.Error(err),
				)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			g.hub.Send(c, game.EventDisplayError, "Malformed message.")
			continue
		}
		g.dispatch(c, env)
	}
}

func (g *Gateway) dispatch(c *Client, env Envelope) {
	switch env.Event {
	case ActionCreateRoom:
		g.handleCreateRoom(c, env.Data)
	case ActionViewRooms:
		g.handleViewRooms(c)
	case ActionJoinRoom:
		g.handleJoinRoom(c, env.Data)
	case ActionPlayerJoin:
		g.handlePlayerJoin(c, env.Data)
	case ActionMoveSubmitted:
		g.handleMoveSubmitted(c, env.Data)
	case ActionRematchRequest:
		g.handleRematchRequest(c, env.Data)
	case ActionClaimWin:
		g.handleClaimWin(c, env.Data)
	case ActionPlayerDisconnect:
		g.disconnects.HandleSessionLoss(c.session.ID)
	default:
		g.hub.Send(c, game.EventDisplayError, "Unknown action: "+env.Event)
	}
}

func (g *Gateway) handleCreateRoom(c *Client, data json.RawMessage) {
	var req CreateRoomRequest
	if err := json.Unmarshal(data, &req); err != nil || req.Room == "" || req.User == "" {
		g.hub.Send(c, game.EventDisplayError, "Malformed create-room request.")
		return
	}

	if _, err := g.rooms.Create(req.Room, req.User); err != nil {
		g.sendError(c, err)
		return
	}

	g.sessions.Bind(c.session.ID, req.User, req.Room)
	g.hub.JoinRoom(c, req.Room)
	g.hub.ToLobby(game.EventRoomCreated, g.rooms.ListOpen())
}

func (g *Gateway) handleViewRooms(c *Client) {
	g.hub.Send(c, game.EventRoomList, g.rooms.ListOpen())
	g.hub.JoinLobby(c)
}

func (g *Gateway) handleJoinRoom(c *Client, data json.RawMessage) {
	var req CreateRoomRequest
	if err := json.Unmarshal(data, &req); err != nil || req.Room == "" || req.User == "" {
		g.hub.Send(c, game.EventDisplayError, "Malformed join-room request.")
		return
	}

	if _, err := g.rooms.Join(req.Room, req.User); err != nil {
		g.sendError(c, err)
		return
	}

	g.sessions.Bind(c.session.ID, req.User, req.Room)
	g.hub.JoinRoom(c, req.Room)
	g.hub.ToLobby(game.EventRoomJoined, g.rooms.ListOpen())
}

func (g *Gateway) handlePlayerJoin(c *Client, data json.RawMessage) {
	var req PlayerJoinRequest
	if err := json.Unmarshal(data, &req); err != nil {
		g.hub.Send(c, game.EventDisplayError, "Malformed player-join request.")
		return
	}

	m, ok := g.rooms.Get(req.Room)
	if !ok {
		g.sendError(c, game.ErrRoomNotFound)
		return
	}

	deck, err := g.decks.BuildDeck(req.Deck)
	if err != nil {
		g.sendError(c, err)
		return
	}

	if err := g.coord.PlayerJoin(m, req.Player, deck); err != nil {
		g.sendError(c, err)
	}
}

func (g *Gateway) handleMoveSubmitted(c *Client, data json.RawMessage) {
	var req MoveRequest
	if err := json.Unmarshal(data, &req); err != nil {
		g.hub.Send(c, game.EventDisplayError, "Malformed move-submitted request.")
		return
	}

	m, ok := g.rooms.Get(req.Room)
	if !ok {
		g.sendError(c, game.ErrRoomNotFound)
		return
	}

	if err := g.coord.SubmitMove(m, req.Player, req.Selected); err != nil {
		g.sendError(c, err)
	}
}

func (g *Gateway) handleRematchRequest(c *Client, data json.RawMessage) {
	var req PlayerJoinRequest
	if err := json.Unmarshal(data, &req); err != nil {
		g.hub.Send(c, game.EventDisplayError, "Malformed rematch-request.")
		return
	}

	m, ok := g.rooms.Get(req.Room)
	if !ok {
		g.sendError(c, game.ErrRoomNotFound)
		return
	}

	deck, err := g.decks.BuildDeck(req.Deck)
	if err != nil {
		g.sendError(c, err)
		return
	}

	if err := g.coord.RematchRequest(m, req.Player, deck); err != nil {
		g.sendError(c, err)
	}
}

func (g *Gateway) handleClaimWin(c *Client, data json.RawMessage) {
	var req ClaimWinRequest
	if err := json.Unmarshal(data, &req); err != nil {
		g.hub.Send(c, game.EventDisplayError, "Malformed claim-disconnect-win request.")
		return
	}

	m, ok := g.rooms.Get(req.Room)
	if !ok {
		g.sendError(c, game.ErrRoomNotFound)
		return
	}

	g.coord.ClaimDisconnectWin(m, req.Player)
}

// sendError maps taxonomy errors onto the client-facing display-error
// messages.
func (g *Gateway) sendError(c *Client, err error) {
	msg := err.Error()
	switch {
	case errors.Is(err, game.ErrDuplicateRoom):
		msg = "That room is already taken."
	case errors.Is(err, game.ErrRoomNotFound):
		msg = "That room doesn't exist."
	case errors.Is(err, game.ErrTPExceeded):
		msg = "TP Exceeded: Please don't cheat."
	}
	g.hub.Send(c, game.EventDisplayError, msg)
}
