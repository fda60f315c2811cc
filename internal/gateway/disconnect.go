package gateway

import (
	"go.uber.org/zap"

	"github.com/spycards/spycards-server/internal/game"
	"github.com/spycards/spycards-server/internal/room"
	"github.com/spycards/spycards-server/internal/session"
)

// DisconnectHandler reacts to session loss. An open room simply
// disappears; a full room survives as an aborted match so the remaining
// player can claim the win.
type DisconnectHandler struct {
	sessions *session.Manager
	rooms    *room.Manager
	coord    *game.Coordinator
	notifier game.Notifier
	logger   *zap.Logger
}

// NewDisconnectHandler wires the handler.
func NewDisconnectHandler(sessions *session.Manager, rooms *room.Manager, coord *game.Coordinator, notifier game.Notifier, logger *zap.Logger) *DisconnectHandler {
	return &DisconnectHandler{
		sessions: sessions,
		rooms:    rooms,
		coord:    coord,
		notifier: notifier,
		logger:   logger,
	}
}

// HandleSessionLoss resolves the lost session to its player and room and
// applies the departure. Unregistering first makes the flow idempotent:
// the explicit player-disconnect action and the socket close both funnel
// here, and only the first wins.
func (h *DisconnectHandler) HandleSessionLoss(sessionID string) {
	sess, ok := h.sessions.Unregister(sessionID)
	if !ok || sess.Room == "" {
		return
	}

	m, ok := h.rooms.Get(sess.Room)
	if !ok {
		return
	}

	h.logger.Info("player disconnected",
		zap.String("session_id", sessionID),
		zap.String("player", sess.Player),
		zap.String("room_id", sess.Room),
	)

	if m.IsOpen() {
		h.rooms.Remove(sess.Room)
		h.notifier.ToLobby(game.EventRoomJoined, h.rooms.ListOpen())
		return
	}

	h.coord.Abort(m, sess.Player)
}
