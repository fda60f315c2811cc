package game

// Outbound event names, matching the wire protocol.
const (
	EventRoomCreated     = "room-created"
	EventRoomJoined      = "room-joined"
	EventRoomList        = "room-list-sent"
	EventDisplayError    = "display-error"
	EventMatchStart      = "match-start"
	EventAllMoves        = "all-moves-submitted"
	EventBattleResult    = "battle-phase-result"
	EventEndOfTurn       = "end-of-turn"
	EventNextTurn        = "start-next-turn"
	EventGameOver        = "game-over"
	EventMatchAbort      = "match-abort"
	EventRematchDeclined = "rematch-declined"
)

// Notifier delivers named events to a room's sessions or to the lobby.
// The WebSocket gateway implements it; tests substitute a recorder.
type Notifier interface {
	ToRoom(roomID, event string, payload any)
	ToLobby(event string, payload any)
}

// RoomState is the payload for match-start, all-moves-submitted,
// battle-phase-result, end-of-turn and start-next-turn broadcasts.
type RoomState struct {
	Players   map[string]PlayerView `json:"players"`
	Phase     string                `json:"phase"`
	Turn      int                   `json:"turn,omitempty"`
	Submitted *bool                 `json:"submitted,omitempty"`
}

// GameOverPayload names the surviving player. An empty winner with Draw
// set means both players fell on the same turn.
type GameOverPayload struct {
	Winner string `json:"winner"`
	Draw   bool   `json:"draw,omitempty"`
}
