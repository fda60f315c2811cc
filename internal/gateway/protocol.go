package gateway

import "encoding/json"

// Envelope is the wire framing for every message in both directions:
// a named event plus its JSON payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Inbound event names.
const (
	ActionCreateRoom       = "create-room"
	ActionViewRooms        = "view-rooms"
	ActionJoinRoom         = "join-room"
	ActionPlayerJoin       = "player-join"
	ActionMoveSubmitted    = "move-submitted"
	ActionRematchRequest   = "rematch-request"
	ActionPlayerDisconnect = "player-disconnect"
	ActionClaimWin         = "claim-disconnect-win"
)

// CreateRoomRequest carries create-room and join-room payloads.
type CreateRoomRequest struct {
	Room string `json:"room"`
	User string `json:"user"`
}

// PlayerJoinRequest uploads a deck list for a seated player. Deck maps
// card name to a nonnegative count.
type PlayerJoinRequest struct {
	Player string         `json:"player"`
	Room   string         `json:"room"`
	Deck   map[string]int `json:"deck"`
}

// MoveRequest submits a hand selection for the current turn.
type MoveRequest struct {
	Room     string `json:"room"`
	Player   string `json:"player"`
	Selected []bool `json:"selected"`
}

// ClaimWinRequest asserts a win after a peer drop.
type ClaimWinRequest struct {
	Room   string `json:"room"`
	Player string `json:"player"`
}
