package game

import "errors"

// Error taxonomy. All of these are local to the originating action: they
// are reported back to the requesting session and leave match state
// untouched. Disconnects and aborts are lifecycle transitions, not errors.
var (
	ErrDuplicateRoom     = errors.New("room id already taken")
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomFull          = errors.New("room already has two players")
	ErrPlayerNotFound    = errors.New("player not in room")
	ErrTPExceeded        = errors.New("selection cost exceeds TP budget")
	ErrUnknownCard       = errors.New("unknown card")
	ErrDeckParse         = errors.New("malformed deck list")
	ErrWrongPhase        = errors.New("action not allowed in current phase")
	ErrMatchAborted      = errors.New("match aborted")
	ErrSelectionMismatch = errors.New("selection does not match hand size")
)
