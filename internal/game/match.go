package game

import (
	"sync"
	"time"
)

// Match is one two-player room and its full state. All mutation happens
// under mu; a room is logically single-threaded, one action completes
// before the next is accepted.
type Match struct {
	ID string

	mu              sync.Mutex
	players         map[string]*Player
	playerOrder     []string
	turn            int
	phase           Phase
	isOpen          bool
	started         bool
	resultPending   bool
	readyPlayers    map[string]struct{}
	rematchAccepted map[string]struct{}
	aborted         bool

	// pending is the single cancellable handle for the next deferred
	// reveal-pipeline step. Advancing the pipeline replaces it; abort
	// stops it.
	pending *time.Timer
}

// NewMatch creates an open room holding only the host.
func NewMatch(roomID, hostID string) *Match {
	return &Match{
		ID:              roomID,
		players:         map[string]*Player{hostID: NewPlayer(hostID)},
		playerOrder:     []string{hostID},
		turn:            1,
		phase:           PhaseMain,
		isOpen:          true,
		resultPending:   true,
		readyPlayers:    make(map[string]struct{}),
		rematchAccepted: make(map[string]struct{}),
	}
}

// AddPlayer seats the second player and closes the room.
func (m *Match) AddPlayer(guestID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.players) >= 2 {
		return ErrRoomFull
	}
	if _, exists := m.players[guestID]; exists {
		return ErrRoomFull
	}

	m.players[guestID] = NewPlayer(guestID)
	m.playerOrder = append(m.playerOrder, guestID)
	m.isOpen = false
	return nil
}

// IsOpen reports whether the room is still waiting for a second player.
func (m *Match) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isOpen
}

// Aborted reports whether the match has lost a player.
func (m *Match) Aborted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.aborted
}

// Turn returns the current turn counter.
func (m *Match) Turn() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.turn
}

// Phase returns the current phase.
func (m *Match) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// ResultPending reports whether both players are still alive.
func (m *Match) ResultPending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resultPending
}

// PlayerIDs returns the seated player ids in join order.
func (m *Match) PlayerIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.playerOrder...)
}

// Player returns the seated player with the given id.
func (m *Match) Player(id string) (*Player, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.players[id]
	return p, ok
}

// viewsLocked captures broadcast snapshots of all seated players.
// Caller must hold mu.
func (m *Match) viewsLocked() map[string]PlayerView {
	views := make(map[string]PlayerView, len(m.players))
	for id, p := range m.players {
		views[id] = p.View()
	}
	return views
}

// Views captures broadcast snapshots of all seated players.
func (m *Match) Views() map[string]PlayerView {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.viewsLocked()
}

// scheduleLocked arms the pending-step handle. Caller must hold mu.
func (m *Match) scheduleLocked(d time.Duration, fn func()) {
	m.pending = time.AfterFunc(d, fn)
}

// cancelPendingLocked stops any armed pipeline step. Caller must hold mu.
// A step that already fired observes the aborted flag and no-ops.
func (m *Match) cancelPendingLocked() {
	if m.pending != nil {
		m.pending.Stop()
		m.pending = nil
	}
}
