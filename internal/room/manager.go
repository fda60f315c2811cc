// Package room holds the process-wide room registry. Operations on the
// same room id are linearized by the registry lock; distinct rooms are
// fully independent.
package room

import (
	"sync"

	"go.uber.org/zap"

	"github.com/spycards/spycards-server/internal/game"
)

// Manager maps room ids to matches.
type Manager struct {
	mu     sync.RWMutex
	rooms  map[string]*game.Match
	order  []string
	logger *zap.Logger
}

// NewManager creates an empty registry.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		rooms:  make(map[string]*game.Match),
		logger: logger,
	}
}

// Create inserts a new open room hosted by hostID.
func (m *Manager) Create(roomID, hostID string) (*game.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.rooms[roomID]; exists {
		return nil, game.ErrDuplicateRoom
	}

	match := game.NewMatch(roomID, hostID)
	m.rooms[roomID] = match
	m.order = append(m.order, roomID)

	m.logger.Info("room created",
		zap.String("room_id", roomID),
		zap.String("host", hostID),
	)
	return match, nil
}

// Join seats guestID as the second player and closes the room.
func (m *Manager) Join(roomID, guestID string) (*game.Match, error) {
	m.mu.RLock()
	match, ok := m.rooms[roomID]
	m.mu.RUnlock()
	if !ok {
		return nil, game.ErrRoomNotFound
	}

	if err := match.AddPlayer(guestID); err != nil {
		return nil, err
	}

	m.logger.Info("room joined",
		zap.String("room_id", roomID),
		zap.String("guest", guestID),
	)
	return match, nil
}

// Get returns the match for a room id.
func (m *Manager) Get(roomID string) (*game.Match, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	match, ok := m.rooms[roomID]
	return match, ok
}

// Remove deletes a room from the registry.
func (m *Manager) Remove(roomID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rooms[roomID]; !ok {
		return
	}
	delete(m.rooms, roomID)
	for i, id := range m.order {
		if id == roomID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}

	m.logger.Info("room removed", zap.String("room_id", roomID))
}

// ListOpen returns the ids of all rooms still waiting for a second
// player, in creation order.
func (m *Manager) ListOpen() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	open := make([]string, 0, len(m.order))
	for _, id := range m.order {
		if match, ok := m.rooms[id]; ok && match.IsOpen() {
			open = append(open, id)
		}
	}
	return open
}

// Count returns the number of registered rooms.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}
