// Package session tracks which player and room each connected session
// belongs to, so disconnects can be resolved back to match state.
package session

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session is one connected client.
type Session struct {
	ID     string
	Player string
	Room   string
}

// Manager tracks live sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	logger   *zap.Logger
}

// NewManager creates an empty session manager.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

// Register creates a session with a fresh id.
func (m *Manager) Register() *Session {
	s := &Session{ID: uuid.New().String()}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Debug("session registered", zap.String("session_id", s.ID))
	return s
}

// Bind associates a session with a player and room. A session follows a
// player through at most one room at a time.
func (m *Manager) Bind(sessionID, player, room string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[sessionID]; ok {
		s.Player = player
		s.Room = room
	}
}

// Lookup returns a copy of the session state.
func (m *Manager) Lookup(sessionID string) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return Session{}, false
	}
	return *s, true
}

// Unregister removes a session, returning its final state.
func (m *Manager) Unregister(sessionID string) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return Session{}, false
	}
	delete(m.sessions, sessionID)

	m.logger.Debug("session unregistered",
		zap.String("session_id", sessionID),
		zap.String("player", s.Player),
	)
	return *s, true
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
