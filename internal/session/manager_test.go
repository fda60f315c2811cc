package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestRegisterAssignsUniqueIDs(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t))

	a := m.Register()
	b := m.Register()
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, m.Count())
}

func TestBindAndLookup(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t))
	s := m.Register()

	m.Bind(s.ID, "alice", "r1")

	got, ok := m.Lookup(s.ID)
	require.True(t, ok)
	assert.Equal(t, "alice", got.Player)
	assert.Equal(t, "r1", got.Room)
}

func TestBindUnknownSessionIsNoop(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t))
	m.Bind("missing", "alice", "r1")

	_, ok := m.Lookup("missing")
	assert.False(t, ok)
}

func TestUnregisterReturnsFinalState(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t))
	s := m.Register()
	m.Bind(s.ID, "bob", "r2")

	got, ok := m.Unregister(s.ID)
	require.True(t, ok)
	assert.Equal(t, "bob", got.Player)
	assert.Equal(t, "r2", got.Room)
	assert.Zero(t, m.Count())

	// Second unregister reports the session gone.
	_, ok = m.Unregister(s.ID)
	assert.False(t, ok)
}
