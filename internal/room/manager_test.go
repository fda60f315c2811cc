package room

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/spycards/spycards-server/internal/game"
)

func TestCreateAndGet(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t))

	match, err := m.Create("r1", "alice")
	require.NoError(t, err)
	assert.Equal(t, "r1", match.ID)
	assert.True(t, match.IsOpen())

	got, ok := m.Get("r1")
	require.True(t, ok)
	assert.Same(t, match, got)
	assert.Equal(t, 1, m.Count())
}

func TestCreateDuplicateRoom(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t))

	_, err := m.Create("r1", "alice")
	require.NoError(t, err)

	_, err = m.Create("r1", "carol")
	assert.ErrorIs(t, err, game.ErrDuplicateRoom)
	assert.Equal(t, 1, m.Count())
}

func TestJoinClosesRoom(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t))
	_, err := m.Create("r1", "alice")
	require.NoError(t, err)

	match, err := m.Join("r1", "bob")
	require.NoError(t, err)
	assert.False(t, match.IsOpen())
	assert.NotContains(t, m.ListOpen(), "r1")
}

func TestJoinMissingRoom(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t))

	_, err := m.Join("nope", "bob")
	assert.ErrorIs(t, err, game.ErrRoomNotFound)
}

func TestListOpenIsStable(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t))
	for _, id := range []string{"a", "b", "c"} {
		_, err := m.Create(id, "host-"+id)
		require.NoError(t, err)
	}

	first := m.ListOpen()
	second := m.ListOpen()
	assert.Equal(t, []string{"a", "b", "c"}, first, "insertion order")
	assert.Equal(t, first, second, "repeated calls with no mutation agree")

	_, err := m.Join("b", "guest")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, m.ListOpen())
}

func TestRemove(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t))
	_, err := m.Create("r1", "alice")
	require.NoError(t, err)

	m.Remove("r1")
	_, ok := m.Get("r1")
	assert.False(t, ok)
	assert.Empty(t, m.ListOpen())

	// Removing an unknown room is a no-op.
	m.Remove("r1")
}

func TestConcurrentCreateSameID(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t))

	var wg sync.WaitGroup
	var created atomic.Int32
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.Create("contested", "host"); err == nil {
				created.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), created.Load(), "exactly one create may win")
	assert.Equal(t, 1, m.Count())
}

func TestDistinctRoomsInParallel(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t))

	var wg sync.WaitGroup
	ids := []string{"r1", "r2", "r3", "r4", "r5", "r6", "r7", "r8"}
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := m.Create(id, "host")
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	assert.Equal(t, len(ids), m.Count())
	assert.ElementsMatch(t, ids, m.ListOpen())
}
