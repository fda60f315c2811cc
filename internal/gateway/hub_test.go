package gateway

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/spycards/spycards-server/internal/session"
)

func testClient(hub *Hub) *Client {
	return newClient(hub, nil, &session.Session{ID: "s1"})
}

func receive(t *testing.T, c *Client) Envelope {
	t.Helper()
	select {
	case msg := <-c.send:
		var env Envelope
		require.NoError(t, json.Unmarshal(msg, &env))
		return env
	default:
		t.Fatal("expected a frame on the send channel")
		return Envelope{}
	}
}

func TestHubRoomBroadcast(t *testing.T) {
	hub := NewHub(zaptest.NewLogger(t))
	a := testClient(hub)
	b := testClient(hub)
	outsider := testClient(hub)

	hub.JoinRoom(a, "r1")
	hub.JoinRoom(b, "r1")
	hub.JoinRoom(outsider, "r2")

	hub.ToRoom("r1", "end-of-turn", map[string]int{"turn": 3})

	for _, c := range []*Client{a, b} {
		env := receive(t, c)
		assert.Equal(t, "end-of-turn", env.Event)

		var payload map[string]int
		require.NoError(t, json.Unmarshal(env.Data, &payload))
		assert.Equal(t, 3, payload["turn"])
	}
	assert.Empty(t, outsider.send, "other rooms must not hear the event")
}

func TestHubLobbyBroadcast(t *testing.T) {
	hub := NewHub(zaptest.NewLogger(t))
	watcher := testClient(hub)
	player := testClient(hub)

	hub.JoinLobby(watcher)
	hub.JoinRoom(player, "r1")

	hub.ToLobby("room-created", []string{"r1"})

	env := receive(t, watcher)
	assert.Equal(t, "room-created", env.Event)
	assert.Empty(t, player.send)
}

func TestHubDrop(t *testing.T) {
	hub := NewHub(zaptest.NewLogger(t))
	c := testClient(hub)
	hub.JoinLobby(c)
	hub.JoinRoom(c, "r1")

	hub.Drop(c)

	hub.ToLobby("room-created", nil)
	hub.ToRoom("r1", "end-of-turn", nil)
	assert.Empty(t, c.send)
}

func TestHubSendToSingleClient(t *testing.T) {
	hub := NewHub(zaptest.NewLogger(t))
	c := testClient(hub)

	hub.Send(c, "display-error", "That room is already taken.")

	env := receive(t, c)
	assert.Equal(t, "display-error", env.Event)

	var msg string
	require.NoError(t, json.Unmarshal(env.Data, &msg))
	assert.Equal(t, "That room is already taken.", msg)
}

func TestHubFullBufferDoesNotBlock(t *testing.T) {
	hub := NewHub(zaptest.NewLogger(t))
	c := testClient(hub)
	hub.JoinRoom(c, "r1")

	// A stalled client misses frames instead of wedging the broadcast.
	for i := 0; i < sendBuffer*2; i++ {
		hub.ToRoom("r1", "end-of-turn", i)
	}
	assert.Len(t, c.send, sendBuffer)
}
