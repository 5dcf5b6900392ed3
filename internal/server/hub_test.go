package server

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pinfall/pinfall-server/internal/game"
	"github.com/pinfall/pinfall-server/internal/room"
	"github.com/pinfall/pinfall-server/internal/session"
)

func newTestHub() *Hub {
	logger := zap.NewNop()
	return NewHub(
		room.NewManager(logger),
		session.NewManager(time.Minute, 0, logger),
		nil,
		logger,
	)
}

// testClient is attached straight to the hub map; no network involved.
func testClient(h *Hub) *Client {
	c := &Client{hub: h, send: make(chan []byte, 16)}
	h.clients[c] = true
	return c
}

// lastMessage drains the client's queue and returns the payload of the most
// recent message of the wanted type.
func lastMessage(t *testing.T, c *Client, want string) json.RawMessage {
	t.Helper()
	var found json.RawMessage
	for {
		select {
		case data := <-c.send:
			var msg Message
			require.NoError(t, json.Unmarshal(data, &msg))
			if msg.Type == want {
				found = msg.Data
			}
		default:
			if found == nil {
				t.Fatalf("no %s message queued", want)
			}
			return found
		}
	}
}

func rawPayload(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestHubGameLifecycle(t *testing.T) {
	h := newTestHub()
	alice := testClient(h)
	bob := testClient(h)

	h.handleMessage(alice, Message{Type: MsgGameCreate})
	var created CreatedPayload
	require.NoError(t, json.Unmarshal(lastMessage(t, alice, MsgGameCreated), &created))
	require.NotEmpty(t, created.GameID)

	h.handleMessage(alice, Message{Type: MsgGameJoin, Data: rawPayload(t, JoinPayload{
		GameID: created.GameID, PlayerName: "Alice",
	})})
	var joined JoinedPayload
	require.NoError(t, json.Unmarshal(lastMessage(t, alice, MsgGameJoined), &joined))
	assert.Equal(t, created.GameID, joined.GameID)
	require.NotEmpty(t, joined.PlayerID)
	assert.Equal(t, 1, h.sessions.Count())

	h.handleMessage(bob, Message{Type: MsgGameJoin, Data: rawPayload(t, JoinPayload{
		GameID: created.GameID, PlayerName: "Bob",
	})})
	require.NoError(t, json.Unmarshal(lastMessage(t, bob, MsgGameJoined), &joined))

	h.handleMessage(alice, Message{Type: MsgGameStart, Data: rawPayload(t, StartPayload{GameID: created.GameID})})

	var view GameView
	require.NoError(t, json.Unmarshal(lastMessage(t, alice, MsgGameState), &view))
	assert.Equal(t, "FIND_START_NEUTRAL", view.Phase)
	require.Len(t, view.Players, 2)

	// Alice sees her own hand; Bob's stays hidden.
	assert.Len(t, view.Players[0].Hand, game.HandSize)
	assert.Empty(t, view.Players[1].Hand)

	h.handleMessage(alice, Message{Type: MsgDraw})
	require.NoError(t, json.Unmarshal(lastMessage(t, alice, MsgGameState), &view))
	assert.Equal(t, game.HandSize+1, view.Players[0].HandCount)
}

func TestHubRejectsActionBeforeJoin(t *testing.T) {
	h := newTestHub()
	c := testClient(h)

	h.handleMessage(c, Message{Type: MsgDraw})

	var errPayload ErrorPayload
	require.NoError(t, json.Unmarshal(lastMessage(t, c, MsgGameError), &errPayload))
	assert.Equal(t, "join a game first", errPayload.Message)
}

func TestHubForwardsRuleRejections(t *testing.T) {
	h := newTestHub()
	alice := testClient(h)
	bob := testClient(h)

	h.handleMessage(alice, Message{Type: MsgGameCreate})
	var created CreatedPayload
	require.NoError(t, json.Unmarshal(lastMessage(t, alice, MsgGameCreated), &created))

	join := func(c *Client, name string) {
		h.handleMessage(c, Message{Type: MsgGameJoin, Data: rawPayload(t, JoinPayload{
			GameID: created.GameID, PlayerName: name,
		})})
	}
	join(alice, "Alice")
	join(bob, "Bob")

	h.handleMessage(alice, Message{Type: MsgGameStart, Data: rawPayload(t, StartPayload{GameID: created.GameID})})

	// Bob acts out of turn.
	h.handleMessage(bob, Message{Type: MsgDraw})
	var errPayload ErrorPayload
	require.NoError(t, json.Unmarshal(lastMessage(t, bob, MsgGameError), &errPayload))
	assert.Equal(t, "not your turn", errPayload.Message)
}

func TestBroadcastSurvivesUnregister(t *testing.T) {
	h := newTestHub()
	alice := testClient(h)
	bob := testClient(h)

	h.handleMessage(alice, Message{Type: MsgGameCreate})
	var created CreatedPayload
	require.NoError(t, json.Unmarshal(lastMessage(t, alice, MsgGameCreated), &created))

	join := func(c *Client, name string) {
		h.handleMessage(c, Message{Type: MsgGameJoin, Data: rawPayload(t, JoinPayload{
			GameID: created.GameID, PlayerName: name,
		})})
	}
	join(alice, "Alice")
	join(bob, "Bob")
	require.Equal(t, 2, h.sessions.Count())

	// A broadcast holds a snapshot of the game's clients; a client can
	// unregister between the snapshot and the sends.
	snapshot := h.gameClients(created.GameID)
	require.Len(t, snapshot, 2)

	h.removeClient(bob)
	assert.Equal(t, 1, h.sessions.Count())

	assert.NotPanics(t, func() {
		for _, c := range snapshot {
			c.enqueue(encode(MsgGameState, GameView{GameID: created.GameID}))
		}
	})

	// Alice still receives the message; Bob's send is dropped.
	var view GameView
	require.NoError(t, json.Unmarshal(lastMessage(t, alice, MsgGameState), &view))
	assert.Equal(t, created.GameID, view.GameID)

	// Unregistering twice is a no-op.
	assert.NotPanics(t, func() { h.removeClient(bob) })
}

func TestHubUnknownMessageType(t *testing.T) {
	h := newTestHub()
	c := testClient(h)

	h.handleMessage(c, Message{Type: "game:rename"})
	var errPayload ErrorPayload
	require.NoError(t, json.Unmarshal(lastMessage(t, c, MsgGameError), &errPayload))
	assert.Contains(t, errPayload.Message, "unknown message type")
}
