// internal/handlers/game_ws_test.go
package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jason-s-yu/uno/internal/game"
)

func dialGame(t *testing.T, ctx context.Context, srv *httptest.Server, id uuid.UUID, subprotocols ...string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/games/" + id.String() + "/ws"
	c, _, err := websocket.Dial(ctx, url, &websocket.DialOptions{Subprotocols: subprotocols})
	require.NoError(t, err)
	return c
}

func readMessage(t *testing.T, ctx context.Context, c *websocket.Conn) map[string]interface{} {
	t.Helper()
	_, data, err := c.Read(ctx)
	require.NoError(t, err)
	var msg map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestGameWebSocketStream(t *testing.T) {
	gs, _ := newTestServer(t)
	srv := httptest.NewServer(gs.Routes())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sum, err := gs.GameStore.Create([]string{"a", "b"}, game.DefaultHouseRules())
	require.NoError(t, err)

	c := dialGame(t, ctx, srv, sum.ID, "game")
	defer c.Close(websocket.StatusNormalClosure, "")

	msg := readMessage(t, ctx, c)
	assert.Equal(t, "sync_state", msg["type"])
	state, ok := msg["state"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, sum.ID.String(), state["id"])

	require.NoError(t, c.Write(ctx, websocket.MessageText, []byte(`{"type":"ping"}`)))
	assert.Equal(t, "pong", readMessage(t, ctx, c)["type"])

	resp, err := srv.Client().Post(srv.URL+"/games/"+sum.ID.String()+"/draw", "application/json",
		strings.NewReader(`{"player_id":0}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	draw := readMessage(t, ctx, c)
	assert.Equal(t, string(game.EventPlayerDraw), draw["type"])
	assert.NotContains(t, draw, "card")
	payload := draw["payload"].(map[string]interface{})
	assert.Equal(t, float64(1), payload["count"])

	turn := readMessage(t, ctx, c)
	assert.Equal(t, string(game.EventGamePlayerTurn), turn["type"])
	assert.Equal(t, float64(1), turn["player"].(map[string]interface{})["id"])

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/games/"+sum.ID.String(), nil)
	require.NoError(t, err)
	resp, err = srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	assert.Equal(t, string(game.EventGameDeleted), readMessage(t, ctx, c)["type"])
	_, _, err = c.Read(ctx)
	assert.Equal(t, GameClosedCode, websocket.CloseStatus(err))
}

func TestGameWebSocketRequiresSubprotocol(t *testing.T) {
	gs, _ := newTestServer(t)
	srv := httptest.NewServer(gs.Routes())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sum, err := gs.GameStore.Create([]string{"a", "b"}, game.DefaultHouseRules())
	require.NoError(t, err)

	c := dialGame(t, ctx, srv, sum.ID)
	defer c.CloseNow()
	_, _, err = c.Read(ctx)
	assert.Equal(t, BadSubprotocolError, websocket.CloseStatus(err))
}

func TestGameWebSocketUnknownGame(t *testing.T) {
	gs, _ := newTestServer(t)
	w := doJSON(t, gs.Routes(), http.MethodGet, "/games/"+uuid.New().String()+"/ws", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHubDropsSlowWatcher(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	h := NewHub(logger)
	id := uuid.New()

	slow := h.Subscribe(id, "slow")
	events := make([]game.GameEvent, watcherBuffer+1)
	for i := range events {
		events[i] = game.GameEvent{Type: game.EventGamePlayerTurn, GameID: id}
	}
	h.Broadcast(id, events)
	assert.Zero(t, h.Watchers(id))
	assert.Equal(t, SlowConsumerCode, slow.code)

	n := 0
	for range slow.send {
		n++
	}
	assert.Equal(t, watcherBuffer, n)

	// already removed
	h.Unsubscribe(id, slow)
}

func TestHubCloseGame(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	h := NewHub(logger)
	id, other := uuid.New(), uuid.New()

	w1 := h.Subscribe(id, "a")
	w2 := h.Subscribe(other, "b")
	h.CloseGame(id, game.GameEvent{Type: game.EventGameDeleted, GameID: id})

	msg, ok := <-w1.send
	require.True(t, ok)
	assert.Contains(t, string(msg), "game_deleted")
	_, ok = <-w1.send
	assert.False(t, ok)
	assert.Equal(t, GameClosedCode, w1.code)

	assert.Equal(t, 1, h.Watchers(other))
	h.Broadcast(other, []game.GameEvent{{Type: game.EventGameReset, GameID: other}})
	assert.Contains(t, string(<-w2.send), "game_reset")
}

// The sync snapshot and the event stream must line up even while the game is being played.
func TestGameWebSocketSyncLinesUpWithEvents(t *testing.T) {
	gs, _ := newTestServer(t)
	srv := httptest.NewServer(gs.Routes())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sum, err := gs.GameStore.Create([]string{"a", "b"}, game.DefaultHouseRules())
	require.NoError(t, err)

	const draws = 10
	go func() {
		for i := 0; i < draws; i++ {
			gs.GameStore.With(sum.ID, func(g *game.UnoGame) error {
				res, e := g.DrawCard(g.Turn.Current)
				if e != nil {
					return e
				}
				gs.publish(sum.ID, g.TurnNumber, res.PlayerID, string(game.EventPlayerDraw), nil,
					game.DrawEvents(sum.ID, res, g.Deck.Len()))
				return nil
			})
			time.Sleep(time.Millisecond)
		}
	}()

	c := dialGame(t, ctx, srv, sum.ID, "game")
	defer c.Close(websocket.StatusNormalClosure, "")

	msg := readMessage(t, ctx, c)
	require.Equal(t, "sync_state", msg["type"])
	state := msg["state"].(map[string]interface{})
	if state["turn_number"] == float64(draws) {
		return // every draw landed before the snapshot
	}
	next := readMessage(t, ctx, c)
	require.Equal(t, string(game.EventPlayerDraw), next["type"])
	assert.Equal(t, state["current_turn"], next["player"].(map[string]interface{})["id"])
}
