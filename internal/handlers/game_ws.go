// internal/handlers/game_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jason-s-yu/uno/internal/game"
	"github.com/jason-s-yu/uno/internal/middleware"
)

const watcherBuffer = 32

// GameMessage is an incoming websocket message. Watchers are read-only; only pings are answered.
type GameMessage struct {
	Type string `json:"type"`
}

// SyncMessage is the first message a watcher receives.
type SyncMessage struct {
	Type  string              `json:"type"`
	State game.GameStateView `json:"state"`
}

type watcher struct {
	send   chan []byte
	remote string
	// code and reason are set before send is closed and read after.
	code   websocket.StatusCode
	reason string
}

// Hub fans game events out to websocket watchers, grouped by game id.
type Hub struct {
	mu       sync.Mutex
	watchers map[uuid.UUID]map[*watcher]struct{}
	logger   *logrus.Logger
}

func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		watchers: make(map[uuid.UUID]map[*watcher]struct{}),
		logger:   logger,
	}
}

// Subscribe registers a watcher for gameID.
func (h *Hub) Subscribe(gameID uuid.UUID, remote string) *watcher {
	w := &watcher{send: make(chan []byte, watcherBuffer), remote: remote}
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.watchers[gameID]
	if !ok {
		set = make(map[*watcher]struct{})
		h.watchers[gameID] = set
	}
	set[w] = struct{}{}
	return w
}

// Unsubscribe removes a watcher and closes its send channel. Safe to call more than once.
func (h *Hub) Unsubscribe(gameID uuid.UUID, w *watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(gameID, w, websocket.StatusNormalClosure, "")
}

func (h *Hub) removeLocked(gameID uuid.UUID, w *watcher, code websocket.StatusCode, reason string) {
	set, ok := h.watchers[gameID]
	if !ok {
		return
	}
	if _, ok := set[w]; !ok {
		return
	}
	delete(set, w)
	w.code, w.reason = code, reason
	close(w.send)
	if len(set) == 0 {
		delete(h.watchers, gameID)
	}
}

// Watchers reports how many watchers are subscribed to gameID.
func (h *Hub) Watchers(gameID uuid.UUID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.watchers[gameID])
}

func (h *Hub) encode(ev game.GameEvent) ([]byte, bool) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Warnf("skipping unencodable %s event for game %s: %v", ev.Type, ev.GameID, err)
		return nil, false
	}
	return data, true
}

// Broadcast queues events for every watcher of gameID. A watcher whose buffer is
// full is dropped rather than stalling the caller.
func (h *Hub) Broadcast(gameID uuid.UUID, events []game.GameEvent) {
	msgs := make([][]byte, 0, len(events))
	for _, ev := range events {
		if data, ok := h.encode(ev); ok {
			msgs = append(msgs, data)
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for w := range h.watchers[gameID] {
		for _, msg := range msgs {
			select {
			case w.send <- msg:
				continue
			default:
			}
			h.logger.Warnf("dropping slow watcher %s of game %s", w.remote, gameID)
			h.removeLocked(gameID, w, SlowConsumerCode, "watcher fell behind")
			break
		}
	}
}

// CloseGame sends final to every watcher of gameID and disconnects them.
func (h *Hub) CloseGame(gameID uuid.UUID, final game.GameEvent) {
	msg, ok := h.encode(final)
	h.mu.Lock()
	defer h.mu.Unlock()
	for w := range h.watchers[gameID] {
		if ok {
			select {
			case w.send <- msg:
			default:
			}
		}
		h.removeLocked(gameID, w, GameClosedCode, "game closed")
	}
}

// GameWSHandler upgrades the request to a websocket that streams the game's public events.
// The watcher first receives a sync_state message with the current state.
func (gs *GameServer) GameWSHandler(w http.ResponseWriter, r *http.Request) {
	gameID, err := gameIDParam(r)
	if err != nil {
		gs.writeError(w, r, err)
		return
	}
	// snapshot and subscribe under the session lock so no event falls between them
	var (
		state game.GameStateView
		watch *watcher
	)
	err = gs.GameStore.View(gameID, func(g *game.UnoGame) error {
		state = g.State()
		watch = gs.Hub.Subscribe(gameID, r.RemoteAddr)
		return nil
	})
	if err != nil {
		gs.writeError(w, r, err)
		return
	}
	defer gs.Hub.Unsubscribe(gameID, watch)

	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		Subprotocols:   []string{"game"},
		OriginPatterns: originPatterns(gs.CORSOrigins),
	})
	if err != nil {
		gs.Logger.Warnf("websocket accept error for game %s: %v", gameID, err)
		return
	}
	defer c.Close(websocket.StatusInternalError, "internal server error during handler exit")

	if c.Subprotocol() != "game" {
		gs.Logger.Warnf("client for game %s connected with invalid subprotocol %q", gameID, c.Subprotocol())
		c.Close(BadSubprotocolError, "client must use the 'game' subprotocol")
		return
	}
	middleware.LogWebSocketConnect(gs.Logger, r.RemoteAddr, r.URL.Path)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	syncMsg, err := json.Marshal(SyncMessage{Type: "sync_state", State: state})
	if err == nil {
		err = writeWithTimeout(ctx, c, syncMsg)
	}
	if err != nil {
		middleware.LogWebSocketDisconnect(gs.Logger, r.RemoteAddr, r.URL.Path, err)
		return
	}

	pong := make(chan struct{}, 1)
	readErr := make(chan error, 1)
	go func() {
		readErr <- readGameMessages(ctx, c, gameID, pong, gs.Logger)
	}()

	err = gs.writePump(ctx, c, watch, pong, readErr)
	middleware.LogWebSocketDisconnect(gs.Logger, r.RemoteAddr, r.URL.Path, err)
}

// writePump is the only goroutine that writes to c after the initial sync.
func (gs *GameServer) writePump(ctx context.Context, c *websocket.Conn, watch *watcher, pong <-chan struct{}, readErr <-chan error) error {
	pongMsg, _ := json.Marshal(map[string]string{"type": "pong"})
	for {
		select {
		case msg, ok := <-watch.send:
			if !ok {
				c.Close(watch.code, watch.reason)
				return nil
			}
			if err := writeWithTimeout(ctx, c, msg); err != nil {
				return err
			}
		case <-pong:
			if err := writeWithTimeout(ctx, c, pongMsg); err != nil {
				return err
			}
		case err := <-readErr:
			if isNormalClose(err) {
				return nil
			}
			return err
		case <-ctx.Done():
			return nil
		}
	}
}

// readGameMessages reads until the connection closes. Pings are signalled on pong; anything else is ignored.
func readGameMessages(ctx context.Context, c *websocket.Conn, gameID uuid.UUID, pong chan<- struct{}, logger *logrus.Logger) error {
	for {
		msgType, data, err := c.Read(ctx)
		if err != nil {
			return err
		}
		if msgType != websocket.MessageText {
			logger.Debugf("ignoring non-text message from watcher of game %s", gameID)
			continue
		}
		var msg GameMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Debugf("invalid JSON from watcher of game %s: %v", gameID, err)
			continue
		}
		switch msg.Type {
		case "ping":
			select {
			case pong <- struct{}{}:
			default:
			}
		default:
			logger.Tracef("ignoring %q message from watcher of game %s", msg.Type, gameID)
		}
	}
}

func writeWithTimeout(ctx context.Context, c *websocket.Conn, data []byte) error {
	writeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return c.Write(writeCtx, websocket.MessageText, data)
}

func isNormalClose(err error) bool {
	status := websocket.CloseStatus(err)
	return status == websocket.StatusNormalClosure ||
		status == websocket.StatusGoingAway ||
		errors.Is(err, context.Canceled)
}

// originPatterns converts CORS origins into the host patterns websocket.Accept expects.
func originPatterns(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimPrefix(o, "https://")
		o = strings.TrimPrefix(o, "http://")
		out = append(out, o)
	}
	return out
}
