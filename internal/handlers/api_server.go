// internal/handlers/api_server.go
package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jason-s-yu/uno/internal/cache"
	"github.com/jason-s-yu/uno/internal/game"
	"github.com/jason-s-yu/uno/internal/middleware"
)

// feedBuffer bounds the records waiting for the publisher.
const feedBuffer = 1024

// GameServer is a high-level struct that holds a reference to a GameStore
// and fans successful actions out to websocket watchers and the action feed.
type GameServer struct {
	GameStore    *game.GameStore
	Hub          *Hub
	Publisher    cache.ActionPublisher
	Logger       *logrus.Logger
	DefaultRules game.HouseRules
	DebugDeck    bool
	CORSOrigins  []string

	feed      chan cache.GameActionRecord
	stopFeed  chan struct{}
	feedDone  chan struct{}
	closeOnce sync.Once
}

// NewGameServer builds a server with an empty store. A nil publisher disables the action feed.
func NewGameServer(logger *logrus.Logger, publisher cache.ActionPublisher) *GameServer {
	if logger == nil {
		logger = logrus.New()
	}
	if publisher == nil {
		publisher = cache.NopPublisher{}
	}
	gs := &GameServer{
		GameStore:    game.NewGameStore(),
		Hub:          NewHub(logger),
		Publisher:    publisher,
		Logger:       logger,
		DefaultRules: game.DefaultHouseRules(),
		CORSOrigins:  []string{"https://*", "http://*"},
		feed:         make(chan cache.GameActionRecord, feedBuffer),
		stopFeed:     make(chan struct{}),
		feedDone:     make(chan struct{}),
	}
	go gs.runFeed()
	return gs
}

// Close publishes the records still queued and stops the feed. Later actions are not published.
func (gs *GameServer) Close() {
	gs.closeOnce.Do(func() {
		close(gs.stopFeed)
		<-gs.feedDone
	})
}

// Routes wires every endpoint onto a chi router.
func (gs *GameServer) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.LogMiddleware(gs.Logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Heartbeat("/ping"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   gs.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/games", func(r chi.Router) {
		r.Post("/", gs.CreateGameHandler)
		r.Get("/", gs.ListGamesHandler)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", gs.GetGameHandler)
			r.Delete("/", gs.DeleteGameHandler)
			r.Get("/state", gs.GetGameStateHandler)
			r.Get("/deck", gs.GetDeckHandler)
			r.Post("/play", gs.PlayCardHandler)
			r.Post("/draw", gs.DrawCardHandler)
			r.Post("/color", gs.ChooseColorHandler)
			r.Post("/reset", gs.ResetGameHandler)
			r.Get("/ws", gs.GameWSHandler)
		})
	})
	return r
}

// publish broadcasts events to watchers and queues an action record for the feed.
// Call it inside GameStore.With so a game's actions leave in the order they were
// applied. Neither step blocks.
func (gs *GameServer) publish(gameID uuid.UUID, actionIndex, actor int, actionType string, payload map[string]interface{}, events []game.GameEvent) {
	if len(events) > 0 {
		gs.Hub.Broadcast(gameID, events)
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}
	record := cache.GameActionRecord{
		GameID:        gameID,
		ActionIndex:   actionIndex,
		ActorPlayerID: actor,
		ActionType:    actionType,
		ActionPayload: payload,
		Timestamp:     time.Now().UnixMilli(),
	}
	select {
	case gs.feed <- record:
	default:
		gs.Logger.WithFields(logrus.Fields{
			"game_id": gameID,
			"action":  actionType,
		}).Warn("action feed full, dropping record")
	}
}

// runFeed pushes queued records one at a time, keeping their order.
func (gs *GameServer) runFeed() {
	defer close(gs.feedDone)
	for {
		select {
		case rec := <-gs.feed:
			gs.pushRecord(rec)
		case <-gs.stopFeed:
			for {
				select {
				case rec := <-gs.feed:
					gs.pushRecord(rec)
				default:
					return
				}
			}
		}
	}
}

func (gs *GameServer) pushRecord(rec cache.GameActionRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := gs.Publisher.PublishGameAction(ctx, rec); err != nil {
		gs.Logger.WithFields(logrus.Fields{
			"game_id": rec.GameID,
			"action":  rec.ActionType,
		}).Warnf("failed to publish game action: %v", err)
	}
}

// RunJanitor evicts games idle longer than maxIdle every interval until ctx is done.
func (gs *GameServer) RunJanitor(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			gs.evictIdle(maxIdle)
		}
	}
}

func (gs *GameServer) evictIdle(maxIdle time.Duration) []uuid.UUID {
	return gs.GameStore.PruneIdle(maxIdle, func(id uuid.UUID) {
		gs.Logger.WithField("game_id", id).Info("evicted idle game")
		gs.Hub.CloseGame(id, game.GameEvent{Type: game.EventGameDeleted, GameID: id})
		gs.publish(id, 0, game.NoPlayer, string(game.EventGameDeleted), map[string]interface{}{"reason": "idle"}, nil)
	})
}
