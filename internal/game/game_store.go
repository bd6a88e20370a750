// internal/game/game_store.go
package game

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/models"
)

// session wraps one game with its own lock so sessions never contend with each other.
type session struct {
	mu          sync.Mutex
	game        *UnoGame
	createdAt   time.Time
	lastUpdated time.Time
	deleted     bool // set under mu; later callers see ErrNotFound
}

// GameStore maps game ids to live games. The map lock is held only for lookups;
// each game is serialized by its own session lock.
type GameStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
}

func NewGameStore() *GameStore {
	return &GameStore{
		sessions: make(map[uuid.UUID]*session),
	}
}

// Create builds a new game for playerNames and registers it.
func (s *GameStore) Create(playerNames []string, rules HouseRules) (GameSummary, error) {
	g, err := NewUnoGame(playerNames, rules, nil)
	if err != nil {
		return GameSummary{}, err
	}
	s.AddGame(g)
	return g.Summary(), nil
}

// AddGame registers an existing game under its ID, replacing any game with the same ID.
func (s *GameStore) AddGame(g *UnoGame) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[g.ID] = &session{game: g, createdAt: now, lastUpdated: now}
}

// IDs lists every live game, oldest first.
func (s *GameStore) IDs() []uuid.UUID {
	s.mu.RLock()
	type entry struct {
		id      uuid.UUID
		created time.Time
	}
	entries := make([]entry, 0, len(s.sessions))
	for id, sess := range s.sessions {
		entries = append(entries, entry{id: id, created: sess.createdAt})
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].created.Equal(entries[j].created) {
			return entries[i].id.String() < entries[j].id.String()
		}
		return entries[i].created.Before(entries[j].created)
	})
	ids := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		ids[i] = e.id
	}
	return ids
}

func (s *GameStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *GameStore) lookup(id uuid.UUID) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

// With runs fn while holding the game's session lock and, if fn succeeds, marks
// the game as updated. fn must not retain g.
func (s *GameStore) With(id uuid.UUID, fn func(g *UnoGame) error) error {
	return s.run(id, true, fn)
}

// View is With for reads: the game's idle clock is left alone.
func (s *GameStore) View(id uuid.UUID, fn func(g *UnoGame) error) error {
	return s.run(id, false, fn)
}

func (s *GameStore) run(id uuid.UUID, touch bool, fn func(g *UnoGame) error) error {
	sess, err := s.lookup(id)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.deleted {
		return ErrNotFound
	}
	if err := fn(sess.game); err != nil {
		return err
	}
	if touch {
		sess.lastUpdated = time.Now()
	}
	return nil
}

// LastUpdated reports when the game last completed a mutating operation.
func (s *GameStore) LastUpdated(id uuid.UUID) (time.Time, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return time.Time{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.lastUpdated, nil
}

// Delete removes a game.
func (s *GameStore) Delete(id uuid.UUID) error {
	return s.DeleteWith(id, nil)
}

// DeleteWith removes a game and runs fn, if set, while still holding its session
// lock. Operations waiting on the lock then fail with ErrNotFound.
func (s *GameStore) DeleteWith(id uuid.UUID, fn func(g *UnoGame)) error {
	sess, err := s.lookup(id)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.deleted {
		return ErrNotFound
	}
	s.mu.Lock()
	if s.sessions[id] == sess {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	sess.deleted = true
	if fn != nil {
		fn(sess.game)
	}
	return nil
}

// PruneIdle removes every game not updated within maxIdle and returns their ids.
// onEvict, if set, runs for each removed game under its session lock.
// Games busy in an operation are skipped.
func (s *GameStore) PruneIdle(maxIdle time.Duration, onEvict func(id uuid.UUID)) []uuid.UUID {
	cutoff := time.Now().Add(-maxIdle)
	s.mu.Lock()
	defer s.mu.Unlock()
	var pruned []uuid.UUID
	for id, sess := range s.sessions {
		if !sess.mu.TryLock() {
			continue
		}
		if sess.lastUpdated.Before(cutoff) {
			delete(s.sessions, id)
			sess.deleted = true
			pruned = append(pruned, id)
			if onEvict != nil {
				onEvict(id)
			}
		}
		sess.mu.Unlock()
	}
	return pruned
}

func (s *GameStore) Summary(id uuid.UUID) (GameSummary, error) {
	var out GameSummary
	err := s.View(id, func(g *UnoGame) error {
		out = g.Summary()
		return nil
	})
	return out, err
}

func (s *GameStore) State(id uuid.UUID) (GameStateView, error) {
	var out GameStateView
	err := s.View(id, func(g *UnoGame) error {
		out = g.State()
		return nil
	})
	return out, err
}

func (s *GameStore) DeckContents(id uuid.UUID) ([]models.Card, error) {
	var out []models.Card
	err := s.View(id, func(g *UnoGame) error {
		out = g.DeckContents()
		return nil
	})
	return out, err
}

func (s *GameStore) PlayCard(id uuid.UUID, playerID, cardIndex int, chosen *models.Color) (Outcome, error) {
	var out Outcome
	err := s.With(id, func(g *UnoGame) error {
		var e error
		out, e = g.PlayCard(playerID, cardIndex, chosen)
		return e
	})
	return out, err
}

func (s *GameStore) DrawCard(id uuid.UUID, playerID int) (DrawResult, error) {
	var out DrawResult
	err := s.With(id, func(g *UnoGame) error {
		var e error
		out, e = g.DrawCard(playerID)
		return e
	})
	return out, err
}

func (s *GameStore) ChooseColor(id uuid.UUID, playerID int, color models.Color) (Outcome, error) {
	var out Outcome
	err := s.With(id, func(g *UnoGame) error {
		var e error
		out, e = g.ChooseColor(playerID, color)
		return e
	})
	return out, err
}

// Reset redeals a game in place and returns its new summary.
func (s *GameStore) Reset(id uuid.UUID) (GameSummary, error) {
	var out GameSummary
	err := s.With(id, func(g *UnoGame) error {
		if e := g.Reset(); e != nil {
			return e
		}
		out = g.Summary()
		return nil
	})
	return out, err
}
