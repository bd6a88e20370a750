// internal/game/sync_state.go
package game

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/models"
)

const (
	StatusInProgress = "In Progress"
	StatusComplete   = "Complete"
)

// PlayerSummary is the public view of a seat: no cards, only the count.
type PlayerSummary struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	HandSize int    `json:"hand_size"`
}

// WinnerView identifies the player who emptied their hand.
type WinnerView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GameSummary is the public snapshot of a game.
type GameSummary struct {
	ID                 uuid.UUID       `json:"id"`
	CurrentTurn        int             `json:"current_turn"`
	Players            []PlayerSummary `json:"players"`
	DiscardTop         models.Card     `json:"discard_pile_top"`
	ActiveColor        *models.Color   `json:"active_color,omitempty"`
	DeckCardsRemaining int             `json:"deck_cards_remaining"`
	PendingDraws       int             `json:"pending_draws"`
	Status             string          `json:"status"`
	Winner             *WinnerView     `json:"winner"`
}

// HandCard pairs a card with its current hand position.
type HandCard struct {
	Idx  int         `json:"idx"`
	Card models.Card `json:"card"`
}

// PlayerState is a seat with its full hand.
type PlayerState struct {
	ID    int        `json:"id"`
	Name  string     `json:"name"`
	Hand  []HandCard `json:"hand"`
	Legal []int      `json:"legal_moves"`
}

// GameStateView is the full state, including every player's hand. Hiding
// opponents' hands is up to the access-control layer in front of it.
type GameStateView struct {
	ID                 uuid.UUID     `json:"id"`
	CurrentTurn        int           `json:"current_turn"`
	Direction          Direction     `json:"direction"`
	TurnNumber         int           `json:"turn_number"`
	Players            []PlayerState `json:"players"`
	DiscardTop         models.Card   `json:"discard_pile_top"`
	DiscardSize        int           `json:"discard_pile_size"`
	ActiveColor        *models.Color `json:"active_color,omitempty"`
	ColorPending       bool          `json:"color_pending"`
	DeckCardsRemaining int           `json:"deck_cards_remaining"`
	PendingDraws       int           `json:"pending_draws"`
	Status             string        `json:"status"`
	Winner             *WinnerView   `json:"winner"`
	Rules              HouseRules    `json:"rules"`
}

func (g *UnoGame) status() (string, *WinnerView) {
	if g.Winner == nil {
		return StatusInProgress, nil
	}
	p := g.Players[*g.Winner]
	return StatusComplete, &WinnerView{ID: p.ID, Name: p.Name}
}

// Summary builds the public snapshot.
func (g *UnoGame) Summary() GameSummary {
	status, winner := g.status()
	s := GameSummary{
		ID:                 g.ID,
		CurrentTurn:        g.Turn.Current,
		Players:            make([]PlayerSummary, 0, len(g.Players)),
		DiscardTop:         g.TopCard(),
		ActiveColor:        g.activeColorCopy(),
		DeckCardsRemaining: g.Deck.Len(),
		PendingDraws:       g.Turn.PendingDraws,
		Status:             status,
		Winner:             winner,
	}
	for _, p := range g.Players {
		s.Players = append(s.Players, PlayerSummary{ID: p.ID, Name: p.Name, HandSize: p.HandSize()})
	}
	return s
}

// State builds the full view with every hand.
func (g *UnoGame) State() GameStateView {
	status, winner := g.status()
	v := GameStateView{
		ID:                 g.ID,
		CurrentTurn:        g.Turn.Current,
		Direction:          g.Turn.Direction,
		TurnNumber:         g.TurnNumber,
		Players:            make([]PlayerState, 0, len(g.Players)),
		DiscardTop:         g.TopCard(),
		DiscardSize:        g.DiscardPile.Len(),
		ActiveColor:        g.activeColorCopy(),
		ColorPending:       g.colorPending,
		DeckCardsRemaining: g.Deck.Len(),
		PendingDraws:       g.Turn.PendingDraws,
		Status:             status,
		Winner:             winner,
		Rules:              g.Rules,
	}
	for _, p := range g.Players {
		ps := PlayerState{
			ID:    p.ID,
			Name:  p.Name,
			Hand:  make([]HandCard, len(p.Hand)),
			Legal: g.LegalMoves(p.ID),
		}
		for i, c := range p.Hand {
			ps.Hand[i] = HandCard{Idx: i, Card: c}
		}
		v.Players = append(v.Players, ps)
	}
	return v
}

// DeckContents exposes the undrawn cards in draw order. Debug only.
func (g *UnoGame) DeckContents() []models.Card {
	return g.Deck.Contents()
}
