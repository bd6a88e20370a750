// internal/game/game.go
package game

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/models"
)

// UnoGame holds the entire state for a single game instance in memory.
//
// UnoGame performs no locking. Callers serialize access per game; GameStore does
// this with one mutex per session.
type UnoGame struct {
	ID    uuid.UUID
	Rules HouseRules

	Players     []*models.Player
	Deck        *Deck
	DiscardPile *DiscardPile

	// Turn logic
	Turn       TurnTracker
	TurnNumber int // increments on every completed action

	// ActiveColor is the color declared for the Wild-family top card; nil otherwise.
	ActiveColor *models.Color

	// Winner is the seat that emptied its hand; nil while the game is in progress.
	Winner *int

	// colorPending is set in the deferred variant between playing a wild without
	// a color and the matching ChooseColor.
	colorPending bool

	rng *rand.Rand
}

// NewUnoGame seats the named players, deals a hand to each and flips the starting card.
// A nil rng gets a time-seeded source.
func NewUnoGame(playerNames []string, rules HouseRules, rng *rand.Rand) (*UnoGame, error) {
	if len(playerNames) < 2 {
		return nil, ErrNotEnoughPlayers
	}
	if rules.HandSize <= 0 {
		rules.HandSize = DefaultHandSize
	}
	if len(playerNames)*rules.HandSize+1 > StandardDeckSize {
		return nil, fmt.Errorf("%d players with %d cards each: %w", len(playerNames), rules.HandSize, ErrTooManyPlayers)
	}
	if rng == nil {
		rng = newRand()
	}

	players := make([]*models.Player, len(playerNames))
	for i, name := range playerNames {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}
		players[i] = models.NewPlayer(i, name)
	}

	g := &UnoGame{
		ID:      uuid.New(),
		Rules:   rules,
		Players: players,
		rng:     rng,
	}
	if err := g.deal(); err != nil {
		return nil, err
	}
	return g, nil
}

// deal shuffles a fresh deck, deals round-robin and flips the starting card.
// The starting card's effect is never applied.
func (g *UnoGame) deal() error {
	g.Deck = NewStandardDeck(g.rng)
	g.DiscardPile = &DiscardPile{}
	g.Turn = newTurnTracker(len(g.Players))
	g.TurnNumber = 0
	g.ActiveColor = nil
	g.Winner = nil
	g.colorPending = false

	for _, p := range g.Players {
		p.Hand = make([]models.Card, 0, g.Rules.HandSize)
	}
	for i := 0; i < g.Rules.HandSize; i++ {
		for _, p := range g.Players {
			cards, _, err := g.Deck.Draw(1, g.DiscardPile)
			if err != nil {
				return fmt.Errorf("dealing to player %d: %w", p.ID, err)
			}
			p.AddCards(cards...)
		}
	}

	start, _, err := g.Deck.Draw(1, g.DiscardPile)
	if err != nil {
		return fmt.Errorf("flipping starting card: %w", err)
	}
	g.DiscardPile.Push(start[0])
	return nil
}

// Reset redeals the same players from a fresh deck, clearing the winner.
func (g *UnoGame) Reset() error {
	return g.deal()
}

// TopCard returns the top of the discard pile.
func (g *UnoGame) TopCard() models.Card {
	top, _ := g.DiscardPile.Top()
	return top
}

// CurrentPlayer returns the player whose turn it is.
func (g *UnoGame) CurrentPlayer() *models.Player {
	return g.Players[g.Turn.Current]
}

// Player returns the player seated at id.
func (g *UnoGame) Player(id int) (*models.Player, error) {
	if id < 0 || id >= len(g.Players) {
		return nil, ErrInvalidPlayer
	}
	return g.Players[id], nil
}

// IsOver reports whether a player has emptied their hand.
func (g *UnoGame) IsOver() bool {
	return g.Winner != nil
}

// ColorPending reports whether the current player owes a ChooseColor call.
func (g *UnoGame) ColorPending() bool {
	return g.colorPending
}

// CardCount totals the cards across deck, discard pile and hands. It is always StandardDeckSize.
func (g *UnoGame) CardCount() int {
	total := g.Deck.Len() + g.DiscardPile.Len()
	for _, p := range g.Players {
		total += p.HandSize()
	}
	return total
}

// CanPlay reports whether card is legal on the current top card.
func (g *UnoGame) CanPlay(card models.Card) bool {
	return models.Matches(g.TopCard(), card, g.ActiveColor)
}

// LegalMoves lists the hand positions playerID could play right now.
// It is empty when it is not their turn, the game is over, or a draw is owed.
func (g *UnoGame) LegalMoves(playerID int) []int {
	moves := []int{}
	if g.IsOver() || g.colorPending || playerID != g.Turn.Current || g.Turn.PendingDraws > 0 {
		return moves
	}
	for i, c := range g.Players[playerID].Hand {
		if g.CanPlay(c) {
			moves = append(moves, i)
		}
	}
	return moves
}

// checkTurn validates the preconditions shared by every action.
func (g *UnoGame) checkTurn(playerID int) error {
	if g.IsOver() {
		return ErrGameOver
	}
	if playerID != g.Turn.Current {
		return ErrNotYourTurn
	}
	return nil
}

// PlayCard plays the card at cardIndex from playerID's hand.
//
// chosen is the declared color for a Wild-family card and is ignored for any
// other card. Preconditions are checked in a fixed order and nothing changes
// unless all of them pass.
func (g *UnoGame) PlayCard(playerID, cardIndex int, chosen *models.Color) (Outcome, error) {
	if err := g.checkTurn(playerID); err != nil {
		return Outcome{}, err
	}
	if g.colorPending {
		return Outcome{}, ErrColorChoicePending
	}
	player := g.Players[playerID]
	card, ok := player.CardAt(cardIndex)
	if !ok {
		return Outcome{}, ErrInvalidCardIndex
	}
	if g.Turn.PendingDraws > 0 {
		return Outcome{}, ErrMustDrawPendingCards
	}
	if !g.CanPlay(card) {
		return Outcome{}, ErrInvalidMove
	}
	if card.IsWild() {
		if chosen != nil && !chosen.IsPlayable() {
			return Outcome{}, ErrMissingColorChoice
		}
		if chosen == nil && !g.Rules.DeferredColorChoice {
			return Outcome{}, ErrMissingColorChoice
		}
	}

	player.RemoveCard(cardIndex)
	g.DiscardPile.Push(card)
	g.ActiveColor = nil
	if card.IsWild() && chosen != nil {
		c := *chosen
		g.ActiveColor = &c
	}

	if player.HasWon() {
		winner := playerID
		g.Winner = &winner
		g.TurnNumber++
		return Outcome{
			Kind:         OutcomeGameWon,
			PlayerID:     playerID,
			NextPlayerID: NoPlayer,
			Card:         card,
			ActiveColor:  g.activeColorCopy(),
		}, nil
	}

	if card.IsWild() && chosen == nil {
		g.colorPending = true
		return Outcome{
			Kind:         OutcomeColorPending,
			PlayerID:     playerID,
			NextPlayerID: playerID,
			Card:         card,
		}, nil
	}

	return g.resolve(playerID, card), nil
}

// ChooseColor declares the color for a wild played without one (deferred variant),
// then applies the wild's effect and passes the turn.
func (g *UnoGame) ChooseColor(playerID int, color models.Color) (Outcome, error) {
	if err := g.checkTurn(playerID); err != nil {
		return Outcome{}, err
	}
	if !g.colorPending {
		return Outcome{}, ErrNoColorChoicePending
	}
	if !color.IsPlayable() {
		return Outcome{}, ErrMissingColorChoice
	}

	g.colorPending = false
	g.ActiveColor = &color
	return g.resolve(playerID, g.TopCard()), nil
}

// resolve applies the effect of a card that was just played and advances the turn.
func (g *UnoGame) resolve(playerID int, card models.Card) Outcome {
	out := Outcome{PlayerID: playerID, Card: card}

	switch card.Kind {
	case models.KindNumber:
		out.Kind = OutcomePlay
		g.Turn.Advance(1)
	case models.KindSkip:
		out.Kind = OutcomeSkip
		g.Turn.Advance(2)
	case models.KindReverse:
		out.Kind = OutcomeReverse
		g.Turn.Reverse()
		if len(g.Players) == 2 {
			// heads-up, a reverse hands the turn straight back
			g.Turn.Advance(2)
		} else {
			g.Turn.Advance(1)
		}
	case models.KindDrawTwo:
		out.Kind = OutcomeDrawTwo
		g.Turn.AddPending(2)
		g.Turn.Advance(1)
		out.CardsOwed = g.Turn.PendingDraws
	case models.KindWild:
		out.Kind = OutcomeWild
		g.Turn.Advance(1)
	case models.KindWildDrawFour:
		out.Kind = OutcomeWildDrawFour
		g.Turn.AddPending(4)
		g.Turn.Advance(1)
		out.CardsOwed = g.Turn.PendingDraws
	}

	g.TurnNumber++
	out.NextPlayerID = g.Turn.Current
	out.ActiveColor = g.activeColorCopy()
	return out
}

// DrawCard draws for playerID: the pending Draw Two / Wild Draw Four debt if
// one is owed, otherwise a single card. Drawing always ends the turn.
func (g *UnoGame) DrawCard(playerID int) (DrawResult, error) {
	if err := g.checkTurn(playerID); err != nil {
		return DrawResult{}, err
	}
	if g.colorPending {
		return DrawResult{}, ErrColorChoicePending
	}

	owed := g.Turn.Owed()
	forced := g.Turn.PendingDraws > 0
	cards, reshuffled, err := g.Deck.Draw(owed, g.DiscardPile)
	if err != nil {
		return DrawResult{}, fmt.Errorf("drawing %d card(s) for player %d: %w", owed, playerID, err)
	}

	g.Players[playerID].AddCards(cards...)
	g.Turn.ClearPending()
	g.Turn.Advance(1)
	g.TurnNumber++

	return DrawResult{
		PlayerID:     playerID,
		NextPlayerID: g.Turn.Current,
		Cards:        cards,
		Forced:       forced,
		Reshuffled:   reshuffled,
	}, nil
}

func (g *UnoGame) activeColorCopy() *models.Color {
	if g.ActiveColor == nil {
		return nil
	}
	c := *g.ActiveColor
	return &c
}
